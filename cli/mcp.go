// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server on stdio for assistant integration
package cli

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/oakfield/hearth/handlers"
	"github.com/oakfield/hearth/store"
)

// MCPCommand runs the MCP server on stdio. Logs go to stderr so the
// transport stream stays clean.
func MCPCommand(st *store.Store) error {
	log.Info().Msg("starting property MCP server on stdio")

	server := handlers.NewMCPServer(st)
	return server.Run(context.Background(), &mcp.StdioTransport{})
}
