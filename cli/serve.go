// ABOUTME: HTTP server subcommand
// ABOUTME: Serves MCP over streamable HTTP with widget test endpoints
package cli

import (
	"flag"

	"github.com/oakfield/hearth/store"
	"github.com/oakfield/hearth/web"
)

// ServeCommand starts the HTTP server for ChatGPT connector use.
func ServeCommand(st *store.Store, defaultAddr string, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", defaultAddr, "Listen address")
	_ = fs.Parse(args)

	return web.NewServer(st).Start(*addr)
}
