// ABOUTME: Result envelope helpers shared by the MCP tool handlers
// ABOUTME: Builds narrative-text results and Apps SDK widget metadata
package handlers

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oakfield/hearth/widget"
)

// textResult wraps a narrative summary for the consuming assistant. The
// SDK attaches the handler's typed output as structuredContent alongside.
func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// widgetResult is textResult plus the Apps SDK invocation metadata that
// lets ChatGPT hydrate the property-list widget from the result.
func widgetResult(format string, args ...any) *mcp.CallToolResult {
	res := textResult(format, args...)
	res.Meta = mcp.Meta{
		"openai/toolInvocation/invoked": "Found properties",
	}
	return res
}

// widgetToolMeta is attached to tools whose output the widget can render.
func widgetToolMeta() mcp.Meta {
	return mcp.Meta{
		"openai/outputTemplate":          widget.URI,
		"openai/widgetAccessible":        true,
		"openai/resultCanProduceWidget":  true,
		"openai/toolInvocation/invoking": "Searching properties...",
		"openai/toolInvocation/invoked":  "Found properties",
	}
}
