// ABOUTME: MCP resource handlers for the widget bundle and read-only data
// ABOUTME: Serves the property-list widget plus hearth:// listing and lead JSON
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oakfield/hearth/store"
	"github.com/oakfield/hearth/widget"
)

type ResourceHandlers struct {
	store *store.Store
}

func NewResourceHandlers(st *store.Store) *ResourceHandlers {
	return &ResourceHandlers{store: st}
}

// ReadWidget serves the embedded property-list widget document.
func (h *ResourceHandlers) ReadWidget(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if request.Params.URI != widget.URI {
		return nil, fmt.Errorf("unknown resource: %s", request.Params.URI)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      widget.URI,
			MIMEType: widget.MIMEType,
			Text:     widget.HTML(),
		},
	}}, nil
}

// ReadData serves hearth://listings[/{id}] and hearth://leads[/{id}].
func (h *ResourceHandlers) ReadData(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "hearth://") {
		return nil, fmt.Errorf("invalid URI scheme: expected hearth://")
	}

	parts := strings.Split(strings.TrimPrefix(uri, "hearth://"), "/")
	switch parts[0] {
	case "listings":
		if len(parts) == 1 {
			return jsonResource(uri, h.store.Listings())
		}
		listing := h.store.FindListing(parts[1])
		if listing == nil {
			return nil, fmt.Errorf("property %q not found", parts[1])
		}
		return jsonResource(uri, listing)

	case "leads":
		if len(parts) == 1 {
			return jsonResource(uri, h.store.Clients())
		}
		client, ok := h.store.FindClient(parts[1])
		if !ok {
			return nil, fmt.Errorf("client %q not found", parts[1])
		}
		return jsonResource(uri, client)

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
