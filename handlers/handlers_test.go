// ABOUTME: Shared test harness for MCP tool handler tests
// ABOUTME: Runs the real server over in-memory transports against a temp store
package handlers

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oakfield/hearth/models"
	"github.com/oakfield/hearth/store"
)

var testImpl = &mcp.Implementation{Name: "hearth-test", Version: "0.0.1"}

func intPtr(n int) *int { return &n }

func writeJSONL(t *testing.T, path string, records ...any) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
}

func fixtureListings() []any {
	return []any{
		models.Listing{PropertyID: "P1", PriceAmount: intPtr(95000), Bedrooms: 2, Bathrooms: 1, PropertyType: "Flat - Ground Floor", Postcode: "LE65 1DA", Parking: true, Status: "For Sale"},
		models.Listing{PropertyID: "P2", PriceAmount: intPtr(180000), Bedrooms: 3, Bathrooms: 2, PropertyType: "Semi-Detached House", Postcode: "LE65 2AY", Garden: true, Parking: true, Status: "For Sale"},
		models.Listing{PropertyID: "P3", PriceAmount: intPtr(72000), Bedrooms: 1, Bathrooms: 1, PropertyType: "Flat", Postcode: "DY4 8QT", Status: "Sold Subject to Contract"},
	}
}

func fixtureClients() []any {
	return []any{
		models.Client{ClientID: "C0001", Role: models.RoleBuyer, FullName: "Sarah Mitchell",
			Contact: models.Contact{Email: "sarah@example.com"}, Stage: models.StageHot,
			CreatedAt: "2025-10-01T10:00:00Z", BudgetMax: intPtr(100000), MinBedrooms: intPtr(2)},
		models.Client{ClientID: "C0002", Role: models.RoleSeller, FullName: "Emma Clarke",
			Stage: models.StageWarm, CreatedAt: "2025-10-02T10:00:00Z",
			SellingPropertyID: "P1", AskingPrice: intPtr(95000)},
	}
}

func testSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	dir := t.TempDir()
	listingsPath := filepath.Join(dir, "listings.jsonl")
	clientsPath := filepath.Join(dir, "clients.jsonl")
	writeJSONL(t, listingsPath, fixtureListings()...)
	writeJSONL(t, clientsPath, fixtureClients()...)

	st, err := store.Open(listingsPath, clientsPath)
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	srv := NewMCPServer(st)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	return result
}

// structured re-marshals the result's structuredContent into out.
func structured(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()
	data, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structuredContent: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal structuredContent: %v", err)
	}
}

func narrativeText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}
