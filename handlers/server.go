// ABOUTME: MCP server assembly
// ABOUTME: Registers all property and lead tools plus resources on one server
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oakfield/hearth/store"
	"github.com/oakfield/hearth/widget"
)

const serverVersion = "0.2.0"

// NewMCPServer builds the MCP server with every tool and resource wired
// against the given store. Both the stdio and HTTP transports run the
// same server.
func NewMCPServer(st *store.Store) *mcp.Server {
	listingHandlers := NewListingHandlers(st)
	leadHandlers := NewLeadHandlers(st)
	resourceHandlers := NewResourceHandlers(st)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hearth",
		Version: serverVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_schema",
		Description: "Use this when the user asks what property information is available or what fields can be searched. Returns the data schema. Do not use for actual property searches - use query_listings instead.",
	}, listingHandlers.GetSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_listings",
		Description: "Use this when the user wants to find, search, or browse properties for sale. Filters by location (postcode like 'DY4' or 'LE65'), price, bedrooms, garden, parking, and property type. Perfect for queries like 'show me 2-bed houses under £200k' or 'properties with gardens in DY4'.",
		Meta:        widgetToolMeta(),
	}, listingHandlers.QueryListings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "calculate_average_price",
		Description: "Use this when the user asks about average prices, price trends, or typical costs in an area or for a property type. Perfect for queries like 'what's the average price in LE65?' or 'how much do flats cost?'. Do not use for finding specific properties - use query_listings instead.",
	}, listingHandlers.CalculateAveragePrice)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture_lead",
		Description: "Record a new buyer or seller lead with contact details, pipeline stage, and role-specific fields (buyer budget and bedroom needs, or seller property and asking price).",
	}, leadHandlers.CaptureLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "match_client",
		Description: "Match a buyer lead against available listings using their stored budget and bedroom preferences. Sold properties are excluded.",
		Meta:        widgetToolMeta(),
	}, leadHandlers.MatchClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schedule_viewing",
		Description: "Book a property viewing for a buyer. Checks the property is still available and that the slot does not clash with another viewing of the same property.",
	}, leadHandlers.ScheduleViewing)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_leads",
		Description: "List leads in the book, optionally filtered by role (buyer/seller) and stage (hot/warm/cold/instructed/completed), newest first, with summary statistics.",
	}, leadHandlers.ViewLeads)

	server.AddResource(&mcp.Resource{
		Name:        "Property List Widget",
		URI:         widget.URI,
		Description: "Interactive property listing widget",
		MIMEType:    widget.MIMEType,
		Meta:        widgetToolMeta(),
	}, resourceHandlers.ReadWidget)

	server.AddResource(&mcp.Resource{
		Name:        "All Listings",
		URI:         "hearth://listings",
		Description: "Full property listing dataset as JSON",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadData)

	server.AddResource(&mcp.Resource{
		Name:        "Lead Book",
		URI:         "hearth://leads",
		Description: "All buyer and seller leads as JSON",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadData)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "Listing",
		URITemplate: "hearth://listings/{id}",
		Description: "A single property listing as JSON",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadData)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "Lead",
		URITemplate: "hearth://leads/{id}",
		Description: "A single lead record as JSON",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadData)

	return server
}
