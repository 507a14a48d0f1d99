// ABOUTME: Listing MCP tool handlers
// ABOUTME: Implements get_schema, query_listings, and calculate_average_price tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oakfield/hearth/models"
	"github.com/oakfield/hearth/store"
)

const defaultQueryLimit = 5

type ListingHandlers struct {
	store *store.Store
}

func NewListingHandlers(st *store.Store) *ListingHandlers {
	return &ListingHandlers{store: st}
}

type GetSchemaInput struct{}

type GetSchemaOutput struct {
	Schema map[string]string `json:"schema"`
}

func (h *ListingHandlers) GetSchema(_ context.Context, request *mcp.CallToolRequest, input GetSchemaInput) (*mcp.CallToolResult, GetSchemaOutput, error) {
	return textResult("Property listing schema with %d queryable fields.", 11), GetSchemaOutput{
		Schema: map[string]string{
			"property_id":   "string",
			"price_amount":  "number",
			"bedrooms":      "number",
			"bathrooms":     "number",
			"property_type": "string",
			"postcode":      "string",
			"garden":        "boolean",
			"parking":       "boolean",
			"status":        "string (e.g., 'Sold Subject to Contract')",
			"overview":      "list of strings",
			"description":   "string",
		},
	}, nil
}

type QueryListingsInput struct {
	Postcode     string `json:"postcode,omitempty" jsonschema:"Partial or full UK postcode, prefix matched (e.g. 'LE65' matches 'LE65 1DA'). Case-insensitive."`
	PropertyType string `json:"property_type,omitempty" jsonschema:"Type of property, substring matched (e.g. 'flat' matches 'Flat - Ground Floor')"`
	MaxPrice     *int   `json:"max_price,omitempty" jsonschema:"Maximum price in GBP (e.g. 200000 for £200,000)"`
	MinBedrooms  *int   `json:"min_bedrooms,omitempty" jsonschema:"Minimum number of bedrooms"`
	HasGarden    *bool  `json:"has_garden,omitempty" jsonschema:"true for garden only, false for no garden, omit for both"`
	HasParking   *bool  `json:"has_parking,omitempty" jsonschema:"true for parking only, false for no parking, omit for both"`
	Limit        int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 5)"`
}

// FiltersApplied echoes the criteria back so consumers can display them.
type FiltersApplied struct {
	Postcode     *string `json:"postcode"`
	PropertyType *string `json:"property_type"`
	MaxPrice     *int    `json:"max_price"`
	MinBedrooms  *int    `json:"min_bedrooms"`
	HasGarden    *bool   `json:"has_garden"`
	HasParking   *bool   `json:"has_parking"`
}

// ListingsPayload is the structured shape the widget renders.
type ListingsPayload struct {
	Properties     []models.Listing `json:"properties"`
	FiltersApplied FiltersApplied   `json:"filters_applied"`
	TotalResults   int              `json:"total_results"`
	Showing        int              `json:"showing"`
}

// QueryListingsOutput carries the payload fields at the top level and a
// nested copy under structuredContent. Two generations of consumers read
// different shapes; both are preserved.
type QueryListingsOutput struct {
	ListingsPayload
	StructuredContent *ListingsPayload `json:"structuredContent,omitempty"`
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (h *ListingHandlers) QueryListings(_ context.Context, request *mcp.CallToolRequest, input QueryListingsInput) (*mcp.CallToolResult, QueryListingsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	result := h.store.QueryListings(store.ListingFilters{
		Postcode:     input.Postcode,
		PropertyType: input.PropertyType,
		MaxPrice:     input.MaxPrice,
		MinBedrooms:  input.MinBedrooms,
		HasGarden:    input.HasGarden,
		HasParking:   input.HasParking,
	}, limit)

	payload := ListingsPayload{
		Properties: result.Matches,
		FiltersApplied: FiltersApplied{
			Postcode:     optString(input.Postcode),
			PropertyType: optString(input.PropertyType),
			MaxPrice:     input.MaxPrice,
			MinBedrooms:  input.MinBedrooms,
			HasGarden:    input.HasGarden,
			HasParking:   input.HasParking,
		},
		TotalResults: result.TotalCount,
		Showing:      len(result.Matches),
	}

	nested := payload
	return widgetResult("Found %d properties matching your criteria.", result.TotalCount),
		QueryListingsOutput{ListingsPayload: payload, StructuredContent: &nested}, nil
}

type AveragePriceInput struct {
	Postcode     string `json:"postcode,omitempty" jsonschema:"Partial or full UK postcode to average over (e.g. 'LE65'). Case-insensitive."`
	PropertyType string `json:"property_type,omitempty" jsonschema:"Type of property to average over, substring matched"`
}

type AveragePriceOutput struct {
	Message      string   `json:"message"`
	AveragePrice *float64 `json:"average_price"`
	Count        int      `json:"count"`
}

func (h *ListingHandlers) CalculateAveragePrice(_ context.Context, request *mcp.CallToolRequest, input AveragePriceInput) (*mcp.CallToolResult, AveragePriceOutput, error) {
	avg, count := h.store.AveragePrice(input.Postcode, input.PropertyType)
	if count == 0 {
		msg := "No listings found matching criteria."
		return textResult("%s", msg), AveragePriceOutput{Message: msg, AveragePrice: nil, Count: 0}, nil
	}

	out := AveragePriceOutput{
		Message:      fmt.Sprintf("Found %d matching listings.", count),
		AveragePrice: avg,
		Count:        count,
	}
	return textResult("Average price over %d matching listings: £%.2f", count, *avg), out, nil
}
