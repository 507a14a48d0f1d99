// ABOUTME: Lead MCP tool handlers
// ABOUTME: Implements capture_lead, match_client, schedule_viewing, and view_leads tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oakfield/hearth/models"
	"github.com/oakfield/hearth/store"
)

const defaultLeadsLimit = 10

type LeadHandlers struct {
	store *store.Store
}

func NewLeadHandlers(st *store.Store) *LeadHandlers {
	return &LeadHandlers{store: st}
}

type CaptureLeadInput struct {
	FullName   string `json:"full_name" jsonschema:"Lead's full name (required)"`
	Email      string `json:"email,omitempty" jsonschema:"Contact email address"`
	Mobile     string `json:"mobile,omitempty" jsonschema:"Contact mobile number"`
	Role       string `json:"role" jsonschema:"Lead role: buyer or seller (required)"`
	LeadSource string `json:"lead_source,omitempty" jsonschema:"Where the lead came from (e.g. 'portal enquiry', 'walk-in')"`
	Stage      string `json:"stage,omitempty" jsonschema:"Pipeline stage: hot, warm, cold, instructed, or completed (default warm)"`

	BudgetMax             *int     `json:"budget_max,omitempty" jsonschema:"Buyer's maximum budget in GBP"`
	MinBedrooms           *int     `json:"min_bedrooms,omitempty" jsonschema:"Buyer's minimum bedroom requirement"`
	InterestedPropertyIDs []string `json:"interested_property_ids,omitempty" jsonschema:"Property IDs the buyer has expressed interest in"`

	SellingPropertyID string `json:"selling_property_id,omitempty" jsonschema:"Property the seller is listing (required for sellers)"`
	AskingPrice       *int   `json:"asking_price,omitempty" jsonschema:"Seller's asking price in GBP (required for sellers)"`
}

type CaptureLeadOutput struct {
	Message string        `json:"message"`
	Client  models.Client `json:"client"`
}

func (h *LeadHandlers) CaptureLead(_ context.Context, request *mcp.CallToolRequest, input CaptureLeadInput) (*mcp.CallToolResult, CaptureLeadOutput, error) {
	client, err := h.store.CaptureLead(store.LeadInput{
		FullName:              input.FullName,
		Email:                 input.Email,
		Mobile:                input.Mobile,
		Role:                  input.Role,
		LeadSource:            input.LeadSource,
		Stage:                 input.Stage,
		BudgetMax:             input.BudgetMax,
		MinBedrooms:           input.MinBedrooms,
		InterestedPropertyIDs: input.InterestedPropertyIDs,
		SellingPropertyID:     input.SellingPropertyID,
		AskingPrice:           input.AskingPrice,
	})
	if err != nil {
		return nil, CaptureLeadOutput{}, err
	}

	msg := fmt.Sprintf("Lead captured: %s (%s, %s)", client.FullName, client.ClientID, client.Role)
	return textResult("%s", msg), CaptureLeadOutput{Message: msg, Client: *client}, nil
}

type MatchClientInput struct {
	ClientID string `json:"client_id" jsonschema:"Buyer's client ID, e.g. C0001 (required)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 5)"`
}

// MatchFilters echoes the buyer preferences the match was run with.
type MatchFilters struct {
	ClientName  string `json:"client_name"`
	MaxPrice    *int   `json:"max_price"`
	MinBedrooms *int   `json:"min_bedrooms"`
}

type MatchPayload struct {
	Properties     []models.Listing `json:"properties"`
	FiltersApplied MatchFilters     `json:"filters_applied"`
	TotalResults   int              `json:"total_results"`
	Showing        int              `json:"showing"`
}

type MatchClientOutput struct {
	MatchPayload
	StructuredContent *MatchPayload `json:"structuredContent,omitempty"`
}

func (h *LeadHandlers) MatchClient(_ context.Context, request *mcp.CallToolRequest, input MatchClientInput) (*mcp.CallToolResult, MatchClientOutput, error) {
	if input.ClientID == "" {
		return nil, MatchClientOutput{}, fmt.Errorf("client_id is required")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	result, err := h.store.MatchClient(input.ClientID, limit)
	if err != nil {
		return nil, MatchClientOutput{}, err
	}

	payload := MatchPayload{
		Properties: result.Matches,
		FiltersApplied: MatchFilters{
			ClientName:  result.ClientName,
			MaxPrice:    result.BudgetMax,
			MinBedrooms: result.MinBedrooms,
		},
		TotalResults: result.TotalCount,
		Showing:      len(result.Matches),
	}
	nested := payload
	return widgetResult("Found %d properties matching %s's preferences.", result.TotalCount, result.ClientName),
		MatchClientOutput{MatchPayload: payload, StructuredContent: &nested}, nil
}

type ScheduleViewingInput struct {
	PropertyID    string `json:"property_id" jsonschema:"Property to view (required)"`
	BuyerClientID string `json:"buyer_client_id" jsonschema:"Buyer's client ID, e.g. C0001 (required)"`
	DatetimeISO   string `json:"datetime_iso" jsonschema:"Viewing time as ISO-8601, e.g. 2025-11-25T15:00:00Z (required)"`
	Notes         string `json:"notes,omitempty" jsonschema:"Optional notes for the viewing"`
}

type ScheduleViewingOutput struct {
	Message    string `json:"message"`
	ViewingID  string `json:"viewing_id"`
	PropertyID string `json:"property_id"`
	Buyer      string `json:"buyer"`
	Email      string `json:"email,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	Datetime   string `json:"datetime"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
}

func (h *LeadHandlers) ScheduleViewing(_ context.Context, request *mcp.CallToolRequest, input ScheduleViewingInput) (*mcp.CallToolResult, ScheduleViewingOutput, error) {
	if input.PropertyID == "" {
		return nil, ScheduleViewingOutput{}, fmt.Errorf("property_id is required")
	}
	if input.BuyerClientID == "" {
		return nil, ScheduleViewingOutput{}, fmt.Errorf("buyer_client_id is required")
	}
	if input.DatetimeISO == "" {
		return nil, ScheduleViewingOutput{}, fmt.Errorf("datetime_iso is required")
	}

	conf, err := h.store.ScheduleViewing(input.PropertyID, input.BuyerClientID, input.DatetimeISO, input.Notes)
	if err != nil {
		return nil, ScheduleViewingOutput{}, err
	}

	msg := fmt.Sprintf("Viewing %s booked for %s at property %s on %s.",
		conf.ViewingID, conf.BuyerName, conf.PropertyID, conf.Datetime)
	return textResult("%s", msg), ScheduleViewingOutput{
		Message:    msg,
		ViewingID:  conf.ViewingID,
		PropertyID: conf.PropertyID,
		Buyer:      conf.BuyerName,
		Email:      conf.BuyerEmail,
		Mobile:     conf.BuyerMobile,
		Datetime:   conf.Datetime,
		Status:     models.ViewingStatusBooked,
		Notes:      conf.Notes,
	}, nil
}

type ViewLeadsInput struct {
	Role  string `json:"role,omitempty" jsonschema:"Filter by role: buyer or seller"`
	Stage string `json:"stage,omitempty" jsonschema:"Filter by stage: hot, warm, cold, instructed, or completed"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of leads to return (default 10)"`
}

type ViewLeadsOutput struct {
	Leads        []models.Client   `json:"leads"`
	TotalResults int               `json:"total_results"`
	Summary      store.LeadSummary `json:"summary"`
}

func (h *LeadHandlers) ViewLeads(_ context.Context, request *mcp.CallToolRequest, input ViewLeadsInput) (*mcp.CallToolResult, ViewLeadsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLeadsLimit
	}

	result, err := h.store.ViewLeads(input.Role, input.Stage, limit)
	if err != nil {
		return nil, ViewLeadsOutput{}, err
	}

	return textResult("Showing %d of %d leads (%d buyers, %d sellers, %d hot).",
			len(result.Leads), result.TotalCount, result.Summary.Buyers, result.Summary.Sellers, result.Summary.HotLeads),
		ViewLeadsOutput{
			Leads:        result.Leads,
			TotalResults: result.TotalCount,
			Summary:      result.Summary,
		}, nil
}
