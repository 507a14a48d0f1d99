// ABOUTME: Lead workflow engine: capture leads, match buyers, schedule viewings
// ABOUTME: Implements validation, conflict detection, and lead-book summaries
package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/oakfield/hearth/models"
)

var validate = validator.New()

// LeadInput carries the fields for a new lead. Role is required; seller
// leads must also carry SellingPropertyID and AskingPrice.
type LeadInput struct {
	FullName   string `validate:"required"`
	Email      string `validate:"omitempty,email"`
	Mobile     string
	Role       string `validate:"required,oneof=buyer seller"`
	LeadSource string
	Stage      string `validate:"omitempty,oneof=hot warm cold instructed completed"`

	// Buyer fields.
	BudgetMax             *int
	MinBedrooms           *int
	InterestedPropertyIDs []string

	// Seller fields.
	SellingPropertyID string
	AskingPrice       *int
}

// CaptureLead validates the input, allocates a client ID, stamps the
// creation time, and persists the new record.
func (s *Store) CaptureLead(in LeadInput) (*models.Client, error) {
	if in.Stage == "" {
		in.Stage = models.StageWarm
	}
	if err := validate.Struct(in); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return nil, &ValidationError{Msg: describeFieldError(errs[0])}
		}
		return nil, &ValidationError{Msg: err.Error()}
	}
	if in.Role == models.RoleSeller {
		if in.SellingPropertyID == "" {
			return nil, &ValidationError{Msg: "seller leads require selling_property_id"}
		}
		if in.AskingPrice == nil {
			return nil, &ValidationError{Msg: "seller leads require asking_price"}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	client := models.Client{
		ClientID:   s.nextClientIDLocked(),
		Role:       in.Role,
		FullName:   in.FullName,
		Contact:    models.Contact{Email: in.Email, Mobile: in.Mobile},
		LeadSource: in.LeadSource,
		Stage:      in.Stage,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	switch in.Role {
	case models.RoleBuyer:
		client.BudgetMax = in.BudgetMax
		client.MinBedrooms = in.MinBedrooms
		client.InterestedPropertyIDs = in.InterestedPropertyIDs
	case models.RoleSeller:
		client.SellingPropertyID = in.SellingPropertyID
		client.AskingPrice = in.AskingPrice
	}

	s.clients = append(s.clients, client)
	if err := s.saveClients(); err != nil {
		s.clients = s.clients[:len(s.clients)-1]
		return nil, fmt.Errorf("failed to persist clients: %w", err)
	}
	return &client, nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s is not a valid email address", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// MatchResult holds the listings matched against a buyer's preferences.
type MatchResult struct {
	Matches     []models.Listing
	TotalCount  int
	ClientName  string
	BudgetMax   *int
	MinBedrooms *int
}

// MatchClient filters listings against a buyer's stored preferences.
// Sold listings are always excluded; budget_max and min_bedrooms apply
// only when the buyer has them set.
func (s *Store) MatchClient(clientID string, limit int) (*MatchResult, error) {
	client, ok := s.FindClient(clientID)
	if !ok {
		return nil, &NotFoundError{Kind: "client", ID: clientID}
	}
	if client.Role != models.RoleBuyer {
		return nil, &InvalidRoleError{ClientID: clientID, Role: client.Role, Op: "match_client"}
	}

	var matched []models.Listing
	for i := range s.listings {
		l := &s.listings[i]
		if l.Sold() {
			continue
		}
		if client.BudgetMax != nil && l.Price() > *client.BudgetMax {
			continue
		}
		if client.MinBedrooms != nil && l.Bedrooms < *client.MinBedrooms {
			continue
		}
		matched = append(matched, *l)
	}

	total := len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return &MatchResult{
		Matches:     matched,
		TotalCount:  total,
		ClientName:  client.FullName,
		BudgetMax:   client.BudgetMax,
		MinBedrooms: client.MinBedrooms,
	}, nil
}

// ViewingConfirmation is returned after a viewing is booked.
type ViewingConfirmation struct {
	ViewingID   string
	PropertyID  string
	BuyerName   string
	BuyerEmail  string
	BuyerMobile string
	Datetime    string
	Notes       string
}

// minViewingGap is the smallest allowed distance between two viewings of
// the same property.
const minViewingGap = time.Hour

// parseViewingTime accepts ISO-8601 with or without a UTC offset; an
// offset-less timestamp is treated as UTC.
func parseViewingTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// ScheduleViewing books a viewing for a buyer. The viewing record is
// duplicated into the buyer's viewings and, when a seller lead exists for
// the property, the seller's viewings. Conflict detection inspects only
// the matched seller's existing viewings for the same property; with no
// seller lead on file there is no calendar to check against.
//
// Failures surface in a fixed order: unknown buyer, wrong role, unknown
// property, property sold, bad datetime, slot conflict.
func (s *Store) ScheduleViewing(propertyID, buyerClientID, datetimeISO, notes string) (*ViewingConfirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buyer *models.Client
	for i := range s.clients {
		if s.clients[i].ClientID == buyerClientID {
			buyer = &s.clients[i]
			break
		}
	}
	if buyer == nil {
		return nil, &NotFoundError{Kind: "client", ID: buyerClientID}
	}
	if buyer.Role != models.RoleBuyer {
		return nil, &InvalidRoleError{ClientID: buyerClientID, Role: buyer.Role, Op: "schedule_viewing"}
	}

	listing := s.FindListing(propertyID)
	if listing == nil {
		return nil, &NotFoundError{Kind: "property", ID: propertyID}
	}
	if listing.Sold() {
		return nil, &UnavailableError{PropertyID: propertyID, Status: listing.Status}
	}

	requested, err := parseViewingTime(datetimeISO)
	if err != nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid datetime %q: use ISO-8601, e.g. 2025-11-25T15:00:00Z", datetimeISO)}
	}

	var seller *models.Client
	for i := range s.clients {
		if s.clients[i].Role == models.RoleSeller && s.clients[i].SellingPropertyID == propertyID {
			seller = &s.clients[i]
			break
		}
	}

	if seller != nil {
		for i := range seller.Viewings {
			v := &seller.Viewings[i]
			if v.PropertyID != propertyID {
				continue
			}
			existing, err := parseViewingTime(v.Datetime)
			if err != nil {
				continue
			}
			diff := requested.Sub(existing)
			if diff < 0 {
				diff = -diff
			}
			if diff < minViewingGap {
				return nil, &ConflictError{
					PropertyID: propertyID,
					Existing:   v.Datetime,
					Requested:  datetimeISO,
				}
			}
		}
	}

	viewing := models.Viewing{
		ViewingID:  s.nextViewingIDLocked(),
		PropertyID: propertyID,
		Datetime:   datetimeISO,
		Status:     models.ViewingStatusBooked,
		Notes:      notes,
	}

	buyer.Viewings = append(buyer.Viewings, viewing)
	if seller != nil {
		seller.Viewings = append(seller.Viewings, viewing)
	}

	if err := s.saveClients(); err != nil {
		buyer.Viewings = buyer.Viewings[:len(buyer.Viewings)-1]
		if seller != nil {
			seller.Viewings = seller.Viewings[:len(seller.Viewings)-1]
		}
		return nil, fmt.Errorf("failed to persist clients: %w", err)
	}

	return &ViewingConfirmation{
		ViewingID:   viewing.ViewingID,
		PropertyID:  propertyID,
		BuyerName:   buyer.FullName,
		BuyerEmail:  buyer.Contact.Email,
		BuyerMobile: buyer.Contact.Mobile,
		Datetime:    datetimeISO,
		Notes:       notes,
	}, nil
}

// LeadSummary holds counts over the whole lead book, regardless of any
// filter applied to the returned leads.
type LeadSummary struct {
	TotalClients int `json:"total_clients"`
	Buyers       int `json:"buyers"`
	Sellers      int `json:"sellers"`
	HotLeads     int `json:"hot_leads"`
}

// LeadsResult is the outcome of a lead-book query.
type LeadsResult struct {
	Leads      []models.Client
	TotalCount int
	Summary    LeadSummary
}

// ViewLeads filters leads by exact role and stage match, newest first.
// An unknown role or stage filter is a validation error rather than an
// empty result.
func (s *Store) ViewLeads(role, stage string, limit int) (*LeadsResult, error) {
	if role != "" && !models.ValidRole(role) {
		return nil, &ValidationError{Msg: fmt.Sprintf("unknown role %q: must be buyer or seller", role)}
	}
	if stage != "" && !models.ValidStage(stage) {
		return nil, &ValidationError{Msg: fmt.Sprintf("unknown stage %q: must be hot, warm, cold, instructed or completed", stage)}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary LeadSummary
	summary.TotalClients = len(s.clients)
	for i := range s.clients {
		switch s.clients[i].Role {
		case models.RoleBuyer:
			summary.Buyers++
		case models.RoleSeller:
			summary.Sellers++
		}
		if s.clients[i].Stage == models.StageHot {
			summary.HotLeads++
		}
	}

	var filtered []models.Client
	for i := range s.clients {
		if role != "" && s.clients[i].Role != role {
			continue
		}
		if stage != "" && s.clients[i].Stage != stage {
			continue
		}
		filtered = append(filtered, s.clients[i])
	}

	// created_at is ISO-8601 so string comparison orders chronologically.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt > filtered[j].CreatedAt
	})

	total := len(filtered)
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return &LeadsResult{Leads: filtered, TotalCount: total, Summary: summary}, nil
}
