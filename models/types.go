// ABOUTME: Data models for property listings, clients, and viewings
// ABOUTME: Defines Listing, Client, Contact, and Viewing structs with enum constants
package models

import "strings"

// Listing is one property-for-sale record. Listings are loaded once at
// startup and never mutated.
type Listing struct {
	PropertyID   string   `json:"property_id"`
	PriceAmount  *int     `json:"price_amount,omitempty"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	PropertyType string   `json:"property_type"`
	Postcode     string   `json:"postcode"`
	Garden       bool     `json:"garden"`
	Parking      bool     `json:"parking"`
	Status       string   `json:"status"`
	Overview     []string `json:"overview,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// Price returns the listing price, treating a missing price as zero.
func (l *Listing) Price() int {
	if l.PriceAmount == nil {
		return 0
	}
	return *l.PriceAmount
}

// Sold reports whether the listing status marks it unavailable, e.g.
// "Sold" or "Sold Subject to Contract".
func (l *Listing) Sold() bool {
	return strings.Contains(strings.ToLower(l.Status), "sold")
}

type Contact struct {
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

// Client is a buyer or seller lead record. Buyer-only and seller-only
// fields are pointers so they stay absent from the JSONL output for the
// other role.
type Client struct {
	ClientID   string  `json:"client_id"`
	Role       string  `json:"role"`
	FullName   string  `json:"full_name"`
	Contact    Contact `json:"contact"`
	LeadSource string  `json:"lead_source,omitempty"`
	Stage      string  `json:"stage"`
	CreatedAt  string  `json:"created_at"`

	// Buyer fields.
	BudgetMax             *int     `json:"budget_max,omitempty"`
	MinBedrooms           *int     `json:"min_bedrooms,omitempty"`
	InterestedPropertyIDs []string `json:"interested_property_ids,omitempty"`

	// Seller fields.
	SellingPropertyID string `json:"selling_property_id,omitempty"`
	AskingPrice       *int   `json:"asking_price,omitempty"`

	Viewings []Viewing `json:"viewings,omitempty"`
}

// Viewing is a scheduled property visit. The same record is embedded in
// both the buyer's and the matched seller's viewings; the two copies are
// independent after creation.
type Viewing struct {
	ViewingID  string `json:"viewing_id"`
	PropertyID string `json:"property_id"`
	// Datetime is the caller-supplied ISO-8601 string, preserved verbatim.
	Datetime string `json:"datetime"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
}

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

const (
	StageHot        = "hot"
	StageWarm       = "warm"
	StageCold       = "cold"
	StageInstructed = "instructed"
	StageCompleted  = "completed"
)

const ViewingStatusBooked = "booked"

// ValidRole reports whether role is one of the known lead roles.
func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller
}

// ValidStage reports whether stage is one of the known pipeline stages.
// Stage transitions are not enforced, only membership in the enum.
func ValidStage(stage string) bool {
	switch stage {
	case StageHot, StageWarm, StageCold, StageInstructed, StageCompleted:
		return true
	}
	return false
}
