// ABOUTME: Listing query engine: filter listings and compute average prices
// ABOUTME: All filters are conjunctive and evaluated in one pass over load order
package store

import (
	"math"
	"strings"

	"github.com/oakfield/hearth/models"
)

// ListingFilters holds the optional query criteria. Nil or empty fields
// are not applied.
type ListingFilters struct {
	Postcode     string
	PropertyType string
	MaxPrice     *int
	MinBedrooms  *int
	HasGarden    *bool
	HasParking   *bool
}

func (f *ListingFilters) matches(l *models.Listing) bool {
	if f.MaxPrice != nil && l.Price() > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && l.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.HasGarden != nil && l.Garden != *f.HasGarden {
		return false
	}
	if f.HasParking != nil && l.Parking != *f.HasParking {
		return false
	}
	// Postcode is a prefix match so "LE65" covers "LE65 1DA", "LE65 2AY".
	if f.Postcode != "" && !strings.HasPrefix(strings.ToUpper(l.Postcode), strings.ToUpper(f.Postcode)) {
		return false
	}
	// Property type is a substring match so "flat" covers "Flat - Ground Floor".
	if f.PropertyType != "" && !strings.Contains(strings.ToLower(l.PropertyType), strings.ToLower(f.PropertyType)) {
		return false
	}
	return true
}

// QueryResult is the outcome of a listing query. TotalCount reports the
// full match count before the limit was applied, so callers can say
// "N found, showing M".
type QueryResult struct {
	Matches    []models.Listing
	TotalCount int
}

// QueryListings filters the listing collection. Results keep the original
// load order; limit truncates only the returned slice. A limit <= 0 means
// no truncation.
func (s *Store) QueryListings(filters ListingFilters, limit int) QueryResult {
	var matched []models.Listing
	for i := range s.listings {
		if filters.matches(&s.listings[i]) {
			matched = append(matched, s.listings[i])
		}
	}

	total := len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return QueryResult{Matches: matched, TotalCount: total}
}

// AveragePrice computes the mean price over listings matching the
// postcode prefix and property-type substring filters, rounded to two
// decimal places. Listings without a price are excluded from both the
// sum and the count. Zero matches yield a nil average.
func (s *Store) AveragePrice(postcode, propertyType string) (avg *float64, count int) {
	filters := ListingFilters{Postcode: postcode, PropertyType: propertyType}

	total := 0
	for i := range s.listings {
		l := &s.listings[i]
		if !filters.matches(l) {
			continue
		}
		if l.PriceAmount == nil {
			continue
		}
		total += *l.PriceAmount
		count++
	}

	if count == 0 {
		return nil, 0
	}
	v := math.Round(float64(total)/float64(count)*100) / 100
	return &v, count
}
