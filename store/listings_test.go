// ABOUTME: Tests for the listing query engine
// ABOUTME: Validates filter conjunction, limit semantics, and price averages
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakfield/hearth/models"
)

func boolPtr(b bool) *bool { return &b }

func sampleListings() []models.Listing {
	return []models.Listing{
		{PropertyID: "P1", PriceAmount: intPtr(95000), Bedrooms: 2, PropertyType: "Flat - Ground Floor", Postcode: "LE65 1DA", Garden: false, Parking: true},
		{PropertyID: "P2", PriceAmount: intPtr(180000), Bedrooms: 3, PropertyType: "Semi-Detached House", Postcode: "LE65 2AY", Garden: true, Parking: true},
		{PropertyID: "P3", PriceAmount: intPtr(250000), Bedrooms: 4, PropertyType: "Detached House", Postcode: "DY4 7LG", Garden: true, Parking: false},
		{PropertyID: "P4", PriceAmount: intPtr(72000), Bedrooms: 1, PropertyType: "Flat", Postcode: "DY4 8QT", Garden: false, Parking: false, Status: "Sold Subject to Contract"},
		{PropertyID: "P5", Bedrooms: 2, PropertyType: "Cottage", Postcode: "LE65 1GW", Garden: true, Parking: false},
	}
}

func TestQueryListingsConjunction(t *testing.T) {
	s := testStore(t, sampleListings(), nil)

	got := s.QueryListings(ListingFilters{
		Postcode:    "LE65",
		MaxPrice:    intPtr(200000),
		MinBedrooms: intPtr(2),
		HasGarden:   boolPtr(true),
	}, 10)

	require.Equal(t, 2, got.TotalCount)
	for _, l := range got.Matches {
		assert.True(t, l.Price() <= 200000)
		assert.True(t, l.Bedrooms >= 2)
		assert.True(t, l.Garden)
		assert.Contains(t, l.Postcode, "LE65")
	}
}

func TestQueryListingsPostcodePrefixNotSubstring(t *testing.T) {
	s := testStore(t, sampleListings(), nil)

	// "E65" appears inside "LE65 1DA" but is not a prefix.
	got := s.QueryListings(ListingFilters{Postcode: "E65"}, 10)
	assert.Equal(t, 0, got.TotalCount)

	// Prefix matching is case-insensitive.
	got = s.QueryListings(ListingFilters{Postcode: "le65"}, 10)
	assert.Equal(t, 3, got.TotalCount)
}

func TestQueryListingsPropertyTypeSubstring(t *testing.T) {
	s := testStore(t, sampleListings(), nil)

	got := s.QueryListings(ListingFilters{PropertyType: "flat"}, 10)
	require.Equal(t, 2, got.TotalCount)
	assert.Equal(t, "P1", got.Matches[0].PropertyID)
	assert.Equal(t, "P4", got.Matches[1].PropertyID)
}

func TestQueryListingsBooleanFiltersExact(t *testing.T) {
	s := testStore(t, sampleListings(), nil)

	got := s.QueryListings(ListingFilters{HasParking: boolPtr(false)}, 10)
	require.Equal(t, 3, got.TotalCount)
	for _, l := range got.Matches {
		assert.False(t, l.Parking)
	}
}

func TestQueryListingsLimitTruncatesNotTotal(t *testing.T) {
	s := testStore(t, sampleListings(), nil)

	got := s.QueryListings(ListingFilters{}, 2)
	assert.Equal(t, 5, got.TotalCount)
	assert.Len(t, got.Matches, 2)

	got = s.QueryListings(ListingFilters{}, 50)
	assert.Equal(t, 5, got.TotalCount)
	assert.Len(t, got.Matches, 5)
}

func TestQueryListingsMissingPricePassesCeiling(t *testing.T) {
	// A listing without a price is treated as zero for the price ceiling.
	s := testStore(t, sampleListings(), nil)
	got := s.QueryListings(ListingFilters{MaxPrice: intPtr(50000)}, 10)
	require.Equal(t, 1, got.TotalCount)
	assert.Equal(t, "P5", got.Matches[0].PropertyID)
}

func TestAveragePrice(t *testing.T) {
	s := testStore(t, sampleListings(), nil)

	avg, count := s.AveragePrice("LE65", "")
	require.NotNil(t, avg)
	// P5 has no price and is excluded from the average.
	assert.Equal(t, 2, count)
	assert.InDelta(t, 137500.0, *avg, 0.001)
}

func TestAveragePriceRounding(t *testing.T) {
	s := testStore(t, []models.Listing{
		{PropertyID: "A", PriceAmount: intPtr(100000), Postcode: "B1 1AA"},
		{PropertyID: "B", PriceAmount: intPtr(100001), Postcode: "B1 1AB"},
		{PropertyID: "C", PriceAmount: intPtr(100001), Postcode: "B1 1AC"},
	}, nil)

	avg, count := s.AveragePrice("B1", "")
	require.NotNil(t, avg)
	assert.Equal(t, 3, count)
	assert.InDelta(t, 100000.67, *avg, 0.001)
}

func TestAveragePriceNoMatches(t *testing.T) {
	s := testStore(t, sampleListings(), nil)

	avg, count := s.AveragePrice("ZZ99", "")
	assert.Nil(t, avg)
	assert.Equal(t, 0, count)
}
