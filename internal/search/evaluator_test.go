package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/pricing"
	"github.com/propchain/propchain-api/internal/store/schema"
)

var testRates = pricing.RateTable{
	domain.CurrencyBTC:  43250,
	domain.CurrencyETH:  2280,
	domain.CurrencyUSDC: 1,
}

func buildProperty(mutate func(*schema.Property)) *schema.Property {
	p := &schema.Property{
		Title:         "Sunny Villa",
		Description:   "A bright villa near the beach",
		PriceAmount:   500000,
		PriceCurrency: domain.CurrencyUSDC,
		ListingType:   domain.ListingTypeSale,
		Category:      domain.CategoryVilla,
		Address:       "12 Ocean Drive",
		City:          "Lisbon",
		Country:       "Portugal",
		Bedrooms:      3,
		Bathrooms:     2,
		Parking:       1,
		AreaSqFt:      1800,
		YearBuilt:     2018,
		Amenities:     schema.EncodeStringArray([]string{"Pool", "Ocean View"}),
		CreatedAt:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func TestMatchesEmptyCriteria(t *testing.T) {
	properties := []*schema.Property{
		buildProperty(nil),
		buildProperty(func(p *schema.Property) { p.Bedrooms = 0; p.PriceAmount = 0 }),
		buildProperty(func(p *schema.Property) { p.ListingType = domain.ListingTypeRent }),
	}

	for _, p := range properties {
		assert.True(t, Matches(p, Criteria{}, testRates))
	}
}

func TestMatchesQuery(t *testing.T) {
	p := buildProperty(nil)

	tests := []struct {
		name    string
		query   string
		matches bool
	}{
		{"empty query matches", "", true},
		{"whitespace query matches", "   ", true},
		{"title substring", "sunny", true},
		{"city substring", "lisb", true},
		{"country substring", "PORTUGAL", true},
		{"address substring", "ocean drive", true},
		{"description substring", "beach", true},
		{"no field contains query", "chalet", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, Matches(p, Criteria{Query: tt.query}, testRates))
		})
	}
}

func TestMatchesListingTypeAndCategories(t *testing.T) {
	p := buildProperty(nil)

	assert.True(t, Matches(p, Criteria{ListingType: "any"}, testRates))
	assert.True(t, Matches(p, Criteria{ListingType: "sale"}, testRates))
	assert.True(t, Matches(p, Criteria{ListingType: "SALE"}, testRates))
	assert.False(t, Matches(p, Criteria{ListingType: "rent"}, testRates))

	// zero selected categories means no constraint
	assert.True(t, Matches(p, Criteria{Categories: nil}, testRates))
	assert.True(t, Matches(p, Criteria{Categories: []string{"villa", "house"}}, testRates))
	assert.False(t, Matches(p, Criteria{Categories: []string{"condo"}}, testRates))
}

func TestMatchesBedroomsBathrooms(t *testing.T) {
	p := buildProperty(nil) // 3 bedrooms, 2 bathrooms

	tests := []struct {
		name    string
		c       Criteria
		matches bool
	}{
		{"any never excludes", Criteria{Bedrooms: "any"}, true},
		{"zero matches everything", Criteria{Bedrooms: "0"}, true},
		{"at least met exactly", Criteria{Bedrooms: "3"}, true},
		{"at least not met", Criteria{Bedrooms: "4"}, false},
		{"bathrooms at least", Criteria{Bathrooms: "2"}, true},
		{"bathrooms too many", Criteria{Bathrooms: "3"}, false},
		{"malformed degrades to no constraint", Criteria{Bedrooms: "lots"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, Matches(p, tt.c, testRates))
		})
	}
}

func TestMatchesPriceRangeWithConversion(t *testing.T) {
	btcProperty := buildProperty(func(p *schema.Property) {
		p.PriceAmount = 1
		p.PriceCurrency = domain.CurrencyBTC
	})
	usdcProperty := buildProperty(func(p *schema.Property) {
		p.PriceAmount = 30000
		p.PriceCurrency = domain.CurrencyUSDC
	})

	// both normalize into [0, 2] BTC: 1 BTC and 30000/43250 ≈ 0.694 BTC
	c := Criteria{PriceMin: "0", PriceMax: "2", DisplayCurrency: "BTC"}
	assert.True(t, Matches(btcProperty, c, testRates))
	assert.True(t, Matches(usdcProperty, c, testRates))

	tight := Criteria{PriceMin: "0.8", PriceMax: "2", DisplayCurrency: "BTC"}
	assert.True(t, Matches(btcProperty, tight, testRates))
	assert.False(t, Matches(usdcProperty, tight, testRates))
}

func TestMatchesPriceMalformedBounds(t *testing.T) {
	p := buildProperty(nil)

	// malformed bounds degrade to unbounded, never fail
	assert.True(t, Matches(p, Criteria{PriceMin: "cheap", PriceMax: "expensive"}, testRates))
	assert.True(t, Matches(p, Criteria{PriceMin: "", PriceMax: "500000"}, testRates))
	assert.False(t, Matches(p, Criteria{PriceMax: "499999"}, testRates))
}

func TestMatchesAmenities(t *testing.T) {
	p := buildProperty(nil) // Pool, Ocean View

	tests := []struct {
		name      string
		amenities []string
		matches   bool
	}{
		{"no amenities selected", nil, true},
		{"subset matches", []string{"Pool"}, true},
		{"all present", []string{"pool", "ocean view"}, true},
		{"substring match", []string{"ocean"}, true},
		{"one missing rejects", []string{"Pool", "Gym"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, Matches(p, Criteria{Amenities: tt.amenities}, testRates))
		})
	}
}

func TestMatchesAreaAndYearBuilt(t *testing.T) {
	p := buildProperty(nil) // 1800 sqft, built 2018

	assert.True(t, Matches(p, Criteria{AreaMin: "1500", AreaMax: "2000"}, testRates))
	assert.False(t, Matches(p, Criteria{AreaMin: "2000"}, testRates))
	assert.True(t, Matches(p, Criteria{YearBuiltMin: "2010", YearBuiltMax: "2020"}, testRates))
	assert.False(t, Matches(p, Criteria{YearBuiltMax: "2017"}, testRates))
}

func TestMatchesScoresPassThrough(t *testing.T) {
	withoutScores := buildProperty(nil)
	walkScore := 80
	withScores := buildProperty(func(p *schema.Property) { p.WalkScore = &walkScore })

	c := Criteria{WalkScoreMin: "70"}
	// no neighborhood data passes through
	assert.True(t, Matches(withoutScores, c, testRates))
	assert.True(t, Matches(withScores, c, testRates))
	assert.False(t, Matches(withScores, Criteria{WalkScoreMin: "90"}, testRates))
}

func TestApplySorting(t *testing.T) {
	cheap := buildProperty(func(p *schema.Property) {
		p.Title = "Cheap"
		p.PriceAmount = 30000
		p.PriceCurrency = domain.CurrencyUSDC
		p.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	expensive := buildProperty(func(p *schema.Property) {
		p.Title = "Expensive"
		p.PriceAmount = 1
		p.PriceCurrency = domain.CurrencyBTC // 43250 USD
		p.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	})
	middle := buildProperty(func(p *schema.Property) {
		p.Title = "Middle"
		p.PriceAmount = 17
		p.PriceCurrency = domain.CurrencyETH // 38760 USD
		p.Featured = true
		p.CreatedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	})
	candidates := []*schema.Property{cheap, expensive, middle}

	titles := func(properties []*schema.Property) []string {
		out := make([]string, len(properties))
		for i, p := range properties {
			out[i] = p.Title
		}
		return out
	}

	low := Apply(candidates, Criteria{Sort: SortPriceLow}, testRates)
	assert.Equal(t, []string{"Cheap", "Middle", "Expensive"}, titles(low))

	high := Apply(candidates, Criteria{Sort: SortPriceHigh}, testRates)
	assert.Equal(t, []string{"Expensive", "Middle", "Cheap"}, titles(high))

	// price-high is price-low reversed when no prices tie
	for i := range low {
		assert.Equal(t, low[i].Title, high[len(high)-1-i].Title)
	}

	newest := Apply(candidates, Criteria{Sort: SortNewest}, testRates)
	assert.Equal(t, []string{"Middle", "Expensive", "Cheap"}, titles(newest))

	featured := Apply(candidates, Criteria{Sort: SortFeatured}, testRates)
	require.Len(t, featured, 3)
	assert.Equal(t, "Middle", featured[0].Title)
	// non-featured keep their original relative order
	assert.Equal(t, []string{"Middle", "Cheap", "Expensive"}, titles(featured))

	// the input slice is left untouched
	assert.Equal(t, []string{"Cheap", "Expensive", "Middle"}, titles(candidates))
}

func TestApplyFiltersBeforeSorting(t *testing.T) {
	sale := buildProperty(func(p *schema.Property) { p.Title = "Sale" })
	rent := buildProperty(func(p *schema.Property) {
		p.Title = "Rent"
		p.ListingType = domain.ListingTypeRent
	})

	result := Apply([]*schema.Property{sale, rent}, Criteria{ListingType: "rent"}, testRates)
	require.Len(t, result, 1)
	assert.Equal(t, "Rent", result[0].Title)
}
