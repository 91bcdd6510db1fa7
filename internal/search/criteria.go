// Package search implements the listing filter evaluator. It takes candidate
// properties already fetched from the store and applies the fine-grained
// criteria that require currency normalization or text matching, then orders
// the survivors by the requested sort key.
package search

import (
	"math"
	"strconv"
	"strings"

	"github.com/propchain/propchain-api/internal/domain"
)

// SortKey selects the ordering of matched results
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
)

// CountAny is the sentinel meaning "no minimum" for bedroom/bathroom filters.
// It is distinct from "0", which is a real minimum that also matches everything.
const CountAny = "any"

// Criteria holds user-selected filter inputs. Every field is optional; the
// zero value matches every property. Numeric fields arrive as strings because
// that is how they come off the query string; malformed values degrade to the
// unbounded end of their range instead of failing.
type Criteria struct {
	// Query is matched case-insensitively against title, city, country, address
	// and description. Blank matches everything.
	Query string `json:"query,omitempty"`
	// ListingType is "any", "sale" or "rent"
	ListingType string `json:"listingType,omitempty"`
	// Categories is a multi-select; empty means no constraint
	Categories []string `json:"categories,omitempty"`
	// City narrows to a single city, case-insensitively
	City string `json:"city,omitempty"`
	// PriceMin and PriceMax bound the price expressed in DisplayCurrency
	PriceMin string `json:"priceMin,omitempty"`
	PriceMax string `json:"priceMax,omitempty"`
	// DisplayCurrency is the currency PriceMin/PriceMax are denominated in.
	// Blank defaults to USDC.
	DisplayCurrency string `json:"displayCurrency,omitempty"`
	// Bedrooms and Bathrooms are "at least N" minimums, or "any"
	Bedrooms  string `json:"bedrooms,omitempty"`
	Bathrooms string `json:"bathrooms,omitempty"`
	// AreaMin and AreaMax bound floor area in square feet
	AreaMin string `json:"areaMin,omitempty"`
	AreaMax string `json:"areaMax,omitempty"`
	// YearBuiltMin and YearBuiltMax bound the construction year
	YearBuiltMin string `json:"yearBuiltMin,omitempty"`
	YearBuiltMax string `json:"yearBuiltMax,omitempty"`
	// Score ranges apply only to properties that carry the score; properties
	// without neighborhood data pass through
	WalkScoreMin    string `json:"walkScoreMin,omitempty"`
	TransitScoreMin string `json:"transitScoreMin,omitempty"`
	SafetyScoreMin  string `json:"safetyScoreMin,omitempty"`
	SchoolRatingMin string `json:"schoolRatingMin,omitempty"`
	// Amenities must ALL be present in the property's tag list, matched as
	// case-insensitive substrings
	Amenities []string `json:"amenities,omitempty"`
	// Sort selects the result ordering; blank means newest
	Sort SortKey `json:"sort,omitempty"`
}

// displayCurrency returns the currency price bounds are denominated in
func (c Criteria) displayCurrency() domain.Currency {
	if c.DisplayCurrency == "" {
		return domain.CurrencyUSDC
	}
	return domain.NormalizeCurrency(c.DisplayCurrency)
}

// parseBound parses a numeric range bound. Blank or malformed input degrades
// to the provided unbounded value.
func parseBound(raw string, unbounded float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return unbounded
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return unbounded
	}
	return value
}

// parseMin parses a lower bound, degrading to -Inf
func parseMin(raw string) float64 {
	return parseBound(raw, math.Inf(-1))
}

// parseMax parses an upper bound, degrading to +Inf
func parseMax(raw string) float64 {
	return parseBound(raw, math.Inf(1))
}

// parseCount parses an "at least N" minimum. The "any" sentinel and anything
// unparseable mean no constraint.
func parseCount(raw string) (int, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == CountAny {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
