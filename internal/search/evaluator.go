package search

import (
	"sort"
	"strings"

	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/pricing"
	"github.com/propchain/propchain-api/internal/store/schema"
)

// Matches reports whether a property satisfies every criterion. Predicates
// short-circuit on the first failure.
func Matches(p *schema.Property, c Criteria, rates pricing.RateTable) bool {
	if !matchesListingType(p, c.ListingType) {
		return false
	}
	if !matchesCategories(p, c.Categories) {
		return false
	}
	if c.City != "" && !strings.EqualFold(p.City, strings.TrimSpace(c.City)) {
		return false
	}
	if !matchesPrice(p, c, rates) {
		return false
	}
	if min, ok := parseCount(c.Bedrooms); ok && p.Bedrooms < min {
		return false
	}
	if min, ok := parseCount(c.Bathrooms); ok && p.Bathrooms < min {
		return false
	}
	if p.AreaSqFt < parseMin(c.AreaMin) || p.AreaSqFt > parseMax(c.AreaMax) {
		return false
	}
	if !matchesYearBuilt(p, c) {
		return false
	}
	if !matchesScores(p, c) {
		return false
	}
	if !matchesAmenities(p, c.Amenities) {
		return false
	}
	if !matchesQuery(p, c.Query) {
		return false
	}

	return true
}

// Apply filters candidates against the criteria and sorts the survivors by
// the requested sort key. The input slice is not modified.
func Apply(candidates []*schema.Property, c Criteria, rates pricing.RateTable) []*schema.Property {
	matched := make([]*schema.Property, 0, len(candidates))
	for _, p := range candidates {
		if Matches(p, c, rates) {
			matched = append(matched, p)
		}
	}

	Sort(matched, c.Sort, rates)

	return matched
}

// Sort orders properties in place by the given sort key. Ties keep their
// original relative order.
func Sort(properties []*schema.Property, key SortKey, rates pricing.RateTable) {
	switch key {
	case SortFeatured:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].Featured && !properties[j].Featured
		})
	case SortPriceLow:
		sort.SliceStable(properties, func(i, j int) bool {
			return normalizedPrice(properties[i], rates) < normalizedPrice(properties[j], rates)
		})
	case SortPriceHigh:
		sort.SliceStable(properties, func(i, j int) bool {
			return normalizedPrice(properties[i], rates) > normalizedPrice(properties[j], rates)
		})
	default:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].CreatedAt.After(properties[j].CreatedAt)
		})
	}
}

// normalizedPrice is the property's price in USD major units
func normalizedPrice(p *schema.Property, rates pricing.RateTable) float64 {
	return pricing.NormalizeUSD(p.PriceAmount, p.PriceCurrency, rates)
}

func matchesListingType(p *schema.Property, raw string) bool {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == "any" {
		return true
	}
	return string(p.ListingType) == raw
}

// matchesCategories treats an empty selection as no constraint
func matchesCategories(p *schema.Property, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, category := range categories {
		if strings.EqualFold(string(p.Category), strings.TrimSpace(category)) {
			return true
		}
	}
	return false
}

// matchesPrice converts the property's price into the filter's display
// currency and checks it against the requested bounds
func matchesPrice(p *schema.Property, c Criteria, rates pricing.RateTable) bool {
	min := parseMin(c.PriceMin)
	max := parseMax(c.PriceMax)

	price := pricing.Convert(p.PriceAmount, p.PriceCurrency, c.displayCurrency(), rates)

	return price >= min && price <= max
}

func matchesYearBuilt(p *schema.Property, c Criteria) bool {
	year := float64(p.YearBuilt)
	return year >= parseMin(c.YearBuiltMin) && year <= parseMax(c.YearBuiltMax)
}

// matchesScores applies neighborhood score minimums only when the property
// actually carries the score; missing data passes through
func matchesScores(p *schema.Property, c Criteria) bool {
	if p.WalkScore != nil && float64(*p.WalkScore) < parseMin(c.WalkScoreMin) {
		return false
	}
	if p.TransitScore != nil && float64(*p.TransitScore) < parseMin(c.TransitScoreMin) {
		return false
	}
	if p.SafetyScore != nil && float64(*p.SafetyScore) < parseMin(c.SafetyScoreMin) {
		return false
	}
	if p.SchoolRating != nil && *p.SchoolRating < parseMin(c.SchoolRatingMin) {
		return false
	}
	return true
}

// matchesAmenities requires every selected amenity to appear in the
// property's tag list as a case-insensitive substring
func matchesAmenities(p *schema.Property, amenities []string) bool {
	if len(amenities) == 0 {
		return true
	}

	tags := p.AmenityTags()
	for _, wanted := range amenities {
		wanted = domain.NormalizeAmenity(wanted)
		if wanted == "" {
			continue
		}
		found := false
		for _, tag := range tags {
			if strings.Contains(domain.NormalizeAmenity(tag), wanted) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// matchesQuery passes when ANY searched field contains the query substring.
// A blank or whitespace-only query matches everything.
func matchesQuery(p *schema.Property, query string) bool {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return true
	}

	fields := []string{p.Title, p.City, p.Country, p.Address, p.Description}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}
