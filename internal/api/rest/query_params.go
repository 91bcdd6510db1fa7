package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/propchain/propchain-api/internal/search"
)

const MAX_PAGE_SIZE = 100

// ListPropertiesQueryParams holds query parameters for GET /properties.
// Numeric bounds stay as strings; the search package owns their parsing and
// its degrade-to-unbounded behavior for malformed input.
type ListPropertiesQueryParams struct {
	Query           string   `form:"query"`
	ListingType     string   `form:"listing_type"`
	Categories      []string `form:"category"`
	City            string   `form:"city"`
	PriceMin        string   `form:"price_min"`
	PriceMax        string   `form:"price_max"`
	DisplayCurrency string   `form:"display_currency"`
	Bedrooms        string   `form:"bedrooms"`
	Bathrooms       string   `form:"bathrooms"`
	AreaMin         string   `form:"area_min"`
	AreaMax         string   `form:"area_max"`
	YearBuiltMin    string   `form:"year_built_min"`
	YearBuiltMax    string   `form:"year_built_max"`
	WalkScoreMin    string   `form:"walk_score_min"`
	TransitScoreMin string   `form:"transit_score_min"`
	SafetyScoreMin  string   `form:"safety_score_min"`
	SchoolRatingMin string   `form:"school_rating_min"`
	Amenities       []string `form:"amenity"`
	Sort            string   `form:"sort"`

	// Pagination
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ParseListPropertiesQuery parses query parameters for GET /properties
func ParseListPropertiesQuery(c *gin.Context) (*ListPropertiesQueryParams, error) {
	var params ListPropertiesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Unknown sort keys fall back to the default ordering
	switch search.SortKey(params.Sort) {
	case search.SortFeatured, search.SortPriceLow, search.SortPriceHigh, search.SortNewest:
	default:
		params.Sort = ""
	}

	// Cap limits
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	return &params, nil
}

// Criteria converts the query parameters into evaluator criteria
func (p *ListPropertiesQueryParams) Criteria() search.Criteria {
	return search.Criteria{
		Query:           p.Query,
		ListingType:     p.ListingType,
		Categories:      p.Categories,
		City:            p.City,
		PriceMin:        p.PriceMin,
		PriceMax:        p.PriceMax,
		DisplayCurrency: p.DisplayCurrency,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		AreaMin:         p.AreaMin,
		AreaMax:         p.AreaMax,
		YearBuiltMin:    p.YearBuiltMin,
		YearBuiltMax:    p.YearBuiltMax,
		WalkScoreMin:    p.WalkScoreMin,
		TransitScoreMin: p.TransitScoreMin,
		SafetyScoreMin:  p.SafetyScoreMin,
		SchoolRatingMin: p.SchoolRatingMin,
		Amenities:       p.Amenities,
		Sort:            search.SortKey(p.Sort),
	}
}
