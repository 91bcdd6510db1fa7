package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/pricing"
	"github.com/propchain/propchain-api/internal/store/schema"
)

// Price is an amount denominated in a crypto currency
type Price struct {
	Amount   float64         `json:"amount"`
	Currency domain.Currency `json:"currency"`
}

// PropertyResponse is the API representation of a listing
type PropertyResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       Price     `json:"price"`
	// PriceUSD is the price normalized to USD with the active rate table
	PriceUSD           float64                 `json:"price_usd"`
	AcceptedCurrencies []string                `json:"accepted_currencies"`
	ListingType        domain.ListingType      `json:"listing_type"`
	Category           domain.PropertyCategory `json:"category"`
	Address            string                  `json:"address"`
	City               string                  `json:"city"`
	Country            string                  `json:"country"`
	Latitude           *float64                `json:"latitude,omitempty"`
	Longitude          *float64                `json:"longitude,omitempty"`
	Bedrooms           int                     `json:"bedrooms"`
	Bathrooms          int                     `json:"bathrooms"`
	Parking            int                     `json:"parking"`
	AreaSqFt           float64                 `json:"area_sqft"`
	YearBuilt          int                     `json:"year_built,omitempty"`
	Amenities          []string                `json:"amenities"`
	Images             []string                `json:"images"`
	Featured           bool                    `json:"featured"`
	Verified           bool                    `json:"verified"`
	Tokenized          bool                    `json:"tokenized"`
	TokenAddress       *string                 `json:"token_address,omitempty"`
	TokenNetwork       *domain.TokenNetwork    `json:"token_network,omitempty"`
	WalkScore          *int                    `json:"walk_score,omitempty"`
	TransitScore       *int                    `json:"transit_score,omitempty"`
	SafetyScore        *int                    `json:"safety_score,omitempty"`
	SchoolRating       *float64                `json:"school_rating,omitempty"`
	OwnerID            uuid.UUID               `json:"owner_id"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// PropertyListResponse wraps a page of listings
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Total      int                `json:"total"`
	// RateSource tells the client which rate table priced the results
	RateSource string `json:"rate_source"`
}

// MapPropertyToDTO converts a stored property into its API representation.
// Listings without photos get the placeholder image; the substitution is
// never persisted.
func MapPropertyToDTO(p *schema.Property, rates pricing.RateTable) PropertyResponse {
	images := p.ImageURLs()
	if len(images) == 0 {
		images = []string{domain.DEFAULT_PROPERTY_IMAGE}
	}

	amenities := p.AmenityTags()
	if amenities == nil {
		amenities = []string{}
	}

	accepted := p.AcceptedCurrencyCodes()
	if accepted == nil {
		accepted = []string{}
	}

	return PropertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price: Price{
			Amount:   p.PriceAmount,
			Currency: p.PriceCurrency,
		},
		PriceUSD:           pricing.NormalizeUSD(p.PriceAmount, p.PriceCurrency, rates),
		AcceptedCurrencies: accepted,
		ListingType:        p.ListingType,
		Category:           p.Category,
		Address:            p.Address,
		City:               p.City,
		Country:            p.Country,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		Bedrooms:           p.Bedrooms,
		Bathrooms:          p.Bathrooms,
		Parking:            p.Parking,
		AreaSqFt:           p.AreaSqFt,
		YearBuilt:          p.YearBuilt,
		Amenities:          amenities,
		Images:             images,
		Featured:           p.Featured,
		Verified:           p.Verified,
		Tokenized:          p.Tokenized,
		TokenAddress:       p.TokenAddress,
		TokenNetwork:       p.TokenNetwork,
		WalkScore:          p.WalkScore,
		TransitScore:       p.TransitScore,
		SafetyScore:        p.SafetyScore,
		SchoolRating:       p.SchoolRating,
		OwnerID:            p.OwnerID,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
