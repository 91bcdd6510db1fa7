package dto

import (
	"github.com/google/uuid"
)

// PropertyRequest is the payload for creating or updating a listing
type PropertyRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description"`
	PriceAmount        float64  `json:"price_amount" binding:"gte=0"`
	PriceCurrency      string   `json:"price_currency" binding:"required"`
	AcceptedCurrencies []string `json:"accepted_currencies"`
	ListingType        string   `json:"listing_type" binding:"required"`
	Category           string   `json:"category" binding:"required"`
	Address            string   `json:"address" binding:"required"`
	City               string   `json:"city" binding:"required"`
	Country            string   `json:"country" binding:"required"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	Bedrooms           int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms          int      `json:"bathrooms" binding:"gte=0"`
	Parking            int      `json:"parking" binding:"gte=0"`
	AreaSqFt           float64  `json:"area_sqft" binding:"gte=0"`
	YearBuilt          int      `json:"year_built"`
	Amenities          []string `json:"amenities"`
	Images             []string `json:"images"`
	Featured           bool     `json:"featured"`
	Tokenized          bool     `json:"tokenized"`
	TokenAddress       *string  `json:"token_address"`
	TokenNetwork       *string  `json:"token_network"`
}

// MessageRequest is the payload for sending a message about a listing
type MessageRequest struct {
	PropertyID  uuid.UUID `json:"property_id" binding:"required"`
	RecipientID uuid.UUID `json:"recipient_id" binding:"required"`
	Body        string    `json:"body" binding:"required"`
}

// InquiryRequest is the payload for an anonymous listing inquiry
type InquiryRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Body  string `json:"body" binding:"required"`
}

// SavedSearchRequest is the payload for storing a named search
type SavedSearchRequest struct {
	Name     string         `json:"name" binding:"required"`
	Criteria map[string]any `json:"criteria" binding:"required"`
}

// InquiryStatusRequest is the payload for transitioning an inquiry
type InquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UserRequest is the payload for updating the caller's profile
type UserRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	DisplayName   string  `json:"display_name" binding:"required"`
	AvatarURL     *string `json:"avatar_url"`
	WalletAddress *string `json:"wallet_address"`
}

// CompareRequest selects the listings to compare side by side
type CompareRequest struct {
	PropertyIDs []uuid.UUID `json:"property_ids" binding:"required,min=2,max=3"`
}
