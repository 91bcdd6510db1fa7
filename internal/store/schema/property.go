package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/propchain/propchain-api/internal/domain"
)

// Property represents the properties table - the primary entity for listings
type Property struct {
	// ID is the listing identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// Title is the listing headline shown in search results
	Title string `gorm:"column:title;not null;type:text"`
	// Description is the free-text listing body
	Description string `gorm:"column:description;type:text"`
	// PriceAmount is the asking price denominated in PriceCurrency, never negative
	PriceAmount float64 `gorm:"column:price_amount;not null"`
	// PriceCurrency is the crypto currency code the price is denominated in (e.g., "BTC")
	PriceCurrency domain.Currency `gorm:"column:price_currency;not null;type:text"`
	// AcceptedCurrencies lists additional currency codes the seller accepts
	AcceptedCurrencies datatypes.JSON `gorm:"column:accepted_currencies;type:jsonb"`
	// ListingType is sale or rent
	ListingType domain.ListingType `gorm:"column:listing_type;not null;type:text;index:idx_properties_type_category,priority:1"`
	// Category is the property kind (house, apartment, condo, villa, land, commercial)
	Category domain.PropertyCategory `gorm:"column:category;not null;type:text;index:idx_properties_type_category,priority:2"`
	// Address is the street address
	Address string `gorm:"column:address;not null;type:text"`
	// City is the listing city, matched case-insensitively by search
	City string `gorm:"column:city;not null;type:text;index"`
	// Country is the listing country
	Country string `gorm:"column:country;not null;type:text"`
	// Latitude and Longitude are optional map coordinates
	Latitude  *float64 `gorm:"column:latitude"`
	Longitude *float64 `gorm:"column:longitude"`
	// Bedrooms, Bathrooms, Parking are counts of the respective features
	Bedrooms  int `gorm:"column:bedrooms;not null;default:0"`
	Bathrooms int `gorm:"column:bathrooms;not null;default:0"`
	Parking   int `gorm:"column:parking;not null;default:0"`
	// AreaSqFt is the floor area in square feet
	AreaSqFt float64 `gorm:"column:area_sqft;not null;default:0"`
	// YearBuilt is the construction year, 0 when unknown
	YearBuilt int `gorm:"column:year_built;not null;default:0"`
	// Amenities holds free-text amenity tags as a JSON array
	Amenities datatypes.JSON `gorm:"column:amenities;type:jsonb"`
	// Images holds listing photo URLs in display order; may be empty, in which
	// case a placeholder is substituted at render time and never persisted
	Images datatypes.JSON `gorm:"column:images;type:jsonb"`
	// Featured listings sort first under the featured sort key
	Featured bool `gorm:"column:featured;not null;default:false"`
	// Verified indicates the listing passed manual review
	Verified bool `gorm:"column:verified;not null;default:false"`
	// Tokenized indicates ownership is additionally represented by an on-chain
	// token; TokenAddress/TokenNetwork are descriptive metadata only
	Tokenized    bool                 `gorm:"column:tokenized;not null;default:false"`
	TokenAddress *string              `gorm:"column:token_address;type:text"`
	TokenNetwork *domain.TokenNetwork `gorm:"column:token_network;type:text"`
	// Neighborhood quality scores, populated only when a real data source
	// backs them; search treats nil as "no data, pass through"
	WalkScore    *int     `gorm:"column:walk_score"`
	TransitScore *int     `gorm:"column:transit_score"`
	SafetyScore  *int     `gorm:"column:safety_score"`
	SchoolRating *float64 `gorm:"column:school_rating"`
	// OwnerID references the listing owner; only the owner may update or delete
	OwnerID   uuid.UUID `gorm:"column:owner_id;not null;type:uuid;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}

// AmenityTags decodes the JSON amenities column into a string slice.
// A missing or malformed column decodes to nil rather than failing.
func (p *Property) AmenityTags() []string {
	return decodeStringArray(p.Amenities)
}

// ImageURLs decodes the JSON images column into a string slice
func (p *Property) ImageURLs() []string {
	return decodeStringArray(p.Images)
}

// AcceptedCurrencyCodes decodes the JSON accepted_currencies column
func (p *Property) AcceptedCurrencyCodes() []string {
	return decodeStringArray(p.AcceptedCurrencies)
}
