package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/store/schema"
)

// PropertyFilter narrows the candidate set fetched from the database.
// Fine-grained matching (price ranges after currency normalization, amenity
// matching, free-text search) happens in the search package; the filter here
// only carries the criteria that map directly onto indexed columns.
type PropertyFilter struct {
	ListingType *domain.ListingType
	Categories  []domain.PropertyCategory
	City        string
}

// PropertyInput carries the writable fields of a property
type PropertyInput struct {
	Title              string
	Description        string
	PriceAmount        float64
	PriceCurrency      domain.Currency
	AcceptedCurrencies []string
	ListingType        domain.ListingType
	Category           domain.PropertyCategory
	Address            string
	City               string
	Country            string
	Latitude           *float64
	Longitude          *float64
	Bedrooms           int
	Bathrooms          int
	Parking            int
	AreaSqFt           float64
	YearBuilt          int
	Amenities          []string
	Images             []string
	Featured           bool
	Tokenized          bool
	TokenAddress       *string
	TokenNetwork       *domain.TokenNetwork
	WalkScore          *int
	TransitScore       *int
	SafetyScore        *int
	SchoolRating       *float64
}

// UserInput carries the writable fields of a user profile
type UserInput struct {
	Email         string
	DisplayName   string
	AvatarURL     *string
	WalletAddress *string
}

// MessageInput carries the fields needed to record a message
type MessageInput struct {
	PropertyID  uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Body        string
}

// InquiryInput carries the fields of an incoming inquiry
type InquiryInput struct {
	PropertyID uuid.UUID
	Name       string
	Email      string
	Body       string
}

// RateUpsert is one currency's freshly fetched USD price
type RateUpsert struct {
	Currency  domain.Currency
	USDPrice  float64
	FetchedAt time.Time
}

// Store defines the interface for database operations
type Store interface {
	// CreateProperty persists a new property owned by ownerID and returns it
	CreateProperty(ctx context.Context, ownerID uuid.UUID, input PropertyInput) (*schema.Property, error)
	// GetPropertyByID retrieves a property by ID, nil if not found
	GetPropertyByID(ctx context.Context, id uuid.UUID) (*schema.Property, error)
	// GetPropertiesByIDs retrieves multiple properties preserving the order of ids
	GetPropertiesByIDs(ctx context.Context, ids []uuid.UUID) ([]*schema.Property, error)
	// UpdateProperty replaces the writable fields of a property
	UpdateProperty(ctx context.Context, id uuid.UUID, input PropertyInput) (*schema.Property, error)
	// DeleteProperty removes a property and its dependent rows
	DeleteProperty(ctx context.Context, id uuid.UUID) error
	// ListProperties retrieves properties matching the coarse filter, newest first
	ListProperties(ctx context.Context, filter PropertyFilter) ([]*schema.Property, error)

	// UpsertUser creates or updates the profile for the given subject ID
	UpsertUser(ctx context.Context, id uuid.UUID, input UserInput) (*schema.User, error)
	// GetUserByID retrieves a user by ID, nil if not found
	GetUserByID(ctx context.Context, id uuid.UUID) (*schema.User, error)

	// AddFavorite records that userID favorited propertyID
	AddFavorite(ctx context.Context, userID, propertyID uuid.UUID) error
	// RemoveFavorite deletes a favorite, no-op when absent
	RemoveFavorite(ctx context.Context, userID, propertyID uuid.UUID) error
	// ListFavoriteProperties retrieves the properties a user favorited, newest favorite first
	ListFavoriteProperties(ctx context.Context, userID uuid.UUID) ([]*schema.Property, error)
	// IsFavorite reports whether userID has favorited propertyID
	IsFavorite(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)

	// CreateSavedSearch persists a named search for a user
	CreateSavedSearch(ctx context.Context, userID uuid.UUID, name string, criteria []byte) (*schema.SavedSearch, error)
	// ListSavedSearches retrieves a user's saved searches, newest first
	ListSavedSearches(ctx context.Context, userID uuid.UUID) ([]*schema.SavedSearch, error)
	// DeleteSavedSearch removes a saved search owned by userID
	DeleteSavedSearch(ctx context.Context, userID, searchID uuid.UUID) error

	// CreateMessage records a message between two users about a property
	CreateMessage(ctx context.Context, input MessageInput) (*schema.Message, error)
	// ListMessagesByParticipant retrieves every message a user sent or received, oldest first
	ListMessagesByParticipant(ctx context.Context, userID uuid.UUID) ([]*schema.Message, error)
	// ListThreadMessages retrieves the messages between two users about one property, oldest first
	ListThreadMessages(ctx context.Context, propertyID, userID, counterpartID uuid.UUID) ([]*schema.Message, error)
	// MarkThreadRead marks messages sent to userID within a thread as read
	MarkThreadRead(ctx context.Context, propertyID, userID, counterpartID uuid.UUID) error

	// CreateInquiry records an inquiry against a property
	CreateInquiry(ctx context.Context, input InquiryInput) (*schema.Inquiry, error)
	// GetInquiryByID retrieves an inquiry by ID, nil if not found
	GetInquiryByID(ctx context.Context, inquiryID uuid.UUID) (*schema.Inquiry, error)
	// ListInquiriesByProperty retrieves a property's inquiries, newest first
	ListInquiriesByProperty(ctx context.Context, propertyID uuid.UUID) ([]*schema.Inquiry, error)
	// UpdateInquiryStatus transitions an inquiry's status
	UpdateInquiryStatus(ctx context.Context, inquiryID uuid.UUID, status domain.InquiryStatus) error

	// UpsertExchangeRates stores freshly fetched USD prices
	UpsertExchangeRates(ctx context.Context, rates []RateUpsert) error
	// GetExchangeRates retrieves the stored rate snapshot
	GetExchangeRates(ctx context.Context) ([]*schema.ExchangeRate, error)
}
