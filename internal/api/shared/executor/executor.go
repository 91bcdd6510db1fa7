// Package executor holds the business logic behind the REST handlers.
// Handlers stay thin: they parse and validate transport concerns, then
// delegate here. The executor owns authorization checks and event publishing.
package executor

import (
	"context"

	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/api/shared/dto"
	"github.com/propchain/propchain-api/internal/messaging"
	"github.com/propchain/propchain-api/internal/pricing"
	"github.com/propchain/propchain-api/internal/registry"
	"github.com/propchain/propchain-api/internal/search"
	"github.com/propchain/propchain-api/internal/store"
)

// Executor is the interface for the API business logic
type Executor interface {
	// ListProperties runs the filter evaluator over stored listings and
	// returns one page of matches; limit <= 0 disables pagination
	ListProperties(ctx context.Context, criteria search.Criteria, limit, offset int) (*dto.PropertyListResponse, error)
	// GetProperty retrieves a single listing
	GetProperty(ctx context.Context, id uuid.UUID) (*dto.PropertyResponse, error)
	// CreateProperty creates a listing owned by the caller
	CreateProperty(ctx context.Context, ownerID uuid.UUID, req dto.PropertyRequest) (*dto.PropertyResponse, error)
	// UpdateProperty replaces a listing; only its owner may do so
	UpdateProperty(ctx context.Context, callerID, id uuid.UUID, req dto.PropertyRequest) (*dto.PropertyResponse, error)
	// DeleteProperty removes a listing; only its owner may do so
	DeleteProperty(ctx context.Context, callerID, id uuid.UUID) error
	// CompareProperties computes side-by-side superlatives for 2-3 listings
	CompareProperties(ctx context.Context, ids []uuid.UUID) (*dto.CompareResponse, error)

	// GetProfile retrieves the caller's profile
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	// UpdateProfile creates or updates the caller's profile
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UserRequest) (*dto.UserResponse, error)

	// AddFavorite marks a listing as a favorite of the caller
	AddFavorite(ctx context.Context, userID, propertyID uuid.UUID) error
	// RemoveFavorite unmarks a favorite
	RemoveFavorite(ctx context.Context, userID, propertyID uuid.UUID) error
	// ListFavorites retrieves the caller's favorite listings
	ListFavorites(ctx context.Context, userID uuid.UUID) (*dto.PropertyListResponse, error)

	// CreateSavedSearch stores a named search for the caller
	CreateSavedSearch(ctx context.Context, userID uuid.UUID, req dto.SavedSearchRequest) (*dto.SavedSearchResponse, error)
	// ListSavedSearches retrieves the caller's saved searches
	ListSavedSearches(ctx context.Context, userID uuid.UUID) (*dto.SavedSearchListResponse, error)
	// DeleteSavedSearch removes a saved search owned by the caller
	DeleteSavedSearch(ctx context.Context, userID, searchID uuid.UUID) error

	// SendMessage records a message from the caller about a listing
	SendMessage(ctx context.Context, senderID uuid.UUID, req dto.MessageRequest) (*dto.MessageResponse, error)
	// ListThreads derives the caller's conversation threads
	ListThreads(ctx context.Context, userID uuid.UUID) (*dto.ThreadListResponse, error)
	// GetThreadMessages retrieves one thread and marks it read for the caller
	GetThreadMessages(ctx context.Context, userID, propertyID, counterpartID uuid.UUID) (*dto.MessageListResponse, error)

	// CreateInquiry records an anonymous inquiry against a listing
	CreateInquiry(ctx context.Context, propertyID uuid.UUID, req dto.InquiryRequest) (*dto.InquiryResponse, error)
	// ListInquiries retrieves a listing's inquiries; only its owner may do so
	ListInquiries(ctx context.Context, callerID, propertyID uuid.UUID) (*dto.InquiryListResponse, error)
	// UpdateInquiryStatus transitions an inquiry; only the listing owner may do so
	UpdateInquiryStatus(ctx context.Context, callerID, inquiryID uuid.UUID, status string) (*dto.InquiryResponse, error)

	// GetRates returns the active rate table and its provenance
	GetRates(ctx context.Context) (*dto.RatesResponse, error)
}

type executor struct {
	store      store.Store
	rates      pricing.Provider
	currencies registry.CurrencyRegistry
	publisher  messaging.Publisher
}

// NewExecutor creates the API executor. The publisher may be nil; event
// publishing is then skipped.
func NewExecutor(s store.Store, rates pricing.Provider, currencies registry.CurrencyRegistry, publisher messaging.Publisher) Executor {
	return &executor{
		store:      s,
		rates:      rates,
		currencies: currencies,
		publisher:  publisher,
	}
}
