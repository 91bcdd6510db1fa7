package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/api/shared/dto"
	apierrors "github.com/propchain/propchain-api/internal/api/shared/errors"
	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/search"
	"github.com/propchain/propchain-api/internal/store"
)

// GetProfile retrieves the caller's profile
func (e *executor) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get user: %v", err))
	}
	if user == nil {
		return nil, apierrors.NewNotFoundError("User not found")
	}

	response := dto.MapUserToDTO(user)
	return &response, nil
}

// UpdateProfile creates or updates the caller's profile
func (e *executor) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UserRequest) (*dto.UserResponse, error) {
	user, err := e.store.UpsertUser(ctx, userID, store.UserInput{
		Email:         strings.TrimSpace(strings.ToLower(req.Email)),
		DisplayName:   strings.TrimSpace(req.DisplayName),
		AvatarURL:     req.AvatarURL,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update user: %v", err))
	}

	response := dto.MapUserToDTO(user)
	return &response, nil
}

// AddFavorite marks a listing as a favorite of the caller
func (e *executor) AddFavorite(ctx context.Context, userID, propertyID uuid.UUID) error {
	property, err := e.store.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		return apierrors.NewNotFoundError("Property not found")
	}

	if err := e.store.AddFavorite(ctx, userID, propertyID); err != nil {
		if errors.Is(err, domain.ErrDuplicateFavorite) {
			return apierrors.NewConflictError("Property is already a favorite")
		}
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to add favorite: %v", err))
	}

	return nil
}

// RemoveFavorite unmarks a favorite; removing a non-favorite succeeds
func (e *executor) RemoveFavorite(ctx context.Context, userID, propertyID uuid.UUID) error {
	if err := e.store.RemoveFavorite(ctx, userID, propertyID); err != nil {
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to remove favorite: %v", err))
	}
	return nil
}

// ListFavorites retrieves the caller's favorite listings
func (e *executor) ListFavorites(ctx context.Context, userID uuid.UUID) (*dto.PropertyListResponse, error) {
	properties, err := e.store.ListFavoriteProperties(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list favorites: %v", err))
	}

	rates := e.rates.Current(ctx)

	responses := make([]dto.PropertyResponse, len(properties))
	for i, p := range properties {
		responses[i] = dto.MapPropertyToDTO(p, rates.Table)
	}

	return &dto.PropertyListResponse{
		Properties: responses,
		Total:      len(responses),
		RateSource: string(rates.Source),
	}, nil
}

// CreateSavedSearch stores a named search for the caller. The criteria map is
// round-tripped through the search.Criteria type so unknown keys are dropped
// on write rather than read.
func (e *executor) CreateSavedSearch(ctx context.Context, userID uuid.UUID, req dto.SavedSearchRequest) (*dto.SavedSearchResponse, error) {
	criteria, apiErr := criteriaFromMap(req.Criteria)
	if apiErr != nil {
		return nil, apiErr
	}

	raw, err := json.Marshal(criteria)
	if err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to encode criteria: %v", err))
	}

	saved, err := e.store.CreateSavedSearch(ctx, userID, strings.TrimSpace(req.Name), raw)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create saved search: %v", err))
	}

	return &dto.SavedSearchResponse{
		ID:        saved.ID,
		Name:      saved.Name,
		Criteria:  *criteria,
		CreatedAt: saved.CreatedAt,
	}, nil
}

// ListSavedSearches retrieves the caller's saved searches
func (e *executor) ListSavedSearches(ctx context.Context, userID uuid.UUID) (*dto.SavedSearchListResponse, error) {
	searches, err := e.store.ListSavedSearches(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list saved searches: %v", err))
	}

	responses := make([]dto.SavedSearchResponse, 0, len(searches))
	for _, saved := range searches {
		var criteria search.Criteria
		// stored criteria were validated on write; a decode failure here
		// degrades to the empty (match-all) criteria
		_ = json.Unmarshal(saved.Criteria, &criteria)

		responses = append(responses, dto.SavedSearchResponse{
			ID:        saved.ID,
			Name:      saved.Name,
			Criteria:  criteria,
			CreatedAt: saved.CreatedAt,
		})
	}

	return &dto.SavedSearchListResponse{SavedSearches: responses}, nil
}

// DeleteSavedSearch removes a saved search owned by the caller
func (e *executor) DeleteSavedSearch(ctx context.Context, userID, searchID uuid.UUID) error {
	if err := e.store.DeleteSavedSearch(ctx, userID, searchID); err != nil {
		if errors.Is(err, domain.ErrSavedSearchNotFound) {
			return apierrors.NewNotFoundError("Saved search not found")
		}
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to delete saved search: %v", err))
	}
	return nil
}

// criteriaFromMap decodes an arbitrary criteria object into search.Criteria
func criteriaFromMap(raw map[string]any) (*search.Criteria, *apierrors.APIError) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid criteria: %v", err))
	}

	var criteria search.Criteria
	if err := json.Unmarshal(encoded, &criteria); err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid criteria: %v", err))
	}

	return &criteria, nil
}
