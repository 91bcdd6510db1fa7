package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propchain/propchain-api/internal/api/shared/dto"
	apierrors "github.com/propchain/propchain-api/internal/api/shared/errors"
	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/logger"
	"github.com/propchain/propchain-api/internal/search"
	"github.com/propchain/propchain-api/internal/store"
)

// ListProperties fetches candidates by the coarse column filters, then runs
// the in-memory evaluator for everything that needs currency normalization
// or text matching. Total counts every match, not just the returned page.
func (e *executor) ListProperties(ctx context.Context, criteria search.Criteria, limit, offset int) (*dto.PropertyListResponse, error) {
	filter := store.PropertyFilter{City: strings.TrimSpace(criteria.City)}
	if t := strings.TrimSpace(strings.ToLower(criteria.ListingType)); t != "" && t != "any" {
		if !domain.IsValidListingType(domain.ListingType(t)) {
			return nil, apierrors.NewValidationError(fmt.Sprintf("unknown listing type: %s", criteria.ListingType))
		}
		listingType := domain.ListingType(t)
		filter.ListingType = &listingType
	}
	for _, category := range criteria.Categories {
		c := domain.PropertyCategory(strings.TrimSpace(strings.ToLower(category)))
		if domain.IsValidCategory(c) {
			filter.Categories = append(filter.Categories, c)
		}
	}

	candidates, err := e.store.ListProperties(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list properties: %v", err))
	}

	rates := e.rates.Current(ctx)
	matched := search.Apply(candidates, criteria, rates.Table)
	total := len(matched)

	if offset > 0 {
		if offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[offset:]
		}
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	properties := make([]dto.PropertyResponse, len(matched))
	for i, p := range matched {
		properties[i] = dto.MapPropertyToDTO(p, rates.Table)
	}

	return &dto.PropertyListResponse{
		Properties: properties,
		Total:      total,
		RateSource: string(rates.Source),
	}, nil
}

// GetProperty retrieves a single listing
func (e *executor) GetProperty(ctx context.Context, id uuid.UUID) (*dto.PropertyResponse, error) {
	property, err := e.store.GetPropertyByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		return nil, apierrors.NewNotFoundError("Property not found")
	}

	rates := e.rates.Current(ctx)
	response := dto.MapPropertyToDTO(property, rates.Table)

	return &response, nil
}

// CreateProperty creates a listing owned by the caller
func (e *executor) CreateProperty(ctx context.Context, ownerID uuid.UUID, req dto.PropertyRequest) (*dto.PropertyResponse, error) {
	input, apiErr := e.propertyInputFromRequest(req)
	if apiErr != nil {
		return nil, apiErr
	}

	property, err := e.store.CreateProperty(ctx, ownerID, *input)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create property: %v", err))
	}

	e.publishListingEvent(ctx, domain.EventListingCreated, property.ID, property.OwnerID)

	rates := e.rates.Current(ctx)
	response := dto.MapPropertyToDTO(property, rates.Table)

	return &response, nil
}

// UpdateProperty replaces a listing's fields after checking ownership
func (e *executor) UpdateProperty(ctx context.Context, callerID, id uuid.UUID, req dto.PropertyRequest) (*dto.PropertyResponse, error) {
	existing, err := e.store.GetPropertyByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if existing == nil {
		return nil, apierrors.NewNotFoundError("Property not found")
	}
	if existing.OwnerID != callerID {
		return nil, apierrors.NewForbiddenError("Only the owner may update this property")
	}

	input, apiErr := e.propertyInputFromRequest(req)
	if apiErr != nil {
		return nil, apiErr
	}

	updated, err := e.store.UpdateProperty(ctx, id, *input)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update property: %v", err))
	}

	e.publishListingEvent(ctx, domain.EventListingUpdated, updated.ID, updated.OwnerID)

	rates := e.rates.Current(ctx)
	response := dto.MapPropertyToDTO(updated, rates.Table)

	return &response, nil
}

// DeleteProperty removes a listing after checking ownership
func (e *executor) DeleteProperty(ctx context.Context, callerID, id uuid.UUID) error {
	existing, err := e.store.GetPropertyByID(ctx, id)
	if err != nil {
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if existing == nil {
		return apierrors.NewNotFoundError("Property not found")
	}
	if existing.OwnerID != callerID {
		return apierrors.NewForbiddenError("Only the owner may delete this property")
	}

	if err := e.store.DeleteProperty(ctx, id); err != nil {
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to delete property: %v", err))
	}

	e.publishListingEvent(ctx, domain.EventListingDeleted, id, callerID)

	return nil
}

// CompareProperties computes side-by-side superlatives for 2-3 listings
func (e *executor) CompareProperties(ctx context.Context, ids []uuid.UUID) (*dto.CompareResponse, error) {
	if len(ids) < 2 || len(ids) > search.MaxCompareProperties {
		return nil, apierrors.NewValidationError(
			fmt.Sprintf("comparison requires between 2 and %d properties", search.MaxCompareProperties))
	}

	properties, err := e.store.GetPropertiesByIDs(ctx, ids)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get properties: %v", err))
	}
	if len(properties) != len(ids) {
		return nil, apierrors.NewNotFoundError("One or more properties not found")
	}

	rates := e.rates.Current(ctx)

	responses := make([]dto.PropertyResponse, len(properties))
	for i, p := range properties {
		responses[i] = dto.MapPropertyToDTO(p, rates.Table)
	}

	return &dto.CompareResponse{
		Properties:   responses,
		Superlatives: search.Compare(properties, rates.Table),
	}, nil
}

// propertyInputFromRequest validates the request against the supported
// domains and converts it to a store input
func (e *executor) propertyInputFromRequest(req dto.PropertyRequest) (*store.PropertyInput, *apierrors.APIError) {
	// Zero is a legal price; only negative amounts are rejected.
	if req.PriceAmount < 0 {
		return nil, apierrors.NewValidationError(fmt.Sprintf("negative price amount: %g", req.PriceAmount))
	}

	listingType := strings.TrimSpace(strings.ToLower(req.ListingType))
	if !domain.IsValidListingType(domain.ListingType(listingType)) {
		return nil, apierrors.NewValidationError(fmt.Sprintf("unknown listing type: %s", req.ListingType))
	}

	category := strings.TrimSpace(strings.ToLower(req.Category))
	if !domain.IsValidCategory(domain.PropertyCategory(category)) {
		return nil, apierrors.NewValidationError(fmt.Sprintf("unknown category: %s", req.Category))
	}

	currency := domain.NormalizeCurrency(req.PriceCurrency)
	if !e.currencies.IsSupported(currency) {
		return nil, apierrors.NewValidationError(fmt.Sprintf("unsupported currency: %s", req.PriceCurrency))
	}

	accepted := make([]string, 0, len(req.AcceptedCurrencies))
	for _, code := range req.AcceptedCurrencies {
		normalized := domain.NormalizeCurrency(code)
		if !e.currencies.IsSupported(normalized) {
			return nil, apierrors.NewValidationError(fmt.Sprintf("unsupported accepted currency: %s", code))
		}
		accepted = append(accepted, string(normalized))
	}

	var tokenNetwork *domain.TokenNetwork
	if req.Tokenized {
		if req.TokenAddress == nil || req.TokenNetwork == nil {
			return nil, apierrors.NewValidationError("tokenized listings require token_address and token_network")
		}
		network := domain.TokenNetwork(*req.TokenNetwork)
		if !domain.IsValidTokenNetwork(network) {
			return nil, apierrors.NewValidationError(fmt.Sprintf("unknown token network: %s", *req.TokenNetwork))
		}
		tokenNetwork = &network
	}

	currentYear := time.Now().Year()
	if req.YearBuilt != 0 && (req.YearBuilt < 1800 || req.YearBuilt > currentYear+5) {
		return nil, apierrors.NewValidationError(fmt.Sprintf("implausible year built: %d", req.YearBuilt))
	}

	input := &store.PropertyInput{
		Title:              strings.TrimSpace(req.Title),
		Description:        strings.TrimSpace(req.Description),
		PriceAmount:        req.PriceAmount,
		PriceCurrency:      currency,
		AcceptedCurrencies: accepted,
		ListingType:        domain.ListingType(listingType),
		Category:           domain.PropertyCategory(category),
		Address:            strings.TrimSpace(req.Address),
		City:               strings.TrimSpace(req.City),
		Country:            strings.TrimSpace(req.Country),
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		Parking:            req.Parking,
		AreaSqFt:           req.AreaSqFt,
		YearBuilt:          req.YearBuilt,
		Amenities:          req.Amenities,
		Images:             req.Images,
		Featured:           req.Featured,
		Tokenized:          req.Tokenized,
		TokenNetwork:       tokenNetwork,
	}
	if req.Tokenized {
		input.TokenAddress = req.TokenAddress
	}

	return input, nil
}

// publishListingEvent publishes best-effort; a broker outage never fails the
// write that triggered the event
func (e *executor) publishListingEvent(ctx context.Context, eventType domain.EventType, propertyID, ownerID uuid.UUID) {
	if e.publisher == nil {
		return
	}

	event := domain.NewListingEvent(eventType, time.Now().UTC())
	event.PropertyID = &propertyID
	event.OwnerID = &ownerID

	if err := e.publisher.PublishEvent(ctx, &event); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Failed to publish listing event"),
			zap.String("event_type", string(eventType)),
			zap.String("property_id", propertyID.String()),
		)
	}
}
