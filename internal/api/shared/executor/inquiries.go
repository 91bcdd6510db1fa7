package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/api/shared/dto"
	apierrors "github.com/propchain/propchain-api/internal/api/shared/errors"
	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/store"
)

// CreateInquiry records an anonymous inquiry against a listing
func (e *executor) CreateInquiry(ctx context.Context, propertyID uuid.UUID, req dto.InquiryRequest) (*dto.InquiryResponse, error) {
	property, err := e.store.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		return nil, apierrors.NewNotFoundError("Property not found")
	}

	inquiry, err := e.store.CreateInquiry(ctx, store.InquiryInput{
		PropertyID: propertyID,
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(strings.ToLower(req.Email)),
		Body:       strings.TrimSpace(req.Body),
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create inquiry: %v", err))
	}

	response := dto.MapInquiryToDTO(inquiry)
	return &response, nil
}

// ListInquiries retrieves a listing's inquiries for its owner
func (e *executor) ListInquiries(ctx context.Context, callerID, propertyID uuid.UUID) (*dto.InquiryListResponse, error) {
	property, err := e.store.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		return nil, apierrors.NewNotFoundError("Property not found")
	}
	if property.OwnerID != callerID {
		return nil, apierrors.NewForbiddenError("Only the property owner can view inquiries")
	}

	inquiries, err := e.store.ListInquiriesByProperty(ctx, propertyID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list inquiries: %v", err))
	}

	responses := make([]dto.InquiryResponse, len(inquiries))
	for i, inquiry := range inquiries {
		responses[i] = dto.MapInquiryToDTO(inquiry)
	}

	return &dto.InquiryListResponse{Inquiries: responses}, nil
}

// UpdateInquiryStatus transitions an inquiry's status on behalf of the
// property owner
func (e *executor) UpdateInquiryStatus(ctx context.Context, callerID, inquiryID uuid.UUID, status string) (*dto.InquiryResponse, error) {
	inquiryStatus := domain.InquiryStatus(strings.ToLower(strings.TrimSpace(status)))
	if !domain.IsValidInquiryStatus(inquiryStatus) {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid inquiry status: %s", status))
	}

	inquiry, err := e.store.GetInquiryByID(ctx, inquiryID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get inquiry: %v", err))
	}
	if inquiry == nil {
		return nil, apierrors.NewNotFoundError("Inquiry not found")
	}

	property, err := e.store.GetPropertyByID(ctx, inquiry.PropertyID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil || property.OwnerID != callerID {
		return nil, apierrors.NewForbiddenError("Only the property owner can update inquiries")
	}

	if err := e.store.UpdateInquiryStatus(ctx, inquiryID, inquiryStatus); err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update inquiry: %v", err))
	}

	inquiry.Status = inquiryStatus
	response := dto.MapInquiryToDTO(inquiry)
	return &response, nil
}
