package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/search"
	"github.com/propchain/propchain-api/internal/store/schema"
)

// UserResponse is the API representation of a user profile
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	Verified      bool      `json:"verified"`
	WalletAddress *string   `json:"wallet_address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MapUserToDTO converts a stored user into its API representation
func MapUserToDTO(u *schema.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		Verified:      u.Verified,
		WalletAddress: u.WalletAddress,
		CreatedAt:     u.CreatedAt,
	}
}

// MessageResponse is the API representation of a message
type MessageResponse struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"property_id"`
	SenderID    uuid.UUID `json:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapMessageToDTO converts a stored message into its API representation
func MapMessageToDTO(m *schema.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}

// ThreadResponse is one derived conversation thread
type ThreadResponse struct {
	PropertyID    uuid.UUID        `json:"property_id"`
	CounterpartID uuid.UUID        `json:"counterpart_id"`
	LastMessage   *MessageResponse `json:"last_message,omitempty"`
	MessageCount  int              `json:"message_count"`
	UnreadCount   int              `json:"unread_count"`
}

// ThreadListResponse wraps a user's derived threads
type ThreadListResponse struct {
	Threads []ThreadResponse `json:"threads"`
}

// MessageListResponse wraps the messages of one thread
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// InquiryResponse is the API representation of an inquiry
type InquiryResponse struct {
	ID         uuid.UUID            `json:"id"`
	PropertyID uuid.UUID            `json:"property_id"`
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	Body       string               `json:"body"`
	Status     domain.InquiryStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

// MapInquiryToDTO converts a stored inquiry into its API representation
func MapInquiryToDTO(i *schema.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:         i.ID,
		PropertyID: i.PropertyID,
		Name:       i.Name,
		Email:      i.Email,
		Body:       i.Body,
		Status:     i.Status,
		CreatedAt:  i.CreatedAt,
	}
}

// InquiryListResponse wraps a property's inquiries
type InquiryListResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
}

// SavedSearchResponse is the API representation of a saved search
type SavedSearchResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Criteria  search.Criteria `json:"criteria"`
	CreatedAt time.Time       `json:"created_at"`
}

// SavedSearchListResponse wraps a user's saved searches
type SavedSearchListResponse struct {
	SavedSearches []SavedSearchResponse `json:"saved_searches"`
}

// CompareResponse pairs the compared listings with their superlatives
type CompareResponse struct {
	Properties   []PropertyResponse  `json:"properties"`
	Superlatives search.Superlatives `json:"superlatives"`
}

// RateResponse is one currency's USD price
type RateResponse struct {
	Currency  domain.Currency `json:"currency"`
	USDPrice  float64         `json:"usd_price"`
	FetchedAt *time.Time      `json:"fetched_at,omitempty"`
}

// RatesResponse wraps the active rate table
type RatesResponse struct {
	Rates []RateResponse `json:"rates"`
	// Reference is the currency every rate is quoted against
	Reference string `json:"reference"`
	Source    string `json:"source"`
}
