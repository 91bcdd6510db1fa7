package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/store/schema"
)

// memoryStore is an in-memory Store used by tests and local development.
// It mirrors the query semantics of the PostgreSQL implementation.
type memoryStore struct {
	mu             sync.RWMutex
	properties     map[uuid.UUID]*schema.Property
	users          map[uuid.UUID]*schema.User
	messages       []*schema.Message
	inquiries      map[uuid.UUID]*schema.Inquiry
	favorites      []*schema.Favorite
	savedSearches  map[uuid.UUID]*schema.SavedSearch
	rates          map[domain.Currency]*schema.ExchangeRate
	nextFavoriteID int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		properties:    make(map[uuid.UUID]*schema.Property),
		users:         make(map[uuid.UUID]*schema.User),
		inquiries:     make(map[uuid.UUID]*schema.Inquiry),
		savedSearches: make(map[uuid.UUID]*schema.SavedSearch),
		rates:         make(map[domain.Currency]*schema.ExchangeRate),
	}
}

func copyProperty(p *schema.Property) *schema.Property {
	clone := *p
	return &clone
}

func (s *memoryStore) CreateProperty(_ context.Context, ownerID uuid.UUID, input PropertyInput) (*schema.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	property := propertyFromInput(input)
	property.ID = uuid.New()
	property.OwnerID = ownerID
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	s.properties[property.ID] = &property

	return copyProperty(&property), nil
}

func (s *memoryStore) GetPropertyByID(_ context.Context, id uuid.UUID) (*schema.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	property, ok := s.properties[id]
	if !ok {
		return nil, nil
	}

	return copyProperty(property), nil
}

func (s *memoryStore) GetPropertiesByIDs(_ context.Context, ids []uuid.UUID) ([]*schema.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	properties := make([]*schema.Property, 0, len(ids))
	for _, id := range ids {
		if property, ok := s.properties[id]; ok {
			properties = append(properties, copyProperty(property))
		}
	}

	return properties, nil
}

func (s *memoryStore) UpdateProperty(_ context.Context, id uuid.UUID, input PropertyInput) (*schema.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}

	updated := propertyFromInput(input)
	updated.ID = existing.ID
	updated.OwnerID = existing.OwnerID
	updated.Verified = existing.Verified
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	s.properties[id] = &updated

	return copyProperty(&updated), nil
}

func (s *memoryStore) DeleteProperty(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(s.properties, id)

	favorites := s.favorites[:0]
	for _, f := range s.favorites {
		if f.PropertyID != id {
			favorites = append(favorites, f)
		}
	}
	s.favorites = favorites

	messages := s.messages[:0]
	for _, m := range s.messages {
		if m.PropertyID != id {
			messages = append(messages, m)
		}
	}
	s.messages = messages

	for inquiryID, inquiry := range s.inquiries {
		if inquiry.PropertyID == id {
			delete(s.inquiries, inquiryID)
		}
	}

	return nil
}

func (s *memoryStore) ListProperties(_ context.Context, filter PropertyFilter) ([]*schema.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var properties []*schema.Property
	for _, property := range s.properties {
		if filter.ListingType != nil && property.ListingType != *filter.ListingType {
			continue
		}
		if len(filter.Categories) > 0 {
			found := false
			for _, category := range filter.Categories {
				if property.Category == category {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.City != "" && !strings.EqualFold(property.City, filter.City) {
			continue
		}

		properties = append(properties, copyProperty(property))
	}

	sort.Slice(properties, func(i, j int) bool {
		return properties[i].CreatedAt.After(properties[j].CreatedAt)
	})

	return properties, nil
}

func (s *memoryStore) UpsertUser(_ context.Context, id uuid.UUID, input UserInput) (*schema.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	user, ok := s.users[id]
	if !ok {
		user = &schema.User{ID: id, CreatedAt: now}
		s.users[id] = user
	}
	user.Email = input.Email
	user.DisplayName = input.DisplayName
	user.AvatarURL = input.AvatarURL
	user.WalletAddress = input.WalletAddress
	user.UpdatedAt = now

	clone := *user
	return &clone, nil
}

func (s *memoryStore) GetUserByID(_ context.Context, id uuid.UUID) (*schema.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}

	clone := *user
	return &clone, nil
}

func (s *memoryStore) AddFavorite(_ context.Context, userID, propertyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			return domain.ErrDuplicateFavorite
		}
	}

	s.nextFavoriteID++
	s.favorites = append(s.favorites, &schema.Favorite{
		ID:         s.nextFavoriteID,
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	})

	return nil
}

func (s *memoryStore) RemoveFavorite(_ context.Context, userID, propertyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites := s.favorites[:0]
	for _, f := range s.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			continue
		}
		favorites = append(favorites, f)
	}
	s.favorites = favorites

	return nil
}

func (s *memoryStore) ListFavoriteProperties(_ context.Context, userID uuid.UUID) ([]*schema.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned []*schema.Favorite
	for _, f := range s.favorites {
		if f.UserID == userID {
			owned = append(owned, f)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	properties := make([]*schema.Property, 0, len(owned))
	for _, f := range owned {
		if property, ok := s.properties[f.PropertyID]; ok {
			properties = append(properties, copyProperty(property))
		}
	}

	return properties, nil
}

func (s *memoryStore) IsFavorite(_ context.Context, userID, propertyID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			return true, nil
		}
	}

	return false, nil
}

func (s *memoryStore) CreateSavedSearch(_ context.Context, userID uuid.UUID, name string, criteria []byte) (*schema.SavedSearch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	search := &schema.SavedSearch{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Criteria:  datatypes.JSON(criteria),
		CreatedAt: time.Now(),
	}
	s.savedSearches[search.ID] = search

	clone := *search
	return &clone, nil
}

func (s *memoryStore) ListSavedSearches(_ context.Context, userID uuid.UUID) ([]*schema.SavedSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var searches []*schema.SavedSearch
	for _, search := range s.savedSearches {
		if search.UserID == userID {
			clone := *search
			searches = append(searches, &clone)
		}
	}
	sort.Slice(searches, func(i, j int) bool {
		return searches[i].CreatedAt.After(searches[j].CreatedAt)
	})

	return searches, nil
}

func (s *memoryStore) DeleteSavedSearch(_ context.Context, userID, searchID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	search, ok := s.savedSearches[searchID]
	if !ok || search.UserID != userID {
		return domain.ErrSavedSearchNotFound
	}
	delete(s.savedSearches, searchID)

	return nil
}

func (s *memoryStore) CreateMessage(_ context.Context, input MessageInput) (*schema.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := &schema.Message{
		ID:          uuid.New(),
		PropertyID:  input.PropertyID,
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Body:        input.Body,
		CreatedAt:   time.Now(),
	}
	s.messages = append(s.messages, message)

	clone := *message
	return &clone, nil
}

func (s *memoryStore) ListMessagesByParticipant(_ context.Context, userID uuid.UUID) ([]*schema.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []*schema.Message
	for _, m := range s.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			clone := *m
			messages = append(messages, &clone)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return messages, nil
}

func (s *memoryStore) ListThreadMessages(_ context.Context, propertyID, userID, counterpartID uuid.UUID) ([]*schema.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []*schema.Message
	for _, m := range s.messages {
		if m.PropertyID != propertyID {
			continue
		}
		between := (m.SenderID == userID && m.RecipientID == counterpartID) ||
			(m.SenderID == counterpartID && m.RecipientID == userID)
		if !between {
			continue
		}
		clone := *m
		messages = append(messages, &clone)
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return messages, nil
}

func (s *memoryStore) MarkThreadRead(_ context.Context, propertyID, userID, counterpartID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.PropertyID == propertyID && m.SenderID == counterpartID && m.RecipientID == userID {
			m.Read = true
		}
	}

	return nil
}

func (s *memoryStore) CreateInquiry(_ context.Context, input InquiryInput) (*schema.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inquiry := &schema.Inquiry{
		ID:         uuid.New(),
		PropertyID: input.PropertyID,
		Name:       input.Name,
		Email:      input.Email,
		Body:       input.Body,
		Status:     domain.InquiryStatusNew,
		CreatedAt:  time.Now(),
	}
	s.inquiries[inquiry.ID] = inquiry

	clone := *inquiry
	return &clone, nil
}

func (s *memoryStore) GetInquiryByID(_ context.Context, inquiryID uuid.UUID) (*schema.Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inquiry, ok := s.inquiries[inquiryID]
	if !ok {
		return nil, nil
	}

	clone := *inquiry
	return &clone, nil
}

func (s *memoryStore) ListInquiriesByProperty(_ context.Context, propertyID uuid.UUID) ([]*schema.Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var inquiries []*schema.Inquiry
	for _, inquiry := range s.inquiries {
		if inquiry.PropertyID == propertyID {
			clone := *inquiry
			inquiries = append(inquiries, &clone)
		}
	}
	sort.Slice(inquiries, func(i, j int) bool {
		return inquiries[i].CreatedAt.After(inquiries[j].CreatedAt)
	})

	return inquiries, nil
}

func (s *memoryStore) UpdateInquiryStatus(_ context.Context, inquiryID uuid.UUID, status domain.InquiryStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inquiry, ok := s.inquiries[inquiryID]; ok {
		inquiry.Status = status
	}

	return nil
}

func (s *memoryStore) UpsertExchangeRates(_ context.Context, rates []RateUpsert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rates {
		s.rates[r.Currency] = &schema.ExchangeRate{
			Currency:  r.Currency,
			USDPrice:  r.USDPrice,
			FetchedAt: r.FetchedAt,
		}
	}

	return nil
}

func (s *memoryStore) GetExchangeRates(_ context.Context) ([]*schema.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rates := make([]*schema.ExchangeRate, 0, len(s.rates))
	for _, r := range s.rates {
		clone := *r
		rates = append(rates, &clone)
	}
	sort.Slice(rates, func(i, j int) bool {
		return rates[i].Currency < rates[j].Currency
	})

	return rates, nil
}
