package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the tables backing the store
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.User{},
		&schema.Property{},
		&schema.Message{},
		&schema.Inquiry{},
		&schema.Favorite{},
		&schema.SavedSearch{},
		&schema.ExchangeRate{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

func propertyFromInput(input PropertyInput) schema.Property {
	return schema.Property{
		Title:              input.Title,
		Description:        input.Description,
		PriceAmount:        input.PriceAmount,
		PriceCurrency:      input.PriceCurrency,
		AcceptedCurrencies: schema.EncodeStringArray(input.AcceptedCurrencies),
		ListingType:        input.ListingType,
		Category:           input.Category,
		Address:            input.Address,
		City:               input.City,
		Country:            input.Country,
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		Bedrooms:           input.Bedrooms,
		Bathrooms:          input.Bathrooms,
		Parking:            input.Parking,
		AreaSqFt:           input.AreaSqFt,
		YearBuilt:          input.YearBuilt,
		Amenities:          schema.EncodeStringArray(input.Amenities),
		Images:             schema.EncodeStringArray(input.Images),
		Featured:           input.Featured,
		Tokenized:          input.Tokenized,
		TokenAddress:       input.TokenAddress,
		TokenNetwork:       input.TokenNetwork,
		WalkScore:          input.WalkScore,
		TransitScore:       input.TransitScore,
		SafetyScore:        input.SafetyScore,
		SchoolRating:       input.SchoolRating,
	}
}

// CreateProperty persists a new property owned by ownerID and returns it
func (s *pgStore) CreateProperty(ctx context.Context, ownerID uuid.UUID, input PropertyInput) (*schema.Property, error) {
	property := propertyFromInput(input)
	property.ID = uuid.New()
	property.OwnerID = ownerID

	if err := s.db.WithContext(ctx).Create(&property).Error; err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	return &property, nil
}

// GetPropertyByID retrieves a property by ID, nil if not found
func (s *pgStore) GetPropertyByID(ctx context.Context, id uuid.UUID) (*schema.Property, error) {
	var property schema.Property
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return &property, nil
}

// GetPropertiesByIDs retrieves multiple properties preserving the order of ids
func (s *pgStore) GetPropertiesByIDs(ctx context.Context, ids []uuid.UUID) ([]*schema.Property, error) {
	if len(ids) == 0 {
		return []*schema.Property{}, nil
	}

	var properties []*schema.Property
	err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get properties by IDs: %w", err)
	}

	byID := make(map[uuid.UUID]*schema.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}

	ordered := make([]*schema.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	return ordered, nil
}

// UpdateProperty replaces the writable fields of a property
func (s *pgStore) UpdateProperty(ctx context.Context, id uuid.UUID, input PropertyInput) (*schema.Property, error) {
	updated := propertyFromInput(input)

	result := s.db.WithContext(ctx).
		Model(&schema.Property{}).
		Where("id = ?", id).
		Select("*").
		Omit("id", "owner_id", "created_at", "verified").
		Updates(&updated)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrPropertyNotFound
	}

	return s.GetPropertyByID(ctx, id)
}

// DeleteProperty removes a property and its dependent rows
func (s *pgStore) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&schema.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		if err := tx.Where("property_id = ?", id).Delete(&schema.Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}
		if err := tx.Where("property_id = ?", id).Delete(&schema.Inquiry{}).Error; err != nil {
			return fmt.Errorf("failed to delete inquiries: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&schema.Property{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete property: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrPropertyNotFound
		}

		return nil
	})
}

// ListProperties retrieves properties matching the coarse filter, newest first
func (s *pgStore) ListProperties(ctx context.Context, filter PropertyFilter) ([]*schema.Property, error) {
	query := s.db.WithContext(ctx).Model(&schema.Property{})

	if filter.ListingType != nil {
		query = query.Where("listing_type = ?", *filter.ListingType)
	}
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}

	var properties []*schema.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	return properties, nil
}

// UpsertUser creates or updates the profile for the given subject ID
func (s *pgStore) UpsertUser(ctx context.Context, id uuid.UUID, input UserInput) (*schema.User, error) {
	user := schema.User{
		ID:            id,
		Email:         input.Email,
		DisplayName:   input.DisplayName,
		AvatarURL:     input.AvatarURL,
		WalletAddress: input.WalletAddress,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "avatar_url", "wallet_address", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID, nil if not found
func (s *pgStore) GetUserByID(ctx context.Context, id uuid.UUID) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// AddFavorite records that userID favorited propertyID
func (s *pgStore) AddFavorite(ctx context.Context, userID, propertyID uuid.UUID) error {
	favorite := schema.Favorite{
		UserID:     userID,
		PropertyID: propertyID,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "property_id"}},
		DoNothing: true,
	}).Create(&favorite)
	if result.Error != nil {
		return fmt.Errorf("failed to add favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrDuplicateFavorite
	}

	return nil
}

// RemoveFavorite deletes a favorite, no-op when absent
func (s *pgStore) RemoveFavorite(ctx context.Context, userID, propertyID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&schema.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

// ListFavoriteProperties retrieves the properties a user favorited, newest favorite first
func (s *pgStore) ListFavoriteProperties(ctx context.Context, userID uuid.UUID) ([]*schema.Property, error) {
	var properties []*schema.Property
	err := s.db.WithContext(ctx).
		Model(&schema.Property{}).
		Joins("JOIN favorites ON favorites.property_id = properties.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite properties: %w", err)
	}

	return properties, nil
}

// IsFavorite reports whether userID has favorited propertyID
func (s *pgStore) IsFavorite(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return count > 0, nil
}

// CreateSavedSearch persists a named search for a user
func (s *pgStore) CreateSavedSearch(ctx context.Context, userID uuid.UUID, name string, criteria []byte) (*schema.SavedSearch, error) {
	search := schema.SavedSearch{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Criteria: datatypes.JSON(criteria),
	}

	if err := s.db.WithContext(ctx).Create(&search).Error; err != nil {
		return nil, fmt.Errorf("failed to create saved search: %w", err)
	}

	return &search, nil
}

// ListSavedSearches retrieves a user's saved searches, newest first
func (s *pgStore) ListSavedSearches(ctx context.Context, userID uuid.UUID) ([]*schema.SavedSearch, error) {
	var searches []*schema.SavedSearch
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&searches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}

	return searches, nil
}

// DeleteSavedSearch removes a saved search owned by userID
func (s *pgStore) DeleteSavedSearch(ctx context.Context, userID, searchID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", searchID, userID).
		Delete(&schema.SavedSearch{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved search: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSavedSearchNotFound
	}

	return nil
}

// CreateMessage records a message between two users about a property
func (s *pgStore) CreateMessage(ctx context.Context, input MessageInput) (*schema.Message, error) {
	message := schema.Message{
		ID:          uuid.New(),
		PropertyID:  input.PropertyID,
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Body:        input.Body,
	}

	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return &message, nil
}

// ListMessagesByParticipant retrieves every message a user sent or received, oldest first
func (s *pgStore) ListMessagesByParticipant(ctx context.Context, userID uuid.UUID) ([]*schema.Message, error) {
	var messages []*schema.Message
	err := s.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// ListThreadMessages retrieves the messages between two users about one property, oldest first
func (s *pgStore) ListThreadMessages(ctx context.Context, propertyID, userID, counterpartID uuid.UUID) ([]*schema.Message, error) {
	var messages []*schema.Message
	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Where(
			s.db.Where("sender_id = ? AND recipient_id = ?", userID, counterpartID).
				Or("sender_id = ? AND recipient_id = ?", counterpartID, userID),
		).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list thread messages: %w", err)
	}

	return messages, nil
}

// MarkThreadRead marks messages sent to userID within a thread as read
func (s *pgStore) MarkThreadRead(ctx context.Context, propertyID, userID, counterpartID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Message{}).
		Where("property_id = ? AND sender_id = ? AND recipient_id = ? AND read = ?", propertyID, counterpartID, userID, false).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark thread read: %w", err)
	}

	return nil
}

// CreateInquiry records an inquiry against a property
func (s *pgStore) CreateInquiry(ctx context.Context, input InquiryInput) (*schema.Inquiry, error) {
	inquiry := schema.Inquiry{
		ID:         uuid.New(),
		PropertyID: input.PropertyID,
		Name:       input.Name,
		Email:      input.Email,
		Body:       input.Body,
		Status:     domain.InquiryStatusNew,
	}

	if err := s.db.WithContext(ctx).Create(&inquiry).Error; err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	return &inquiry, nil
}

// GetInquiryByID retrieves an inquiry by ID, nil if not found
func (s *pgStore) GetInquiryByID(ctx context.Context, inquiryID uuid.UUID) (*schema.Inquiry, error) {
	var inquiry schema.Inquiry
	err := s.db.WithContext(ctx).Where("id = ?", inquiryID).First(&inquiry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}

	return &inquiry, nil
}

// ListInquiriesByProperty retrieves a property's inquiries, newest first
func (s *pgStore) ListInquiriesByProperty(ctx context.Context, propertyID uuid.UUID) ([]*schema.Inquiry, error) {
	var inquiries []*schema.Inquiry
	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	return inquiries, nil
}

// UpdateInquiryStatus transitions an inquiry's status
func (s *pgStore) UpdateInquiryStatus(ctx context.Context, inquiryID uuid.UUID, status domain.InquiryStatus) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Inquiry{}).
		Where("id = ?", inquiryID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update inquiry status: %w", result.Error)
	}

	return nil
}

// UpsertExchangeRates stores freshly fetched USD prices
func (s *pgStore) UpsertExchangeRates(ctx context.Context, rates []RateUpsert) error {
	if len(rates) == 0 {
		return nil
	}

	rows := make([]schema.ExchangeRate, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, schema.ExchangeRate{
			Currency:  r.Currency,
			USDPrice:  r.USDPrice,
			FetchedAt: r.FetchedAt,
		})
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"usd_price", "fetched_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rates: %w", err)
	}

	return nil
}

// GetExchangeRates retrieves the stored rate snapshot
func (s *pgStore) GetExchangeRates(ctx context.Context) ([]*schema.ExchangeRate, error) {
	var rates []*schema.ExchangeRate
	if err := s.db.WithContext(ctx).Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to get exchange rates: %w", err)
	}

	return rates, nil
}
