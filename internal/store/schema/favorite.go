package schema

import (
	"time"

	"github.com/google/uuid"
)

// Favorite represents the favorites table - a user's saved listings
type Favorite struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID and PropertyID form the unique pair; favoriting twice is a no-op
	UserID     uuid.UUID `gorm:"column:user_id;not null;type:uuid;uniqueIndex:idx_favorites_user_property,priority:1"`
	PropertyID uuid.UUID `gorm:"column:property_id;not null;type:uuid;uniqueIndex:idx_favorites_user_property,priority:2"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Favorite model
func (Favorite) TableName() string {
	return "favorites"
}
