package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SavedSearch represents the saved_searches table - named filter criteria a
// user has stored for reuse.
type SavedSearch struct {
	// ID is the saved search identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// UserID references the owner of the saved search
	UserID uuid.UUID `gorm:"column:user_id;not null;type:uuid;index"`
	// Name is the user-chosen label
	Name string `gorm:"column:name;not null;type:text"`
	// Criteria holds the serialized filter criteria as JSON
	Criteria  datatypes.JSON `gorm:"column:criteria;not null;type:jsonb"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the SavedSearch model
func (SavedSearch) TableName() string {
	return "saved_searches"
}
