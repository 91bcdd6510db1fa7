package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/domain"
)

// Inquiry represents the inquiries table - contact requests from visitors who
// are not necessarily registered users.
type Inquiry struct {
	// ID is the inquiry identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// PropertyID references the listing the inquiry is about
	PropertyID uuid.UUID `gorm:"column:property_id;not null;type:uuid;index"`
	// Name and Email identify the sender; no user account is required
	Name  string `gorm:"column:name;not null;type:text"`
	Email string `gorm:"column:email;not null;type:text"`
	// Body is the inquiry message
	Body string `gorm:"column:body;not null;type:text"`
	// Status tracks the owner's handling of the inquiry
	Status    domain.InquiryStatus `gorm:"column:status;not null;type:text;default:'new'"`
	CreatedAt time.Time            `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Inquiry model
func (Inquiry) TableName() string {
	return "inquiries"
}
