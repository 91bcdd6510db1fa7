package schema

import (
	"time"

	"github.com/google/uuid"
)

// Message represents the messages table. Threads are not stored; they are
// derived at read time by grouping on (property_id, counterpart user id).
type Message struct {
	// ID is the message identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// PropertyID references the listing the conversation is about
	PropertyID uuid.UUID `gorm:"column:property_id;not null;type:uuid;index:idx_messages_property_parties,priority:1"`
	// SenderID and RecipientID reference the two participants
	SenderID    uuid.UUID `gorm:"column:sender_id;not null;type:uuid;index:idx_messages_property_parties,priority:2"`
	RecipientID uuid.UUID `gorm:"column:recipient_id;not null;type:uuid;index:idx_messages_property_parties,priority:3"`
	// Body is the free-text message content
	Body string `gorm:"column:body;not null;type:text"`
	// Read indicates the recipient has seen the message
	Read      bool      `gorm:"column:read;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
