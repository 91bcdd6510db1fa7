package schema

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Accounts are created by the external auth
// provider's signup flow; this table mirrors the subset of fields the
// application reads.
type User struct {
	// ID matches the auth provider's subject for the account
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// Email is the unique login email
	Email string `gorm:"column:email;not null;uniqueIndex;type:text"`
	// DisplayName is the public profile name
	DisplayName string `gorm:"column:display_name;not null;type:text"`
	// AvatarURL is an optional profile image
	AvatarURL *string `gorm:"column:avatar_url;type:text"`
	// Verified indicates the account passed identity verification
	Verified bool `gorm:"column:verified;not null;default:false"`
	// WalletAddress is an optional crypto wallet for receiving payments
	WalletAddress *string   `gorm:"column:wallet_address;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
