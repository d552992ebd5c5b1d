package types

import (
	"time"

	"github.com/google/uuid"
)

// UserToken stores a hashed refresh token; the raw token is only ever
// returned to the client.
type UserToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	TokenHash string    `gorm:"not null;column:token_hash" json:"-"`
	ExpiresAt time.Time `gorm:"not null;column:expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (UserToken) TableName() string {
	return "user_tokens"
}
