package types

import (
	"time"

	"github.com/google/uuid"
)

// System is a user's internal family system, the root of the part /
// relationship / journal object graph. One per user.
type System struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (System) TableName() string {
	return "ifs_systems"
}
