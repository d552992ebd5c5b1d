package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusActive   = "active"
	SessionStatusArchived = "archived"

	MessageRoleUser  = "user"
	MessageRoleGuide = "guide"
)

// GuidedSession is a guided exploration session with the AI guide.
type GuidedSession struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	SystemID           uuid.UUID  `gorm:"type:uuid;index;not null;column:system_id" json:"system_id"`
	Title              string     `gorm:"type:text;column:title" json:"title"`
	Topic              string     `gorm:"column:topic" json:"topic"`
	Summary            string     `gorm:"type:text;column:summary" json:"summary"`
	Status             string     `gorm:"default:active;column:status" json:"status"`
	CurrentFocusPartID *uuid.UUID `gorm:"type:uuid;column:current_focus_part_id" json:"current_focus_part_id"`
	CreatedAt          time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null" json:"updated_at"`
}

func (GuidedSession) TableName() string {
	return "guided_sessions"
}

type SessionMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;index;not null;column:session_id" json:"session_id"`
	Role      string    `gorm:"size:50;not null;column:role" json:"role"`
	Content   string    `gorm:"type:text;not null;column:content" json:"content"`
	Timestamp time.Time `gorm:"not null;column:timestamp" json:"timestamp"`
}

func (SessionMessage) TableName() string {
	return "session_messages"
}
