package types

import (
	"time"

	"github.com/google/uuid"
)

// Relationship is a directed, typed edge between two parts. Multiple
// relationships may connect the same pair; source == target is allowed
// but unusual.
type Relationship struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SystemID         uuid.UUID `gorm:"type:uuid;index;not null;column:system_id" json:"system_id"`
	SourceID         uuid.UUID `gorm:"type:uuid;index;not null;column:source_id" json:"source_id"`
	TargetID         uuid.UUID `gorm:"type:uuid;index;not null;column:target_id" json:"target_id"`
	RelationshipType string    `gorm:"size:100;not null;column:relationship_type" json:"relationship_type"`
	Description      string    `gorm:"type:text;column:description" json:"description"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (Relationship) TableName() string {
	return "relationships"
}
