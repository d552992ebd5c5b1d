package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JournalEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SystemID  uuid.UUID      `gorm:"type:uuid;index;not null;column:system_id" json:"system_id"`
	PartID    *uuid.UUID     `gorm:"type:uuid;index;column:part_id" json:"part_id"`
	Title     string         `gorm:"size:200;not null;column:title" json:"title"`
	Content   string         `gorm:"type:text;column:content" json:"content"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	Date      time.Time      `gorm:"not null;column:date" json:"date"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (JournalEntry) TableName() string {
	return "journals"
}
