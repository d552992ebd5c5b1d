package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Part struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SystemID    uuid.UUID      `gorm:"type:uuid;index;not null;column:system_id" json:"system_id"`
	Name        string         `gorm:"size:100;not null;column:name" json:"name"`
	Role        string         `gorm:"size:50;column:role" json:"role"`
	Description string         `gorm:"type:text;column:description" json:"description"`
	ImageURL    string         `gorm:"column:image_url" json:"image_url"`
	Feelings    datatypes.JSON `gorm:"type:jsonb;column:feelings" json:"feelings"`
	Beliefs     datatypes.JSON `gorm:"type:jsonb;column:beliefs" json:"beliefs"`
	Triggers    datatypes.JSON `gorm:"type:jsonb;column:triggers" json:"triggers"`
	Needs       datatypes.JSON `gorm:"type:jsonb;column:needs" json:"needs"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Part) TableName() string {
	return "parts"
}

// EncodeStringList marshals a list field for storage. A nil list encodes
// as an empty array, never null.
func EncodeStringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

// DecodeStringList is tolerant of null/empty/malformed column values.
func DecodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []string{}
	}
	return items
}
