package themes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Theme is a catalog entry. Name is the natural key: lookups are
// case-insensitive and a name collision always resolves to the existing row.
type Theme struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *Theme) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
