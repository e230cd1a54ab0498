package stories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Illustration references an uploaded image file by relative path. Files are
// produced by the upload flow; the generation pipeline only references them.
type Illustration struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	StoryID string `gorm:"type:uuid;index;not null" json:"-"`

	Path     string `gorm:"not null" json:"path"`
	Position int    `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Illustration) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
