package stories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoryVersion is an immutable snapshot of a story taken before an update is
// applied. Rows are only ever inserted, never mutated or deleted.
type StoryVersion struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	StoryID string `gorm:"type:uuid;index;not null" json:"storyId"`

	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AgeRange string `gorm:"not null" json:"ageGroup"`
	Version  int    `gorm:"not null" json:"version"`

	Themes []StoryVersionTheme `gorm:"foreignKey:StoryVersionID;constraint:OnDelete:CASCADE;" json:"themes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (v *StoryVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

type StoryVersionTheme struct {
	StoryVersionID string `gorm:"type:uuid;primaryKey" json:"storyVersionId"`
	ThemeID        string `gorm:"type:uuid;primaryKey" json:"themeId"`
	IsPrimary      bool   `gorm:"not null;default:false" json:"isPrimary"`
}
