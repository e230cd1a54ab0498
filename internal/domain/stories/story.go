package stories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Story struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	AgeRange string `gorm:"not null;index:idx_stories_age_week,priority:1" json:"ageGroup"`
	Locale   string `gorm:"not null;default:'fr'" json:"locale"`

	// WeekNumber is an arbitrary batch identifier, not an ISO calendar week.
	WeekNumber int `gorm:"not null;index:idx_stories_age_week,priority:2" json:"weekNumber"`
	// DayOrder is 1..7, Lundi=1 .. Dimanche=7; used for ordering inside a week.
	DayOrder int `gorm:"not null" json:"dayOrder"`

	SeriesID *string `gorm:"type:uuid;index" json:"seriesId,omitempty"`
	Series   *Series `gorm:"foreignKey:SeriesID" json:"series,omitempty"`

	Version int `gorm:"not null;default:1" json:"version"`

	Themes        []StoryTheme   `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE;" json:"themes,omitempty"`
	Illustrations []Illustration `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE;" json:"illustrations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Story) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type StoryTheme struct {
	StoryID   string `gorm:"type:uuid;primaryKey" json:"storyId"`
	ThemeID   string `gorm:"type:uuid;primaryKey" json:"themeId"`
	IsPrimary bool   `gorm:"not null;default:false" json:"isPrimary"`

	CreatedAt time.Time `json:"created_at"`
}
