package generation

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storybook-app/internal/domain/stories"
)

type ThemeRef struct {
	ID        string
	IsPrimary bool
}

type IllustrationInput struct {
	Path     string
	Position int
}

// StoryInput carries everything the create/update contracts accept.
type StoryInput struct {
	Title         string
	Content       string
	AgeRange      string
	Locale        string
	DayLabel      string
	WeekNumber    int
	Themes        []ThemeRef
	SeriesID      string
	SeriesName    string
	Illustrations []IllustrationInput
}

// StoryPersister wraps story writes in single transactions and invalidates
// the theme cache after a successful write.
type StoryPersister struct {
	db    *gorm.DB
	cache ThemeCache
}

func NewStoryPersister(db *gorm.DB, cache ThemeCache) *StoryPersister {
	return &StoryPersister{db: db, cache: cache}
}

func (p *StoryPersister) validate(in StoryInput) (dayOrder int, err error) {
	if len(in.Themes) == 0 {
		return 0, ErrNoThemesResolved
	}
	if !stories.ValidAgeRange(in.AgeRange) {
		return 0, fmt.Errorf("unknown age range %q", in.AgeRange)
	}
	dayOrder, ok := stories.DayOrder(in.DayLabel)
	if !ok {
		return 0, fmt.Errorf("unknown day label %q", in.DayLabel)
	}
	if in.WeekNumber <= 0 {
		return 0, fmt.Errorf("week number must be positive, got %d", in.WeekNumber)
	}
	return dayOrder, nil
}

// Create inserts the story, its theme associations, and any illustrations in
// one transaction. Version starts at 1.
func (p *StoryPersister) Create(in StoryInput) (*stories.Story, error) {
	dayOrder, err := p.validate(in)
	if err != nil {
		return nil, err
	}

	locale := in.Locale
	if locale == "" {
		locale = "fr"
	}

	// Series resolution precedes the story transaction; a series created
	// here survives a story rollback.
	seriesID, err := resolveSeries(p.db, in.SeriesID, in.SeriesName)
	if err != nil {
		return nil, err
	}

	var created stories.Story
	err = p.db.Transaction(func(tx *gorm.DB) error {
		s := stories.Story{
			Title:      in.Title,
			Content:    in.Content,
			AgeRange:   in.AgeRange,
			Locale:     locale,
			WeekNumber: in.WeekNumber,
			DayOrder:   dayOrder,
			SeriesID:   seriesID,
			Version:    1,
		}
		if err := tx.Create(&s).Error; err != nil {
			return err
		}

		for _, t := range in.Themes {
			row := stories.StoryTheme{StoryID: s.ID, ThemeID: t.ID, IsPrimary: t.IsPrimary}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for _, il := range in.Illustrations {
			row := stories.Illustration{StoryID: s.ID, Path: il.Path, Position: il.Position}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.cache.Invalidate()
	return &created, nil
}

// Update snapshots the current story into a StoryVersion row (plus one
// StoryVersionTheme per current association), then applies the new fields
// with version = old + 1 and replaces the theme set, all in one transaction.
// A missing story id surfaces gorm.ErrRecordNotFound.
func (p *StoryPersister) Update(id string, in StoryInput) (*stories.Story, error) {
	dayOrder, err := p.validate(in)
	if err != nil {
		return nil, err
	}

	var updated stories.Story
	err = p.db.Transaction(func(tx *gorm.DB) error {
		var cur stories.Story
		if err := tx.First(&cur, "id = ?", id).Error; err != nil {
			return err
		}
		var curThemes []stories.StoryTheme
		if err := tx.Find(&curThemes, "story_id = ?", id).Error; err != nil {
			return err
		}

		snap := stories.StoryVersion{
			StoryID:  cur.ID,
			Title:    cur.Title,
			Content:  cur.Content,
			AgeRange: cur.AgeRange,
			Version:  cur.Version,
		}
		if err := tx.Create(&snap).Error; err != nil {
			return err
		}
		for _, st := range curThemes {
			row := stories.StoryVersionTheme{StoryVersionID: snap.ID, ThemeID: st.ThemeID, IsPrimary: st.IsPrimary}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		seriesID, err := resolveSeries(tx, in.SeriesID, in.SeriesName)
		if err != nil {
			return err
		}
		if seriesID == nil {
			seriesID = cur.SeriesID
		}

		updates := map[string]interface{}{
			"title":       in.Title,
			"content":     in.Content,
			"age_range":   in.AgeRange,
			"locale":      cur.Locale,
			"week_number": in.WeekNumber,
			"day_order":   dayOrder,
			"series_id":   seriesID,
			"version":     cur.Version + 1,
		}
		if in.Locale != "" {
			updates["locale"] = in.Locale
		}
		if err := tx.Model(&stories.Story{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Delete(&stories.StoryTheme{}, "story_id = ?", id).Error; err != nil {
			return err
		}
		for _, t := range in.Themes {
			row := stories.StoryTheme{StoryID: id, ThemeID: t.ID, IsPrimary: t.IsPrimary}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	p.cache.Invalidate()
	return &updated, nil
}

// resolveSeries resolves by id when given, else by name, creating a series
// row when no name match exists. Both empty means no series.
func resolveSeries(db *gorm.DB, id, name string) (*string, error) {
	if id != "" {
		var s stories.Series
		if err := db.First(&s, "id = ?", id).Error; err != nil {
			return nil, fmt.Errorf("series %s: %w", id, err)
		}
		return &s.ID, nil
	}
	if name == "" {
		return nil, nil
	}

	var s stories.Series
	err := db.First(&s, "name = ?", name).Error
	if err == nil {
		return &s.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = stories.Series{Name: name}
	if err := db.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s.ID, nil
}
