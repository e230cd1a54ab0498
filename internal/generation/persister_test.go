package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storybook-app/internal/domain/stories"
	"storybook-app/internal/domain/themes"
)

func seedTheme(t *testing.T, db *gorm.DB, name string) themes.Theme {
	t.Helper()
	th := themes.Theme{Name: name}
	require.NoError(t, db.Create(&th).Error)
	return th
}

func validInput(themeIDs ...string) StoryInput {
	in := StoryInput{
		Title:      "Le Petit Escargot",
		Content:    "Once upon a time...",
		AgeRange:   "3-5",
		DayLabel:   "Lundi",
		WeekNumber: 12,
	}
	for i, id := range themeIDs {
		in.Themes = append(in.Themes, ThemeRef{ID: id, IsPrimary: i == 0})
	}
	return in
}

func TestCreate_PersistsStoryThemesAndIllustrations(t *testing.T) {
	db := newTestDB(t)
	cache := newFakeCache()
	p := NewStoryPersister(db, cache)

	nature := seedTheme(t, db, "Nature")
	amitie := seedTheme(t, db, "Amitié")

	in := validInput(nature.ID, amitie.ID)
	in.SeriesName = "Les Amis du Jardin"
	in.Illustrations = []IllustrationInput{{Path: "uploads/escargot.png", Position: 1}}

	s, err := p.Create(in)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Version)
	assert.Equal(t, 1, s.DayOrder)
	assert.Equal(t, "fr", s.Locale)
	require.NotNil(t, s.SeriesID)

	var assoc []stories.StoryTheme
	require.NoError(t, db.Find(&assoc, "story_id = ?", s.ID).Error)
	require.Len(t, assoc, 2)

	var ills []stories.Illustration
	require.NoError(t, db.Find(&ills, "story_id = ?", s.ID).Error)
	require.Len(t, ills, 1)
	assert.Equal(t, "uploads/escargot.png", ills[0].Path)

	var series stories.Series
	require.NoError(t, db.First(&series, "id = ?", *s.SeriesID).Error)
	assert.Equal(t, "Les Amis du Jardin", series.Name)

	// no version snapshot on create
	var versions int64
	require.NoError(t, db.Model(&stories.StoryVersion{}).Count(&versions).Error)
	assert.EqualValues(t, 0, versions)

	assert.Equal(t, 1, cache.invalidates)
}

func TestCreate_RejectsZeroThemes(t *testing.T) {
	db := newTestDB(t)
	p := NewStoryPersister(db, newFakeCache())

	_, err := p.Create(validInput())
	assert.ErrorIs(t, err, ErrNoThemesResolved)

	var count int64
	require.NoError(t, db.Model(&stories.Story{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "no story row may be written without themes")
}

func TestCreate_RejectsUnknownDayAndAgeRange(t *testing.T) {
	db := newTestDB(t)
	p := NewStoryPersister(db, newFakeCache())
	th := seedTheme(t, db, "Nature")

	bad := validInput(th.ID)
	bad.DayLabel = "Blursday"
	_, err := p.Create(bad)
	assert.Error(t, err)

	bad = validInput(th.ID)
	bad.AgeRange = "40-60"
	_, err = p.Create(bad)
	assert.Error(t, err)
}

func TestCreate_ResolvesSeriesByID(t *testing.T) {
	db := newTestDB(t)
	p := NewStoryPersister(db, newFakeCache())
	th := seedTheme(t, db, "Nature")

	series := stories.Series{Name: "Contes du Soir"}
	require.NoError(t, db.Create(&series).Error)

	in := validInput(th.ID)
	in.SeriesID = series.ID
	s, err := p.Create(in)
	require.NoError(t, err)
	require.NotNil(t, s.SeriesID)
	assert.Equal(t, series.ID, *s.SeriesID)
}

func TestUpdate_SnapshotsPriorStateAndBumpsVersion(t *testing.T) {
	db := newTestDB(t)
	p := NewStoryPersister(db, newFakeCache())

	nature := seedTheme(t, db, "Nature")
	courage := seedTheme(t, db, "Courage")

	created, err := p.Create(validInput(nature.ID))
	require.NoError(t, err)

	up := validInput(courage.ID)
	up.Title = "Le Grand Escargot"
	up.Content = "A new beginning..."
	up.DayLabel = "Dimanche"

	updated, err := p.Update(created.ID, up)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "Le Grand Escargot", updated.Title)
	assert.Equal(t, 7, updated.DayOrder)

	// exactly one snapshot carrying the pre-update state
	var versions []stories.StoryVersion
	require.NoError(t, db.Find(&versions, "story_id = ?", created.ID).Error)
	require.Len(t, versions, 1)
	snap := versions[0]
	assert.Equal(t, "Le Petit Escargot", snap.Title)
	assert.Equal(t, "Once upon a time...", snap.Content)
	assert.Equal(t, created.Version, snap.Version)

	var snapThemes []stories.StoryVersionTheme
	require.NoError(t, db.Find(&snapThemes, "story_version_id = ?", snap.ID).Error)
	require.Len(t, snapThemes, 1)
	assert.Equal(t, nature.ID, snapThemes[0].ThemeID)

	// associations replaced with the new theme set
	var assoc []stories.StoryTheme
	require.NoError(t, db.Find(&assoc, "story_id = ?", created.ID).Error)
	require.Len(t, assoc, 1)
	assert.Equal(t, courage.ID, assoc[0].ThemeID)
}

func TestUpdate_EverySaveAddsASnapshot(t *testing.T) {
	db := newTestDB(t)
	p := NewStoryPersister(db, newFakeCache())
	th := seedTheme(t, db, "Nature")

	created, err := p.Create(validInput(th.ID))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = p.Update(created.ID, validInput(th.ID))
		require.NoError(t, err)
	}

	var s stories.Story
	require.NoError(t, db.First(&s, "id = ?", created.ID).Error)
	assert.Equal(t, 4, s.Version)

	var versions []stories.StoryVersion
	require.NoError(t, db.Order("version ASC").Find(&versions, "story_id = ?", created.ID).Error)
	require.Len(t, versions, 3)
	for i, v := range versions {
		assert.Equal(t, i+1, v.Version)
	}
}

func TestUpdate_MissingStoryIsNotFound(t *testing.T) {
	db := newTestDB(t)
	p := NewStoryPersister(db, newFakeCache())
	th := seedTheme(t, db, "Nature")

	_, err := p.Update("00000000-0000-0000-0000-000000000000", validInput(th.ID))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
