package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storybook-app/internal/domain/themes"
)

func TestResolve_CreatesThemeOnFirstReference(t *testing.T) {
	db := newTestDB(t)
	r := NewThemeResolver(db, newFakeCache())

	got, err := r.Resolve(ThemeDescriptor{Name: "Nature", Description: "d", Color: "#4CAF50", Icon: "🌿"})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Nature", got.Name)
	assert.Equal(t, "#4CAF50", got.Color)

	var count int64
	require.NoError(t, db.Model(&themes.Theme{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolve_SameNameNeverCreatesASecondRow(t *testing.T) {
	db := newTestDB(t)
	r := NewThemeResolver(db, newFakeCache())

	first, err := r.Resolve(ThemeDescriptor{Name: "Nature"})
	require.NoError(t, err)

	// different case, same natural key
	second, err := r.Resolve(ThemeDescriptor{Name: "nature"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&themes.Theme{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolve_CacheHitSkipsTheCatalog(t *testing.T) {
	db := newTestDB(t)
	cache := newFakeCache()
	r := NewThemeResolver(db, cache)

	_, err := r.Resolve(ThemeDescriptor{Name: "Courage"})
	require.NoError(t, err)
	// creation invalidates, so the entry is not cached yet
	assert.Equal(t, 1, cache.invalidates)

	// first lookup after the invalidation repopulates the cache from the DB
	_, err = r.Resolve(ThemeDescriptor{Name: "Courage"})
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)

	_, err = r.Resolve(ThemeDescriptor{Name: "courage"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

func TestResolve_EmptyNameIsRejected(t *testing.T) {
	r := NewThemeResolver(newTestDB(t), newFakeCache())
	_, err := r.Resolve(ThemeDescriptor{Name: "   "})
	assert.Error(t, err)
}

func TestResolveAll_WeeklyThemeFallback(t *testing.T) {
	db := newTestDB(t)
	r := NewThemeResolver(db, newFakeCache())

	rec := StoryRecord{Title: "Sans thème", WeeklyThemeFallback: "Les Saisons"}
	resolved, err := r.ResolveAll(rec)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "Les Saisons", resolved[0].Name)
}

func TestResolveAll_ZeroThemesAfterFallback(t *testing.T) {
	r := NewThemeResolver(newTestDB(t), newFakeCache())

	_, err := r.ResolveAll(StoryRecord{Title: "Rien"})
	assert.ErrorIs(t, err, ErrNoThemesResolved)
}

func TestResolveAll_SkipsNamelessDescriptors(t *testing.T) {
	r := NewThemeResolver(newTestDB(t), newFakeCache())

	rec := StoryRecord{ThemeDescriptors: []ThemeDescriptor{
		{Name: ""},
		{Name: "Amitié"},
	}}
	resolved, err := r.ResolveAll(rec)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "Amitié", resolved[0].Name)
}
