package generation

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"storybook-app/internal/domain/themes"
)

// ThemeResolver maps theme descriptors to catalog rows, creating rows lazily
// on first reference. It never deletes themes.
type ThemeResolver struct {
	db    *gorm.DB
	cache ThemeCache
}

func NewThemeResolver(db *gorm.DB, cache ThemeCache) *ThemeResolver {
	return &ThemeResolver{db: db, cache: cache}
}

// Resolve returns the theme matching the descriptor's name
// (case-insensitively), creating it when absent. A creation invalidates the
// cache so the next catalog read repopulates it.
func (r *ThemeResolver) Resolve(d ThemeDescriptor) (*themes.Theme, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, fmt.Errorf("theme descriptor has no name")
	}

	if t, ok := r.cache.Get(name); ok {
		return t, nil
	}

	var existing themes.Theme
	err := r.db.First(&existing, "LOWER(name) = LOWER(?)", name).Error
	if err == nil {
		r.cache.Put(&existing)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := themes.Theme{
		Name:        name,
		Description: d.Description,
		Color:       d.Color,
		Icon:        d.Icon,
	}
	if err := r.db.Create(&t).Error; err != nil {
		return nil, err
	}
	r.cache.Invalidate()
	return &t, nil
}

// ResolveAll resolves every descriptor of a record. A record with no usable
// descriptor falls back to one synthetic descriptor built from the batch's
// weekly theme name; zero themes after that is ErrNoThemesResolved and the
// record must not reach the persister.
func (r *ThemeResolver) ResolveAll(rec StoryRecord) ([]*themes.Theme, error) {
	var resolved []*themes.Theme
	for _, d := range rec.ThemeDescriptors {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		t, err := r.Resolve(d)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, t)
	}

	if len(resolved) == 0 && strings.TrimSpace(rec.WeeklyThemeFallback) != "" {
		t, err := r.Resolve(ThemeDescriptor{Name: rec.WeeklyThemeFallback})
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, t)
	}

	if len(resolved) == 0 {
		return nil, ErrNoThemesResolved
	}
	return resolved, nil
}
