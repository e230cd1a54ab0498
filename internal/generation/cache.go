package generation

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"storybook-app/internal/domain/themes"
)

// ThemeCache is the read cache consulted before the theme catalog. It is
// shared process-wide and unsynchronized with the database beyond one
// guarantee: the next read after Invalidate misses.
type ThemeCache interface {
	Get(name string) (*themes.Theme, bool)
	Put(t *themes.Theme)
	Invalidate()
}

type memoryThemeCache struct {
	c *gocache.Cache
}

func NewMemoryThemeCache() ThemeCache {
	return &memoryThemeCache{c: gocache.New(30*time.Minute, time.Hour)}
}

func (m *memoryThemeCache) Get(name string) (*themes.Theme, bool) {
	v, ok := m.c.Get(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return nil, false
	}
	t, ok := v.(*themes.Theme)
	return t, ok
}

func (m *memoryThemeCache) Put(t *themes.Theme) {
	m.c.Set(strings.ToLower(t.Name), t, gocache.DefaultExpiration)
}

func (m *memoryThemeCache) Invalidate() {
	m.c.Flush()
}
