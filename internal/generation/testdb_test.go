package generation

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storybook-app/database"
	"storybook-app/internal/domain/themes"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// fakeCache is a deterministic ThemeCache for asserting hit and
// invalidation timing.
type fakeCache struct {
	entries     map[string]*themes.Theme
	hits        int
	invalidates int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*themes.Theme{}}
}

func (f *fakeCache) Get(name string) (*themes.Theme, bool) {
	t, ok := f.entries[lower(name)]
	if ok {
		f.hits++
	}
	return t, ok
}

func (f *fakeCache) Put(t *themes.Theme) {
	f.entries[lower(t.Name)] = t
}

func (f *fakeCache) Invalidate() {
	f.invalidates++
	f.entries = map[string]*themes.Theme{}
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
