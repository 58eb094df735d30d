package names

import (
	"log/slog"

	"github.com/Nachtalb/CatalogScanner/internal/syncx"
)

// Cache loads each locale's database once and shares it between scans.
type Cache struct {
	dbs *syncx.OnceMap[string, *DB]
}

// NewCache creates a cache backed by loader.
func NewCache(loader Loader) *Cache {
	return &Cache{dbs: syncx.NewOnceMap(func(locale string) (*DB, error) {
		items, err := loader.Load(locale)
		if err != nil {
			return nil, err
		}
		db := NewDB(locale, items)
		slog.Debug("item database loaded", "locale", locale, "items", db.Len())
		return db, nil
	})}
}

// Get returns the database of locale.
func (c *Cache) Get(locale string) (*DB, error) {
	return c.dbs.Get(locale)
}

// Loaded returns the number of cached locales.
func (c *Cache) Loaded() int {
	return c.dbs.Len()
}
