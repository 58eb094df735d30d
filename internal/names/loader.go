package names

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

// Loader fetches the item names of a locale.
type Loader interface {
	Load(locale string) ([]string, error)
}

// FileLoader reads <Dir>/<locale>.json, a JSON array of strings.
type FileLoader struct {
	Dir string
}

// Load implements Loader.
func (l FileLoader) Load(locale string) ([]string, error) {
	path := filepath.Join(l.Dir, locale+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Newf(apperr.CodeNotFound, "no item database for locale %s", locale).
				WithMetadata("path", path)
		}
		return nil, fmt.Errorf("read item database: %w", err)
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeInternal, "parse item database %s", path)
	}
	return items, nil
}

// StaticLoader serves in-memory databases keyed by locale.
type StaticLoader map[string][]string

// Load implements Loader.
func (l StaticLoader) Load(locale string) ([]string, error) {
	items, ok := l[locale]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "no item database for locale %s", locale)
	}
	return items, nil
}
