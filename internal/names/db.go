package names

import (
	"slices"
	"strings"
)

// DB is the immutable set of canonical item names of one locale.
type DB struct {
	locale string
	items  map[string]struct{}
	sorted []string
	seqs   [][]string // sorted[i] split into characters
}

// NewDB builds a database from items; duplicates are ignored.
func NewDB(locale string, items []string) *DB {
	db := &DB{locale: locale, items: make(map[string]struct{}, len(items))}
	for _, item := range items {
		db.items[item] = struct{}{}
	}

	db.sorted = make([]string, 0, len(db.items))
	for item := range db.items {
		db.sorted = append(db.sorted, item)
	}
	slices.Sort(db.sorted)

	db.seqs = make([][]string, len(db.sorted))
	for i, item := range db.sorted {
		db.seqs[i] = chars(item)
	}
	return db
}

// Locale returns the locale code the database belongs to.
func (db *DB) Locale() string { return db.locale }

// Len returns the number of distinct items.
func (db *DB) Len() int { return len(db.sorted) }

// Contains reports whether name is a canonical item name.
func (db *DB) Contains(name string) bool {
	_, ok := db.items[name]
	return ok
}

// Count returns how many of names are canonical item names.
func (db *DB) Count(names []string) int {
	n := 0
	for _, name := range names {
		if db.Contains(name) {
			n++
		}
	}
	return n
}

func chars(s string) []string {
	return strings.Split(s, "")
}
