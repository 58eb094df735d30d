// Package names cleans recognized item names and matches them against the
// per-locale item database.
package names

// Matcher thresholds
const (
	// Minimum similarity ratio for a fuzzy match.
	DefaultCutoff = 0.5

	// Share of names allowed to stay unmatched before the scan fails.
	DefaultMaxUnmatchedRatio = 0.3
)

// Substring fixes for frequent misrecognitions, applied in order.
var replacements = []struct{ from, to string }{
	{"Ao dai", "Áo dài"},
	{"Bail", "Ball"},
}

// Extra fixes per Tesseract language, applied after normalization.
var languageReplacements = map[string][]struct{ from, to string }{
	"rus": {
		{"Моок", "Nook"},
		{"пс.", "Inc."},
		{"тс.", "Inc."},
	},
}
