// Package locale maps game locales to Tesseract languages and detects the
// locale of a scan from its rows.
package locale

import (
	"slices"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

const (
	// Auto asks for detection.
	Auto = "auto"

	// Default is used when the script cannot be detected at all.
	Default = "en-us"
)

// Tesseract language per supported locale.
var languages = map[string]string{
	Auto:    Auto,
	"de-eu": "deu",
	"en-eu": "eng",
	"en-us": "eng",
	"es-eu": "spa",
	"es-us": "spa",
	"fr-eu": "fra",
	"fr-us": "fra",
	"it-eu": "ita",
	"ja-jp": "jpn",
	"ko-kr": "kor",
	"nl-eu": "nld",
	"ru-eu": "rus",
	"zh-cn": "chi_sim",
	"zh-tw": "chi_tra",
}

// Locales written in each script Tesseract can report. The order is the
// tie-break order of detection.
var scripts = map[string][]string{
	"Japanese": {"ja-jp"},
	"Cyrillic": {"ru-eu"},
	"HanS":     {"zh-cn"},
	"HanT":     {"zh-tw"},
	"Hangul":   {"ko-kr"},
	"Latin":    {"en-us", "en-eu", "fr-eu", "fr-us", "de-eu", "es-eu", "es-us", "it-eu", "nl-eu"},
}

// Language returns the Tesseract language of locale.
func Language(locale string) (string, error) {
	lang, ok := languages[locale]
	if !ok {
		return "", apperr.Newf(apperr.CodeInvalidArgument, "unsupported locale %q", locale).
			WithMetadata("locale", locale)
	}
	return lang, nil
}

// Validate fails for locales that are neither supported nor Auto.
func Validate(locale string) error {
	_, err := Language(locale)
	return err
}

// Supported returns every locale code including Auto, sorted.
func Supported() []string {
	out := make([]string, 0, len(languages))
	for l := range languages {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Candidates returns the locales written in script, or nil.
func Candidates(script string) []string {
	return slices.Clone(scripts[script])
}
