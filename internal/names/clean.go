package names

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean trims name, repairs known misrecognitions and applies NFKC
// normalization. lang is the Tesseract language the name was read with.
func Clean(name, lang string) string {
	name = strings.TrimSpace(name)
	for _, r := range replacements {
		name = strings.ReplaceAll(name, r.from, r.to)
	}

	name = norm.NFKC.String(name)

	for _, r := range languageReplacements[lang] {
		name = strings.ReplaceAll(name, r.from, r.to)
	}
	return name
}
