// Package ocr turns row images into text through a Tesseract engine.
package ocr

import "time"

// Engine settings
const (
	// Rows per engine call. Rows are 35px high and Tesseract rejects images
	// taller than 32767px.
	MaxChunkRows = 900

	// Uniform block of text with known orientation.
	BlockPageSegMode = 6

	// Orientation and script detection only.
	OSDPageSegMode = 0

	// Language used when the script is known but the locale is not.
	LatinScript = "script/Latin"

	DefaultTesseractBin = "tesseract"
	DefaultOSDTimeout   = 2 * time.Minute
)

// Languages written in logograms, which need their own engine tuning.
var logogramLanguages = map[string]bool{
	"jpn":     true,
	"chi_sim": true,
	"chi_tra": true,
}
