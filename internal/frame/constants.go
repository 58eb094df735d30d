// Package frame implements the per-frame acceptance gate for catalog videos.
package frame

import (
	"image"
	"image/color"
)

// Capture geometry. Frames from any source must already be this size.
const (
	Width  = 1280
	Height = 720
)

// Gate thresholds
const (
	// Max Euclidean RGB distance between the sampled side patch and a known
	// background color.
	DefaultColorTolerance = 10.0

	// Mean scrollbar-strip brightness below which the thumb starts.
	DefaultScrollThreshold = 150.0

	// Deltas allowed in each direction before the scroll history is judged
	// to go back and forth.
	DefaultMaxScrollReversals = 10
)

// Screen regions, in full-frame coordinates.
var (
	// Strip at the right edge whose color identifies the catalog variant.
	SidePatch = image.Rect(1260, 150, 1280, 160)

	// Scrollbar track; the thumb is darker than the track.
	ScrollbarStrip = image.Rect(1235, 160, 1245, 570)

	// Item list: names on the left, prices towards the right.
	ListRegion = image.Rect(635, 150, 1220, 630)
)

// Background colors of the side patch.
var (
	CatalogColor   = color.RGBA{R: 254, G: 253, B: 180, A: 255}
	WardellColor   = color.RGBA{R: 248, G: 214, B: 211, A: 255}
	NookMilesColor = color.RGBA{R: 200, G: 207, B: 243, A: 255}
)
