// Package rows slices catalog list crops into per-item row images and
// removes rows that were already seen.
package rows

// Row grid geometry, relative to the gray list crop.
const (
	// Pitch between separator lines in pixels.
	RowPitch = 53.45

	// Reference column pixels darker than this are separator dashes.
	LineThreshold = 200

	// A row spans from RowTop to RowBottom pixels above its separator line.
	RowTop    = 40
	RowBottom = 5

	// Columns left of NameWidth hold the item name.
	NameWidth = 415

	// Columns from PriceStart hold the price label.
	PriceStart = 430
)

// Brightness thresholds
const (
	// A price label whose darkest pixel is brighter than this shows no price.
	PriceBlankMin = 100

	// A row whose darkest pixel is brighter than this holds no text.
	BlankMin = 150
)

// Frame comparison
const (
	// Mean absolute pixel difference below which two row images match.
	DiffThreshold = 4.0

	// Batches must be longer than this for the non-advancing check.
	MinDuplicateRows = 4

	// Item scrolls tolerated per scan; the scan fails when the count
	// reaches this value.
	MaxItemScrolls = 20

	// Side of the average-hash grid used for deduplication.
	HashSize = 16
)
