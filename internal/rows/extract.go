package rows

import (
	"image"
	"iter"
	"math"
	"slices"
)

// ExtractConfig holds row grid settings.
type ExtractConfig struct {
	Pitch         float64
	LineThreshold uint8
	Top           int
	Bottom        int
	NameWidth     int
	PriceStart    int
	PriceBlankMin uint8
}

// DefaultExtractConfig returns the grid used by the 720p catalog list.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		Pitch:         RowPitch,
		LineThreshold: LineThreshold,
		Top:           RowTop,
		Bottom:        RowBottom,
		NameWidth:     NameWidth,
		PriceStart:    PriceStart,
		PriceBlankMin: PriceBlankMin,
	}
}

func (c ExtractConfig) withDefaults() ExtractConfig {
	d := DefaultExtractConfig()
	if c.Pitch <= 0 {
		c.Pitch = d.Pitch
	}
	if c.LineThreshold == 0 {
		c.LineThreshold = d.LineThreshold
	}
	if c.Top <= 0 {
		c.Top = d.Top
	}
	if c.Bottom <= 0 {
		c.Bottom = d.Bottom
	}
	if c.NameWidth <= 0 {
		c.NameWidth = d.NameWidth
	}
	if c.PriceStart <= 0 {
		c.PriceStart = d.PriceStart
	}
	if c.PriceBlankMin == 0 {
		c.PriceBlankMin = d.PriceBlankMin
	}
	return c
}

// Extractor slices a gray list crop into name-region row images.
type Extractor struct {
	cfg ExtractConfig
}

// NewExtractor creates an extractor with cfg.
func NewExtractor(cfg ExtractConfig) *Extractor {
	return &Extractor{cfg: cfg.withDefaults()}
}

// Rows yields one row image per grid position, top to bottom. Separator
// detections are only used to find the grid phase, so broken or missing
// dashes do not drop rows. With forSale set, rows without a price are
// skipped.
func (e *Extractor) Rows(crop *image.Gray, forSale bool) iter.Seq[*image.Gray] {
	return func(yield func(*image.Gray) bool) {
		phase, ok := e.phase(crop)
		if !ok {
			return
		}

		b := crop.Bounds()
		height := b.Dy()
		for k := 0; ; k++ {
			pos := phase + float64(k)*e.cfg.Pitch
			if pos >= float64(height) {
				return
			}
			y := int(pos)
			if y < e.cfg.Top {
				continue // partially offscreen
			}

			band := image.Rect(0, y-e.cfg.Top, b.Dx(), y-e.cfg.Bottom)
			if forSale && e.priceBlank(crop, band) {
				continue
			}
			band.Max.X = min(e.cfg.NameWidth, b.Dx())
			if !yield(Crop(crop, band)) {
				return
			}
		}
	}
}

// Extract collects Rows into a slice.
func (e *Extractor) Extract(crop *image.Gray, forSale bool) []*image.Gray {
	return slices.Collect(e.Rows(crop, forSale))
}

// phase returns the rounded median separator offset modulo the pitch.
func (e *Extractor) phase(crop *image.Gray) (float64, bool) {
	b := crop.Bounds()
	var offsets []float64
	for y := 0; y < b.Dy(); y++ {
		if crop.GrayAt(b.Min.X, b.Min.Y+y).Y < e.cfg.LineThreshold {
			offsets = append(offsets, math.Mod(float64(y), e.cfg.Pitch))
		}
	}
	if len(offsets) == 0 {
		return 0, false
	}
	return math.RoundToEven(median(offsets)), true
}

func (e *Extractor) priceBlank(crop *image.Gray, band image.Rectangle) bool {
	price := band
	price.Min.X = e.cfg.PriceStart
	if price.Empty() {
		return false
	}
	return Min(Crop(crop, price)) > e.cfg.PriceBlankMin
}

// median of values, averaging the two middle elements for even lengths.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
