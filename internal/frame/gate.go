package frame

import (
	"image"
	"log/slog"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

// Gate decides which frames show the catalog list and tracks scrolling.
// A Gate belongs to a single scan.
type Gate struct {
	cfg     Config
	scroll  *ScrollTracker
	seen    int
	skipped int
}

// NewGate creates a gate with cfg.
func NewGate(cfg Config) *Gate {
	cfg = cfg.withDefaults()
	return &Gate{cfg: cfg, scroll: NewScrollTracker(cfg.MaxScrollReversals)}
}

// Accept reports whether f shows the catalog. Wrong resolution, unsupported
// catalog variants and back-and-forth scrolling are fatal errors; frames
// without the catalog are skipped and reset the scroll history.
func (g *Gate) Accept(f *image.RGBA) (bool, error) {
	g.seen++
	if err := CheckResolution(f, g.cfg.Width, g.cfg.Height); err != nil {
		return false, err
	}

	visible, err := detect(f, g.cfg.ColorTolerance)
	if err != nil {
		return false, err
	}
	if !visible {
		g.skipped++
		g.scroll.Reset()
		return false, nil
	}

	offset := ScrollOffset(f, ScrollbarStrip, g.cfg.ScrollThreshold)
	if g.scroll.Record(offset) {
		down, up := g.scroll.Deltas()
		slog.Debug("inconsistent scroll", "down", down, "up", up)
		return false, apperr.New(apperr.CodeInconsistentScroll, "Video is scrolling inconsistently.")
	}
	return true, nil
}

// Stats returns how many frames were inspected and how many were skipped.
func (g *Gate) Stats() (seen, skipped int) {
	return g.seen, g.skipped
}

// Detect reports whether f shows the supported catalog, using the default
// tolerance. Known unsupported catalogs are errors.
func Detect(f *image.RGBA) (bool, error) {
	return detect(f, DefaultColorTolerance)
}

func detect(f *image.RGBA, tolerance float64) (bool, error) {
	side := PatchMean(f, SidePatch)
	if ColorDistance(side, WardellColor) < tolerance {
		return false, apperr.New(apperr.CodeUnsupportedCatalog, "Wardell catalog is not supported.")
	}
	if ColorDistance(side, NookMilesColor) < tolerance {
		return false, apperr.New(apperr.CodeUnsupportedCatalog, "Nook Miles catalog is not supported.")
	}
	return ColorDistance(side, CatalogColor) < tolerance, nil
}

// CheckResolution fails unless f is exactly width x height.
func CheckResolution(f image.Image, width, height int) error {
	b := f.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return apperr.Newf(apperr.CodeInvalidResolution, "Invalid resolution: %dx%d", b.Dx(), b.Dy()).
			WithMetadata("want", "1280x720")
	}
	return nil
}
