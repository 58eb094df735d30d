package rows

import (
	"errors"
	"image"
	"log/slog"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/resilience"
)

// Stride between parsed frames: one page scroll spans about three frames.
const FrameStride = 3

// Accumulator collects rows across the accepted frames of one scan.
type Accumulator struct {
	classifier  *Classifier
	itemScrolls *resilience.Budget
	rows        []*image.Gray
	frames      int
	unfinished  bool
	duplicates  int
}

// NewAccumulator creates an accumulator that fails once maxItemScrolls item
// scrolls were seen.
func NewAccumulator(classifier *Classifier, maxItemScrolls int) *Accumulator {
	if maxItemScrolls <= 0 {
		maxItemScrolls = MaxItemScrolls
	}
	return &Accumulator{
		classifier:  classifier,
		itemScrolls: resilience.NewCountBudget(maxItemScrolls),
	}
}

// Want reports whether the next accepted frame should be parsed and
// advances the frame counter. Every third frame is parsed, plus the one
// right after a partially rendered page.
func (a *Accumulator) Want() bool {
	i := a.frames
	a.frames++
	return a.unfinished || i%FrameStride == 0
}

// Add merges the rows of one parsed frame. It returns false when the batch
// was dropped as a non-advancing frame.
func (a *Accumulator) Add(batch []*image.Gray) (bool, error) {
	if a.classifier.Duplicate(a.rows, batch) {
		a.duplicates++
		return false, nil
	}

	a.unfinished = a.classifier.Partial(batch)

	if err := a.itemScrolls.Record(a.classifier.ItemScroll(a.rows, batch)); err != nil {
		if errors.Is(err, resilience.ErrBudgetExceeded) {
			return false, apperr.New(apperr.CodeScrollTooSlow, "Video is scrolling too slowly.")
		}
		return false, err
	}

	a.rows = append(a.rows, batch...)
	return true, nil
}

// Finish checks that rows were found and returns them deduplicated.
func (a *Accumulator) Finish() ([]*image.Gray, error) {
	if len(a.rows) == 0 {
		return nil, apperr.New(apperr.CodeNoItems, "No items found, invalid video?")
	}
	out := Dedupe(a.rows)
	slog.Debug("rows accumulated",
		"frames", a.frames, "rows", len(a.rows), "unique", len(out),
		"duplicate_frames", a.duplicates, "item_scrolls", a.itemScrolls.Failures())
	return out, nil
}
