package frame

// ScrollTracker keeps the scrollbar offsets of consecutive accepted frames.
type ScrollTracker struct {
	maxReversals int
	positions    []int
}

// NewScrollTracker creates a tracker that tolerates maxReversals deltas in
// each direction before reporting inconsistency.
func NewScrollTracker(maxReversals int) *ScrollTracker {
	if maxReversals <= 0 {
		maxReversals = DefaultMaxScrollReversals
	}
	return &ScrollTracker{maxReversals: maxReversals}
}

// Record appends an offset and reports whether the history is now
// inconsistent.
func (t *ScrollTracker) Record(offset int) bool {
	t.positions = append(t.positions, offset)
	return t.Inconsistent()
}

// Inconsistent reports whether the history holds more than maxReversals
// downward deltas and more than maxReversals upward deltas.
func (t *ScrollTracker) Inconsistent() bool {
	down, up := t.Deltas()
	return down > t.maxReversals && up > t.maxReversals
}

// Deltas counts positive (down) and negative (up) consecutive differences.
func (t *ScrollTracker) Deltas() (down, up int) {
	for i := 1; i < len(t.positions); i++ {
		switch d := t.positions[i] - t.positions[i-1]; {
		case d > 0:
			down++
		case d < 0:
			up++
		}
	}
	return down, up
}

// Reset clears the history, e.g. when the catalog leaves the screen.
func (t *ScrollTracker) Reset() {
	t.positions = t.positions[:0]
}
