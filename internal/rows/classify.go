package rows

import "image"

// ClassifyConfig holds the frame comparison thresholds.
type ClassifyConfig struct {
	DiffThreshold    float64
	MinDuplicateRows int
	BlankMin         uint8
}

// DefaultClassifyConfig returns the standard comparison thresholds.
func DefaultClassifyConfig() ClassifyConfig {
	return ClassifyConfig{
		DiffThreshold:    DiffThreshold,
		MinDuplicateRows: MinDuplicateRows,
		BlankMin:         BlankMin,
	}
}

func (c ClassifyConfig) withDefaults() ClassifyConfig {
	if c.DiffThreshold <= 0 {
		c.DiffThreshold = DiffThreshold
	}
	if c.MinDuplicateRows <= 0 {
		c.MinDuplicateRows = MinDuplicateRows
	}
	if c.BlankMin == 0 {
		c.BlankMin = BlankMin
	}
	return c
}

// Classifier compares a new batch of rows with the rows accumulated so far.
type Classifier struct {
	cfg ClassifyConfig
}

// NewClassifier creates a classifier with cfg.
func NewClassifier(cfg ClassifyConfig) *Classifier {
	return &Classifier{cfg: cfg.withDefaults()}
}

// Duplicate reports whether batch shows the same page as the tail of all.
// The last two rows are left out of the comparison since one of them may be
// highlighted by the cursor.
func (c *Classifier) Duplicate(all, batch []*image.Gray) bool {
	if !(len(all) > len(batch) && len(batch) > c.cfg.MinDuplicateRows) {
		return false
	}
	old := all[len(all)-5 : len(all)-2]
	cur := batch[len(batch)-5 : len(batch)-2]
	return meanAbsDiffAll(old, cur) < c.cfg.DiffThreshold
}

// ItemScroll reports whether batch is the previous rows shifted by a single
// position. Batches shorter than three rows are never classified.
func (c *Classifier) ItemScroll(all, batch []*image.Gray) bool {
	if len(all) < 3 || len(batch) < 3 {
		return false
	}
	if MeanAbsDiff(all[len(all)-2], batch[len(batch)-3]) < c.cfg.DiffThreshold {
		return true
	}
	return MeanAbsDiff(all[len(all)-3], batch[len(batch)-2]) < c.cfg.DiffThreshold
}

// Partial reports whether any row of batch is still blank, meaning the page
// was captured before the font finished rendering.
func (c *Classifier) Partial(batch []*image.Gray) bool {
	for _, r := range batch {
		if Min(r) > c.cfg.BlankMin {
			return true
		}
	}
	return false
}
