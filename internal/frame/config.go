package frame

// Config holds gate tunables.
type Config struct {
	Width              int
	Height             int
	ColorTolerance     float64
	ScrollThreshold    float64
	MaxScrollReversals int
}

// DefaultConfig returns the thresholds tuned for 720p captures.
func DefaultConfig() Config {
	return Config{
		Width:              Width,
		Height:             Height,
		ColorTolerance:     DefaultColorTolerance,
		ScrollThreshold:    DefaultScrollThreshold,
		MaxScrollReversals: DefaultMaxScrollReversals,
	}
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 || c.Height <= 0 {
		c.Width, c.Height = Width, Height
	}
	if c.ColorTolerance <= 0 {
		c.ColorTolerance = DefaultColorTolerance
	}
	if c.ScrollThreshold <= 0 {
		c.ScrollThreshold = DefaultScrollThreshold
	}
	if c.MaxScrollReversals <= 0 {
		c.MaxScrollReversals = DefaultMaxScrollReversals
	}
	return c
}
