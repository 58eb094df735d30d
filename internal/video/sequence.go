package video

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

// Sequence reads numbered stills such as "frame_%d.png" until the first
// missing index.
type Sequence struct {
	pattern string
	next    int
}

// OpenSequence locates the first frame of pattern.
func OpenSequence(pattern string) (*Sequence, error) {
	for start := 0; start <= maxSequenceStart; start++ {
		if _, err := os.Stat(fmt.Sprintf(pattern, start)); err == nil {
			return &Sequence{pattern: pattern, next: start}, nil
		}
	}
	return nil, apperr.Newf(apperr.CodeNotFound, "File not found: %q", pattern)
}

// Read implements Source.
func (s *Sequence) Read() (*image.RGBA, bool) {
	path := fmt.Sprintf(s.pattern, s.next)
	img, err := imaging.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("sequence frame unreadable", "path", path, "error", err)
		}
		return nil, false
	}
	s.next++
	return Normalize(img), true
}

// Close implements Source.
func (s *Sequence) Close() error { return nil }
