package video

import (
	"image"

	"github.com/disintegration/imaging"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

// Still yields a single image once.
type Still struct {
	frame *image.RGBA
}

// OpenStill decodes an image file, honoring EXIF orientation.
func OpenStill(path string) (*Still, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeInvalidArgument, "cannot decode image %s", path)
	}
	return NewStill(img), nil
}

// NewStill wraps an already decoded image.
func NewStill(img image.Image) *Still {
	return &Still{frame: Normalize(img)}
}

// Read implements Source.
func (s *Still) Read() (*image.RGBA, bool) {
	f := s.frame
	s.frame = nil
	return f, f != nil
}

// Close implements Source.
func (s *Still) Close() error {
	s.frame = nil
	return nil
}
