package video

import "image"

// Slice serves frames from memory.
type Slice struct {
	frames []*image.RGBA
	closed bool
}

// NewSlice creates a source over frames.
func NewSlice(frames ...*image.RGBA) *Slice {
	return &Slice{frames: frames}
}

// Read implements Source.
func (s *Slice) Read() (*image.RGBA, bool) {
	if s.closed || len(s.frames) == 0 {
		return nil, false
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, true
}

// Close implements Source.
func (s *Slice) Close() error {
	s.closed = true
	s.frames = nil
	return nil
}
