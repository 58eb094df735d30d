// Package video provides frame sources: video files through OpenCV, still
// images, numbered image sequences and in-memory frames.
package video

import (
	"errors"
	"image"
	"image/draw"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

// Source yields frames in order. Read returns false once the source is
// exhausted. Sources are single pass and not safe for concurrent use.
type Source interface {
	Read() (*image.RGBA, bool)
	Close() error
}

// Open picks a source for path: a sequence when the name contains "%d", a
// still for image extensions, a video file otherwise.
func Open(path string) (Source, error) {
	if IsSequence(path) {
		return OpenSequence(path)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Newf(apperr.CodeNotFound, "File not found: %q", path)
		}
		return nil, apperr.Wrap(err, apperr.CodeInvalidArgument, "cannot stat media")
	}
	if IsStill(path) {
		return OpenStill(path)
	}
	return OpenFile(path)
}

// IsSequence reports whether path names a numbered image sequence.
func IsSequence(path string) bool {
	return strings.Contains(filepath.Base(path), "%d")
}

// IsStill reports whether path has a still image extension.
func IsStill(path string) bool {
	_, ok := stillExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Normalize converts img to RGBA and scales 1080p screenshots down to the
// 720p capture size. Other sizes are passed through for the gate to reject.
func Normalize(img image.Image) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == ScreenshotWidth && b.Dy() == ScreenshotHeight {
		img = imaging.Resize(img, FrameWidth, FrameHeight, imaging.Linear)
	}
	return toRGBA(img)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Limit stops src after n frames.
func Limit(src Source, n int) Source {
	return &limited{Source: src, left: n}
}

type limited struct {
	Source
	left int
}

func (l *limited) Read() (*image.RGBA, bool) {
	if l.left <= 0 {
		return nil, false
	}
	l.left--
	return l.Source.Read()
}
