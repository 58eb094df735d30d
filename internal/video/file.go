package video

import (
	"fmt"
	"image"
	"log/slog"

	"gocv.io/x/gocv"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

// File decodes a video file with OpenCV.
type File struct {
	cap    *gocv.VideoCapture
	mat    gocv.Mat
	frames int
}

// OpenFile opens a video for reading.
func OpenFile(path string) (*File, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeInvalidArgument, "cannot open video %s", path)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, apperr.Newf(apperr.CodeInvalidArgument, "cannot open video %s", path)
	}
	slog.Debug("video opened", "path", path,
		"fps", vc.Get(gocv.VideoCaptureFPS), "frames", vc.Get(gocv.VideoCaptureFrameCount))
	return &File{cap: vc, mat: gocv.NewMat()}, nil
}

// Read implements Source.
func (f *File) Read() (*image.RGBA, bool) {
	if ok := f.cap.Read(&f.mat); !ok || f.mat.Empty() {
		return nil, false
	}
	img, err := f.mat.ToImage()
	if err != nil {
		slog.Warn("frame conversion failed", "frame", f.frames, "error", err)
		return nil, false
	}
	f.frames++
	return toRGBA(img), true
}

// Close releases the decoder.
func (f *File) Close() error {
	if err := f.mat.Close(); err != nil {
		return fmt.Errorf("close frame buffer: %w", err)
	}
	return f.cap.Close()
}
