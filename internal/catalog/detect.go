package catalog

import (
	"image"
	"image/color"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/frame"
	"github.com/Nachtalb/CatalogScanner/internal/video"
)

// DetectFunc reports whether a frame shows a mode's list.
type DetectFunc func(f *image.RGBA) (bool, error)

type detector struct {
	mode   Mode
	detect DetectFunc
}

// Checked in order; the first match wins.
var detectors = []detector{
	{ModeCatalog, frame.Detect},
	{ModeReactions, colorDetector(image.Rect(290, 370, 300, 380), color.RGBA{R: 244, G: 221, B: 254, A: 255})},
	{ModeStorage, colorDetector(image.Rect(1100, 0, 1150, 20), color.RGBA{R: 246, G: 198, B: 69, A: 255})},
}

// Tolerance of the background checks of the non-catalog lists.
const listColorTolerance = 5.0

func colorDetector(patch image.Rectangle, bg color.RGBA) DetectFunc {
	return func(f *image.RGBA) (bool, error) {
		return frame.ColorDistance(frame.PatchMean(f, patch), bg) < listColorTolerance, nil
	}
}

// DetectMode inspects up to video.DetectFrames frames of src and returns the
// first mode whose list is visible.
func DetectMode(src video.Source) (Mode, error) {
	src = video.Limit(src, video.DetectFrames)
	for {
		f, ok := src.Read()
		if !ok {
			break
		}
		if err := frame.CheckResolution(f, frame.Width, frame.Height); err != nil {
			return ModeAuto, err
		}
		for _, d := range detectors {
			found, err := d.detect(f)
			if err != nil {
				return ModeAuto, err
			}
			if found {
				return d.mode, nil
			}
		}
	}
	return ModeAuto, apperr.New(apperr.CodeInvalidArgument, "Media is not showing a known scan type.")
}
