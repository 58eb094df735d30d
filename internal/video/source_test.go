package video

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestStillResizesScreenshots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screenshot.jpg")
	if err := imaging.Save(solid(ScreenshotWidth, ScreenshotHeight, color.White), path); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	f, ok := src.Read()
	if !ok {
		t.Fatal("Read() returned no frame")
	}
	if f.Bounds() != image.Rect(0, 0, FrameWidth, FrameHeight) {
		t.Errorf("bounds = %v, want 1280x720", f.Bounds())
	}
	if _, ok := src.Read(); ok {
		t.Error("still yielded a second frame")
	}
}

func TestStillKeepsOtherSizes(t *testing.T) {
	s := NewStill(solid(800, 600, color.Black))
	f, _ := s.Read()
	if f.Bounds().Dx() != 800 || f.Bounds().Dy() != 600 {
		t.Errorf("bounds = %v, want 800x600", f.Bounds())
	}
}

func TestSequence(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 3; i++ {
		if err := imaging.Save(solid(FrameWidth, FrameHeight, color.Gray{Y: uint8(i * 10)}), filepath.Join(dir, fmt.Sprintf("frame_%d.png", i))); err != nil {
			t.Fatal(err)
		}
	}

	src, err := Open(filepath.Join(dir, "frame_%d.png"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	n := 0
	for {
		f, ok := src.Read()
		if !ok {
			break
		}
		n++
		if got := f.RGBAAt(0, 0).R; got != uint8(n*10) {
			t.Errorf("frame %d value = %d, want %d", n, got, n*10)
		}
	}
	if n != 3 {
		t.Errorf("read %d frames, want 3", n)
	}
}

func TestOpenMissing(t *testing.T) {
	dir := t.TempDir()
	for _, path := range []string{
		filepath.Join(dir, "missing.mp4"),
		filepath.Join(dir, "missing_%d.png"),
	} {
		if _, err := Open(path); !apperr.IsCode(err, apperr.CodeNotFound) {
			t.Errorf("Open(%s) error = %v, want NOT_FOUND", filepath.Base(path), err)
		}
	}
}

func TestSliceAndLimit(t *testing.T) {
	frames := []*image.RGBA{
		image.NewRGBA(image.Rect(0, 0, 1, 1)),
		image.NewRGBA(image.Rect(0, 0, 1, 1)),
		image.NewRGBA(image.Rect(0, 0, 1, 1)),
	}
	src := Limit(NewSlice(frames...), 2)
	n := 0
	for {
		if _, ok := src.Read(); !ok {
			break
		}
		n++
	}
	if n != 2 {
		t.Errorf("read %d frames, want 2", n)
	}

	s := NewSlice(frames...)
	_ = s.Close()
	if _, ok := s.Read(); ok {
		t.Error("closed slice yielded a frame")
	}
}

func TestNormalizeRebasesSubImages(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 20, 20))
	full.SetRGBA(10, 10, color.RGBA{R: 255, A: 255})
	sub := full.SubImage(image.Rect(10, 10, 20, 20))

	got := Normalize(sub)
	if got.Bounds().Min != (image.Point{}) {
		t.Errorf("min = %v, want origin", got.Bounds().Min)
	}
	if got.RGBAAt(0, 0).R != 255 {
		t.Error("pixels not copied from the sub-image origin")
	}
}

// Decoding a real video needs OpenCV and a sample file.
func TestFileIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	path := os.Getenv("CATALOG_TEST_VIDEO")
	if path == "" {
		t.Skip("CATALOG_TEST_VIDEO not set")
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	f, ok := src.Read()
	if !ok {
		t.Fatal("no frames decoded")
	}
	if f.Bounds().Dx() == 0 {
		t.Error("empty frame")
	}
}
