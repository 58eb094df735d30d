package catalog

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/Nachtalb/CatalogScanner/internal/frame"
	"github.com/Nachtalb/CatalogScanner/internal/names"
	"github.com/Nachtalb/CatalogScanner/internal/ocr"
	"github.com/Nachtalb/CatalogScanner/internal/video"
)

// Each test item is drawn as a dark block in its own glyph column, which
// fakeEngine reads back.
var glyphs = []string{
	"Wooden chair", "Simple panel", "Wardrobe", "Log bench",
	"Iron shelf", "Rattan stool", "Writing desk", "Teacup ride",
	"Bamboo lamp", "Cabin bed", "Clay furnace", "Desert vista",
	"Drinking fountain", "Floor lamp", "Garden bench", "Hay bed",
}

const (
	glyphWidth = 26
	rowHeight  = 35
	gridPhase  = 20
)

var visibleRows = []int{73, 126, 180, 233, 287, 340, 394, 447}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// catalogFrame renders a catalog page whose visible rows show items
// (indexes into glyphs, -1 for an empty slot), with the scrollbar thumb at
// thumb.
func catalogFrame(items []int, thumb int) *image.RGBA {
	f := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	fill(f, f.Bounds(), color.RGBA{R: 240, G: 240, B: 240, A: 255})
	fill(f, frame.SidePatch, frame.CatalogColor)
	fill(f, image.Rect(1235, 160+thumb, 1245, 200+thumb), color.RGBA{R: 60, G: 60, B: 60, A: 255})

	origin := frame.ListRegion.Min
	dash := color.RGBA{R: 90, G: 90, B: 90, A: 255}
	f.SetRGBA(origin.X, origin.Y+gridPhase, dash)
	for i, y := range visibleRows {
		f.SetRGBA(origin.X, origin.Y+y, dash)
		if i >= len(items) || items[i] < 0 {
			continue
		}
		x := origin.X + items[i]*glyphWidth + 3
		fill(f, image.Rect(x, origin.Y+y-30, x+20, origin.Y+y-15), color.RGBA{R: 30, G: 30, B: 30, A: 255})
		// price label
		fill(f, image.Rect(origin.X+500, origin.Y+y-30, origin.X+560, origin.Y+y-15), color.RGBA{R: 60, G: 60, B: 60, A: 255})
	}
	return f
}

func page(first int) []int {
	out := make([]int, len(visibleRows))
	for i := range out {
		out[i] = first + i
	}
	return out
}

func repeat(f *image.RGBA, n int) []*image.RGBA {
	out := make([]*image.RGBA, n)
	for i := range out {
		out[i] = f
	}
	return out
}

// fakeEngine reads the glyph column of every 35px strip. Names in garble
// come back as garbage.
type fakeEngine struct {
	langs  []string
	garble map[string]string
}

func (e *fakeEngine) Recognize(_ context.Context, img image.Image, p ocr.Profile) (string, error) {
	e.langs = append(e.langs, p.Language)
	g := img.(*image.Gray)
	b := g.Bounds()

	var lines []string
	for top := 0; top+rowHeight <= b.Dy(); top += rowHeight {
		y := top + 17
		for x := 0; x < b.Dx(); x++ {
			if g.GrayAt(x, y).Y < 100 {
				name := glyphs[x/glyphWidth]
				if garbled, ok := e.garble[name]; ok {
					name = garbled
				}
				lines = append(lines, " "+name+" ")
				break
			}
		}
	}
	return strings.Join(lines, "\n") + "\n", nil
}

type fakeScripts struct{ script string }

func (f fakeScripts) DetectScript(context.Context, image.Image) (string, error) {
	return f.script, nil
}

func testItems() *names.Cache {
	loader := names.StaticLoader{}
	for _, l := range []string{"en-us", "en-eu", "fr-eu", "fr-us", "de-eu", "es-eu", "es-us", "it-eu", "nl-eu"} {
		loader[l] = []string{"Armoire"}
	}
	loader["en-us"] = glyphs
	return names.NewCache(loader)
}

func newTestScanner(engine *fakeEngine, media map[string][]*image.RGBA) *Scanner {
	open := func(path string) (video.Source, error) {
		frames, ok := media[path]
		if !ok {
			return nil, fmt.Errorf("no media %s", path)
		}
		return video.NewSlice(frames...), nil
	}
	cfg := DefaultConfig()
	cfg.LocaleSeed = 7
	return New(Deps{Engine: engine, Scripts: fakeScripts{"Latin"}, Items: testItems(), Open: open}, cfg)
}
