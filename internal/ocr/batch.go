package ocr

import (
	"context"
	"image"
	"image/draw"
	"slices"
	"strings"
	"unicode/utf8"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
)

// LineFunc rewrites one recognized line before it is collected.
type LineFunc func(line, lang string) string

// Batcher stacks rows into tall images and recognizes them chunk by chunk.
type Batcher struct {
	engine    Engine
	chunkRows int
	clean     LineFunc
}

// NewBatcher creates a batcher sending at most chunkRows rows per engine
// call. clean may be nil.
func NewBatcher(engine Engine, chunkRows int, clean LineFunc) *Batcher {
	if chunkRows <= 0 {
		chunkRows = MaxChunkRows
	}
	return &Batcher{engine: engine, chunkRows: chunkRows, clean: clean}
}

// Recognize returns the unique non-empty lines found in rows, sorted.
func (b *Batcher) Recognize(ctx context.Context, rows []*image.Gray, lang string) ([]string, error) {
	log := trace.Logger(ctx)
	profile := ProfileFor(lang)
	found := make(map[string]struct{})

	for chunk := range slices.Chunk(rows, b.chunkRows) {
		log.Debug("running OCR", "rows", len(chunk), "lang", lang)
		text, err := b.engine.Recognize(ctx, VConcat(chunk), profile)
		if err != nil {
			return nil, apperr.Wrap(err, apperr.CodeInternal, "OCR engine failed")
		}
		if !utf8.ValidString(text) {
			return nil, apperr.New(apperr.CodeOCRContract, "OCR engine returned non-text output")
		}

		for _, line := range strings.Split(text, "\n") {
			if b.clean != nil {
				line = b.clean(line, lang)
			}
			if line != "" {
				found[line] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// VConcat stacks rows top to bottom into one image as wide as the widest row.
func VConcat(rows []*image.Gray) *image.Gray {
	var width, height int
	for _, r := range rows {
		width = max(width, r.Bounds().Dx())
		height += r.Bounds().Dy()
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	y := 0
	for _, r := range rows {
		b := r.Bounds()
		draw.Draw(out, image.Rect(0, y, b.Dx(), y+b.Dy()), r, b.Min, draw.Src)
		y += b.Dy()
	}
	return out
}
