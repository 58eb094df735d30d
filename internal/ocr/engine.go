package ocr

import (
	"context"
	"image"
)

// Engine recognizes the text of an image as newline separated lines.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, p Profile) (string, error)
}

// ScriptDetector names the dominant script of an image, e.g. "Latin" or
// "HanS".
type ScriptDetector interface {
	DetectScript(ctx context.Context, img image.Image) (string, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, img image.Image, p Profile) (string, error)

// Recognize calls f.
func (f EngineFunc) Recognize(ctx context.Context, img image.Image, p Profile) (string, error) {
	return f(ctx, img, p)
}
