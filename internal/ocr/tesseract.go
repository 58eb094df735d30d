package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Tesseract is an Engine backed by libtesseract through gosseract. Each call
// runs on its own client, so a Tesseract is safe for concurrent scans.
type Tesseract struct {
	tessdataPrefix string
}

// NewTesseract creates an engine. An empty tessdataPrefix uses the library
// default.
func NewTesseract(tessdataPrefix string) *Tesseract {
	return &Tesseract{tessdataPrefix: tessdataPrefix}
}

// Recognize implements Engine.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, p Profile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.tessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(p.Language); err != nil {
		return "", fmt.Errorf("set language %s: %w", p.Language, err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(p.PageSegMode)); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	for _, v := range p.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(v.Name), v.Value); err != nil {
			return "", fmt.Errorf("set %s: %w", v.Name, err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	slog.Debug("tesseract done", "lang", p.Language, "bytes", len(text))
	return text, nil
}
