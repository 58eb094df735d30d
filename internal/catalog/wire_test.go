package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Nachtalb/CatalogScanner/internal/config"
	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{AssetDir: t.TempDir(), TesseractBin: "tesseract", LocaleSeed: 7}
	s := FromConfig(cfg)

	if s.cfg.LocaleSeed != 7 {
		t.Errorf("LocaleSeed = %d, want 7", s.cfg.LocaleSeed)
	}
	if n := s.LoadedLocales(); n != 0 {
		t.Errorf("LoadedLocales() = %d before any scan", n)
	}
	_, err := s.ScanMedia(context.Background(), filepath.Join(cfg.AssetDir, "missing.mp4"), Options{})
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("ScanMedia(missing) = %v, want NOT_FOUND", err)
	}
}
