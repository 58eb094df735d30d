package catalog

import (
	"github.com/Nachtalb/CatalogScanner/internal/config"
	"github.com/Nachtalb/CatalogScanner/internal/names"
	"github.com/Nachtalb/CatalogScanner/internal/ocr"
)

// FromConfig builds a Scanner backed by Tesseract and the item databases
// under the configured asset directory.
func FromConfig(cfg *config.Config) *Scanner {
	pipeline := DefaultConfig()
	pipeline.LocaleSeed = cfg.LocaleSeed

	return New(Deps{
		Engine:  ocr.NewTesseract(cfg.TessdataPrefix),
		Scripts: ocr.NewOSD(cfg.TesseractBin, cfg.TessdataPrefix),
		Items:   names.NewCache(names.FileLoader{Dir: cfg.ItemsDir()}),
	}, pipeline)
}
