// Package catalog scans recordings of the in-game catalog into item lists.
package catalog

import (
	"context"
	"image"
	"time"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/frame"
	"github.com/Nachtalb/CatalogScanner/internal/locale"
	"github.com/Nachtalb/CatalogScanner/internal/names"
	"github.com/Nachtalb/CatalogScanner/internal/ocr"
	"github.com/Nachtalb/CatalogScanner/internal/rows"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
	"github.com/Nachtalb/CatalogScanner/internal/video"
)

// Config groups the tunables of every pipeline stage.
type Config struct {
	Frame          frame.Config
	Extract        rows.ExtractConfig
	Classify       rows.ClassifyConfig
	Match          names.MatchConfig
	MaxItemScrolls int
	ChunkRows      int
	// Seed for locale sampling; zero seeds from the clock.
	LocaleSeed uint64
}

// DefaultConfig returns the standard pipeline settings.
func DefaultConfig() Config {
	return Config{
		Frame:          frame.DefaultConfig(),
		Extract:        rows.DefaultExtractConfig(),
		Classify:       rows.DefaultClassifyConfig(),
		Match:          names.DefaultMatchConfig(),
		MaxItemScrolls: rows.MaxItemScrolls,
		ChunkRows:      ocr.MaxChunkRows,
	}
}

// Deps are the collaborators of a Scanner.
type Deps struct {
	Engine  ocr.Engine
	Scripts ocr.ScriptDetector
	Items   *names.Cache
	// Open turns a media path into frames; defaults to video.Open.
	Open func(path string) (video.Source, error)
}

// Scanner runs scans. It holds no per-scan state, so one Scanner serves
// concurrent scans; only the item cache is shared between them.
type Scanner struct {
	cfg      Config
	items    *names.Cache
	batcher  *ocr.Batcher
	detector *locale.Detector
	matcher  *names.Matcher
	open     func(path string) (video.Source, error)
}

// New creates a scanner.
func New(deps Deps, cfg Config) *Scanner {
	open := deps.Open
	if open == nil {
		open = video.Open
	}
	batcher := ocr.NewBatcher(deps.Engine, cfg.ChunkRows, names.Clean)
	return &Scanner{
		cfg:      cfg,
		items:    deps.Items,
		batcher:  batcher,
		detector: locale.NewDetector(deps.Scripts, batcher, deps.Items, cfg.LocaleSeed),
		matcher:  names.NewMatcher(cfg.Match),
		open:     open,
	}
}

// LoadedLocales is the number of item databases loaded so far.
func (s *Scanner) LoadedLocales() int {
	return s.items.Loaded()
}

// ScanMedia scans the file at path. With ModeAuto the mode is guessed from
// the first frames.
func (s *Scanner) ScanMedia(ctx context.Context, path string, opts Options) (*Result, error) {
	log := trace.Logger(ctx)

	mode := opts.Mode
	if mode == ModeAuto {
		src, err := s.open(path)
		if err != nil {
			return nil, err
		}
		mode, err = DetectMode(src)
		_ = src.Close()
		if err != nil {
			return nil, err
		}
		log.Info("detected scan mode", "mode", mode)
	}

	switch mode {
	case ModeCatalog:
	case ModeStorage:
		return nil, apperr.New(apperr.CodeInvalidArgument, "Storage scanning is not supported.")
	default:
		return nil, apperr.Newf(apperr.CodeInvalidArgument, "Invalid mode: %q", mode.String())
	}

	src, err := s.open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return s.Scan(ctx, src, opts)
}

// Scan runs the catalog pipeline over src: frames to rows, locale
// detection, OCR and matching.
func (s *Scanner) Scan(ctx context.Context, src video.Source, opts Options) (*Result, error) {
	requested := opts.Locale
	if requested == "" {
		requested = locale.Auto
	}
	if err := locale.Validate(requested); err != nil {
		return nil, err
	}

	ctx, span := trace.StartSpan(ctx, "catalog.scan")
	defer span.End()
	log := trace.Logger(ctx)
	started := time.Now()

	itemRows, err := s.ParseVideo(ctx, src, opts.ForSale)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	span.SetAttr("rows", len(itemRows))

	loc, err := s.detector.Detect(ctx, itemRows, requested)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	lang, err := locale.Language(loc)
	if err != nil {
		span.Fail(err)
		return nil, err
	}

	found, err := s.batcher.Recognize(ctx, itemRows, lang)
	if err != nil {
		span.Fail(err)
		return nil, err
	}

	db, err := s.items.Get(loc)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	matched, unmatched, err := s.matcher.Match(ctx, found, db)
	if err != nil {
		span.Fail(err)
		return nil, err
	}

	if unmatched == nil {
		unmatched = []string{}
	}
	span.SetAttr("items", len(matched))
	log.Info("scan complete", "items", len(matched), "unmatched", len(unmatched),
		"locale", loc, "for_sale", opts.ForSale, "elapsed", time.Since(started))

	return &Result{Mode: ModeCatalog, Items: matched, Locale: loc, Unmatched: unmatched}, nil
}

// ParseVideo returns every distinct non-blank catalog row shown in src.
func (s *Scanner) ParseVideo(ctx context.Context, src video.Source, forSale bool) ([]*image.Gray, error) {
	log := trace.Logger(ctx)

	gate := frame.NewGate(s.cfg.Frame)
	extractor := rows.NewExtractor(s.cfg.Extract)
	acc := rows.NewAccumulator(rows.NewClassifier(s.cfg.Classify), s.cfg.MaxItemScrolls)

	for {
		f, ok := src.Read()
		if !ok {
			break
		}
		accepted, err := gate.Accept(f)
		if err != nil {
			return nil, err
		}
		if !accepted || !acc.Want() {
			continue
		}

		batch := extractor.Extract(frame.Gray(f, frame.ListRegion), forSale)
		if _, err := acc.Add(batch); err != nil {
			return nil, err
		}
	}

	seen, skipped := gate.Stats()
	log.Debug("video parsed", "frames", seen, "skipped", skipped)
	return acc.Finish()
}
