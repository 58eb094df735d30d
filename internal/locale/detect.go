package locale

import (
	"context"
	"image"
	"math/rand/v2"
	"time"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/names"
	"github.com/Nachtalb/CatalogScanner/internal/ocr"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
)

// Sample sizes
const (
	// Rows sent to script detection.
	ScriptSampleRows = 300

	// Rows recognized per candidate when a script is shared by many locales.
	VerifySampleRows = 30

	// Second PCG word derived from the seed.
	pcgStream = 0x9e3779b97f4a7c15
)

// Recognizer reads the lines of a set of rows in a language.
type Recognizer interface {
	Recognize(ctx context.Context, rows []*image.Gray, lang string) ([]string, error)
}

// Databases gives access to item databases by locale.
type Databases interface {
	Get(locale string) (*names.DB, error)
}

// Detector resolves Auto into a concrete locale.
type Detector struct {
	scripts ocr.ScriptDetector
	ocr     Recognizer
	dbs     Databases
	seed    uint64
}

// NewDetector creates a detector. Every Detect call samples with a generator
// seeded from seed, so equal rows pick equal samples; a zero seed seeds each
// call from the clock.
func NewDetector(scripts ocr.ScriptDetector, rec Recognizer, dbs Databases, seed uint64) *Detector {
	return &Detector{
		scripts: scripts,
		ocr:     rec,
		dbs:     dbs,
		seed:    seed,
	}
}

func (d *Detector) newRand() *rand.Rand {
	seed := d.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^pcgStream))
}

// Detect returns requested unless it is Auto. Otherwise the script of a
// sample of rows picks the locale, and locales sharing a script are told
// apart by how many recognized names appear in their item database.
func (d *Detector) Detect(ctx context.Context, rows []*image.Gray, requested string) (string, error) {
	if requested != Auto {
		return requested, nil
	}

	ctx, span := trace.StartSpan(ctx, "locale.detect")
	defer span.End()
	log := trace.Logger(ctx)

	rnd := d.newRand()
	sample := sampleRows(rnd, rows, ScriptSampleRows)
	script, err := d.scripts.DetectScript(ctx, ocr.VConcat(sample))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = apperr.Wrap(ctxErr, apperr.CodeUnavailable, "Locale detection cancelled")
			span.Fail(err)
			return "", err
		}
		log.Warn("script detection failed, using default locale", "error", err, "locale", Default)
		return Default, nil
	}
	span.SetAttr("script", script)

	candidates := Candidates(script)
	if len(candidates) == 0 {
		err := apperr.New(apperr.CodeUnknownScript, "Failed to automatically detect language.").
			WithMetadata("script", script)
		span.Fail(err)
		return "", err
	}
	if len(candidates) == 1 {
		log.Info("detected locale", "locale", candidates[0], "script", script)
		return candidates[0], nil
	}

	lines, err := d.ocr.Recognize(ctx, sampleRows(rnd, sample, VerifySampleRows), ocr.LatinScript)
	if err != nil {
		return "", err
	}

	best, bestScore := "", -1
	for _, l := range candidates {
		db, err := d.dbs.Get(l)
		if err != nil {
			return "", err
		}
		if score := db.Count(lines); score > bestScore {
			best, bestScore = l, score
		}
	}
	span.SetAttr("score", bestScore)
	log.Info("detected locale", "locale", best, "script", script, "score", bestScore)
	return best, nil
}

// sample returns up to n rows chosen uniformly without replacement.
func sampleRows(rnd *rand.Rand, rows []*image.Gray, n int) []*image.Gray {
	if len(rows) <= n {
		return rows
	}
	perm := rnd.Perm(len(rows))

	out := make([]*image.Gray, n)
	for i := range out {
		out[i] = rows[perm[i]]
	}
	return out
}
