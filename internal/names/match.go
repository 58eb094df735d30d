package names

import (
	"context"
	"errors"
	"slices"

	"github.com/pmezard/go-difflib/difflib"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/resilience"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
)

// MatchConfig holds matcher thresholds.
type MatchConfig struct {
	Cutoff            float64
	MaxUnmatchedRatio float64
}

// DefaultMatchConfig returns the standard thresholds.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{Cutoff: DefaultCutoff, MaxUnmatchedRatio: DefaultMaxUnmatchedRatio}
}

func (c MatchConfig) withDefaults() MatchConfig {
	if c.Cutoff <= 0 {
		c.Cutoff = DefaultCutoff
	}
	if c.MaxUnmatchedRatio <= 0 {
		c.MaxUnmatchedRatio = DefaultMaxUnmatchedRatio
	}
	return c
}

// Matcher maps recognized names to canonical item names.
type Matcher struct {
	cfg MatchConfig
}

// NewMatcher creates a matcher with cfg.
func NewMatcher(cfg MatchConfig) *Matcher {
	return &Matcher{cfg: cfg.withDefaults()}
}

// Match resolves names against db. Matched names come back sorted and
// unique; unmatched names keep the order they were tried in. The whole call
// fails once more than MaxUnmatchedRatio of the names found no match.
func (m *Matcher) Match(ctx context.Context, names []string, db *DB) (matched, unmatched []string, err error) {
	log := trace.Logger(ctx)

	candidates := slices.Clone(names)
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	budget := resilience.NewRatioBudget(len(candidates), m.cfg.MaxUnmatchedRatio)
	found := make(map[string]struct{}, len(candidates))

	for _, name := range candidates {
		if db.Contains(name) {
			found[name] = struct{}{}
			continue
		}

		best, ratio, ok := m.closest(name, db)
		if !ok {
			unmatched = append(unmatched, name)
			if err := budget.Fail(); err != nil {
				if errors.Is(err, resilience.ErrBudgetExceeded) {
					return nil, nil, apperr.New(apperr.CodeMatchFailed, "Failed to match multiple items, wrong language?").
						WithMetadata("locale", db.Locale())
				}
				return nil, nil, err
			}
			continue
		}

		log.Debug("matched", "from", name, "to", best, "ratio", ratio)
		found[best] = struct{}{}
	}

	if len(unmatched) > 0 {
		log.Warn("failed to match items", "count", len(unmatched), "names", unmatched)
	}

	matched = make([]string, 0, len(found))
	for name := range found {
		matched = append(matched, name)
	}
	slices.Sort(matched)
	return matched, unmatched, nil
}

// closest returns the db item most similar to name with a ratio of at least
// the cutoff. Equal ratios resolve to the greater item.
func (m *Matcher) closest(name string, db *DB) (string, float64, bool) {
	sm := difflib.NewMatcher(nil, chars(name))

	var (
		best  string
		score float64
		ok    bool
	)
	for i, item := range db.sorted {
		sm.SetSeq1(db.seqs[i])
		if sm.RealQuickRatio() < m.cfg.Cutoff || sm.QuickRatio() < m.cfg.Cutoff {
			continue
		}
		r := sm.Ratio()
		if r < m.cfg.Cutoff {
			continue
		}
		// db.sorted is ascending, so >= prefers the later item on ties.
		if !ok || r >= score {
			best, score, ok = item, r, true
		}
	}
	return best, score, ok
}
