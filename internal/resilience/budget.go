package resilience

import "errors"

// ErrBudgetExceeded is returned once a Budget has tripped.
var ErrBudgetExceeded = errors.New("failure budget exceeded")

// Budget counts failures of a single bounded run and trips once they cross
// a limit. Unlike Breaker it never recovers: a tripped budget aborts the run.
// Not safe for concurrent use; a scan owns its budgets.
type Budget struct {
	limit     float64
	inclusive bool
	failures  int
}

// NewCountBudget trips when the failure count reaches limit.
func NewCountBudget(limit int) *Budget {
	return &Budget{limit: float64(limit), inclusive: true}
}

// NewRatioBudget trips when failures exceed ratio*total.
func NewRatioBudget(total int, ratio float64) *Budget {
	return &Budget{limit: ratio * float64(total)}
}

// Fail records one failure and returns ErrBudgetExceeded if the budget tripped.
func (b *Budget) Fail() error {
	b.failures++
	if b.Tripped() {
		return ErrBudgetExceeded
	}
	return nil
}

// Record adds a failure when failed is true.
func (b *Budget) Record(failed bool) error {
	if !failed {
		return nil
	}
	return b.Fail()
}

// Tripped reports whether the recorded failures crossed the limit.
func (b *Budget) Tripped() bool {
	if b.inclusive {
		return float64(b.failures) >= b.limit
	}
	return float64(b.failures) > b.limit
}

// Failures returns the number of recorded failures.
func (b *Budget) Failures() int {
	return b.failures
}
