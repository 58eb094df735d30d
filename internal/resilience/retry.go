package resilience

import (
	"context"
	"math/rand/v2"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
)

// Retry settings
const (
	DefaultMaxRetries   = 3
	DefaultBaseDelay    = 500 * time.Millisecond
	DefaultMaxDelay     = 10 * time.Second
	DefaultJitterFactor = 0.2 // 20% jitter

	// A scan decodes the whole upload before answering, so remote scans
	// retry rarely and wait long enough for a restarted server.
	ScanMaxRetries = 2
	ScanBaseDelay  = 2 * time.Second
	ScanMaxDelay   = 30 * time.Second

	maxBackoffShift = 6
)

// RetryConfig holds retry settings.
type RetryConfig struct {
	Name         string // used in log lines
	MaxRetries   int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	JitterFactor float64
	IsRetryable  func(error) bool
	// OnRetry observes each failed attempt that will be retried.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// ScanRetryConfig returns settings for remote scan calls.
func ScanRetryConfig() RetryConfig {
	return RetryConfig{
		Name:         "scan",
		MaxRetries:   ScanMaxRetries,
		BaseDelay:    ScanBaseDelay,
		MaxDelay:     ScanMaxDelay,
		JitterFactor: DefaultJitterFactor,
		IsRetryable:  IsRetryableScan,
	}
}

// IsRetryableGRPC reports whether a gRPC status is transport trouble.
func IsRetryableGRPC(err error) bool {
	if err == nil {
		return false
	}
	s, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch s.Code() {
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted:
		return true
	default:
		return false
	}
}

// IsRetryableScan reports whether a failed scan may succeed when sent again.
// Verdicts about the media (bad resolution, scrolling too slowly, wrong
// language) are deterministic and never retried; only an unreachable or
// saturated server is.
func IsRetryableScan(err error) bool {
	if apperr.IsFatalScan(err) {
		return false
	}
	return IsRetryableGRPC(err) || apperr.IsRetryable(err)
}

// Retry runs fn until it succeeds, fails with a non-retryable error, runs out
// of attempts or ctx ends. The last error of fn is returned unchanged.
func Retry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	cfg = cfg.withDefaults()
	log := trace.Logger(ctx)

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil || !cfg.IsRetryable(err) || attempt == cfg.MaxRetries {
			return err
		}

		delay := cfg.Delay(attempt)
		log.Warn("retrying", "policy", cfg.Name, "attempt", attempt+1, "max", cfg.MaxRetries, "delay", delay, "error", err)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Delay is the backoff before retry number attempt+1: exponential from
// BaseDelay, capped at MaxDelay, with symmetric jitter.
func (c RetryConfig) Delay(attempt int) time.Duration {
	delay := c.BaseDelay << min(attempt, maxBackoffShift)
	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	jitter := float64(delay) * c.JitterFactor * (rand.Float64() - 0.5)
	return time.Duration(float64(delay) + jitter)
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.Name == "" {
		c.Name = "default"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = DefaultMaxDelay
	}
	if c.JitterFactor < 0 {
		c.JitterFactor = DefaultJitterFactor
	}
	if c.IsRetryable == nil {
		c.IsRetryable = IsRetryableGRPC
	}
	return c
}
