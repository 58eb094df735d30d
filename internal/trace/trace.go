// Package trace carries trace and span ids through scans so log lines of
// one request can be correlated across HTTP, WebSocket and gRPC.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

// Propagation keys, shared by gRPC metadata and HTTP headers.
const (
	TraceIDKey      = "x-trace-id"
	SpanIDKey       = "x-span-id"
	ParentSpanIDKey = "x-parent-span-id"
)

// Id sizes in bytes; hex encoding doubles them.
const (
	traceIDBytes = 16
	spanIDBytes  = 8
)

type ctxKey struct{}

// Context identifies one span of a trace.
type Context struct {
	TraceID      string
	SpanID       string
	ParentSpanID string
}

// New starts a trace.
func New() Context {
	return Context{TraceID: newID(traceIDBytes), SpanID: newID(spanIDBytes)}
}

// Continue starts a local span under a remote caller's ids. A missing trace
// id starts a new trace.
func Continue(traceID, callerSpanID string) Context {
	if traceID == "" {
		return New()
	}
	return Context{TraceID: traceID, SpanID: newID(spanIDBytes), ParentSpanID: callerSpanID}
}

// Child returns a new span of the same trace under c.
func (c Context) Child() Context {
	return Continue(c.TraceID, c.SpanID)
}

// FromContext returns the span ids carried by ctx.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(ctxKey{}).(Context)
	return tc, ok
}

// WithContext attaches tc to ctx.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, tc)
}

// EnsureContext returns ctx with a trace, starting one when ctx has none.
func EnsureContext(ctx context.Context) (context.Context, Context) {
	if tc, ok := FromContext(ctx); ok {
		return ctx, tc
	}
	tc := New()
	return WithContext(ctx, tc), tc
}

func newID(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Span times one pipeline stage, e.g. "catalog.scan" or "locale.detect".
// Ending it logs the stage once: at debug level, or at warn level with the
// scan error code when Fail was called.
type Span struct {
	name  string
	ctx   Context
	start time.Time

	mu    sync.Mutex
	end   time.Time
	err   error
	attrs map[string]any
}

// StartSpan begins a child span of the span in ctx, or a new trace.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	tc := New()
	if parent, ok := FromContext(ctx); ok {
		tc = parent.Child()
	}
	s := &Span{name: name, ctx: tc, start: time.Now(), attrs: make(map[string]any)}
	return WithContext(ctx, tc), s
}

// Name returns the stage name.
func (s *Span) Name() string { return s.name }

// Context returns the span's ids.
func (s *Span) Context() Context { return s.ctx }

// SetAttr records a value logged with the span.
func (s *Span) SetAttr(key string, val any) {
	s.mu.Lock()
	s.attrs[key] = val
	s.mu.Unlock()
}

// Fail marks the stage as failed with err. A nil err is ignored.
func (s *Span) Fail(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Err returns the error passed to Fail.
func (s *Span) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// End marks the span complete and logs it. Only the first call counts.
func (s *Span) End() {
	s.mu.Lock()
	if !s.end.IsZero() {
		s.mu.Unlock()
		return
	}
	s.end = time.Now()
	failed := s.err != nil
	s.mu.Unlock()

	if failed {
		slog.Warn("span failed", "span", s)
		return
	}
	slog.Debug("span finished", "span", s)
}

// Duration returns the span's duration, zero while it runs.
func (s *Span) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.end.IsZero() {
		return 0
	}
	return s.end.Sub(s.start)
}

// LogValue implements slog.LogValuer.
func (s *Span) LogValue() slog.Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := []slog.Attr{
		slog.String("name", s.name),
		slog.String("trace_id", s.ctx.TraceID),
		slog.String("span_id", s.ctx.SpanID),
	}
	if s.ctx.ParentSpanID != "" {
		attrs = append(attrs, slog.String("parent_span_id", s.ctx.ParentSpanID))
	}
	if !s.end.IsZero() {
		attrs = append(attrs, slog.Duration("duration", s.end.Sub(s.start)))
	}
	if s.err != nil {
		attrs = append(attrs,
			slog.String("error", s.err.Error()),
			slog.String("code", apperr.CodeOf(s.err).String()))
	}
	for _, k := range slices.Sorted(maps.Keys(s.attrs)) {
		attrs = append(attrs, slog.Any(k, s.attrs[k]))
	}
	return slog.GroupValue(attrs...)
}

// Logger returns the default logger decorated with the trace ids in ctx.
func Logger(ctx context.Context) *slog.Logger {
	tc, ok := FromContext(ctx)
	if !ok {
		return slog.Default()
	}
	args := []any{"trace_id", tc.TraceID, "span_id", tc.SpanID}
	if tc.ParentSpanID != "" {
		args = append(args, "parent_span_id", tc.ParentSpanID)
	}
	return slog.Default().With(args...)
}
