package trace

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContinue(t *testing.T) {
	tests := []struct {
		name       string
		traceID    string
		callerSpan string
		wantTrace  string
		wantParent string
	}{
		{"websocket caller", "feedface", "caller", "feedface", "caller"},
		{"trace without caller span", "feedface", "", "feedface", ""},
		{"no trace", "", "caller", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := Continue(tt.traceID, tt.callerSpan)
			if tt.wantTrace != "" && tc.TraceID != tt.wantTrace {
				t.Errorf("TraceID = %q, want %q", tc.TraceID, tt.wantTrace)
			}
			if tt.wantTrace == "" && tc.TraceID == "" {
				t.Error("missing trace id should start a new trace")
			}
			if tc.ParentSpanID != tt.wantParent {
				t.Errorf("ParentSpanID = %q, want %q", tc.ParentSpanID, tt.wantParent)
			}
			if tc.SpanID == "" || tc.SpanID == tt.callerSpan {
				t.Errorf("SpanID = %q, want a fresh local span", tc.SpanID)
			}
		})
	}
}

func TestScanSpansShareTrace(t *testing.T) {
	ctx := WithContext(context.Background(), Continue("feedface", "client"))

	ctx, scan := StartSpan(ctx, "catalog.scan")
	_, detect := StartSpan(ctx, "locale.detect")

	if scan.Context().TraceID != "feedface" || detect.Context().TraceID != "feedface" {
		t.Errorf("trace ids = %q, %q, want feedface", scan.Context().TraceID, detect.Context().TraceID)
	}
	if detect.Context().ParentSpanID != scan.Context().SpanID {
		t.Errorf("locale.detect parent = %q, want catalog.scan span %q",
			detect.Context().ParentSpanID, scan.Context().SpanID)
	}
	if got, _ := FromContext(ctx); got != scan.Context() {
		t.Errorf("context carries %+v, want catalog.scan span", got)
	}
}

func TestSpanEndLogsFinished(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)

	_, span := StartSpan(context.Background(), "catalog.scan")
	span.SetAttr("rows", 12)
	span.End()
	span.End()

	out := buf.String()
	if n := strings.Count(out, "span finished"); n != 1 {
		t.Fatalf("logged %d span lines, want 1:\n%s", n, out)
	}
	for _, want := range []string{"level=DEBUG", "span.name=catalog.scan", "span.rows=12", "span.duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q:\n%s", want, out)
		}
	}
	if span.Duration() < 0 {
		t.Errorf("Duration() = %v after End", span.Duration())
	}
}

func TestSpanFailLogsWarnWithCode(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)

	_, span := StartSpan(context.Background(), "locale.detect")
	err := apperr.New(apperr.CodeUnknownScript, "Failed to automatically detect language.")
	span.Fail(err)
	span.End()

	out := buf.String()
	for _, want := range []string{"level=WARN", "span failed", "span.name=locale.detect", "span.code=" + apperr.CodeUnknownScript.String()} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q:\n%s", want, out)
		}
	}
	if span.Err() != err {
		t.Errorf("Err() = %v, want %v", span.Err(), err)
	}
}

func TestSpanFailNilKeepsSuccess(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)

	_, span := StartSpan(context.Background(), "catalog.scan")
	span.Fail(nil)
	span.End()

	if span.Err() != nil {
		t.Errorf("Err() = %v, want nil", span.Err())
	}
	if buf.Len() != 0 {
		t.Errorf("successful span logged at warn:\n%s", buf.String())
	}
}

func TestSpanRunningHasNoDuration(t *testing.T) {
	_, span := StartSpan(context.Background(), "catalog.scan")
	if span.Duration() != 0 {
		t.Errorf("Duration() = %v before End", span.Duration())
	}
}

func TestEnsureContextKeepsExisting(t *testing.T) {
	tc := Continue("feedface", "client")
	ctx := WithContext(context.Background(), tc)

	_, got := EnsureContext(ctx)
	if got != tc {
		t.Errorf("EnsureContext() = %+v, want %+v", got, tc)
	}

	_, fresh := EnsureContext(context.Background())
	if fresh.TraceID == "" || fresh.ParentSpanID != "" {
		t.Errorf("EnsureContext() on empty ctx = %+v", fresh)
	}
}

func TestLoggerCarriesTraceIDs(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	ctx := WithContext(context.Background(), Continue("feedface", "client"))
	Logger(ctx).Info("detected locale", "locale", "en-us")

	out := buf.String()
	for _, want := range []string{"trace_id=feedface", "parent_span_id=client", "locale=en-us"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	Logger(context.Background()).Info("no trace")
	if strings.Contains(buf.String(), "trace_id") {
		t.Errorf("untraced logger added ids:\n%s", buf.String())
	}
}
