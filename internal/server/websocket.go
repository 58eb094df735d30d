package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/Nachtalb/CatalogScanner/internal/catalog"
	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
)

// Message types.
type Message struct {
	Type string `json:"type"`
}

// ScanMessage asks for a scan of inline media.
type ScanMessage struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	Locale   string `json:"locale,omitempty"`
	Mode     string `json:"mode,omitempty"`
	ForSale  bool   `json:"for_sale,omitempty"`
	Media    []byte `json:"media"` // base64 in JSON
	TraceID  string `json:"trace_id,omitempty"`
}

type AcceptedMessage struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
}

type ResultMessage struct {
	Type   string          `json:"type"`
	Result *catalog.Result `json:"result"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// rateLimiter tracks message timestamps using a sliding window.
type rateLimiter struct {
	timestamps []time.Time
	mu         sync.Mutex
	now        func() time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{now: time.Now}
}

// allow checks if a message is allowed and records the timestamp if so.
func (r *rateLimiter) allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-RateLimitWindow)

	// Prune old timestamps
	valid := r.timestamps[:0]
	for _, t := range r.timestamps {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	r.timestamps = valid

	if len(r.timestamps) >= RateLimitMessages {
		return false
	}

	r.timestamps = append(r.timestamps, now)
	return true
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("websocket accept error", "error", err)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()
	conn.SetReadLimit(s.maxUpload*4/3 + wsEnvelopeOverhead)

	rl := newRateLimiter()
	s.mu.Lock()
	s.rateLimits[conn] = rl
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.rateLimits, conn)
		s.mu.Unlock()
	}()

	baseCtx := r.Context()
	log := trace.Logger(baseCtx)
	log.Info("websocket connected", "remote", r.RemoteAddr)

	for {
		var msg json.RawMessage
		if err := wsjson.Read(baseCtx, conn, &msg); err != nil {
			log.Debug("websocket read error", "error", err)
			return
		}

		if !rl.allow() {
			log.Warn("rate limit exceeded", "remote", r.RemoteAddr)
			_ = wsjson.Write(baseCtx, conn, ErrorMessage{
				Type:    "error",
				Code:    apperr.CodeUnavailable.String(),
				Message: "rate limit exceeded",
			})
			continue
		}

		var base Message
		if err := json.Unmarshal(msg, &base); err != nil {
			continue
		}

		switch base.Type {
		case "scan":
			var scan ScanMessage
			if err := json.Unmarshal(msg, &scan); err != nil {
				s.writeWSError(baseCtx, conn, apperr.Wrap(err, apperr.CodeInvalidArgument, "Malformed scan message"))
				continue
			}
			ctx := baseCtx
			if tc, ok := trace.ExtractFromJSON(msg); ok {
				ctx = trace.WithContext(ctx, tc)
			}
			s.handleScanMessage(ctx, conn, scan)
		default:
			s.writeWSError(baseCtx, conn, apperr.Newf(apperr.CodeInvalidArgument, "Unknown message type: %q", base.Type))
		}
	}
}

func (s *Server) handleScanMessage(ctx context.Context, conn *websocket.Conn, msg ScanMessage) {
	ctx, span := trace.StartSpan(ctx, "server.ws_scan")
	defer span.End()

	log := trace.Logger(ctx)
	log.Info("scan message", "filename", msg.Filename, "bytes", len(msg.Media))

	if int64(len(msg.Media)) > s.maxUpload {
		s.writeWSError(ctx, conn, apperr.New(apperr.CodeInvalidArgument, "Upload too large"))
		return
	}

	_ = wsjson.Write(ctx, conn, AcceptedMessage{Type: "accepted", Filename: msg.Filename})

	res, err := s.scan(ctx, bytes.NewReader(msg.Media), scanRequest{
		Filename: msg.Filename,
		Locale:   msg.Locale,
		Mode:     msg.Mode,
		ForSale:  msg.ForSale,
	})
	if err != nil {
		span.Fail(err)
		s.writeWSError(ctx, conn, err)
		return
	}
	_ = wsjson.Write(ctx, conn, ResultMessage{Type: "result", Result: res})
}

func (s *Server) writeWSError(ctx context.Context, conn *websocket.Conn, err error) {
	_ = wsjson.Write(ctx, conn, ErrorMessage{
		Type:    "error",
		Code:    apperr.CodeOf(err).String(),
		Message: err.Error(),
	})
}
