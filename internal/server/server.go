// Package server exposes scans over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/Nachtalb/CatalogScanner/internal/catalog"
	"github.com/Nachtalb/CatalogScanner/internal/config"
	"github.com/Nachtalb/CatalogScanner/internal/locale"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
)

// Scanner runs a scan over a media file on disk.
type Scanner interface {
	ScanMedia(ctx context.Context, path string, opts catalog.Options) (*catalog.Result, error)
}

// cacheReporter is implemented by scanners that cache item databases.
type cacheReporter interface {
	LoadedLocales() int
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	scanner       Scanner
	slots         chan struct{}
	maxUpload     int64
	defaultLocale string

	mu         sync.Mutex
	rateLimits map[*websocket.Conn]*rateLimiter
}

// New creates a new server.
func New(scanner Scanner, cfg *config.Config) *Server {
	slots := cfg.MaxConcurrentScans
	if slots <= 0 {
		slots = 1
	}
	return &Server{
		scanner:       scanner,
		slots:         make(chan struct{}, slots),
		maxUpload:     cfg.MaxUploadBytes(),
		defaultLocale: cfg.Locale,
		rateLimits:    make(map[*websocket.Conn]*rateLimiter),
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.handleWebSocket)

	// REST API
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/locales", s.handleLocales)
	mux.HandleFunc("POST /api/scan", s.handleScan)

	// Apply middleware: trace -> CORS
	return corsMiddleware(trace.Middleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	conns := len(s.rateLimits)
	s.mu.Unlock()

	body := map[string]any{
		"status":        "ok",
		"scans_running": len(s.slots),
		"scan_slots":    cap(s.slots),
		"connections":   conns,
	}
	if cr, ok := s.scanner.(cacheReporter); ok {
		body["item_databases"] = cr.LoadedLocales()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleLocales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default": s.defaultLocale,
		"locales": append([]string{locale.Auto}, locale.Supported()...),
		"modes":   catalog.Modes(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
