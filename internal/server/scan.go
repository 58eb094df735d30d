package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Nachtalb/CatalogScanner/internal/catalog"
	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// scanRequest is a scan as received by either transport.
type scanRequest struct {
	Filename string
	Locale   string
	Mode     string
	ForSale  bool
}

func (s *Server) options(req scanRequest) (catalog.Options, error) {
	mode, err := catalog.ParseMode(req.Mode)
	if err != nil {
		return catalog.Options{}, apperr.Wrap(err, apperr.CodeInvalidArgument, "Invalid mode")
	}
	loc := req.Locale
	if loc == "" {
		loc = s.defaultLocale
	}
	return catalog.Options{Mode: mode, Locale: loc, ForSale: req.ForSale}, nil
}

// scan spools media to a temporary file and scans it once a slot is free.
func (s *Server) scan(ctx context.Context, media io.Reader, req scanRequest) (*catalog.Result, error) {
	opts, err := s.options(req)
	if err != nil {
		return nil, err
	}

	ctx, span := trace.StartSpan(ctx, "server.scan")
	defer span.End()

	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	case <-ctx.Done():
		return nil, apperr.Wrap(ctx.Err(), apperr.CodeUnavailable, "Scan cancelled while queued")
	}

	path, err := spool(media, req.Filename)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	defer os.Remove(path)

	res, err := s.scanner.ScanMedia(ctx, path, opts)
	if err != nil {
		span.Fail(err)
		trace.Logger(ctx).Warn("scan failed", "error", err, "code", apperr.CodeOf(err))
		return nil, err
	}
	return res, nil
}

// spool writes media to a temp file keeping the upload's extension, which
// decides how the file is decoded.
func spool(media io.Reader, filename string) (string, error) {
	if filename == "" {
		filename = DefaultUploadName
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))

	f, err := os.CreateTemp("", tempPattern+ext)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeInternal, "Failed to store upload")
	}
	if _, err := io.Copy(f, media); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", apperr.Wrap(err, apperr.CodeInvalidArgument, "Upload too large").
				WithMetadata("limit", strconv.FormatInt(tooLarge.Limit, 10))
		}
		return "", apperr.Wrap(err, apperr.CodeInvalidArgument, "Failed to read upload")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", apperr.Wrap(err, apperr.CodeInternal, "Failed to store upload")
	}
	return f.Name(), nil
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := scanRequest{
		Filename: q.Get("filename"),
		Locale:   q.Get("locale"),
		Mode:     q.Get("mode"),
	}
	if v := q.Get("for_sale"); v != "" {
		forSale, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, apperr.Newf(apperr.CodeInvalidArgument, "Invalid for_sale: %q", v))
			return
		}
		req.ForSale = forSale
	}

	body := http.MaxBytesReader(w, r.Body, s.maxUpload)
	res, err := s.scan(r.Context(), body, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	if apperr.IsRetryable(err) {
		w.Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
	}
	writeJSON(w, httpStatus(err), ErrorResponse{Error: err.Error(), Code: code.String()})
}

// httpStatus maps scan error codes onto HTTP statuses. A fatal scan verdict
// is a problem with the uploaded media, not with the request.
func httpStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch code := apperr.CodeOf(err); {
	case code == apperr.CodeInvalidArgument, code == apperr.CodeInvalidResolution:
		return http.StatusBadRequest
	case code == apperr.CodeNotFound:
		return http.StatusNotFound
	case code == apperr.CodeUnavailable:
		return http.StatusServiceUnavailable
	case apperr.IsFatalScan(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
