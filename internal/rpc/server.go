package rpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Nachtalb/CatalogScanner/internal/catalog"
	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
)

// Scanner runs a scan over a media file readable by the server.
type Scanner interface {
	ScanMedia(ctx context.Context, path string, opts catalog.Options) (*catalog.Result, error)
}

// Server implements ScannerServer on top of a Scanner.
type Server struct {
	scanner Scanner
}

// NewServer creates a Scanner service.
func NewServer(scanner Scanner) *Server {
	return &Server{scanner: scanner}
}

// Scan runs one scan. Scan failures are returned as statuses carrying an
// ErrorInfo detail with the scan error code.
func (s *Server) Scan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	path, opts, err := DecodeRequest(req)
	if err != nil {
		return nil, toStatus(err)
	}
	res, err := s.scanner.ScanMedia(ctx, path, opts)
	if err != nil {
		trace.Logger(ctx).Warn("scan failed", "path", path, "error", err)
		return nil, toStatus(err)
	}
	return EncodeResult(res), nil
}

func toStatus(err error) error {
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr.GRPCStatus().Err()
	}
	return status.Error(codes.Internal, err.Error())
}

// NewGRPCServer returns a gRPC server with the Scanner and health services
// registered and trace propagation installed.
func NewGRPCServer(scanner Scanner, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(trace.UnaryServerInterceptor()))
	gs := grpc.NewServer(opts...)
	gs.RegisterService(&ServiceDesc, NewServer(scanner))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return gs
}
