package rpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Nachtalb/CatalogScanner/internal/catalog"
	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
	"github.com/Nachtalb/CatalogScanner/internal/resilience"
	"github.com/Nachtalb/CatalogScanner/internal/trace"
)

// Client calls a remote Scanner service. Transport failures are retried and
// trip a circuit breaker; scan verdicts are returned as they are.
type Client struct {
	conn    *grpc.ClientConn
	health  healthpb.HealthClient
	breaker *resilience.Breaker
	retry   resilience.RetryConfig
}

// Dial creates a client for the service at addr. Extra options are appended
// to the defaults, so tests can swap the dialer.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    DefaultKeepaliveTime,
			Timeout: DefaultKeepaliveTimeout,
		}),
		grpc.WithChainUnaryInterceptor(trace.UnaryClientInterceptor()),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeUnavailable, "Failed to connect to %s", addr)
	}

	return &Client{
		conn:    conn,
		health:  healthpb.NewHealthClient(conn),
		breaker: resilience.New(resilience.ScanConfig()).WithFailureFilter(isTransportFailure),
		retry:   resilience.ScanRetryConfig(),
	}, nil
}

// Close closes the gRPC connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// ScanMedia asks the server to scan a path on its own filesystem.
func (c *Client) ScanMedia(ctx context.Context, path string, opts catalog.Options) (*catalog.Result, error) {
	req := EncodeRequest(path, opts)

	resp, err := resilience.ExecuteWithResult(c.breaker, func() (*structpb.Struct, error) {
		resp := new(structpb.Struct)
		err := resilience.Retry(ctx, c.retry, func() error {
			return c.conn.Invoke(ctx, ScanMethod, req, resp)
		})
		return resp, err
	})
	if errors.Is(err, resilience.ErrOpen) {
		return nil, apperr.Wrap(err, apperr.CodeUnavailable, "Scan service unavailable")
	}
	if err != nil {
		return nil, apperr.FromGRPCError(err)
	}
	return DecodeResult(resp)
}

// Healthy checks the Scanner service's health status.
func (c *Client) Healthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return apperr.FromGRPCError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return apperr.Newf(apperr.CodeUnavailable, "Scan service is %s", resp.GetStatus())
	}
	return nil
}

// isTransportFailure reports whether err says something about the server's
// health rather than about the scanned media.
func isTransportFailure(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	default:
		return false
	}
}
