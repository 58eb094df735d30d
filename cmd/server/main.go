// Catalog server - serves scans over HTTP, WebSocket and gRPC
package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nachtalb/CatalogScanner/internal/catalog"
	"github.com/Nachtalb/CatalogScanner/internal/config"
	"github.com/Nachtalb/CatalogScanner/internal/rpc"
	"github.com/Nachtalb/CatalogScanner/internal/server"
)

func main() {
	cfg := config.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	scanner := catalog.FromConfig(cfg)

	// Create HTTP/WebSocket server
	srv := server.New(scanner, cfg)

	// Scans take as long as the upload plus the pipeline, so only the
	// header read is bounded.
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.HTTPAddr, "assets", cfg.AssetDir)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
		}
	}()

	// Start gRPC server
	grpcServer := rpc.NewGRPCServer(scanner)
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		slog.Error("failed to listen", "addr", cfg.GRPCAddr, "error", err)
		os.Exit(1)
	}

	go func() {
		slog.Info("grpc server starting", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("grpc server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
	grpcServer.GracefulStop()
	slog.Info("shutdown complete")
}
