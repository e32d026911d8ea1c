package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"demo/foodorders/internal/app"
	"demo/foodorders/internal/config"
	"demo/foodorders/internal/telemetry"
)

func main() {
	cfg, err := config.Load(config.BackendPostgres)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := telemetry.NewLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("service stopped", "error", err)
		stop()
		os.Exit(1)
	}
	logger.Info("bye")
}

// run serves until ctx is cancelled or the listener fails. Resources are
// released on both paths; a listener failure is returned.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("tracer setup: %w", err)
	}

	startCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	root, err := app.NewCompositionRoot(startCtx, cfg, logger)
	cancel()
	if err != nil {
		_ = shutdownTracer(context.Background())
		return fmt.Errorf("startup (backend %s): %w", cfg.StoreBackend, err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           root.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("http: listening", "addr", cfg.HTTPAddr, "backend", cfg.StoreBackend)
		srvErr <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shCtx, shCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shCancel()
	if err := srv.Shutdown(shCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http shutdown", "error", err)
	}
	if err := root.Close(); err != nil {
		logger.Error("close resources", "error", err)
	}
	if err := shutdownTracer(shCtx); err != nil {
		logger.Error("tracer shutdown", "error", err)
	}
	return runErr
}
