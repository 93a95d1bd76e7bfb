package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Bahjat/site-audit/internal/platform/config"
	"github.com/Bahjat/site-audit/internal/platform/middleware"
)

const shutdownTimeout = 15 * time.Second

// NewHandler wires the API routes behind request id, access log and rate
// limit middleware.
func NewHandler(provider PageInsightProvider, logger *slog.Logger, cfg config.Config, version string) http.Handler {
	transport := NewTransport(NewService(provider, logger), logger, version)
	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.RateLimit(cfg.RateLimit, cfg.RateBurst),
	)
}

// NewServer returns an http.Server for handler on the configured port.
// WriteTimeout leaves room for the full analysis deadline.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      analyzeTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Serve runs srv until it fails or ctx is done, then shuts it down
// gracefully.
func Serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		if closeErr := srv.Close(); closeErr != nil {
			return fmt.Errorf("graceful shutdown failed: %w (close error: %w)", err, closeErr)
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
