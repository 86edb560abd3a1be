package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Server is a long-running listener with graceful shutdown.
type Server interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// NamedServer labels a Server in logs and errors.
type NamedServer struct {
	Name   string
	Server Server
}

// RunDevProxy starts the development proxy and its companion servers with graceful shutdown support.
// Blocks until receiving SIGINT/SIGTERM, the context is canceled, or a server fails. Every server
// is then stopped within shutdownTimeout.
func RunDevProxy(
	ctx context.Context,
	logger *slog.Logger,
	version string,
	shutdownTimeout time.Duration,
	servers ...NamedServer,
) error {
	logger.Info("starting dev proxy", slog.String("version", version))

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, len(servers))
	for _, s := range servers {
		go func() {
			if err := s.Server.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("%s server error: %w", s.Name, err)
			}
		}()
	}

	var shutdownErrors []error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		// Attempt graceful shutdown if one server fails
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		shutdownErrors = append(shutdownErrors, err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Server.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("%s server shutdown: %w", s.Name, err))
		}
	}

	return errors.Join(shutdownErrors...)
}
