package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/rotator-admin/internal/metrics"
)

const (
	metricsReadTimeout  = 15 * time.Second
	metricsWriteTimeout = 15 * time.Second
	metricsIdleTimeout  = 60 * time.Second
)

// MetricsServer serves Prometheus metrics for the dev proxy and the admin client on a dedicated port.
// The proxy listener does not serve /metrics, so scrapes never match a forwarding rule.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer creates a MetricsServer listening on host:port.
//
// The router only carries recovery and request logging. When metricsProvider is nil the server still
// starts but answers 404 for every path, which matches a dev-proxy run with METRICS_ENABLED=false.
func NewMetricsServer(host string, port int, logger *slog.Logger, metricsProvider *metrics.Provider) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery(), CustomLoggerMiddleware(logger))

	if metricsProvider != nil {
		router.GET("/metrics", gin.WrapH(metricsProvider.Handler()))
	}

	return &MetricsServer{
		server: &http.Server{
			Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
			Handler:      router,
			ReadTimeout:  metricsReadTimeout,
			WriteTimeout: metricsWriteTimeout,
			IdleTimeout:  metricsIdleTimeout,
		},
		logger: logger,
	}
}

// GetHandler returns the router so tests can drive it with httptest.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start listens and serves until Shutdown is called.
// A closed server is a normal exit and returns nil; any other listener error is wrapped.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.logger.Info("starting metrics server", slog.String("addr", s.server.Addr))

	err := s.server.ListenAndServe()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("failed to start metrics server: %w", err)
}

// Shutdown stops accepting scrapes and waits for in-flight ones until ctx expires.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server", slog.String("addr", s.server.Addr))
	return s.server.Shutdown(ctx)
}
