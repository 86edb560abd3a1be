// Package http hosts the development proxy server and the metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/rotator-admin/internal/config"
	"github.com/allisson/rotator-admin/internal/devproxy"
	"github.com/allisson/rotator-admin/internal/httputil"
	"github.com/allisson/rotator-admin/internal/metrics"
)

// Server serves the development proxy.
type Server struct {
	proxy  *devproxy.Proxy
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a Server listening on host:port. Call SetupRouter before Start.
func NewServer(proxy *devproxy.Proxy, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		proxy:  proxy,
		logger: logger,
		server: &http.Server{
			Addr:        fmt.Sprintf("%s:%d", host, port),
			ReadTimeout: 15 * time.Second,
			// Proxied LLM responses may stream for a long time.
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine: middlewares, health endpoints, proxy rules and the optional
// static UI. metricsProvider may be nil.
func (s *Server) SetupRouter(cfg *config.Config, metricsProvider *metrics.Provider, metricsNamespace string) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cors := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); cors != nil {
		router.Use(cors)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	if s.proxy != nil {
		s.proxy.Register(router)
	}

	if cfg.DevProxyStaticDir != "" {
		router.NoRoute(devproxy.StaticHandler(cfg.DevProxyStaticDir))
	} else {
		router.NoRoute(func(c *gin.Context) {
			httputil.HandleErrorGin(c, httputil.ErrRouteNotFound, nil)
		})
	}

	s.router = router
}

// GetHandler returns the configured handler.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	attrs := []any{slog.String("addr", s.server.Addr)}
	if s.proxy != nil {
		attrs = append(attrs, slog.String("target", s.proxy.Target()))
	}
	s.logger.Info("starting dev proxy server", attrs...)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down dev proxy server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only while the upstream backend answers.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.proxy == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"upstream": "error"},
		})
		return
	}

	if err := s.proxy.CheckUpstream(c.Request.Context()); err != nil {
		s.logger.Warn("upstream not reachable", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"upstream": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"upstream": "ok"},
	})
}
