package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsPreflightMaxAge is how long browsers may cache a preflight answer.
const corsPreflightMaxAge = 12 * time.Hour

// createCORSMiddleware builds the CORS middleware placed in front of the dev proxy routes.
// Returns nil if CORS is disabled or no origins are configured.
//
// The admin UI normally reaches the proxy from the same origin, so CORS stays off by default.
// Turn it on when the UI dev server runs on its own port (for example a bundler on :5173)
// and calls the proxy directly.
//
// Configuration:
//   - enabled: Whether CORS is enabled (CORS_ENABLED)
//   - allowOriginsStr: Comma-separated list of allowed origins (CORS_ALLOW_ORIGINS)
//
// Preflights allow the verbs used by the admin API, including PATCH for key status updates,
// and the Authorization header carrying the bearer credential.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	switch {
	case allowOriginsStr == "":
		logger.Warn("CORS enabled but no origins configured - CORS will not be applied")
		return nil
	case len(origins) == 0:
		logger.Warn("CORS enabled but no valid origins found", slog.String("value", allowOriginsStr))
		return nil
	}

	logger.Info("CORS enabled for dev proxy",
		slog.Int("origin_count", len(origins)),
		slog.Any("origins", origins),
	)

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowHeaders:     []string{"Authorization", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           corsPreflightMaxAge,
	})
}

// parseOrigins splits a comma-separated origin list and trims whitespace around each entry.
// Blank entries are dropped. Returns nil for an empty input.
func parseOrigins(originsStr string) []string {
	if originsStr == "" {
		return nil
	}

	origins := []string{}
	for part := range strings.SplitSeq(originsStr, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
