// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// APIBaseURL is the origin of the backend (scheme, host and optional port).
	APIBaseURL string
	// APIAdminPrefix is the path prefix shared by the admin and login surfaces.
	APIAdminPrefix string
	// HTTPTimeout bounds every request issued by the gateway.
	HTTPTimeout time.Duration

	// SessionFile is the path of the persistent session document.
	// Empty means the default location under the user config directory.
	SessionFile string
	// SessionKeyURI is an optional gocloud.dev secrets URI used to seal stored values
	// (e.g., "base64key://...", "hashivault://...").
	SessionKeyURI string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// RateLimitEnabled indicates whether outgoing requests are throttled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for outgoing requests.
	RateLimitBurst int

	// ImportConcurrency bounds the number of keys added in parallel by "keys import".
	ImportConcurrency int

	// DevProxyHost is the host address the development proxy binds to.
	DevProxyHost string
	// DevProxyPort is the port number the development proxy listens on.
	DevProxyPort int
	// DevProxyTarget is the backend origin the development proxy forwards to.
	DevProxyTarget string
	// DevProxyStaticDir optionally serves a built UI from this directory.
	DevProxyStaticDir string

	// CORSEnabled indicates whether CORS is enabled on the development proxy.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Backend
		APIBaseURL:     env.GetString("API_BASE_URL", "http://localhost:8000"),
		APIAdminPrefix: env.GetString("API_ADMIN_PREFIX", "/admin"),
		HTTPTimeout:    env.GetDuration("HTTP_TIMEOUT_SECONDS", 30, time.Second),

		// Session storage
		SessionFile:   env.GetString("SESSION_FILE", ""),
		SessionKeyURI: env.GetString("SESSION_KEY_URI", ""),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "warn"),

		// Outgoing rate limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// Key import
		ImportConcurrency: env.GetInt("IMPORT_CONCURRENCY", 4),

		// Development proxy
		DevProxyHost:      env.GetString("DEV_PROXY_HOST", "0.0.0.0"),
		DevProxyPort:      env.GetInt("DEV_PROXY_PORT", 5173),
		DevProxyTarget:    env.GetString("DEV_PROXY_TARGET", "http://localhost:8000"),
		DevProxyStaticDir: env.GetString("DEV_PROXY_STATIC_DIR", ""),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "rotator_admin"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
