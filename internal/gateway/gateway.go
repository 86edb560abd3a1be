// Package gateway issues HTTP calls against the backend's admin and login surfaces.
//
// A request is assembled per call: the credential is read from the session at dispatch time,
// so a login or logout is honored by the very next call. The underlying http.Client is shared
// to keep connection reuse.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
)

// Surface selects which public surface a request targets.
type Surface int

const (
	// SurfaceAdmin is the authenticated admin surface. Requests carry the credential when present.
	SurfaceAdmin Surface = iota
	// SurfaceLogin is the unauthenticated login surface. Requests never carry a credential.
	SurfaceLogin
)

// String returns the surface name used in logs.
func (s Surface) String() string {
	if s == SurfaceLogin {
		return "login"
	}
	return "admin"
}

// CredentialSource yields the current credential. Implemented by the session usecase.
type CredentialSource interface {
	Credential(ctx context.Context) (sessionDomain.Credential, bool)
}

// Interceptor observes every failed exchange. It must return the error it was given (or an
// error wrapping it) so the failure still reaches the caller.
type Interceptor interface {
	OnFailure(ctx context.Context, err error) error
}

// Gateway builds and dispatches requests relative to a base URL and path prefix.
type Gateway struct {
	baseURL     string
	prefix      string
	credentials CredentialSource
	httpClient  *http.Client
	interceptor Interceptor
	limiter     *rate.Limiter
	timeout     time.Duration
	logger      *slog.Logger
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		g.httpClient = client
	}
}

// WithTimeout bounds every call. Zero disables the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// WithRateLimit throttles outgoing requests with a token bucket.
func WithRateLimit(rps float64, burst int) Option {
	return func(g *Gateway) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithInterceptor installs the failure hook.
func WithInterceptor(interceptor Interceptor) Option {
	return func(g *Gateway) {
		g.interceptor = interceptor
	}
}

// WithLogger sets the logger used for per-exchange debug logs.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// New creates a Gateway for baseURL (scheme and host) and prefix (e.g. "/admin").
func New(baseURL, prefix string, credentials CredentialSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:     strings.TrimRight(baseURL, "/"),
		prefix:      normalizePrefix(prefix),
		credentials: credentials,
		httpClient:  &http.Client{},
		timeout:     30 * time.Second,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Get issues a GET request.
func (g *Gateway) Get(ctx context.Context, surface Surface, path string) ([]byte, error) {
	return g.Do(ctx, surface, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body.
func (g *Gateway) Post(ctx context.Context, surface Surface, path string, body any) ([]byte, error) {
	return g.Do(ctx, surface, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body.
func (g *Gateway) Put(ctx context.Context, surface Surface, path string, body any) ([]byte, error) {
	return g.Do(ctx, surface, http.MethodPut, path, body)
}

// Patch issues a PATCH request with a JSON body.
func (g *Gateway) Patch(ctx context.Context, surface Surface, path string, body any) ([]byte, error) {
	return g.Do(ctx, surface, http.MethodPatch, path, body)
}

// Delete issues a DELETE request.
func (g *Gateway) Delete(ctx context.Context, surface Surface, path string) ([]byte, error) {
	return g.Do(ctx, surface, http.MethodDelete, path, nil)
}

// Do dispatches method against path on surface and returns the raw response body on 2xx.
// Any failure is passed to the interceptor exactly once and then returned.
func (g *Gateway) Do(ctx context.Context, surface Surface, method, path string, body any) ([]byte, error) {
	respBody, err := g.exchange(ctx, surface, method, path, body)
	if err != nil {
		return nil, g.fail(ctx, err)
	}
	return respBody, nil
}

func (g *Gateway) exchange(
	ctx context.Context,
	surface Surface,
	method, path string,
	body any,
) ([]byte, error) {
	reqBody, err := encodeBody(body)
	if err != nil {
		// Never sent, so nothing for the interceptor to report.
		return nil, &encodeError{err: err}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, &NetworkFailure{Method: method, Path: path, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, g.URL(path), reqBody)
	if err != nil {
		return nil, &encodeError{err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.Must(uuid.NewV7()).String())

	if surface == SurfaceAdmin {
		if credential, ok := g.credentials.Credential(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+credential.Value())
		}
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Debug("request failed without response",
			slog.String("surface", surface.String()),
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return nil, &NetworkFailure{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkFailure{Method: method, Path: path, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	g.logger.Debug("request completed",
		slog.String("surface", surface.String()),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.String("request_id", req.Header.Get("X-Request-Id")),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestFailure{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: extractMessage(respBody),
			Body:    respBody,
		}
	}

	return respBody, nil
}

// fail routes exchange failures through the interceptor. Encoding errors never reached the
// wire and are returned as-is.
func (g *Gateway) fail(ctx context.Context, err error) error {
	if enc, ok := err.(*encodeError); ok {
		return enc.err
	}
	if g.interceptor == nil {
		return err
	}
	return g.interceptor.OnFailure(ctx, err)
}

// URL returns the absolute URL for a resource-relative path.
func (g *Gateway) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return g.baseURL + g.prefix + path
}

// encodeError marks failures that happened before dispatch.
type encodeError struct {
	err error
}

func (e *encodeError) Error() string { return e.err.Error() }

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

// extractMessage returns the first non-empty string among the "message", "detail" and "error"
// fields of a JSON object body.
func extractMessage(body []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}

	for _, key := range []string{"message", "detail", "error"} {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
