// Package devproxy forwards browser-facing path prefixes to the backend during UI development.
package devproxy

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	stdhttputil "net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
	"github.com/allisson/rotator-admin/internal/httputil"
)

// Rule forwards every request whose path starts with Prefix. When StripPrefix is set the prefix is
// removed before forwarding.
type Rule struct {
	Prefix      string
	StripPrefix bool
}

// DefaultRules forwards /admin and /llm unchanged and /api with the prefix removed.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/admin"},
		{Prefix: "/llm"},
		{Prefix: "/api", StripPrefix: true},
	}
}

// Proxy holds the upstream target and its forwarding rules.
type Proxy struct {
	target    *url.URL
	rules     []Rule
	transport http.RoundTripper
	logger    *slog.Logger
}

// New parses target and creates a Proxy. The transport may be nil.
func New(target string, rules []Rule, transport http.RoundTripper, logger *slog.Logger) (*Proxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target %q: %w", target, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy target %q: scheme and host are required", target)
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Proxy{target: u, rules: rules, transport: transport, logger: logger}, nil
}

// Target returns the upstream origin.
func (p *Proxy) Target() string {
	return p.target.String()
}

// Rules returns the configured rules.
func (p *Proxy) Rules() []Rule {
	return p.rules
}

// Register mounts one handler per rule on router, covering both the bare prefix and everything
// below it.
func (p *Proxy) Register(router gin.IRoutes) {
	for _, rule := range p.rules {
		h := p.Handler(rule)
		router.Any(rule.Prefix, h)
		router.Any(rule.Prefix+"/*path", h)
	}
}

// Handler returns the gin handler forwarding requests matched by rule.
func (p *Proxy) Handler(rule Rule) gin.HandlerFunc {
	rp := &stdhttputil.ReverseProxy{
		Rewrite: func(pr *stdhttputil.ProxyRequest) {
			if rule.StripPrefix {
				pr.Out.URL.Path = stripPrefix(pr.In.URL.Path, rule.Prefix)
				pr.Out.URL.RawPath = ""
			}
			// SetURL also rewrites the Host header to the target's host.
			pr.SetURL(p.target)
			pr.SetXForwarded()
		},
		Transport: p.transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			err = apperrors.Wrapf(apperrors.ErrUnavailable, "%s %s via %s: %v", r.Method, r.URL.Path, p.target, err)
			httputil.HandleError(w, err, p.logger)
		},
	}

	return func(c *gin.Context) {
		rp.ServeHTTP(c.Writer, c.Request)
	}
}

// CheckUpstream reports whether the target answers at all. Any HTTP response counts as reachable.
func (p *Proxy) CheckUpstream(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create upstream check request: %w", err)
	}

	resp, err := p.transport.RoundTrip(req)
	if err != nil {
		return fmt.Errorf("upstream unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func stripPrefix(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" || rest[0] != '/' {
		rest = "/" + rest
	}
	return rest
}
