package devproxy

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type upstreamHit struct {
	Path  string `json:"path"`
	Query string `json:"query"`
	Host  string `json:"host"`
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(upstreamHit{Path: r.URL.Path, Query: r.URL.RawQuery, Host: r.Host})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRouter(t *testing.T, target string) *gin.Engine {
	t.Helper()
	proxy, err := New(target, DefaultRules(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	router := gin.New()
	proxy.Register(router)
	return router
}

// get issues a real request against router, since the reverse proxy needs a live connection.
func get(t *testing.T, router http.Handler, path string) (int, []byte) {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestProxy_Rules(t *testing.T) {
	upstream := newUpstream(t)
	router := newRouter(t, upstream.URL)
	upstreamURL, err := url.Parse(upstream.URL)
	require.NoError(t, err)

	tests := []struct {
		name      string
		path      string
		wantPath  string
		wantQuery string
	}{
		{"admin forwarded unchanged", "/admin/proxy-configs", "/admin/proxy-configs", ""},
		{"admin bare prefix", "/admin", "/admin", ""},
		{"llm forwarded unchanged", "/llm/openai/v1/chat/completions", "/llm/openai/v1/chat/completions", ""},
		{"api prefix stripped", "/api/admin/keys/3", "/admin/keys/3", ""},
		{"api bare prefix", "/api", "/", ""},
		{"query preserved", "/api/admin/proxy-configs?page=2", "/admin/proxy-configs", "page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, router, tt.path)

			require.Equal(t, http.StatusOK, status)
			var hit upstreamHit
			require.NoError(t, json.Unmarshal(body, &hit))
			assert.Equal(t, tt.wantPath, hit.Path)
			assert.Equal(t, tt.wantQuery, hit.Query)
			assert.Equal(t, upstreamURL.Host, hit.Host)
		})
	}
}

func TestProxy_UnmatchedPathNotForwarded(t *testing.T) {
	upstream := newUpstream(t)
	router := newRouter(t, upstream.URL)

	status, _ := get(t, router, "/proxy/weather")

	assert.Equal(t, http.StatusNotFound, status)
}

func TestProxy_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	target := upstream.URL
	upstream.Close()
	router := newRouter(t, target)

	status, body := get(t, router, "/admin/app-config")

	assert.Equal(t, http.StatusBadGateway, status)
	assert.JSONEq(t, `{"error":"upstream_unavailable","message":"The backend did not respond"}`, string(body))
}

func TestNew_InvalidTarget(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := New("localhost:8000", DefaultRules(), nil, logger)
	assert.Error(t, err)

	_, err = New("://bad", DefaultRules(), nil, logger)
	assert.Error(t, err)
}

func TestProxy_CheckUpstream(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	upstream := newUpstream(t)

	proxy, err := New(upstream.URL, DefaultRules(), nil, logger)
	require.NoError(t, err)
	assert.NoError(t, proxy.CheckUpstream(context.Background()))

	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()
	proxy, err = New(downURL, DefaultRules(), nil, logger)
	require.NoError(t, err)
	assert.Error(t, proxy.CheckUpstream(context.Background()))
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "/admin/keys", stripPrefix("/api/admin/keys", "/api"))
	assert.Equal(t, "/", stripPrefix("/api", "/api"))
	assert.Equal(t, "/", stripPrefix("/api/", "/api"))
}

func TestStaticHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o600))

	router := gin.New()
	router.NoRoute(StaticHandler(dir))

	t.Run("serves existing file", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "console.log(1)", w.Body.String())
	})

	t.Run("falls back to index for client routes", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/configs/3/keys", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<html>app</html>", w.Body.String())
	})

	t.Run("rejects non get", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/configs", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
