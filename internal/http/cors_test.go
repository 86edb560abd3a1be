package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{"disabled", false, "http://localhost:5173", true},
		{"enabled without origins", true, "", true},
		{"enabled with only separators", true, " , ,", true},
		{"enabled with origins", true, "http://localhost:5173, https://admin.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.wantNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://admin.example.com"},
		parseOrigins(" http://localhost:5173 ,, https://admin.example.com "),
	)
}

func TestCORS_PreflightForKeyStatusUpdate(t *testing.T) {
	middleware := createCORSMiddleware(true, "http://localhost:5173", slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	router.Use(middleware)
	router.PATCH("/admin/keys/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/admin/keys/3", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestCORS_UnknownOriginGetsNoHeaders(t *testing.T) {
	middleware := createCORSMiddleware(true, "http://localhost:5173", slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	router.Use(middleware)
	router.GET("/admin/app-config", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/app-config", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
