package devproxy

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/rotator-admin/internal/httputil"
)

// StaticHandler serves a built UI from dir. Unknown paths fall back to index.html so client-side
// routes resolve. Non-GET requests get a JSON 404.
func StaticHandler(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			httputil.HandleErrorGin(c, httputil.ErrRouteNotFound, nil)
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+c.Request.URL.Path)))
		if !strings.HasPrefix(name, filepath.Clean(dir)) {
			httputil.HandleErrorGin(c, httputil.ErrRouteNotFound, nil)
			return
		}

		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		httputil.HandleErrorGin(c, httputil.ErrRouteNotFound, nil)
	}
}
