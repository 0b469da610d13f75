//go:build embed

package main

import (
	"embed"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed web/dist
var webDist embed.FS

// setupStaticFiles serves the embedded frontend. dir is ignored in embedded builds.
func setupStaticFiles(router *gin.Engine, _ string, logger *zap.Logger) error {
	logger.Info("using embedded frontend assets")

	distFS, err := fs.Sub(webDist, "web/dist")
	if err != nil {
		return fmt.Errorf("failed to get dist subdirectory: %w", err)
	}

	router.NoRoute(func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if isAPIPath(urlPath) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "API endpoint not found"})
			return
		}

		name := strings.TrimPrefix(path.Clean(urlPath), "/")
		if name == "" {
			name = "index.html"
		}

		if content, err := fs.ReadFile(distFS, name); err == nil {
			c.Data(http.StatusOK, contentType(name), content)
			return
		}

		// Unknown paths fall through to the SPA entry point
		index, err := fs.ReadFile(distFS, "index.html")
		if err != nil {
			c.String(http.StatusNotFound, "404 page not found")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	return nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "text/html; charset=utf-8"
}
