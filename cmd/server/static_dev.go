//go:build !embed

package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupStaticFiles serves a built frontend from dir when present.
// Without one the API runs alone and the frontend is served by its dev server.
func setupStaticFiles(router *gin.Engine, dir string, logger *zap.Logger) error {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		logger.Info("no frontend build found, serving API only", zap.String("static_dir", dir))
		router.NoRoute(func(c *gin.Context) {
			if isAPIPath(c.Request.URL.Path) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "API endpoint not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"message": "Frontend is running separately",
				"dev_url": "http://localhost:3000",
			})
		})
		return nil
	}

	logger.Info("serving frontend from local filesystem", zap.String("static_dir", dir))
	router.Static("/assets", filepath.Join(dir, "assets"))
	router.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "API endpoint not found"})
			return
		}
		c.File(index)
	})
	return nil
}
