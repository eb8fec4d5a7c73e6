package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
}

// notFound answers unknown API routes with JSON and everything else with the web client.
func (s *Server) notFound(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{"error": "API route not found"})
		return
	}

	if s.cfg.StaticDir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	file := filepath.Join(s.cfg.StaticDir, filepath.Clean("/"+path))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}
	c.File(filepath.Join(s.cfg.StaticDir, "index.html"))
}
