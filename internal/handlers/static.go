package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/grammar"
)

// Static serves filePath verbatim on every request — re-reading the
// file each time rather than caching its bytes at build time, so a
// hot-reload-free content edit (§4.9, invariant 8) is still reflected.
func Static(filePath, ext string) gin.HandlerFunc {
	contentType, known := grammar.ContentTypeFor(ext)
	if !known {
		contentType = "application/octet-stream"
	}

	return func(c *gin.Context) {
		data, err := os.ReadFile(filePath)
		if err != nil {
			fail(c, apperr.ErrNotFound)
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

// PublicDir serves a directory tree rooted at dir under the route's
// wildcard path parameter, named param.
func PublicDir(dir, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rel := c.Param(param)
		c.FileFromFS(rel, http.Dir(dir))
	}
}
