// Package webui embeds the two external-collaborator assets listed in
// SPEC_FULL.md §1 ("the GraphiQL IDE HTML" and "the browser-side tester
// UI"): static HTML served straight out of the binary via Go's embed
// package, no templating, no external file reads at runtime.
package webui

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed assets/index.html assets/graphiql.html
var assets embed.FS

// Index serves the browser-side tester UI at GET /.
func Index() gin.HandlerFunc {
	return serveAsset("assets/index.html")
}

// GraphiQL serves the GraphiQL IDE at GET /graphiql.
func GraphiQL() gin.HandlerFunc {
	return serveAsset("assets/graphiql.html")
}

func serveAsset(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := assets.ReadFile(name)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
}
