package handlers

import (
	"net/http"
	"os"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/sqlengine"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// SQL evaluates the .sql file at sqlPath against the live collection set
// on every request. Route path-parameter placeholders ({id}, {name},
// ...) are rewritten to positional "?" binds in occurrence order, with
// each bind's value pulled from the matching gin path parameter —
// mirroring the "recompute against the live set, it's cheap" design
// DESIGN NOTES §9 prescribes for dynamic relation inference.
func SQL(sqlPath string, store *collection.Store, engine *sqlengine.Engine) gin.HandlerFunc {
	raw, err := os.ReadFile(sqlPath)
	if err != nil {
		return func(c *gin.Context) { fail(c, apperr.ErrNotFound) }
	}

	var params []string
	query := placeholderPattern.ReplaceAllStringFunc(string(raw), func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		params = append(params, name)
		return "?"
	})

	return func(c *gin.Context) {
		values := make([]any, len(params))
		for i, name := range params {
			values[i] = c.Param(name)
		}

		rows, err := engine.Query(store, query, values)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}
