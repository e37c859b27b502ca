package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/jgd"
)

// JGD evaluates the schema at schemaPath on every request and
// serializes the result as JSON.
func JGD(schemaPath string, evaluator *jgd.Evaluator) gin.HandlerFunc {
	return func(c *gin.Context) {
		schema, err := os.ReadFile(schemaPath)
		if err != nil {
			fail(c, apperr.ErrNotFound)
			return
		}

		result, err := evaluator.Evaluate(schema)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
