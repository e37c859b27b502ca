package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/graphqlengine"
	"github.com/rawen554/mockhive/internal/jgd"
)

// GraphQL handles POST /graphql. An operationName matching a file
// under <graphqlDir>/<name>.json or <name>.jgd short-circuits straight
// to that file's content (JGD-evaluated for .jgd); otherwise the query
// is resolved dynamically against the live collection set.
func GraphQL(engine *graphqlengine.Engine, graphqlDir string, evaluator *jgd.Evaluator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req graphqlengine.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, apperr.ErrMalformedJSON)
			return
		}

		if req.OperationName != "" {
			if raw, ok := staticJSONResponse(graphqlDir, req.OperationName); ok {
				c.Data(http.StatusOK, "application/json", raw)
				return
			}
			if result, ok, err := staticJGDResponse(graphqlDir, req.OperationName, evaluator); ok {
				if err != nil {
					fail(c, err)
					return
				}
				c.JSON(http.StatusOK, result)
				return
			}
		}

		result, err := engine.Execute(req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

func staticJSONResponse(dir, name string) ([]byte, bool) {
	raw, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if err != nil {
		return nil, false
	}
	return raw, true
}

func staticJGDResponse(dir, name string, evaluator *jgd.Evaluator) (any, bool, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name+".jgd"))
	if err != nil {
		return nil, false, nil
	}
	result, err := evaluator.Evaluate(raw)
	return result, true, err
}
