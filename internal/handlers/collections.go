package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/collection"
)

// ListCollections handles GET /mock-server/collections, returning
// {collection_name: schema} for every registered collection (§6).
func ListCollections(store *collection.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		names := store.Names()
		out := make(map[string]map[string]collection.FieldSchema, len(names))
		for _, name := range names {
			out[name] = store.Get(name).Schema()
		}
		c.JSON(http.StatusOK, out)
	}
}

// GetCollection handles GET /mock-server/collections/{name}, returning
// that collection's schema directly (§6).
func GetCollection(store *collection.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		coll := store.Get(c.Param("name"))
		if coll == nil {
			fail(c, apperr.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, coll.Schema())
	}
}
