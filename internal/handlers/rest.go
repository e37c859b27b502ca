package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/collection"
)

// RestGroup is the six-endpoint CRUD set bound to a single collection
// (§4.9 REST group). Built as a struct with methods, not a closure,
// since the group needs the one collection plus nothing else, and a
// struct reads more clearly than threading the collection through six
// separate closures.
type RestGroup struct {
	Coll *collection.Collection
}

// NewRestGroup builds a RestGroup over coll.
func NewRestGroup(coll *collection.Collection) *RestGroup {
	return &RestGroup{Coll: coll}
}

// List handles GET <route>.
func (g *RestGroup) List(c *gin.Context) {
	c.JSON(http.StatusOK, g.Coll.List())
}

// Create handles POST <route>.
func (g *RestGroup) Create(c *gin.Context) {
	var obj collection.Record
	if err := c.ShouldBindJSON(&obj); err != nil {
		fail(c, apperr.ErrMalformedJSON)
		return
	}

	created, err := g.Coll.Insert(obj)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get handles GET <route>/{id}.
func (g *RestGroup) Get(c *gin.Context) {
	rec, err := g.Coll.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Replace handles PUT <route>/{id}.
func (g *RestGroup) Replace(c *gin.Context) {
	var obj collection.Record
	if err := c.ShouldBindJSON(&obj); err != nil {
		fail(c, apperr.ErrMalformedJSON)
		return
	}

	updated, err := g.Coll.Replace(c.Param("id"), obj)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Merge handles PATCH <route>/{id}.
func (g *RestGroup) Merge(c *gin.Context) {
	var patch collection.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, apperr.ErrMalformedJSON)
		return
	}

	updated, err := g.Coll.Merge(c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE <route>/{id}.
func (g *RestGroup) Delete(c *gin.Context) {
	if err := g.Coll.Delete(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LoadInitialFromFile decodes a JSON array from raw and seeds the
// collection via LoadInitial.
func LoadInitialFromFile(coll *collection.Collection, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	var records []collection.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}
	return coll.LoadInitial(records)
}
