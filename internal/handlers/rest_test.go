package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/handlers"
	"github.com/rawen554/mockhive/internal/idmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRestRouter(coll *collection.Collection) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := handlers.NewRestGroup(coll)

	r := gin.New()
	r.GET("/items", g.List)
	r.POST("/items", g.Create)
	r.GET("/items/:id", g.Get)
	r.PUT("/items/:id", g.Replace)
	r.PATCH("/items/:id", g.Merge)
	r.DELETE("/items/:id", g.Delete)
	return r
}

func TestRestGroupCRUD(t *testing.T) {
	coll := collection.New("items", "id", idmanager.Uuid)
	r := setupRestRouter(coll)

	createReq := httptest.NewRequest(http.MethodPost, "/items", bytes.NewBufferString(`{"name":"widget"}`))
	createReq.Header.Set("Content-Type", "application/json")
	createRec := httptest.NewRecorder()
	r.ServeHTTP(createRec, createReq)
	require.Equal(t, http.StatusCreated, createRec.Code)

	listRec := httptest.NewRecorder()
	r.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/items", nil))
	assert.Equal(t, http.StatusOK, listRec.Code)
	assert.Contains(t, listRec.Body.String(), "widget")
}

func TestRestGroupGetMissingIsNotFound(t *testing.T) {
	coll := collection.New("items", "id", idmanager.Uuid)
	r := setupRestRouter(coll)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRestGroupCreateMalformedJSON(t *testing.T) {
	coll := collection.New("items", "id", idmanager.Uuid)
	r := setupRestRouter(coll)

	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewBufferString(`{`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRestGroupDeleteIsNoContent(t *testing.T) {
	coll := collection.New("items", "id", idmanager.Uuid)
	created, err := coll.Insert(collection.Record{"name": "x"})
	require.NoError(t, err)
	r := setupRestRouter(coll)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/items/"+created["id"].(string), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoadInitialFromFile(t *testing.T) {
	coll := collection.New("items", "id", idmanager.Uuid)
	err := handlers.LoadInitialFromFile(coll, []byte(`[{"id":"a","name":"x"},{"id":"b","name":"y"}]`))
	require.NoError(t, err)
	assert.Len(t, coll.List(), 2)
}
