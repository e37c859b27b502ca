package routebuilder_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/graphqlengine"
	"github.com/rawen554/mockhive/internal/jgd"
	"github.com/rawen554/mockhive/internal/jwtauth"
	"github.com/rawen554/mockhive/internal/routebuilder"
	"github.com/rawen554/mockhive/internal/sqlengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(t *testing.T) routebuilder.Dependencies {
	t.Helper()
	store := collection.NewStore()
	engine, err := sqlengine.New()
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	return routebuilder.Dependencies{
		Store:     store,
		JWT:       jwtauth.New("secret"),
		SQLEngine: engine,
		JGD:       jgd.New(),
		GraphQL:   graphqlengine.New(store),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func mustServe(t *testing.T, records []routebuilder.Record, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	for _, rec := range records {
		r.Handle(rec.Method, rec.Pattern, rec.Handler)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestBuildMissingRootIsFatal(t *testing.T) {
	_, err := routebuilder.Build("/no/such/mock/root", newDeps(t))
	assert.ErrorIs(t, err, apperr.ErrMissingMockRoot)
}

func TestBuildStaticFileRoute(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "status.json"), `{"ok":true}`)

	result, err := routebuilder.Build(root, newDeps(t))
	require.NoError(t, err)

	rec := mustServe(t, result.Records, http.MethodGet, "/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestBuildBasicMethodWithLiteralSegment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "widgets", "get{admin}.json"), `{"role":"admin"}`)

	result, err := routebuilder.Build(root, newDeps(t))
	require.NoError(t, err)

	rec := mustServe(t, result.Records, http.MethodGet, "/widgets/admin")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildBadRangeBoundsIsFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "get{5-1}.json"), `{}`)

	_, err := routebuilder.Build(root, newDeps(t))
	assert.ErrorIs(t, err, apperr.ErrBadRangeBounds)
}

func TestBuildDuplicateAuthIsFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "{auth}.json"), `[]`)
	writeFile(t, filepath.Join(root, "nested", "{auth}.json"), `[]`)

	_, err := routebuilder.Build(root, newDeps(t))
	assert.ErrorIs(t, err, apperr.ErrDuplicateAuth)
}

func TestBuildRestGroupSeedsCollectionAndServes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "items", "rest.json"), `[{"id":"1","name":"a"}]`)

	result, err := routebuilder.Build(root, newDeps(t))
	require.NoError(t, err)

	rec := mustServe(t, result.Records, http.MethodGet, "/items")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"a"`)
}

func TestBuildLiteralOutranksRange(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "nums", "get{admin}.json"), `{"v":"literal"}`)
	writeFile(t, filepath.Join(root, "nums", "get{1-10}.json"), `{"v":"range"}`)

	result, err := routebuilder.Build(root, newDeps(t))
	require.NoError(t, err)

	litRec := mustServe(t, result.Records, http.MethodGet, "/nums/admin")
	assert.Equal(t, http.StatusOK, litRec.Code)
	assert.Contains(t, litRec.Body.String(), "literal")

	rangeRec := mustServe(t, result.Records, http.MethodGet, "/nums/5")
	assert.Equal(t, http.StatusOK, rangeRec.Code)

	outOfRangeRec := mustServe(t, result.Records, http.MethodGet, "/nums/50")
	assert.Equal(t, http.StatusNotFound, outOfRangeRec.Code)
}

func TestBuildPublicDirServesStaticFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "public", "css", "style.css"), `body{}`)

	result, err := routebuilder.Build(root, newDeps(t))
	require.NoError(t, err)

	rec := mustServe(t, result.Records, http.MethodGet, "/public/css/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
}
