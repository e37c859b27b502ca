package routebuilder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rawen554/mockhive/internal/handlers"
	"github.com/rawen554/mockhive/internal/idmanager"
	"github.com/rawen554/mockhive/internal/webui"
)

// graphqlRecords emits POST /graphql and GET /graphiql for a `graphql`
// directory (§4.8/§6 — fixed absolute paths regardless of nesting,
// matching every on-disk layout example in §6). A `collections`
// sub-directory pre-loads its files as collections before the dynamic
// engine is wired, so graphql queries can join against them
// immediately.
func (b *builder) graphqlRecords(dirPath string, protected bool, delayMS int) ([]Record, error) {
	if err := b.preloadGraphQLCollections(filepath.Join(dirPath, "collections")); err != nil {
		return nil, err
	}

	engine := b.deps.GraphQL
	return []Record{
		newRecord("POST", "/graphql", protected, delayMS, handlers.GraphQL(engine, dirPath, b.deps.JGD)),
		newRecord("GET", "/graphiql", false, 0, webui.GraphiQL()),
	}, nil
}

func (b *builder) preloadGraphQLCollections(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		stem := strings.TrimSuffix(name, ".json")

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		coll := b.deps.Store.GetOrCreate(stem, "id", idmanager.Uuid)
		if err := handlers.LoadInitialFromFile(coll, raw); err != nil {
			return err
		}
	}
	return nil
}
