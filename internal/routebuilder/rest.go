package routebuilder

import (
	"fmt"
	"os"

	"github.com/rawen554/mockhive/internal/grammar"
	"github.com/rawen554/mockhive/internal/handlers"
	"github.com/rawen554/mockhive/internal/tomlconfig"
)

// restRecords builds the six-endpoint CRUD group for a KindRest token,
// seeding the backing collection from the file's own JSON array
// content when present.
func (b *builder) restRecords(route string, token grammar.Token, path string, protected bool, delayMS int, eff tomlconfig.Effective) ([]Record, error) {
	name := eff.Collection.Name
	collName := route
	if name != nil && *name != "" {
		collName = *name
	}

	idKey := token.RestIDKey
	policy := token.RestIDType
	if eff.Collection.IDKey != "" {
		idKey = eff.Collection.IDKey
	}
	if eff.Collection.IDType != "" {
		policy = eff.Collection.IDPolicy()
	}

	coll := b.deps.Store.GetOrCreate(collName, idKey, policy)

	if raw, err := os.ReadFile(path); err == nil {
		if err := handlers.LoadInitialFromFile(coll, raw); err != nil {
			return nil, fmt.Errorf("seeding collection %s from %s: %w", collName, path, err)
		}
	}

	group := handlers.NewRestGroup(coll)
	return []Record{
		newRecord("GET", route, protected, delayMS, group.List),
		newRecord("POST", route, protected, delayMS, group.Create),
		newRecord("GET", grammar.JoinRoute(route, ":id"), protected, delayMS, group.Get),
		newRecord("PUT", grammar.JoinRoute(route, ":id"), protected, delayMS, group.Replace),
		newRecord("PATCH", grammar.JoinRoute(route, ":id"), protected, delayMS, group.Merge),
		newRecord("DELETE", grammar.JoinRoute(route, ":id"), protected, delayMS, group.Delete),
	}, nil
}
