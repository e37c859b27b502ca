package routebuilder

import (
	"fmt"

	"github.com/rawen554/mockhive/internal/grammar"
	"github.com/rawen554/mockhive/internal/handlers"
	"github.com/rawen554/mockhive/internal/upload"
)

// uploadRecords creates the Upload Store rooted at dirPath and emits
// its three routes (§4.8/§4.9). When the token carries an alias, the
// store mounts at route/<alias> instead of route itself.
func (b *builder) uploadRecords(dirPath, route string, token grammar.Token, protected bool, delayMS int) ([]Record, error) {
	mount := route
	if token.UploadAlias != "" {
		mount = grammar.JoinRoute(route, token.UploadAlias)
	}

	store, err := upload.New(dirPath, token.UploadTemp)
	if err != nil {
		return nil, fmt.Errorf("creating upload store at %s: %w", dirPath, err)
	}
	if token.UploadTemp {
		b.result.TempUploadDirs = append(b.result.TempUploadDirs, store)
	}

	group := handlers.NewUploadGroup(store)

	return []Record{
		newRecord("POST", mount, protected, delayMS, group.Create),
		newRecord("GET", mount, protected, delayMS, group.List),
		newRecord("GET", grammar.JoinRoute(mount, ":name"), protected, delayMS, group.Download),
	}, nil
}
