// Package routebuilder walks a mock root directory tree and emits the
// route records C10 assembles into a live gin.Engine (SPEC_FULL.md
// §4.8). It is the Go-idiom rendering of original_source's
// route_builder module: one file per directory/file pattern
// (route_basic.rs, route_rest.rs, route_auth.rs, route_upload.rs,
// route_public.rs, route_graphql.rs), each contributing try_parse-style
// logic to the shared depth-first walk in builder.go.
package routebuilder

import (
	"github.com/gin-gonic/gin"
)

// Record is one emitted (method, pattern) → handler binding, carrying
// enough identity for C11 to diff rebuilds and C10 to wire middleware.
type Record struct {
	Method    string
	Pattern   string
	Protected bool
	DelayMS   int
	Handler   gin.HandlerFunc

	// Key is method+" "+Pattern, used for duplicate detection across
	// the whole tree (Route Record invariant, §3).
	Key string
}

func newRecord(method, pattern string, protected bool, delayMS int, handler gin.HandlerFunc) Record {
	return Record{
		Method:    method,
		Pattern:   pattern,
		Protected: protected,
		DelayMS:   delayMS,
		Handler:   handler,
		Key:       method + " " + pattern,
	}
}
