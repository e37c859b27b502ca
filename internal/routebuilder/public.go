package routebuilder

import (
	"github.com/rawen554/mockhive/internal/grammar"
	"github.com/rawen554/mockhive/internal/handlers"
)

// publicRecord mounts dirPath as a static file tree under a single
// wildcard GET route (§4.8's "mount contents under /public/*" /
// "mount contents under /<alias>/*").
func publicRecord(dirPath, mountRoute string, protected bool, delayMS int) Record {
	pattern := grammar.JoinRoute(mountRoute, "*filepath")
	return newRecord("GET", pattern, protected, delayMS, handlers.PublicDir(dirPath, "filepath"))
}
