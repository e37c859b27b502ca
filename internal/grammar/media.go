package grammar

// mediaTypes is the extension → Content-Type table used to decide
// Content-Type for static files and whether a static file's final URL
// segment drops the extension (§9: strip only for extensions present
// here, preserve otherwise).
var mediaTypes = map[string]string{
	"html": "text/html; charset=utf-8",
	"htm":  "text/html; charset=utf-8",
	"css":  "text/css; charset=utf-8",
	"js":   "application/javascript; charset=utf-8",
	"json": "application/json; charset=utf-8",
	"jgd":  "application/json; charset=utf-8",
	"txt":  "text/plain; charset=utf-8",
	"xml":  "application/xml; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"ico":  "image/x-icon",
	"webp": "image/webp",
	"pdf":  "application/pdf",
	"sql":  "application/sql",
	"wasm": "application/wasm",
}

// ContentTypeFor returns the Content-Type for an extension (without the
// leading dot) and whether the extension is known.
func ContentTypeFor(ext string) (string, bool) {
	ct, ok := mediaTypes[ext]
	return ct, ok
}

// IsKnownExtension reports whether ext (without the leading dot) is
// present in the media-type table.
func IsKnownExtension(ext string) bool {
	_, ok := mediaTypes[ext]
	return ok
}
