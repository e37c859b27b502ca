// Package apperr holds the error taxonomy shared across the build
// pipeline and the request handlers, and maps request-time errors to
// HTTP status codes in exactly one place.
package apperr

import (
	"errors"
	"net/http"
)

// Build-time errors. A non-zero exit on initial startup, a logged
// no-op on hot-reload.
var (
	ErrBadFilenameGrammar = errors.New("bad filename grammar")
	ErrBadRangeBounds     = errors.New("bad range bounds")
	ErrDuplicateRoute     = errors.New("duplicate route")
	ErrDuplicateAuth      = errors.New("duplicate auth route")
	ErrTomlParseFailure   = errors.New("toml parse failure")
	ErrMissingMockRoot    = errors.New("missing mock root")
)

// Request-time client errors (4xx).
var (
	ErrMalformedJSON       = errors.New("malformed json")
	ErrMissingCredentials  = errors.New("missing credentials")
	ErrAuthFailure         = errors.New("authentication failure")
	ErrTokenInvalidExpired = errors.New("token invalid or expired")
	ErrNotFound            = errors.New("not found")
	ErrIDConflict          = errors.New("id conflict")
	ErrFileNotUploaded     = errors.New("file not uploaded")
	ErrUploadFormatInvalid = errors.New("upload format invalid")
)

// Request-time server errors (5xx).
var (
	ErrJgdEvalFailure    = errors.New("jgd evaluation failure")
	ErrSQLEngineFailure  = errors.New("sql engine failure")
	ErrUploadIoFailure   = errors.New("upload io failure")
	ErrInternalPanic     = errors.New("internal panic caught")
	ErrNoAutoID          = errors.New("collection has no auto id policy")
)

// statusByErr is the single table mapping a sentinel error to its HTTP
// status. Handlers unwrap the error they got and look it up here rather
// than each hand-rolling a switch.
var statusByErr = map[error]int{
	ErrMalformedJSON:       http.StatusBadRequest,
	ErrMissingCredentials:  http.StatusBadRequest,
	ErrAuthFailure:         http.StatusUnauthorized,
	ErrTokenInvalidExpired: http.StatusUnauthorized,
	ErrNotFound:            http.StatusNotFound,
	ErrIDConflict:          http.StatusConflict,
	ErrFileNotUploaded:     http.StatusBadRequest,
	ErrUploadFormatInvalid: http.StatusBadRequest,
	ErrJgdEvalFailure:      http.StatusInternalServerError,
	ErrSQLEngineFailure:    http.StatusInternalServerError,
	ErrUploadIoFailure:     http.StatusInternalServerError,
	ErrInternalPanic:       http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for err, walking the unwrap chain
// against the known sentinels. Unknown errors map to 500.
func StatusFor(err error) int {
	for sentinel, status := range statusByErr {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// Body is the `{"error": "<message>"}` shape every 4xx/5xx response
// uses.
type Body struct {
	Error string `json:"error"`
}
