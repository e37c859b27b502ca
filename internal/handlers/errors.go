// Package handlers implements the per-route request handler variants
// of SPEC_FULL.md §4.9: static, JGD, REST, auth, SQL, GraphQL, and
// upload. Each leaf-handler constructor closes over the stateful
// collaborator(s) it needs and returns a gin.HandlerFunc; the REST,
// auth and upload groups are small structs whose methods are the
// handlers. The closures mirror the teacher's
// internal/handlers/handlers.go closure-over-state idiom
// (func RedirectToOriginal(urls map[string][]byte) func(c *gin.Context)).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
)

// fail writes the standard {"error": "..."} body at the status apperr
// maps err to. It does not log the error, server errors included.
func fail(c *gin.Context, err error) {
	status := apperr.StatusFor(err)
	c.AbortWithStatusJSON(status, apperr.Body{Error: unwrapMessage(err)})
}

// unwrapMessage prefers the innermost sentinel's message so clients see
// a stable string rather than internal wrapping detail.
func unwrapMessage(err error) string {
	for _, sentinel := range []error{
		apperr.ErrMalformedJSON,
		apperr.ErrMissingCredentials,
		apperr.ErrAuthFailure,
		apperr.ErrTokenInvalidExpired,
		apperr.ErrNotFound,
		apperr.ErrIDConflict,
		apperr.ErrFileNotUploaded,
		apperr.ErrUploadFormatInvalid,
		apperr.ErrJgdEvalFailure,
		apperr.ErrSQLEngineFailure,
		apperr.ErrUploadIoFailure,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return http.StatusText(http.StatusInternalServerError)
}
