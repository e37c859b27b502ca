package routebuilder

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/grammar"
	"github.com/rawen554/mockhive/internal/handlers"
)

// fileHandler picks the Static, JGD, or SQL handler variant by
// extension, shared by both Basic (method-prefixed) and plain Static
// tokens — the handler a file gets never depends on whether it carries
// a method prefix, only on its extension (§4.9).
func (b *builder) fileHandler(path, ext string) gin.HandlerFunc {
	switch ext {
	case "jgd":
		return handlers.JGD(path, b.deps.JGD)
	case "sql":
		return handlers.SQL(path, b.deps.Store, b.deps.SQLEngine)
	default:
		return handlers.Static(path, ext)
	}
}

// basicCandidate is one Basic-kind file awaiting same-directory
// collision resolution against its siblings (literal > range > param).
type basicCandidate struct {
	method  string
	segment grammar.Segment
	record  Record
}

// basicRecord builds the Record for a Basic token; its pattern depends
// on the token's trailing segment shape. Range and Param both occupy
// the same ":id" wildcard slot in the gin pattern, which is what makes
// them comparable for the precedence rule in resolveBasicCollisions.
func (b *builder) basicRecord(route string, token grammar.Token, path string, protected bool, delayMS int) Record {
	handler := b.fileHandler(path, token.Extension)

	switch token.Segment.Kind {
	case grammar.SegmentLiteral:
		pattern := grammar.JoinRoute(route, token.Segment.Name)
		return newRecord(string(token.Method), pattern, protected, delayMS, handler)

	case grammar.SegmentRange:
		pattern := grammar.JoinRoute(route, ":id")
		lo, hi := token.Segment.Lo, token.Segment.Hi
		wrapped := rangeBoundHandler(lo, hi, handler)
		return newRecord(string(token.Method), pattern, protected, delayMS, wrapped)

	case grammar.SegmentParam:
		pattern := grammar.JoinRoute(route, ":"+token.Segment.Name)
		return newRecord(string(token.Method), pattern, protected, delayMS, handler)

	default: // SegmentNone
		return newRecord(string(token.Method), route, protected, delayMS, handler)
	}
}

// rangeBoundHandler validates the wildcard value is an integer in
// [lo, hi] before delegating, so an out-of-range value 404s exactly
// like no route matched at all — the effect a true integer-range route
// type would have, without needing one in the underlying router.
func rangeBoundHandler(lo, hi int, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := strconv.Atoi(c.Param("id"))
		if err != nil || n < lo || n > hi {
			c.AbortWithStatusJSON(http.StatusNotFound, apperr.Body{Error: apperr.ErrNotFound.Error()})
			return
		}
		next(c)
	}
}

// resolveBasicCollisions applies the literal > range > param
// precedence (§3) to the Basic-kind candidates gathered from one
// directory: literal segments never collide with the dynamic slot, but
// range and param both target ":id", so at most one may survive per
// method. Two literals with the same text, or two of the same dynamic
// kind, for the same method is a genuine DuplicateRoute.
func resolveBasicCollisions(candidates []basicCandidate) ([]Record, error) {
	literals := map[string]basicCandidate{}  // method+" "+name -> candidate
	dynamic := map[string]basicCandidate{}   // method -> winning candidate
	var out []Record

	for _, cand := range candidates {
		switch cand.segment.Kind {
		case grammar.SegmentLiteral:
			key := cand.method + " " + cand.segment.Name
			if _, exists := literals[key]; exists {
				return nil, fmt.Errorf("duplicate literal route %q for %s: %w", cand.segment.Name, cand.method, apperr.ErrDuplicateRoute)
			}
			literals[key] = cand
			out = append(out, cand.record)

		case grammar.SegmentRange, grammar.SegmentParam:
			existing, exists := dynamic[cand.method]
			if !exists {
				dynamic[cand.method] = cand
				continue
			}
			if existing.segment.Kind == cand.segment.Kind {
				return nil, fmt.Errorf("duplicate %v route for %s: %w", cand.segment.Kind, cand.method, apperr.ErrDuplicateRoute)
			}
			if cand.segment.Kind == grammar.SegmentRange {
				dynamic[cand.method] = cand // range outranks the param already seen
			}
			// existing already wins if it is the range

		default:
			out = append(out, cand.record)
		}
	}

	for _, cand := range dynamic {
		out = append(out, cand.record)
	}
	return out, nil
}
