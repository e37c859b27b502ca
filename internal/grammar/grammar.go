// Package grammar parses a mock-root basename into a routing Token,
// following the filename grammar of SPEC_FULL.md §4.1. Each pattern is
// its own compiled regexp, tried top-down, first match wins — mirroring
// original_source/route_builder/route_*.rs's one-regexp-per-pattern
// layout, translated from once_cell::sync::Lazy<Regex> statics to Go
// package-level vars.
package grammar

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/idmanager"
)

// Method is an HTTP verb, or MethodNone for static files.
type Method string

const (
	GET     Method = "GET"
	POST    Method = "POST"
	PUT     Method = "PUT"
	PATCH   Method = "PATCH"
	DELETE  Method = "DELETE"
	OPTIONS Method = "OPTIONS"
	NoMethod Method = ""
)

// SegmentKind distinguishes the three shapes a route's final path
// segment can take.
type SegmentKind int

const (
	SegmentNone SegmentKind = iota
	SegmentLiteral
	SegmentParam
	SegmentRange
)

// Segment is the optional trailing URL segment a Basic route emits.
type Segment struct {
	Kind SegmentKind
	Name string // literal text, or param name
	Lo   int
	Hi   int
}

// Kind is the high-level variant a basename was recognized as.
type Kind int

const (
	KindStatic Kind = iota
	KindBasic
	KindRest
	KindAuth
	KindUpload
)

// Token is the parsed result of a single basename.
type Token struct {
	Kind      Kind
	Method    Method
	Segment   Segment
	Extension string // without leading dot; "" if none

	// Rest fields, valid when Kind == KindRest.
	RestIDKey  string
	RestIDType idmanager.Policy

	// Upload fields, valid when Kind == KindUpload.
	UploadAlias string
	UploadTemp  bool

	// Protected is true when the basename itself was $-prefixed. It is
	// the caller's job to OR this with the inherited directory flag.
	Protected bool

	// StaticSegment is the final URL path segment for a Kind == KindStatic
	// token: the basename with its extension stripped if, and only if,
	// the extension is present in the media-type table.
	StaticSegment string
}

var (
	reAuth   = regexp.MustCompile(`^(\$)?\{auth\}$`)
	reUpload = regexp.MustCompile(`^(\$)?\{upload\}(\{temp\})?(-(.+))?$`)
	reRest   = regexp.MustCompile(`^(\$)?rest(\{(.+)\})?$`)
	reMethod = regexp.MustCompile(`^(\$)?(get|post|put|patch|delete|options)(\{(.+)\})?$`)
)

func methodFromString(s string) Method {
	switch s {
	case "get":
		return GET
	case "post":
		return POST
	case "put":
		return PUT
	case "patch":
		return PATCH
	case "delete":
		return DELETE
	case "options":
		return OPTIONS
	default:
		return NoMethod
	}
}

// splitStemExt splits "name.ext" into ("name", "ext"); "name" with no
// dot returns ("name", ""). Names with multiple dots split at the
// first, since mock filenames like "rest{id:int}.json" only ever carry
// one meaningful extension.
func splitStemExt(basename string) (string, string) {
	idx := strings.Index(basename, ".")
	if idx < 0 {
		return basename, ""
	}
	return basename[:idx], basename[idx+1:]
}

// segmentFromDescriptor resolves a `{...}` descriptor for a Basic route
// into a Segment. Following original_source's RouteBasic::SubRoute
// resolution: the literal descriptor "id" denotes a named parameter,
// "lo-hi" (both non-negative integers, lo<=hi) denotes a range, and
// anything else is a literal value segment.
func segmentFromDescriptor(descriptor string) (Segment, error) {
	if descriptor == "" {
		return Segment{Kind: SegmentNone}, nil
	}

	if descriptor == "id" {
		return Segment{Kind: SegmentParam, Name: "id"}, nil
	}

	if lo, hi, ok := strings.Cut(descriptor, "-"); ok {
		loN, loErr := strconv.Atoi(lo)
		hiN, hiErr := strconv.Atoi(hi)
		if loErr == nil && hiErr == nil {
			if loN < 0 || hiN < 0 || loN > hiN {
				return Segment{}, fmt.Errorf("range %q: %w", descriptor, apperr.ErrBadRangeBounds)
			}
			return Segment{Kind: SegmentRange, Lo: loN, Hi: hiN}, nil
		}
	}

	return Segment{Kind: SegmentLiteral, Name: descriptor}, nil
}

// restOptions parses a REST descriptor ("uuid", "int", "name", or
// "name:type") into an id key and id-type policy, defaulting to
// ("id", Uuid).
func restOptions(descriptor string) (string, idmanager.Policy) {
	if descriptor == "" {
		return "id", idmanager.Uuid
	}

	if key, typ, ok := strings.Cut(descriptor, ":"); ok {
		return key, idmanager.ParsePolicy(typ)
	}

	switch descriptor {
	case "uuid":
		return "id", idmanager.Uuid
	case "int":
		return "id", idmanager.Int
	case "none":
		return "id", idmanager.None
	default:
		return descriptor, idmanager.Uuid
	}
}

// Parse attempts to recognize basename as one of the file patterns in
// SPEC_FULL.md §4.1, in order. It returns (Token{Kind: KindStatic}, nil)
// for anything that doesn't match a dynamic pattern — the caller (the
// route builder) decides whether a static token is even servable (e.g.
// dotfiles are skipped upstream). The only error path is a malformed
// range, which the builder must treat as fatal to the whole build.
func Parse(basename string) (Token, error) {
	stem, ext := splitStemExt(basename)

	if m := reAuth.FindStringSubmatch(stem); m != nil {
		return Token{Kind: KindAuth, Protected: m[1] == "$", Extension: ext}, nil
	}

	if m := reUpload.FindStringSubmatch(stem); m != nil {
		return Token{
			Kind:        KindUpload,
			Protected:   m[1] == "$",
			UploadTemp:  m[2] != "",
			UploadAlias: m[4],
		}, nil
	}

	if m := reRest.FindStringSubmatch(stem); m != nil && (ext == "json" || ext == "jgd") {
		idKey, idType := restOptions(m[3])
		return Token{
			Kind:       KindRest,
			Protected:  m[1] == "$",
			Extension:  ext,
			RestIDKey:  idKey,
			RestIDType: idType,
		}, nil
	}

	if m := reMethod.FindStringSubmatch(stem); m != nil {
		seg, err := segmentFromDescriptor(m[4])
		if err != nil {
			return Token{}, err
		}
		return Token{
			Kind:      KindBasic,
			Method:    methodFromString(m[2]),
			Protected: m[1] == "$",
			Segment:   seg,
			Extension: ext,
		}, nil
	}

	// Pattern 9: static file. $ prefix is still honored uniformly.
	protected := false
	name := basename
	if strings.HasPrefix(name, "$") {
		protected = true
		name = name[1:]
	}

	staticSegment := name
	if ext != "" && IsKnownExtension(ext) {
		staticSegment = strings.TrimSuffix(name, "."+ext)
	}

	return Token{
		Kind:          KindStatic,
		Method:        GET,
		Protected:     protected,
		Extension:     ext,
		StaticSegment: staticSegment,
	}, nil
}

// StripProtected strips a leading "$" from a directory or file name and
// reports whether it was present. Used by the route builder both for
// basenames (delegated to Parse above) and for plain directory
// segments, which never go through Parse.
func StripProtected(name string) (string, bool) {
	if strings.HasPrefix(name, "$") {
		return name[1:], true
	}
	return name, false
}

// JoinRoute joins a parent URL route and a child segment, normalizing
// the double/absent slash that an empty parent produces.
func JoinRoute(parent, child string) string {
	if parent == "" {
		parent = "/"
	}
	return path.Clean(parent + "/" + child)
}
