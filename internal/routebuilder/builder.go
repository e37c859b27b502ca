package routebuilder

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/grammar"
	"github.com/rawen554/mockhive/internal/graphqlengine"
	"github.com/rawen554/mockhive/internal/jgd"
	"github.com/rawen554/mockhive/internal/jwtauth"
	"github.com/rawen554/mockhive/internal/sqlengine"
	"github.com/rawen554/mockhive/internal/tomlconfig"
	"github.com/rawen554/mockhive/internal/upload"
)

// Dependencies are the long-lived collaborators every build pass wires
// route handlers to. They survive hot-reload rebuilds; only the
// Records a build produces are replaced (§5, Live routing table).
type Dependencies struct {
	Store     *collection.Store
	JWT       *jwtauth.Service
	SQLEngine *sqlengine.Engine
	JGD       *jgd.Evaluator
	GraphQL   *graphqlengine.Engine
}

// Result is one completed build pass.
type Result struct {
	Records        []Record
	TempUploadDirs []*upload.Store
}

var reGraphQLDir = regexp.MustCompile(`^(\$)?graphql$`)

type builder struct {
	deps     Dependencies
	seenKey  map[string]bool
	authSeen bool
	result   Result
}

// Build walks root depth-first and returns every route record the
// mocks tree defines, or the first fatal build error encountered
// (BadRangeBounds, DuplicateRoute, DuplicateAuth, TomlParseFailure,
// MissingMockRoot — §7).
func Build(root string, deps Dependencies) (Result, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("mock root %s: %w", root, apperr.ErrMissingMockRoot)
	}

	b := &builder{deps: deps, seenKey: map[string]bool{}}
	if err := b.walk(root, "", tomlconfig.Env{}); err != nil {
		return Result{}, err
	}
	return b.result, nil
}

func (b *builder) walk(dirPath, route string, env tomlconfig.Env) error {
	if layer, ok, err := readLayerIfExists(filepath.Join(dirPath, "config.toml")); err != nil {
		return err
	} else if ok {
		env = env.Fold(layer)
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dirPath, err)
	}

	var subdirs []os.DirEntry
	var basicCandidates []basicCandidate
	var otherRecords []Record

	for _, entry := range entries {
		name := entry.Name()
		if isIgnoredEntry(name) {
			continue
		}

		if entry.IsDir() {
			subdirs = append(subdirs, entry)
			continue
		}

		records, candidate, err := b.handleFile(dirPath, route, env, name)
		if err != nil {
			return err
		}
		if candidate != nil {
			basicCandidates = append(basicCandidates, *candidate)
		}
		otherRecords = append(otherRecords, records...)
	}

	resolved, err := resolveBasicCollisions(basicCandidates)
	if err != nil {
		return err
	}

	for _, r := range append(otherRecords, resolved...) {
		if err := b.register(r); err != nil {
			return err
		}
	}

	for _, dir := range subdirs {
		if err := b.handleDir(dirPath, route, env, dir); err != nil {
			return err
		}
	}
	return nil
}

func isIgnoredEntry(name string) bool {
	return strings.HasPrefix(name, ".") || name == "config.toml" || strings.HasSuffix(name, ".toml")
}

func readLayerIfExists(path string) (*tomlconfig.File, bool, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, false, nil
	}
	layer, err := tomlconfig.ReadLayer(path)
	if err != nil {
		return nil, false, err
	}
	return layer, true, nil
}

// handleFile dispatches one file by its C1 token. Basic tokens are
// returned as a candidate for same-directory collision resolution
// rather than a Record, since their precedence depends on siblings.
func (b *builder) handleFile(dirPath, route string, env tomlconfig.Env, name string) ([]Record, *basicCandidate, error) {
	fullPath := filepath.Join(dirPath, name)

	token, err := grammar.Parse(name)
	if err != nil {
		return nil, nil, err
	}

	local, _, err := readLayerIfExists(tomlconfig.StemConfigPath(fullPath))
	if err != nil {
		return nil, nil, err
	}
	eff := env.Effective(local)
	protected := eff.Protect || token.Protected
	delayMS := eff.DelayMS
	if eff.Remap != "" {
		// Remap rewrites the whole path (DESIGN NOTES §9); any collision
		// this produces is caught by register's global seenKey check.
		route = eff.Remap
	}

	switch token.Kind {
	case grammar.KindStatic:
		pattern := grammar.JoinRoute(route, token.StaticSegment)
		handler := b.fileHandler(fullPath, token.Extension)
		r := newRecord(string(token.Method), pattern, protected, delayMS, handler)
		return []Record{r}, nil, nil

	case grammar.KindBasic:
		r := b.basicRecord(route, token, fullPath, protected, delayMS)
		return nil, &basicCandidate{method: string(token.Method), segment: token.Segment, record: r}, nil

	case grammar.KindRest:
		records, err := b.restRecords(route, token, fullPath, protected, delayMS, eff)
		return records, nil, err

	case grammar.KindAuth:
		records, err := b.authRecords(route, token, fullPath, protected, delayMS, eff)
		return records, nil, err

	case grammar.KindUpload:
		records, err := b.uploadRecords(dirPath, route, token, protected, delayMS)
		return records, nil, err

	default:
		return nil, nil, nil
	}
}

// handleDir dispatches one subdirectory by the special-cased basenames
// §4.8 names, falling back to treating its name as the next URL
// segment.
func (b *builder) handleDir(dirPath, route string, env tomlconfig.Env, entry os.DirEntry) error {
	rawName := entry.Name()
	name, selfProtected := grammar.StripProtected(rawName)
	childEnv := env
	if selfProtected {
		childEnv.Protected = true
	}
	childPath := filepath.Join(dirPath, rawName)

	switch {
	case name == "public":
		r := publicRecord(childPath, grammar.JoinRoute(route, "public"), childEnv.Protected, childEnv.DelayMS)
		return b.register(r)

	case strings.HasPrefix(name, "public-"):
		alias := strings.TrimPrefix(name, "public-")
		r := publicRecord(childPath, grammar.JoinRoute(route, alias), childEnv.Protected, childEnv.DelayMS)
		return b.register(r)

	case reGraphQLDir.MatchString(rawName):
		records, err := b.graphqlRecords(childPath, childEnv.Protected, childEnv.DelayMS)
		if err != nil {
			return err
		}
		for _, r := range records {
			if err := b.register(r); err != nil {
				return err
			}
		}
		return nil

	default:
		if tok, err := grammar.Parse(rawName); err == nil && tok.Kind == grammar.KindUpload {
			records, err := b.uploadRecords(childPath, route, tok, childEnv.Protected || tok.Protected, childEnv.DelayMS)
			if err != nil {
				return err
			}
			for _, r := range records {
				if err := b.register(r); err != nil {
					return err
				}
			}
			return nil
		}

		return b.walk(childPath, grammar.JoinRoute(route, name), childEnv)
	}
}

func (b *builder) register(r Record) error {
	if b.seenKey[r.Key] {
		return fmt.Errorf("route %s already registered: %w", r.Key, apperr.ErrDuplicateRoute)
	}
	b.seenKey[r.Key] = true
	b.result.Records = append(b.result.Records, r)
	return nil
}
