// Package graphqlengine implements the dynamic GraphQL resolution
// described in SPEC_FULL.md §4.9: no typed graphql.Schema is built at
// startup (raywall-fast-service-toolkit's pkg/graphql/engine.go builds
// one from static config, which doesn't fit a tree whose collections
// only exist once a request touches them); instead every request is
// parsed to an AST with graphql-go/graphql/language/parser and walked
// directly against the live collection set, the same
// "recompute against the live set, it's cheap" approach DESIGN NOTES
// §9 prescribes and original_source/handlers/graphql_handlers.rs
// performs by hand over graphql_parser's Document.
package graphqlengine

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/collection"
)

// Request is one decoded GraphQL HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Engine resolves GraphQL requests against a collection store.
type Engine struct {
	Store *collection.Store
}

// New builds an Engine over store.
func New(store *collection.Store) *Engine {
	return &Engine{Store: store}
}

// Execute parses req.Query and resolves every root selection of the
// operation matching req.OperationName (the document's first operation
// when OperationName is empty), returning one entry per root field.
func (e *Engine) Execute(req Request) (map[string]any, error) {
	doc, err := parser.Parse(parser.ParseParams{Source: req.Query})
	if err != nil {
		return nil, fmt.Errorf("parsing graphql query: %w: %v", apperr.ErrMalformedJSON, err)
	}

	op := selectOperation(doc, req.OperationName)
	if op == nil {
		return nil, fmt.Errorf("no matching operation %q: %w", req.OperationName, apperr.ErrNotFound)
	}

	out := map[string]any{}
	for _, sel := range op.SelectionSet.Selections {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}

		name := field.Name.Value
		if strings.HasPrefix(name, "__") {
			continue
		}

		var (
			value any
			err   error
		)
		if op.Operation == "mutation" {
			value, err = e.resolveMutation(field, req.Variables)
		} else {
			value, err = e.resolveQuery(field, req.Variables)
		}
		if err != nil {
			return nil, err
		}
		out[responseKey(field)] = value
	}
	return out, nil
}

func selectOperation(doc *ast.Document, operationName string) *ast.OperationDefinition {
	var fallback *ast.OperationDefinition
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if fallback == nil {
			fallback = op
		}
		if operationName != "" && op.Name != nil && op.Name.Value == operationName {
			return op
		}
	}
	if operationName == "" {
		return fallback
	}
	return nil
}

func responseKey(field *ast.Field) string {
	if field.Alias != nil {
		return field.Alias.Value
	}
	return field.Name.Value
}

// resolveQuery handles a root query field: id → single-record lookup,
// other arguments → field-equality filter over the whole collection.
func (e *Engine) resolveQuery(field *ast.Field, vars map[string]any) (any, error) {
	coll := e.Store.Get(field.Name.Value)
	if coll == nil {
		return nil, fmt.Errorf("unknown collection %q: %w", field.Name.Value, apperr.ErrNotFound)
	}

	args := argumentValues(field.Arguments, vars)

	if id, ok := args["id"]; ok {
		rec, err := coll.Get(fmt.Sprintf("%v", id))
		if err != nil {
			return nil, nil
		}
		return e.project(rec, field.SelectionSet), nil
	}

	var out []map[string]any
	for _, rec := range coll.List() {
		if matchesFilter(rec, args) {
			out = append(out, e.project(rec, field.SelectionSet))
		}
	}
	return out, nil
}

func matchesFilter(rec collection.Record, args map[string]any) bool {
	for k, v := range args {
		if fmt.Sprintf("%v", rec[k]) != fmt.Sprintf("%v", v) {
			return false
		}
	}
	return true
}

// project restricts rec to the requested fields, resolving any field
// absent from rec but inferrable as a foreign-key join via the
// "<field>_id" naming convention DESIGN NOTES §9 describes.
func (e *Engine) project(rec collection.Record, sel *ast.SelectionSet) map[string]any {
	out := map[string]any{}
	if sel == nil {
		for k, v := range rec {
			out[k] = v
		}
		return out
	}

	for _, selection := range sel.Selections {
		field, ok := selection.(*ast.Field)
		if !ok {
			continue
		}
		name := field.Name.Value

		if v, ok := rec[name]; ok {
			out[responseKey(field)] = v
			continue
		}

		if fk, ok := rec[name+"_id"]; ok {
			joined := e.Store.Get(name)
			if joined == nil {
				out[responseKey(field)] = nil
				continue
			}
			target, err := joined.Get(fmt.Sprintf("%v", fk))
			if err != nil {
				out[responseKey(field)] = nil
				continue
			}
			out[responseKey(field)] = e.project(target, field.SelectionSet)
			continue
		}

		out[responseKey(field)] = nil
	}
	return out
}

// resolveMutation dispatches create<Name>/update<Name>/delete<Name> to
// the named collection's CRUD operations.
func (e *Engine) resolveMutation(field *ast.Field, vars map[string]any) (any, error) {
	name := field.Name.Value
	args := argumentValues(field.Arguments, vars)

	switch {
	case strings.HasPrefix(name, "create"):
		coll, err := e.collectionFor(name, "create")
		if err != nil {
			return nil, err
		}
		created, err := coll.Insert(collection.Record(args))
		if err != nil {
			return nil, err
		}
		return e.project(created, field.SelectionSet), nil

	case strings.HasPrefix(name, "update"):
		coll, err := e.collectionFor(name, "update")
		if err != nil {
			return nil, err
		}
		id, ok := args["id"]
		if !ok {
			return nil, fmt.Errorf("update mutation missing id argument: %w", apperr.ErrMalformedJSON)
		}
		delete(args, "id")
		updated, err := coll.Merge(fmt.Sprintf("%v", id), collection.Record(args))
		if err != nil {
			return nil, err
		}
		return e.project(updated, field.SelectionSet), nil

	case strings.HasPrefix(name, "delete"):
		coll, err := e.collectionFor(name, "delete")
		if err != nil {
			return nil, err
		}
		id, ok := args["id"]
		if !ok {
			return nil, fmt.Errorf("delete mutation missing id argument: %w", apperr.ErrMalformedJSON)
		}
		if err := coll.Delete(fmt.Sprintf("%v", id)); err != nil {
			return nil, err
		}
		return true, nil

	default:
		return nil, fmt.Errorf("unrecognized mutation %q: %w", name, apperr.ErrNotFound)
	}
}

func (e *Engine) collectionFor(fieldName, prefix string) (*collection.Collection, error) {
	rest := strings.TrimPrefix(fieldName, prefix)
	candidate := strings.ToLower(rest[:1]) + rest[1:]
	if coll := e.Store.Get(candidate); coll != nil {
		return coll, nil
	}
	if coll := e.Store.Get(rest); coll != nil {
		return coll, nil
	}
	return nil, fmt.Errorf("unknown collection %q: %w", candidate, apperr.ErrNotFound)
}

func argumentValues(arguments []*ast.Argument, vars map[string]any) map[string]any {
	out := make(map[string]any, len(arguments))
	for _, arg := range arguments {
		out[arg.Name.Value] = valueOf(arg.Value, vars)
	}
	return out
}

func valueOf(v ast.Value, vars map[string]any) any {
	switch t := v.(type) {
	case *ast.StringValue:
		return t.Value
	case *ast.IntValue:
		return t.Value
	case *ast.FloatValue:
		return t.Value
	case *ast.BooleanValue:
		return t.Value
	case *ast.Variable:
		return vars[t.Name.Value]
	case *ast.ListValue:
		out := make([]any, len(t.Values))
		for i, item := range t.Values {
			out[i] = valueOf(item, vars)
		}
		return out
	case *ast.ObjectValue:
		out := map[string]any{}
		for _, f := range t.Fields {
			out[f.Name.Value] = valueOf(f.Value, vars)
		}
		return out
	default:
		return nil
	}
}
