// Package jgd evaluates a JGD ("JSON Generator Definition") schema into
// concrete JSON, backing every ".jgd" route. JGD itself is an external
// collaborator per SPEC_FULL.md §1 ("a library taking a schema and
// producing JSON") — no repo in the retrieved pack models this schema
// grammar, so the tree-walking evaluator here is hand-written (see
// DESIGN.md), but its fake string values are generated with
// github.com/jaswdr/faker rather than hand-rolled name lists; integer,
// number and boolean values come from math/rand.
package jgd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/rawen554/mockhive/internal/apperr"
)

// Evaluator evaluates JGD schemas, deterministic only in structure, not
// in generated values.
type Evaluator struct {
	faker faker.Faker
}

// New creates an Evaluator with its own faker instance.
func New() *Evaluator {
	return &Evaluator{faker: faker.New()}
}

// node is the raw shape of one JGD schema node.
type node struct {
	Type   string          `json:"type"`
	Fields map[string]node `json:"fields"`
	Items  *node           `json:"items"`
	Count  *int            `json:"count"`
	Fake   string          `json:"fake"`
	Min    *float64        `json:"min"`
	Max    *float64        `json:"max"`
	Const  json.RawMessage `json:"const"`
}

// Evaluate parses schemaJSON and produces the generated JSON value.
func (e *Evaluator) Evaluate(schemaJSON []byte) (any, error) {
	var n node
	if err := json.Unmarshal(schemaJSON, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrJgdEvalFailure, err)
	}
	return e.eval(n)
}

func (e *Evaluator) eval(n node) (any, error) {
	if len(n.Const) > 0 {
		var v any
		if err := json.Unmarshal(n.Const, &v); err != nil {
			return nil, fmt.Errorf("%w: const: %v", apperr.ErrJgdEvalFailure, err)
		}
		return v, nil
	}

	switch n.Type {
	case "object":
		out := make(map[string]any, len(n.Fields))
		for name, field := range n.Fields {
			v, err := e.eval(field)
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
		return out, nil

	case "array":
		count := 1
		if n.Count != nil {
			count = *n.Count
		}
		if n.Items == nil {
			return nil, fmt.Errorf("%w: array node missing items", apperr.ErrJgdEvalFailure)
		}
		out := make([]any, 0, count)
		for i := 0; i < count; i++ {
			v, err := e.eval(*n.Items)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case "string":
		return e.fakeString(n.Fake), nil

	case "integer":
		lo, hi := 0, 1000
		if n.Min != nil {
			lo = int(*n.Min)
		}
		if n.Max != nil {
			hi = int(*n.Max)
		}
		if hi < lo {
			hi = lo
		}
		return int64(lo + rand.Intn(hi-lo+1)), nil

	case "number":
		lo, hi := 0.0, 1.0
		if n.Min != nil {
			lo = *n.Min
		}
		if n.Max != nil {
			hi = *n.Max
		}
		return lo + rand.Float64()*(hi-lo), nil

	case "boolean":
		return rand.Intn(2) == 1, nil

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: unknown node type %q", apperr.ErrJgdEvalFailure, n.Type)
	}
}

func (e *Evaluator) fakeString(kind string) string {
	switch kind {
	case "uuid":
		return e.faker.UUID().V4()
	case "name":
		return e.faker.Person().Name()
	case "first_name":
		return e.faker.Person().FirstName()
	case "last_name":
		return e.faker.Person().LastName()
	case "email":
		return e.faker.Internet().Email()
	case "url":
		return e.faker.Internet().URL()
	case "word":
		return e.faker.Lorem().Word()
	case "sentence":
		return e.faker.Lorem().Sentence(8)
	case "company":
		return e.faker.Company().Name()
	case "address":
		return e.faker.Address().Address()
	case "phone":
		return e.faker.Phone().Number()
	case "date":
		return e.faker.Time().ISO8601(e.faker.Time().Time(time.Now()))
	default:
		return e.faker.Lorem().Word()
	}
}
