// Package collection implements the in-memory record store backing
// every REST group, auth's user/token tables, and the SQL/GraphQL
// handlers.
package collection

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/idmanager"
)

// Record is a single JSON object stored in a collection.
type Record = map[string]any

// FieldSchema describes one field observed on the first loaded record.
type FieldSchema struct {
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Collection is one named, ordered set of JSON records sharing an id
// key and id-generation policy. Safe for concurrent use: every method
// takes the collection's own RWMutex, read methods with RLock, write
// methods with Lock. No lock is ever held across a blocking call.
type Collection struct {
	mu     sync.RWMutex
	Name   string
	IDKey  string
	ids    *idmanager.Manager
	order  []string
	byID   map[string]Record
	schema map[string]FieldSchema
}

// New creates an empty collection with the given id key and policy.
func New(name, idKey string, policy idmanager.Policy) *Collection {
	return &Collection{
		Name:   name,
		IDKey:  idKey,
		ids:    idmanager.New(policy),
		byID:   make(map[string]Record),
		schema: make(map[string]FieldSchema),
	}
}

func idAsString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return fmt.Sprintf("%v", t), true
	case nil:
		return "", false
	default:
		return fmt.Sprintf("%v", t), true
	}
}

// LoadInitial seeds the collection from a decoded JSON array, noting
// every id with the id manager and rejecting duplicates.
func (c *Collection) LoadInitial(records []Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		raw, ok := r[c.IDKey]
		if !ok {
			return fmt.Errorf("record missing id key %q: %w", c.IDKey, apperr.ErrMalformedJSON)
		}
		id, ok := idAsString(raw)
		if !ok {
			return fmt.Errorf("record id key %q is null: %w", c.IDKey, apperr.ErrMalformedJSON)
		}
		if _, exists := c.byID[id]; exists {
			return fmt.Errorf("duplicate id %q in initial load: %w", id, apperr.ErrIDConflict)
		}

		c.ids.NoteExisting(id)
		c.byID[id] = r
		c.order = append(c.order, id)
	}

	if len(records) > 0 {
		c.inferSchemaLocked(records[0])
	}

	return nil
}

func (c *Collection) inferSchemaLocked(sample Record) {
	for k, v := range sample {
		c.schema[k] = FieldSchema{Type: jsonType(v), Nullable: v == nil}
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

// List returns every record in insertion order.
func (c *Collection) List() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Get returns the record with the given id, or ErrNotFound.
func (c *Collection) Get(id string) (Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return r, nil
}

// Insert assigns an id via the id manager if the record doesn't carry
// one, or validates a client-supplied id under a None policy. Returns
// the stored record (with its id key populated).
func (c *Collection) Insert(obj Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, hasID := obj[c.IDKey]
	var id string
	if hasID {
		var ok bool
		id, ok = idAsString(raw)
		if !ok {
			return nil, fmt.Errorf("id key %q is null: %w", c.IDKey, apperr.ErrMalformedJSON)
		}
		if _, exists := c.byID[id]; exists {
			return nil, fmt.Errorf("id %q already exists: %w", id, apperr.ErrIDConflict)
		}
		c.ids.NoteExisting(id)
	} else {
		newID, err := c.ids.NewID()
		if err != nil {
			return nil, err
		}
		id = newID
	}

	obj[c.IDKey] = id
	c.byID[id] = obj
	c.order = append(c.order, id)

	if len(c.schema) == 0 {
		c.inferSchemaLocked(obj)
	}

	return obj, nil
}

// Replace performs a full PUT-style replace, preserving the record's id
// regardless of what the payload carries under the id key.
func (c *Collection) Replace(id string, obj Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return nil, apperr.ErrNotFound
	}

	obj[c.IDKey] = id
	c.byID[id] = obj
	return obj, nil
}

// Merge performs a shallow PATCH-style merge of the top-level keys in
// patch into the existing record.
func (c *Collection) Merge(id string, patch Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	for k, v := range patch {
		if k == c.IDKey {
			continue
		}
		existing[k] = v
	}
	c.byID[id] = existing
	return existing, nil
}

// Delete removes the record with the given id.
func (c *Collection) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return apperr.ErrNotFound
	}

	delete(c.byID, id)
	c.ids.Forget(id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Schema returns the inferred field → {type, nullable} map.
func (c *Collection) Schema() map[string]FieldSchema {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]FieldSchema, len(c.schema))
	for k, v := range c.schema {
		out[k] = v
	}
	return out
}

// Store is the process-wide name → *Collection registry. Each named
// collection owns its own lock; Store itself is guarded only to protect
// the map of collections, not their contents.
type Store struct {
	mu   sync.RWMutex
	byID map[string]*Collection
}

// NewStore creates an empty collection registry.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Collection)}
}

// GetOrCreate returns the named collection, creating it with the given
// id key/policy if it doesn't exist yet.
func (s *Store) GetOrCreate(name, idKey string, policy idmanager.Policy) *Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.byID[name]; ok {
		return c
	}
	c := New(name, idKey, policy)
	s.byID[name] = c
	return c
}

// Get returns the named collection if it has been created, or nil.
func (s *Store) Get(name string) *Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[name]
}

// Names returns every registered collection name, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.byID))
	for n := range s.byID {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clear drops every collection. Called by the shutdown coordinator.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*Collection)
}
