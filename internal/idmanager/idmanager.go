// Package idmanager generates and tracks the next id for a collection
// under one of three policies: Uuid, Int, or None.
package idmanager

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rawen554/mockhive/internal/apperr"
)

// Policy is the id-generation strategy a collection is configured with.
type Policy int

const (
	// Uuid generates a random 128-bit identifier per insert.
	Uuid Policy = iota
	// Int maintains a monotonic counter seeded at 1.
	Int
	// None expects the client to supply its own id; NewID always fails.
	None
)

// ParsePolicy maps the lowercase token used in filenames/TOML
// (uuid/int/none) to a Policy, defaulting to Uuid on anything else.
func ParsePolicy(s string) Policy {
	switch s {
	case "int":
		return Int
	case "none":
		return None
	default:
		return Uuid
	}
}

// Manager tracks generated and seen ids for a single collection.
type Manager struct {
	mu      sync.Mutex
	policy  Policy
	nextInt int64
	seen    map[string]struct{}
}

// New creates a Manager for the given policy, counter starting at 1.
func New(policy Policy) *Manager {
	return &Manager{
		policy:  policy,
		nextInt: 1,
		seen:    make(map[string]struct{}),
	}
}

// NewID produces the next id under the manager's policy. None always
// returns ErrNoAutoID since the caller is expected to carry its own id.
func (m *Manager) NewID() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.policy {
	case Uuid:
		id := uuid.NewString()
		m.seen[id] = struct{}{}
		return id, nil
	case Int:
		id := strconv.FormatInt(m.nextInt, 10)
		m.nextInt++
		m.seen[id] = struct{}{}
		return id, nil
	default:
		return "", apperr.ErrNoAutoID
	}
}

// NoteExisting records an id that was already present at load time, so
// that an Int policy's counter starts strictly above the maximum loaded
// id. Safe to call with non-integer ids for Uuid/None collections.
func (m *Manager) NoteExisting(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seen[id] = struct{}{}

	if m.policy == Int {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n >= m.nextInt {
			m.nextInt = n + 1
		}
	}
}

// Contains reports whether id has been generated or noted already.
func (m *Manager) Contains(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.seen[id]
	return ok
}

// Forget removes id from the seen set, used when a record is deleted so
// a later insert with the same client-supplied id (None policy) does
// not spuriously conflict.
func (m *Manager) Forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.seen, id)
}
