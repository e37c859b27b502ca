package collection_test

import (
	"testing"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/idmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestRoundTrip(t *testing.T) {
	c := collection.New("companies", "id", idmanager.Uuid)

	require.NoError(t, c.LoadInitial([]collection.Record{
		{"id": "A", "name": "x"},
	}))

	created, err := c.Insert(collection.Record{"name": "y"})
	require.NoError(t, err)
	assert.NotEqual(t, "A", created["id"])

	all := c.List()
	assert.Len(t, all, 2)

	patched, err := c.Merge(created["id"].(string), collection.Record{"name": "z"})
	require.NoError(t, err)
	assert.Equal(t, "z", patched["name"])

	require.NoError(t, c.Delete("A"))
	_, err = c.Get("A")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIntPolicyIncreasesAboveLoadedMax(t *testing.T) {
	c := collection.New("items", "id", idmanager.Int)
	require.NoError(t, c.LoadInitial([]collection.Record{
		{"id": "1", "v": "a"},
		{"id": "2", "v": "b"},
	}))

	r1, err := c.Insert(collection.Record{"v": "c"})
	require.NoError(t, err)
	assert.Equal(t, "3", r1["id"])

	r2, err := c.Insert(collection.Record{"v": "d"})
	require.NoError(t, err)
	assert.Equal(t, "4", r2["id"])
}

func TestNonePolicyConflict(t *testing.T) {
	c := collection.New("users", "username", idmanager.None)
	_, err := c.Insert(collection.Record{"username": "admin"})
	require.NoError(t, err)

	_, err = c.Insert(collection.Record{"username": "admin"})
	assert.ErrorIs(t, err, apperr.ErrIDConflict)
}

func TestReplacePreservesID(t *testing.T) {
	c := collection.New("items", "id", idmanager.Uuid)
	created, err := c.Insert(collection.Record{"v": 1})
	require.NoError(t, err)
	id := created["id"].(string)

	replaced, err := c.Replace(id, collection.Record{"id": "some-other-id", "v": 2})
	require.NoError(t, err)
	assert.Equal(t, id, replaced["id"])
}

func TestStoreGetOrCreateIsIdempotent(t *testing.T) {
	s := collection.NewStore()
	a := s.GetOrCreate("c", "id", idmanager.Uuid)
	b := s.GetOrCreate("c", "id", idmanager.Uuid)
	assert.Same(t, a, b)
	assert.Equal(t, []string{"c"}, s.Names())
}
