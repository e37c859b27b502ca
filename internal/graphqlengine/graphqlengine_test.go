package graphqlengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/graphqlengine"
	"github.com/rawen554/mockhive/internal/idmanager"
)

func newStoreWithAuthors(t *testing.T) *collection.Store {
	t.Helper()
	store := collection.NewStore()

	authors := store.GetOrCreate("author", "id", idmanager.None)
	require.NoError(t, authors.LoadInitial([]collection.Record{
		{"id": "1", "name": "Ada Lovelace"},
	}))

	books := store.GetOrCreate("books", "id", idmanager.None)
	require.NoError(t, books.LoadInitial([]collection.Record{
		{"id": "10", "title": "Notes", "author_id": "1"},
		{"id": "11", "title": "Sketch", "author_id": "1"},
	}))

	return store
}

func TestExecuteQueryByID(t *testing.T) {
	engine := graphqlengine.New(newStoreWithAuthors(t))

	result, err := engine.Execute(graphqlengine.Request{
		Query: `{ books(id: "10") { title } }`,
	})
	require.NoError(t, err)

	book, ok := result["books"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Notes", book["title"])
}

func TestExecuteQueryFiltersByArgument(t *testing.T) {
	engine := graphqlengine.New(newStoreWithAuthors(t))

	result, err := engine.Execute(graphqlengine.Request{
		Query: `{ books(author_id: "1") { title } }`,
	})
	require.NoError(t, err)

	list, ok := result["books"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestExecuteResolvesForeignKeyJoin(t *testing.T) {
	engine := graphqlengine.New(newStoreWithAuthors(t))

	result, err := engine.Execute(graphqlengine.Request{
		Query: `{ books(id: "10") { title author { name } } }`,
	})
	require.NoError(t, err)

	book := result["books"].(map[string]any)
	author, ok := book["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", author["name"])
}

func TestExecuteCreateMutation(t *testing.T) {
	engine := graphqlengine.New(newStoreWithAuthors(t))

	result, err := engine.Execute(graphqlengine.Request{
		Query: `mutation { createAuthor(id: "2", name: "Grace Hopper") { name } }`,
	})
	require.NoError(t, err)

	author := result["createAuthor"].(map[string]any)
	assert.Equal(t, "Grace Hopper", author["name"])
}

func TestExecuteUnknownOperationNameIsNotFound(t *testing.T) {
	engine := graphqlengine.New(newStoreWithAuthors(t))

	_, err := engine.Execute(graphqlengine.Request{
		Query:         `{ books { title } }`,
		OperationName: "NoSuchOp",
	})
	assert.Error(t, err)
}
