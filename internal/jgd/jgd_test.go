package jgd_test

import (
	"testing"

	"github.com/rawen554/mockhive/internal/jgd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateObjectWithFields(t *testing.T) {
	e := jgd.New()
	out, err := e.Evaluate([]byte(`{
		"type": "object",
		"fields": {
			"id": {"type": "string", "fake": "uuid"},
			"name": {"type": "string", "fake": "name"},
			"age": {"type": "integer", "min": 18, "max": 18}
		}
	}`))
	require.NoError(t, err)

	obj, ok := out.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, obj["id"])
	assert.NotEmpty(t, obj["name"])
	assert.EqualValues(t, 18, obj["age"])
}

func TestEvaluateArrayOfItems(t *testing.T) {
	e := jgd.New()
	out, err := e.Evaluate([]byte(`{
		"type": "array",
		"count": 3,
		"items": {"type": "boolean"}
	}`))
	require.NoError(t, err)

	arr, ok := out.([]any)
	require.True(t, ok)
	assert.Len(t, arr, 3)
}

func TestEvaluateConstPassesThrough(t *testing.T) {
	e := jgd.New()
	out, err := e.Evaluate([]byte(`{"const": {"p": true}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"p": true}, out)
}

func TestEvaluateUnknownTypeFails(t *testing.T) {
	e := jgd.New()
	_, err := e.Evaluate([]byte(`{"type": "nonsense"}`))
	assert.Error(t, err)
}
