package idmanager_test

import (
	"testing"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/idmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntPolicyStartsAboveLoadedMax(t *testing.T) {
	m := idmanager.New(idmanager.Int)
	m.NoteExisting("1")
	m.NoteExisting("5")
	m.NoteExisting("3")

	id, err := m.NewID()
	require.NoError(t, err)
	assert.Equal(t, "6", id)

	id, err = m.NewID()
	require.NoError(t, err)
	assert.Equal(t, "7", id)
}

func TestUuidPolicyGeneratesUnique(t *testing.T) {
	m := idmanager.New(idmanager.Uuid)
	a, err := m.NewID()
	require.NoError(t, err)
	b, err := m.NewID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.True(t, m.Contains(a))
}

func TestNonePolicyRejectsAutoGeneration(t *testing.T) {
	m := idmanager.New(idmanager.None)
	_, err := m.NewID()
	assert.ErrorIs(t, err, apperr.ErrNoAutoID)
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, idmanager.Int, idmanager.ParsePolicy("int"))
	assert.Equal(t, idmanager.None, idmanager.ParsePolicy("none"))
	assert.Equal(t, idmanager.Uuid, idmanager.ParsePolicy("uuid"))
	assert.Equal(t, idmanager.Uuid, idmanager.ParsePolicy("whatever"))
}

func TestForgetAllowsReuse(t *testing.T) {
	m := idmanager.New(idmanager.None)
	m.NoteExisting("a")
	assert.True(t, m.Contains("a"))
	m.Forget("a")
	assert.False(t, m.Contains("a"))
}
