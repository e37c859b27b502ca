package upload_test

import (
	"strings"
	"testing"

	"github.com/rawen554/mockhive/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveListAndDownload(t *testing.T) {
	dir := t.TempDir()
	s, err := upload.New(dir, false)
	require.NoError(t, err)

	entry, err := s.Save("a.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), entry.Size)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a.txt", list[0].Name)
	assert.Equal(t, int64(5), list[0].Size)

	path, err := s.Path("a.txt")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestSaveReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	s, err := upload.New(dir, false)
	require.NoError(t, err)

	_, err = s.Save("a.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	entry, err := s.Save("a.txt", strings.NewReader("hi"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), entry.Size)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestTemporaryStorePurge(t *testing.T) {
	dir := t.TempDir()
	s, err := upload.New(dir, true)
	require.NoError(t, err)

	_, err = s.Save("a.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	require.NoError(t, s.Purge())

	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
