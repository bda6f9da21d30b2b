package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name string `json:"name"`
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")

	require.NoError(t, Write(path, doc{Name: "Acme Corp"}, 0600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	var got doc
	found, err := Read(path, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Acme Corp", got.Name)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestRead_Missing(t *testing.T) {
	var got doc
	found, err := Read(filepath.Join(t.TempDir(), "nope.json"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRead_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	var got doc
	found, err := Read(path, &got)
	assert.True(t, found)
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, Write(path, doc{}, 0600))

	require.NoError(t, Remove(path))
	require.NoError(t, Remove(path), "removing a missing file is not an error")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
