package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemBackend(t *testing.T) {
	root := t.TempDir()
	backend := NewFilesystemBackend(root)
	id := Identity{Route: "EUW1", PUUID: "abc"}

	expectedPath := filepath.Join(root, "summoner", "EUW1", "abc", "matches.json")
	assert.Equal(t, expectedPath, backend.Path(id))

	// Open creates an empty file
	data, err := backend.Open(id)
	require.NoError(t, err)
	assert.Empty(t, data)
	_, err = os.Stat(expectedPath)
	require.NoError(t, err)

	require.NoError(t, backend.Write(id, []byte(`{"a":1}`)))
	data, err = backend.Open(id)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	// No temp files are left behind
	entries, err := os.ReadDir(filepath.Dir(expectedPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	info, err := os.Stat(expectedPath)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0644), info.Mode().Perm())
}

func TestFilesystemBackendOverwrite(t *testing.T) {
	backend := NewFilesystemBackend(t.TempDir())
	id := Identity{Route: "NA1", PUUID: "p"}

	require.NoError(t, backend.Write(id, []byte(`{"first":true,"padding":"xxxxxxxx"}`)))
	require.NoError(t, backend.Write(id, []byte(`{}`)))

	data, err := backend.Open(id)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestFilesystemBackendRemove(t *testing.T) {
	root := t.TempDir()
	backend := NewFilesystemBackend(root)
	a := Identity{Route: "EUW1", PUUID: "a"}
	b := Identity{Route: "EUW1", PUUID: "b"}

	require.NoError(t, backend.Write(a, []byte(`{}`)))
	require.NoError(t, backend.Write(b, []byte(`{}`)))

	require.NoError(t, backend.Remove(&a))
	_, err := os.Stat(backend.Path(a))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(backend.Path(b))
	assert.NoError(t, err)

	err = backend.Remove(&a)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, backend.Remove(nil))
	_, err = os.Stat(root)
	assert.True(t, os.IsNotExist(err))
}

func TestFilesystemBackendOpenFailure(t *testing.T) {
	root := t.TempDir()
	// A regular file where the summoner directory should be
	require.NoError(t, os.WriteFile(filepath.Join(root, "summoner"), []byte("x"), 0644))

	_, err := NewFilesystemBackend(root).Open(Identity{Route: "EUW1", PUUID: "a"})
	assert.Error(t, err)
}
