package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestIndexImagesMatchesStems(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "KY-001.jpg"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, ".draft.png"))

	sub := filepath.Join(dir, "wines")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFile(t, filepath.Join(sub, "W-17.PNG"))

	hidden := filepath.Join(dir, ".cache")
	require.NoError(t, os.MkdirAll(hidden, 0o755))
	writeFile(t, filepath.Join(hidden, "SKIP-1.jpg"))

	ix, err := indexImages(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "KY-001.jpg"), ix.find("KY-001"))
	assert.Equal(t, filepath.Join(dir, "KY-001.jpg"), ix.find("ky-001"))
	assert.Equal(t, filepath.Join(sub, "W-17.PNG"), ix.find("W-17"))
	assert.Empty(t, ix.find("notes"))
	assert.Empty(t, ix.find("SKIP-1"))
}

func TestIndexImagesRejectsBadRoots(t *testing.T) {
	_, err := indexImages("")
	require.Error(t, err)

	_, err = indexImages(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestWatchableFiltersPaths(t *testing.T) {
	assert.True(t, watchable("/drop/KY-001.jpg"))
	assert.True(t, watchable("/drop/W-17.PNG"))
	assert.False(t, watchable("/drop/applications.json"))
	assert.False(t, watchable("/drop/.KY-001.jpg.tmp"))
}
