package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestAlbums(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "japan", "b.jpg"))
	touch(t, filepath.Join(root, "japan", "a.PNG"))
	touch(t, filepath.Join(root, "japan", "notes.txt"))
	touch(t, filepath.Join(root, "hiking", "summit.webp"))
	touch(t, filepath.Join(root, "stray-file.jpg"))

	svc := NewService(root, "https://cdn.example.com/galleryimgs/")
	albums, err := svc.Albums()
	require.NoError(t, err)

	// Only directories become albums; non-image files are skipped.
	require.Len(t, albums, 2)
	assert.Equal(t, []string{
		"https://cdn.example.com/galleryimgs/japan/a.PNG",
		"https://cdn.example.com/galleryimgs/japan/b.jpg",
	}, albums["japan"])
	assert.Equal(t, []string{
		"https://cdn.example.com/galleryimgs/hiking/summit.webp",
	}, albums["hiking"])
}

func TestAlbums_EmptyAlbum(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0o755))

	albums, err := NewService(root, "https://cdn.example.com").Albums()
	require.NoError(t, err)
	require.Contains(t, albums, "empty")
	assert.Empty(t, albums["empty"])
}

func TestAlbums_MissingRoot(t *testing.T) {
	_, err := NewService(filepath.Join(t.TempDir(), "missing"), "https://cdn.example.com").Albums()
	assert.Error(t, err)
}
