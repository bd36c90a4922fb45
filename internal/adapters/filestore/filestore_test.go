package filestore_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playmixer/studybot/internal/adapters/filestore"
)

func TestStore_SaveDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := filestore.New(&filestore.Config{Dir: dir})
	require.NoError(t, err)

	path, err := s.Save("Задание.PDF", []byte("content"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))
	assert.Equal(t, ".pdf", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)

	// names never collide for equal hints
	other, err := s.Save("Задание.PDF", []byte("content"))
	require.NoError(t, err)
	assert.NotEqual(t, path, other)

	require.NoError(t, s.Delete(path))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// deleting twice is fine
	assert.NoError(t, s.Delete(path))
	assert.NoError(t, s.Delete(""))
}

func TestNew_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "files")
	_, err := filestore.New(&filestore.Config{Dir: dir})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
