package fs_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mapsrc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("public", "sitemap.xml"), fs.NewFile("public/./tmp/../sitemap.xml").Path())
}

func TestFile_Write(t *testing.T) {
	t.Parallel()

	t.Run("creates file and parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "public", "sitemap.xml")
		f := fs.NewFile(path)

		written, err := f.Write([]byte("<urlset/>"))
		require.NoError(t, err)

		assert.True(t, written)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<urlset/>", string(data))

		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
	})

	t.Run("skips identical content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sitemap.xml")
		f := fs.NewFile(path)
		_, err := f.Write([]byte("same"))
		require.NoError(t, err)
		before, err := os.Stat(path)
		require.NoError(t, err)

		written, err := f.Write([]byte("same"))
		require.NoError(t, err)

		assert.False(t, written)
		after, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, before.ModTime(), after.ModTime())
	})

	t.Run("replaces changed content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sitemap.xml")
		f := fs.NewFile(path)
		_, err := f.Write([]byte("old"))
		require.NoError(t, err)

		written, err := f.Write([]byte("new"))
		require.NoError(t, err)

		assert.True(t, written)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("returns error when directory cannot be created", func(t *testing.T) {
		t.Parallel()

		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))

		_, err := fs.NewFile(filepath.Join(blocker, "sitemap.xml")).Write([]byte("x"))

		require.Error(t, err)
	})
}

func TestFile_Checksum(t *testing.T) {
	t.Parallel()

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		_, ok := fs.NewFile(filepath.Join(t.TempDir(), "missing.xml")).Checksum()

		assert.False(t, ok)
	})

	t.Run("matches xxhash of contents", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sitemap.xml")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

		sum, ok := fs.NewFile(path).Checksum()

		require.True(t, ok)
		assert.Equal(t, xxhash.Sum64String("hello"), sum)
	})
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	a, err := fs.Checksum(bytes.NewReader([]byte("hello")))
	require.NoError(t, err)
	b, err := fs.Checksum(bytes.NewReader([]byte("world")))
	require.NoError(t, err)

	assert.Equal(t, xxhash.Sum64String("hello"), a)
	assert.NotEqual(t, a, b)
}
