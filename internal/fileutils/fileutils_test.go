package fileutils_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/finassist/internal/fileutils"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir), "directories are not files")
}

func TestOpenInput(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "in.csv")
	require.NoError(t, os.WriteFile(testFile, []byte("id,description\n"), 0600))

	t.Run("file", func(t *testing.T) {
		r, err := fileutils.OpenInput(testFile, nil)
		require.NoError(t, err)
		defer r.Close()
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "id,description\n", string(data))
	})

	t.Run("stdin", func(t *testing.T) {
		for _, path := range []string{"", "-"} {
			r, err := fileutils.OpenInput(path, strings.NewReader("from stdin"))
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "from stdin", string(data))
			assert.NoError(t, r.Close())
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := fileutils.OpenInput(filepath.Join(tmpDir, "missing.csv"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file does not exist")
	})
}

func TestCreateOutput(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")
		w, err := fileutils.CreateOutput(path, nil)
		require.NoError(t, err)
		_, err = w.Write([]byte("ok"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "ok", string(data))
	})

	t.Run("stdout", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := fileutils.CreateOutput("-", &buf)
		require.NoError(t, err)
		_, err = w.Write([]byte("hello"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		assert.Equal(t, "hello", buf.String())
	})
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, fileutils.EnsureDirectoryExists(dir), "idempotent")
}
