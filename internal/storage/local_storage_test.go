package storage

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLocalStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewLocalStorage(tempDir)
	require.NoError(t, err)
	require.NotNil(t, storage)
	require.Equal(t, tempDir, storage.basePath)

	_, err = os.Stat(tempDir)
	require.NoError(t, err, "Base directory should be created")
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	tempDir := t.TempDir()
	storage, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	key := "0f9a3b7c-test-key-123"
	content := "Hello, world!"

	err = storage.Save(key, strings.NewReader(content))
	require.NoError(t, err)

	// The blob lands in its sharded location with the full content.
	expectedPath := storage.pathForKey(key)
	fileInfo, err := os.Stat(expectedPath)
	require.NoError(t, err, "File should exist after save")
	require.Equal(t, int64(len(content)), fileInfo.Size())

	readCloser, err := storage.Get(key)
	require.NoError(t, err)
	retrieved, err := io.ReadAll(readCloser)
	require.NoError(t, err)
	readCloser.Close()
	require.Equal(t, content, string(retrieved))

	err = storage.Delete(key)
	require.NoError(t, err)
	_, err = os.Stat(expectedPath)
	require.True(t, os.IsNotExist(err), "File should be gone after delete")
}

func TestLocalStorage_ShardLayout(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path := storage.pathForKey("abcdef123")
	require.Contains(t, path, "ab")
	require.Contains(t, path, "cd")
	require.True(t, strings.HasSuffix(path, "abcdef123"))
}

func TestLocalStorage_DeleteMissingIsNoError(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Delete("never-saved-key"))
}

func TestLocalStorage_SaveFailureLeavesNoPartial(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key := "failing-save-key-001"
	err = storage.Save(key, failingReader{})
	require.Error(t, err)

	// Neither the final blob nor a temp fragment survives a failed write.
	_, err = os.Stat(storage.pathForKey(key))
	require.True(t, os.IsNotExist(err))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}
