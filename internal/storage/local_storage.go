package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage keeps content blobs on the local filesystem, addressed by
// an opaque key. Keys shard into two-level directories to keep any single
// directory small.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (ls *LocalStorage) pathForKey(key string) string {
	if len(key) < 4 {
		return filepath.Join(ls.basePath, key)
	}
	return filepath.Join(ls.basePath, key[:2], key[2:4], key)
}

// Save writes the blob to a temporary file and renames it into place, so
// the final path either holds the complete content or nothing. A failed
// write never leaves a partial blob behind.
func (ls *LocalStorage) Save(key string, data io.Reader) error {
	finalPath := ls.pathForKey(key)
	dir := filepath.Dir(finalPath)

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+key+".part-*")
	if err != nil {
		return err
	}

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}

func (ls *LocalStorage) Get(key string) (io.ReadCloser, error) {
	file, err := os.Open(ls.pathForKey(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob %s not found: %w", key, err)
		}
		return nil, err
	}
	return file, nil
}

// Delete removes a blob. A blob that is already gone is not an error.
func (ls *LocalStorage) Delete(key string) error {
	err := os.Remove(ls.pathForKey(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
