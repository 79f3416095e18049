package pfm

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores one blob per key as a file under a root directory.
// Writes go through a temporary file renamed into place, so a crash mid
// write never leaves a corrupt ledger behind.
type FileBackend struct {
	Root string
}

// NewFileBackend returns a Backend rooted at dir.
func NewFileBackend(dir string) *FileBackend { return &FileBackend{Root: dir} }

func (b *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(b.Root, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *FileBackend) Put(_ context.Context, key string, data []byte) error {
	path := filepath.Join(b.Root, key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
