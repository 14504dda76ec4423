package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

// LocalStore implements ports.DocumentStore over a directory on disk.
// Used for development runs without a remote bucket.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a directory-backed document store.
func NewLocalStore(dir string) *LocalStore {
	if dir == "" {
		dir = "./documents"
	}
	return &LocalStore{dir: dir}
}

// Dir returns the directory this store reads from.
func (l *LocalStore) Dir() string {
	return l.dir
}

// List enumerates regular files in the directory.
func (l *LocalStore) List(ctx context.Context) ([]entities.ObjectInfo, error) {
	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", l.dir, err)
	}

	var objects []entities.ObjectInfo
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		objects = append(objects, entities.ObjectInfo{Name: entry.Name()})
	}
	return objects, nil
}

// Download reads a file by name. Names are flattened to their base so a
// caller cannot escape the directory.
func (l *LocalStore) Download(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}
