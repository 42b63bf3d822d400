package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// FileStore keeps artifacts as plain files in one directory. It is the
// default backend and the one protoc writes next to.
type FileStore struct {
	dir      string
	observer observability.Observer
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// WithObserver attaches an observer notified of every operation.
func (s *FileStore) WithObserver(observer observability.Observer) *FileStore {
	s.observer = observer
	return s
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Get reads the object called name.
func (s *FileStore) Get(ctx context.Context, name string) (data []byte, err error) {
	start := time.Now()
	defer func() { observeOperation(s.observer, BackendFile, "get", name, start, err, int64(len(data))) }()

	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err = os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}
	return data, nil
}

// Put writes data to a temporary file in the same directory and renames it
// over name.
func (s *FileStore) Put(ctx context.Context, name string, data []byte) (err error) {
	start := time.Now()
	defer func() { observeOperation(s.observer, BackendFile, "put", name, start, err, int64(len(data))) }()

	p, err := s.path(name)
	if err != nil {
		return err
	}
	return WriteFileAtomic(p, data)
}

// Delete removes name. Deleting a missing object is not an error.
func (s *FileStore) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { observeOperation(s.observer, BackendFile, "delete", name, start, err, 0) }()

	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete artifact %s: %w", name, err)
	}
	return nil
}

// List returns the names of all artifacts, sorted. Temporary files left by
// an interrupted Put are skipped.
func (s *FileStore) List(ctx context.Context) (names []string, err error) {
	start := time.Now()
	defer func() { observeOperation(s.observer, BackendFile, "list", "", start, err, 0) }()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifact directory %s: %w", s.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ArtifactExt {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// WriteFileAtomic writes data next to path and renames it into place.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
