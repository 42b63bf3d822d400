package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SourceStore keeps uploaded .proto sources on local disk, one file per
// sanitized filename. Re-uploading a name replaces the previous source.
type SourceStore struct {
	dir string
}

// NewSourceStore creates dir if needed and returns a store rooted there.
func NewSourceStore(dir string) (*SourceStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create schema directory %s: %w", dir, err)
	}
	return &SourceStore{dir: dir}, nil
}

// Dir is the import root handed to the compiler.
func (s *SourceStore) Dir() string {
	return s.dir
}

// Save sanitizes filename, writes content under it and returns the stored
// name together with its path on disk.
func (s *SourceStore) Save(filename string, content []byte) (name, path string, err error) {
	name, err = SanitizeFilename(filename)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", err, filename)
	}
	path = filepath.Join(s.dir, name)
	if err := WriteFileAtomic(path, content); err != nil {
		return "", "", err
	}
	return name, path, nil
}

// Path returns where the source called name lives, or ErrNotFound.
func (s *SourceStore) Path(name string) (string, error) {
	clean, err := SanitizeFilename(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}
	p := filepath.Join(s.dir, clean)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, clean)
		}
		return "", err
	}
	return p, nil
}
