package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type fileResource struct {
	location string
	path     string
}

// NewFile returns a resource backed by a filesystem path.
func NewFile(path string) Resource {
	return &fileResource{location: SchemeFile.Prefix() + path, path: path}
}

func (r *fileResource) Location() string { return r.location }

func (r *fileResource) Exists() bool {
	info, err := os.Stat(r.path)
	return err == nil && info.Mode().IsRegular()
}

func (r *fileResource) Readable() bool {
	if !r.Exists() {
		return false
	}
	f, err := os.Open(r.path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Writable is optimistic about files that do not exist yet: Create makes
// the parent directories, so the only honest answer comes from trying.
func (r *fileResource) Writable() bool {
	info, err := os.Stat(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := os.OpenFile(r.path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func (r *fileResource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resource %s: %w", r.location, err)
	}
	return f, nil
}

func (r *fileResource) Create(_ context.Context) (io.WriteCloser, error) {
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create parent directories for %s: %w", r.location, err)
		}
	}
	f, err := os.Create(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource %s: %w", r.location, err)
	}
	return f, nil
}
