package resource

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

type bundleResource struct {
	location string
	fsys     fs.FS
	name     string
}

// NewBundle returns a read-only resource backed by an entry of a bundle
// filesystem. The name is interpreted relative to the bundle root.
func NewBundle(fsys fs.FS, name string) Resource {
	return &bundleResource{
		location: SchemeBundle.Prefix() + name,
		fsys:     fsys,
		name:     bundleName(name),
	}
}

// bundleName normalizes a location remainder into an fs.FS path. Bundle
// entries are always addressed relative to the bundle root, so a leading
// slash is dropped rather than rejected.
func bundleName(name string) string {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "."
	}
	return path.Clean(name)
}

func (r *bundleResource) Location() string { return r.location }

func (r *bundleResource) Exists() bool {
	if r.fsys == nil || !fs.ValidPath(r.name) {
		return false
	}
	info, err := fs.Stat(r.fsys, r.name)
	return err == nil && info.Mode().IsRegular()
}

func (r *bundleResource) Readable() bool { return r.Exists() }

func (r *bundleResource) Writable() bool { return false }

func (r *bundleResource) Open(_ context.Context) (io.ReadCloser, error) {
	if r.fsys == nil {
		return nil, fmt.Errorf("failed to open resource %s: no bundle configured", r.location)
	}
	f, err := r.fsys.Open(r.name)
	if err != nil {
		return nil, fmt.Errorf("failed to open resource %s: %w", r.location, err)
	}
	return f, nil
}

func (r *bundleResource) Create(_ context.Context) (io.WriteCloser, error) {
	return nil, fmt.Errorf("cannot create resource %s: %w", r.location, ErrReadOnly)
}
