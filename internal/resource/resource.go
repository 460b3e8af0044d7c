package resource

import (
	"context"
	"errors"
	"io"
)

// ErrReadOnly is returned by Create on backends that cannot accept writes,
// such as bundle and HTTP resources.
var ErrReadOnly = errors.New("resource is read-only")

// Resource is a handle to bytes at some location.
type Resource interface {
	// Location returns the full scheme-prefixed location string.
	Location() string

	// Exists reports whether the resource is currently present.
	Exists() bool

	// Readable reports whether Open can be expected to succeed.
	Readable() bool

	// Writable reports whether Create can be expected to succeed. A
	// writable resource need not exist yet; Create brings it into being.
	Writable() bool

	// Open returns the resource's content for reading.
	Open(ctx context.Context) (io.ReadCloser, error)

	// Create opens the resource for writing, truncating any previous
	// content and creating missing parent directories where the backend
	// has that notion.
	Create(ctx context.Context) (io.WriteCloser, error)
}

// Loader resolves location strings into resources.
type Loader interface {
	Resolve(location string) (Resource, error)
}

// LoaderAware is implemented by collaborators that want the orchestrator's
// loader handed to them during initialization.
type LoaderAware interface {
	SetLoader(Loader)
}
