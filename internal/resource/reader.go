package resource

import (
	"context"
	"fmt"
	"io"
)

// Reader pulls the full content out of a resource.
type Reader interface {
	Read(ctx context.Context, res Resource) ([]byte, error)
}

// BytesReader reads a resource into memory in one piece. Snapshot files are
// bounded by what a region holds, so buffering the whole payload is fine.
type BytesReader struct{}

func (BytesReader) Read(ctx context.Context, res Resource) ([]byte, error) {
	rc, err := res.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %s: %w", res.Location(), err)
	}
	return data, nil
}
