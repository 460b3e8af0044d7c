package resource

import (
	"context"
	"fmt"
)

// Writer pushes content into a resource.
type Writer interface {
	Write(ctx context.Context, res Resource, data []byte) error
}

// FileWriter writes a resource in one piece through the handle's Create,
// which truncates previous content and creates missing parent directories.
// Pointing it at a read-only backend fails with ErrReadOnly at write time.
type FileWriter struct{}

func (FileWriter) Write(ctx context.Context, res Resource, data []byte) error {
	wc, err := res.Create(ctx)
	if err != nil {
		return err
	}

	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to write resource %s: %w", res.Location(), err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to finalize resource %s: %w", res.Location(), err)
	}
	return nil
}
