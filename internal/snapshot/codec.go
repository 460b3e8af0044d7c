package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/vk/gridsnapgo/internal/grid"
)

// Encode renders region entries as an indented JSON array. Empty regions
// encode to "[]" rather than "null" so every snapshot file is a valid,
// importable array.
func Encode(entries []grid.Entry) ([]byte, error) {
	if entries == nil {
		entries = []grid.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode region entries: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot payload back into entries. Malformed payloads,
// including empty ones, are errors.
func Decode(data []byte) ([]grid.Entry, error) {
	var entries []grid.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode region entries: %w", err)
	}
	return entries, nil
}
