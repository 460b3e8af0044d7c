package grid

import (
	"context"
	"strings"
)

// Separator joins region path segments. Root regions live directly under it.
const Separator = "/"

// Entry is one key/value pair held by a region. Values round-trip through
// the snapshot codec as JSON, so anything json.Marshal accepts is fair game.
type Entry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Region is a named key/value store inside a data grid.
//
// Entries and PutAll take a context because real region backends do network
// round-trips; the in-memory implementation only honors cancellation.
type Region interface {
	// Name returns the region's bare name, without any path separator.
	Name() string

	// FullPath returns the absolute region path, e.g. "/sessions".
	FullPath() string

	// Entries returns a snapshot copy of the region's current contents,
	// ordered by key.
	Entries(ctx context.Context) ([]Entry, error)

	// PutAll writes every entry into the region, overwriting existing keys.
	PutAll(ctx context.Context, entries []Entry) error

	// Size returns the current number of entries.
	Size() int
}

// Grid exposes the set of regions a snapshot run can address.
type Grid interface {
	// Region looks up a region by bare name.
	Region(name string) (Region, bool)

	// Regions returns every region, ordered by name.
	Regions() []Region
}

// FullPath converts a bare region name to its absolute path form.
func FullPath(name string) string {
	if strings.HasPrefix(name, Separator) {
		return name
	}
	return Separator + name
}
