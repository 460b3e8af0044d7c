package grid

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// InMemory is a process-local Grid. It exists so the CLI and the tests have
// a region backend without standing up a real grid engine.
type InMemory struct {
	mu      sync.RWMutex
	regions map[string]*memoryRegion
}

// NewInMemory returns an empty grid.
func NewInMemory() *InMemory {
	return &InMemory{regions: make(map[string]*memoryRegion)}
}

// CreateRegion adds an empty region under the given bare name.
func (g *InMemory) CreateRegion(name string) (Region, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("region name must not be empty")
	}
	if strings.Contains(name, Separator) {
		return nil, fmt.Errorf("region name %q must not contain %q", name, Separator)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.regions[name]; ok {
		return nil, fmt.Errorf("region %q already exists", name)
	}
	r := &memoryRegion{name: name, entries: make(map[string]any)}
	g.regions[name] = r
	return r, nil
}

// Region looks up a region by bare name.
func (g *InMemory) Region(name string) (Region, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.regions[name]
	return r, ok
}

// Regions returns every region, ordered by name.
func (g *InMemory) Regions() []Region {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.regions))
	for name := range g.regions {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Region, 0, len(names))
	for _, name := range names {
		out = append(out, g.regions[name])
	}
	return out
}

type memoryRegion struct {
	mu      sync.RWMutex
	name    string
	entries map[string]any
}

func (r *memoryRegion) Name() string { return r.name }

func (r *memoryRegion) FullPath() string { return FullPath(r.name) }

func (r *memoryRegion) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for k, v := range r.entries {
		out = append(out, Entry{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *memoryRegion) PutAll(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		r.entries[e.Key] = e.Value
	}
	return nil
}

func (r *memoryRegion) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
