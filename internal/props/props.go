// Package props supplies the property lookup collaborators consumed by the
// snapshot resolvers. A Source answers "is this property configured, and to
// what value" without caring where the value came from; concrete sources cover
// explicit maps, the process environment, and YAML property files, and a Chain
// layers them with first-hit-wins precedence.
package props

import "sort"

// Source is a read-only view over named configuration properties. All
// implementations must be safe for concurrent lookups after construction.
type Source interface {
	// Contains reports whether the property is configured, even to an
	// empty value.
	Contains(name string) bool

	// Lookup returns the property value and whether it was configured.
	Lookup(name string) (string, bool)

	// Names returns every configured property name, sorted. It exists so
	// callers can project a Source into other shapes (template variables,
	// diagnostics dumps) without knowing the backing store.
	Names() []string
}

// Map is an explicit in-memory Source, used by tests and by host applications
// that assemble properties programmatically.
type Map map[string]string

// Contains implements Source.
func (m Map) Contains(name string) bool {
	_, ok := m[name]
	return ok
}

// Lookup implements Source.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Names implements Source.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain is an ordered composite Source. The first source that contains a
// property wins; later sources never shadow earlier ones.
type Chain []Source

// Contains implements Source.
func (c Chain) Contains(name string) bool {
	for _, src := range c {
		if src.Contains(name) {
			return true
		}
	}
	return false
}

// Lookup implements Source.
func (c Chain) Lookup(name string) (string, bool) {
	for _, src := range c {
		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// Names implements Source. The result is the de-duplicated union of all
// member names, sorted.
func (c Chain) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, src := range c {
		for _, name := range src.Names() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
