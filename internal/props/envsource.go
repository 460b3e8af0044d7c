package props

import (
	"os"
	"sort"
	"strings"
)

// Env exposes the process environment as a property Source with relaxed
// binding: the dotted property name "gridsnap.export.resource.location" maps
// to the variable GRIDSNAP_EXPORT_RESOURCE_LOCATION and back. Hyphens bind
// like dots.
type Env struct{}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// envKey converts a dotted property name into its environment variable form.
func envKey(name string) string {
	return strings.ToUpper(envKeyReplacer.Replace(name))
}

// propertyName converts an environment variable name back into dotted form.
// The mapping is lossy for variables whose original name contained hyphens or
// uppercase segments; relaxed binding treats those spellings as equivalent.
func propertyName(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", "."))
}

// Contains implements Source.
func (Env) Contains(name string) bool {
	_, ok := os.LookupEnv(envKey(name))
	return ok
}

// Lookup implements Source.
func (Env) Lookup(name string) (string, bool) {
	return os.LookupEnv(envKey(name))
}

// Names implements Source, returning every environment variable in dotted
// form, sorted.
func (Env) Names() []string {
	environ := os.Environ()
	seen := make(map[string]struct{}, len(environ))
	names := make([]string, 0, len(environ))
	for _, kv := range environ {
		key, _, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		name := propertyName(key)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
