package props

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a Source backed by a YAML document. Nested mappings flatten into
// dotted property names, so
//
//	gridsnap:
//	  export:
//	    resource:
//	      location: "file:/backups/${regionName}.json"
//
// configures "gridsnap.export.resource.location". Scalar leaves render with
// their YAML string form; sequences render with %v and are rarely useful as
// property values.
type File struct {
	path   string
	values Map
}

// LoadFile reads and flattens a YAML property file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties file %s: %w", path, err)
	}
	f, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties file %s: %w", path, err)
	}
	f.path = path
	return f, nil
}

// ParseYAML flattens a YAML document into a File source.
func ParseYAML(data []byte) (*File, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	values := Map{}
	flatten("", doc, values)
	return &File{values: values}, nil
}

// flatten walks nested mappings, joining keys with dots. Non-map leaves
// stringify in place.
func flatten(prefix string, node map[string]any, into Map) {
	for key, value := range node {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch child := value.(type) {
		case map[string]any:
			flatten(name, child, into)
		case nil:
			into[name] = ""
		case string:
			into[name] = child
		default:
			into[name] = fmt.Sprintf("%v", child)
		}
	}
}

// Path returns the file the source was loaded from, or "" for in-memory data.
func (f *File) Path() string { return f.path }

// Contains implements Source.
func (f *File) Contains(name string) bool { return f.values.Contains(name) }

// Lookup implements Source.
func (f *File) Lookup(name string) (string, bool) { return f.values.Lookup(name) }

// Names implements Source.
func (f *File) Names() []string { return f.values.Names() }
