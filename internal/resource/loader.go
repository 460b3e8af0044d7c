package resource

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"
)

// Request carries everything a Factory needs to build a resource handle.
type Request struct {
	// Location is the original location string, scheme prefix included.
	Location string

	// Rest is the location with the scheme prefix stripped. For locations
	// without a scheme it equals Location.
	Rest string

	// Bundle is the loader's current bundle filesystem.
	Bundle fs.FS

	// Client is the loader's HTTP client.
	Client *http.Client
}

// Factory builds a resource handle for one scheme.
type Factory func(req Request) (Resource, error)

// SchemeLoader resolves locations by dispatching on their scheme prefix.
// Locations without a scheme resolve against the bundle filesystem.
//
// The zero value is not usable; call NewSchemeLoader.
type SchemeLoader struct {
	mu        sync.RWMutex
	factories map[Scheme]Factory
	bundle    fs.FS
	client    *http.Client
}

// NewSchemeLoader returns a loader with the file, bundle, http, and https
// schemes registered. The bundle defaults to the process working directory.
func NewSchemeLoader() *SchemeLoader {
	l := &SchemeLoader{
		factories: make(map[Scheme]Factory),
		bundle:    os.DirFS("."),
		client:    defaultHTTPClient,
	}

	l.Register(SchemeFile, func(req Request) (Resource, error) {
		return &fileResource{location: req.Location, path: req.Rest}, nil
	})
	l.Register(SchemeBundle, func(req Request) (Resource, error) {
		return &bundleResource{location: req.Location, fsys: req.Bundle, name: bundleName(req.Rest)}, nil
	})
	urlFactory := func(req Request) (Resource, error) {
		return &httpResource{location: req.Location, client: req.Client}, nil
	}
	l.Register(SchemeHTTP, urlFactory)
	l.Register(SchemeHTTPS, urlFactory)

	return l
}

// Register adds a factory for a scheme. Registering the same scheme twice
// is a programmer error.
func (l *SchemeLoader) Register(scheme Scheme, factory Factory) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.factories[scheme]; exists {
		panic(fmt.Sprintf("resource scheme '%s' already registered", scheme))
	}
	l.factories[scheme] = factory
}

// SetBundle replaces the bundle filesystem that scheme-less and "bundle:"
// locations resolve against.
func (l *SchemeLoader) SetBundle(fsys fs.FS) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bundle = fsys
}

// SetHTTPClient replaces the client used for http and https resources.
func (l *SchemeLoader) SetHTTPClient(client *http.Client) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.client = client
}

// Resolve turns a location string into a resource handle. Resolution never
// touches the backend; existence and permissions are probed on the handle.
func (l *SchemeLoader) Resolve(location string) (Resource, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("resource location must not be empty")
	}

	scheme, rest, ok := SplitScheme(location)
	if !ok {
		scheme, rest = SchemeBundle, location
	}

	l.mu.RLock()
	factory, found := l.factories[scheme]
	req := Request{Location: location, Rest: rest, Bundle: l.bundle, Client: l.client}
	l.mu.RUnlock()

	if !found {
		return nil, fmt.Errorf("unsupported resource scheme '%s' in location %q", scheme, location)
	}
	return factory(req)
}
