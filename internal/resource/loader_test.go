package resource

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location string
		scheme   Scheme
		rest     string
		ok       bool
	}{
		{"file", "file:/var/data/data-x.json", SchemeFile, "/var/data/data-x.json", true},
		{"bundle", "bundle:seed/data-x.json", SchemeBundle, "seed/data-x.json", true},
		{"https url", "https://example.com/data-x.json", SchemeHTTPS, "//example.com/data-x.json", true},
		{"uppercase scheme", "FILE:/x", SchemeFile, "/x", true},
		{"no scheme", "data-x.json", Scheme(""), "data-x.json", false},
		{"leading colon", ":oops", Scheme(""), ":oops", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scheme, rest, ok := SplitScheme(tc.location)
			assert.Equal(t, tc.scheme, scheme)
			assert.Equal(t, tc.rest, rest)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestSchemePrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "file:", SchemeFile.Prefix())
	assert.Equal(t, "bundle:", SchemeBundle.Prefix())
}

func TestSchemeLoaderResolve(t *testing.T) {
	t.Parallel()

	loader := NewSchemeLoader()
	loader.SetBundle(fstest.MapFS{
		"seed/data-catalog.json": {Data: []byte(`[]`)},
	})

	t.Run("file locations keep their path", func(t *testing.T) {
		res, err := loader.Resolve("file:/tmp/data-x.json")
		require.NoError(t, err)
		assert.Equal(t, "file:/tmp/data-x.json", res.Location())
	})

	t.Run("bundle locations resolve against the bundle", func(t *testing.T) {
		res, err := loader.Resolve("bundle:seed/data-catalog.json")
		require.NoError(t, err)
		assert.True(t, res.Exists())
	})

	t.Run("scheme-less locations default to the bundle", func(t *testing.T) {
		res, err := loader.Resolve("seed/data-catalog.json")
		require.NoError(t, err)
		assert.True(t, res.Exists())
		assert.Equal(t, "seed/data-catalog.json", res.Location())
	})

	t.Run("unknown schemes are rejected", func(t *testing.T) {
		_, err := loader.Resolve("s3://bucket/data-x.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported resource scheme 's3'")
	})

	t.Run("blank locations are rejected", func(t *testing.T) {
		_, err := loader.Resolve("   ")
		require.Error(t, err)
	})
}

func TestSchemeLoaderRegisterDuplicatePanics(t *testing.T) {
	t.Parallel()

	loader := NewSchemeLoader()
	assert.PanicsWithValue(t, "resource scheme 'file' already registered", func() {
		loader.Register(SchemeFile, func(Request) (Resource, error) { return nil, nil })
	})
}

func TestSchemeLoaderCustomScheme(t *testing.T) {
	t.Parallel()

	loader := NewSchemeLoader()
	loader.Register("mem", func(req Request) (Resource, error) {
		return NewBundle(fstest.MapFS{"x": {Data: []byte("y")}}, req.Rest), nil
	})

	res, err := loader.Resolve("mem:x")
	require.NoError(t, err)
	assert.True(t, res.Exists())
}
