package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSource(t *testing.T) {
	src := Map{"a.b": "1", "empty": ""}

	assert.True(t, src.Contains("a.b"))
	assert.True(t, src.Contains("empty"), "empty values still count as configured")
	assert.False(t, src.Contains("missing"))

	v, ok := src.Lookup("a.b")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = src.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a.b", "empty"}, src.Names())
}

func TestChainPrecedence(t *testing.T) {
	chain := Chain{
		Map{"shared": "first", "only.first": "x"},
		Map{"shared": "second", "only.second": "y"},
	}

	v, ok := chain.Lookup("shared")
	require.True(t, ok)
	assert.Equal(t, "first", v, "earlier sources win")

	v, ok = chain.Lookup("only.second")
	require.True(t, ok)
	assert.Equal(t, "y", v)

	assert.False(t, chain.Contains("missing"))
	assert.Equal(t, []string{"only.first", "only.second", "shared"}, chain.Names())
}

func TestEnvRelaxedBinding(t *testing.T) {
	t.Setenv("GRIDSNAP_EXPORT_RESOURCE_LOCATION", "file:/tmp/${regionName}.json")

	src := Env{}
	assert.True(t, src.Contains("gridsnap.export.resource.location"))
	assert.True(t, src.Contains("gridsnap.export-resource-location"), "hyphens bind like dots")

	v, ok := src.Lookup("gridsnap.export.resource.location")
	require.True(t, ok)
	assert.Equal(t, "file:/tmp/${regionName}.json", v)

	assert.Contains(t, src.Names(), "gridsnap.export.resource.location")
}

func TestParseYAMLFlattening(t *testing.T) {
	src, err := ParseYAML([]byte(`
gridsnap:
  export:
    resource:
      location: "file:/backups/${regionName}.json"
  workers: 8
flag: true
blank:
`))
	require.NoError(t, err)

	v, ok := src.Lookup("gridsnap.export.resource.location")
	require.True(t, ok)
	assert.Equal(t, "file:/backups/${regionName}.json", v)

	v, ok = src.Lookup("gridsnap.workers")
	require.True(t, ok)
	assert.Equal(t, "8", v)

	v, ok = src.Lookup("flag")
	require.True(t, ok)
	assert.Equal(t, "true", v)

	v, ok = src.Lookup("blank")
	require.True(t, ok)
	assert.Equal(t, "", v)

	assert.False(t, src.Contains("gridsnap"), "interior nodes are not properties")
}

func TestParseYAMLRejectsMalformed(t *testing.T) {
	_, err := ParseYAML([]byte("a: [unclosed"))
	assert.Error(t, err)
}
