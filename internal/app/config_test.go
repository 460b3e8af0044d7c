package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires a manifest path", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ManifestPath is a required configuration field")
	})

	t.Run("defaults the mode to both", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(Config{ManifestPath: "grid"})
		require.NoError(t, err)
		assert.Equal(t, ModeBoth, cfg.Mode)
		assert.True(t, cfg.importEnabled())
		assert.True(t, cfg.exportEnabled())
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{ManifestPath: "grid", Mode: "sideways"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid mode "sideways"`)
	})

	t.Run("rejects a negative healthcheck port", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{ManifestPath: "grid", HealthcheckPort: -1})
		require.Error(t, err)
	})

	t.Run("import mode disables exports", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(Config{ManifestPath: "grid", Mode: ModeImport})
		require.NoError(t, err)
		assert.True(t, cfg.importEnabled())
		assert.False(t, cfg.exportEnabled())
	})
}

func TestParseEnv(t *testing.T) {
	t.Setenv("GRIDSNAP_MANIFEST", "regions")
	t.Setenv("GRIDSNAP_MODE", "export")
	t.Setenv("GRIDSNAP_WORKERS", "8")

	cfg := Config{Mode: ModeBoth, LogLevel: "info"}
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, "regions", cfg.ManifestPath)
	assert.Equal(t, ModeExport, cfg.Mode)
	assert.Equal(t, 8, cfg.Workers)
	// Untouched fields keep their base values.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewLoggerRespectsLevelAndFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&Config{LogLevel: "debug", LogFormat: "text"}, &buf)
	logger.Debug("visible")
	require.Contains(t, buf.String(), "visible")

	buf.Reset()
	logger = newLogger(&Config{LogLevel: "warn", LogFormat: "json"}, &buf)
	logger.Info("hidden")
	require.Empty(t, buf.String())
	logger.Warn("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
