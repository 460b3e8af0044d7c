package app

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Run modes. Both mirrors a hosted cache's lifecycle: import on startup,
// export on the way down.
const (
	ModeImport = "import"
	ModeExport = "export"
	ModeBoth   = "both"
)

// Config holds all the necessary configuration for an App instance to run.
// The env tags let deployments configure the binary without flags; the CLI
// layer gives flags the final word.
type Config struct {
	ManifestPath   string `env:"GRIDSNAP_MANIFEST"`   // region manifest file or directory
	PropertiesPath string `env:"GRIDSNAP_PROPERTIES"` // optional YAML property file
	BundleDir      string `env:"GRIDSNAP_BUNDLE_DIR"` // bundle root for scheme-less locations
	Mode           string `env:"GRIDSNAP_MODE"`

	LogFormat       string `env:"GRIDSNAP_LOG_FORMAT"`
	LogLevel        string `env:"GRIDSNAP_LOG_LEVEL"`
	HealthcheckPort int    `env:"GRIDSNAP_HEALTHCHECK_PORT"`
	Workers         int    `env:"GRIDSNAP_WORKERS"`
}

// ParseEnv fills cfg from GRIDSNAP_* environment variables. Fields already
// set keep their values only when the variable is absent, so callers apply
// it to a base config before layering flags on top.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to read configuration from environment: %w", err)
	}
	return nil
}

// NewConfig validates a configuration and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	if cfg.Mode == "" {
		cfg.Mode = ModeBoth
	}
	switch cfg.Mode {
	case ModeImport, ModeExport, ModeBoth:
	default:
		return nil, fmt.Errorf("invalid mode %q: must be 'import', 'export', or 'both'", cfg.Mode)
	}

	if cfg.HealthcheckPort < 0 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}

	return &cfg, nil
}

func (c *Config) importEnabled() bool { return c.Mode == ModeImport || c.Mode == ModeBoth }

func (c *Config) exportEnabled() bool { return c.Mode == ModeExport || c.Mode == ModeBoth }
