package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/vk/gridsnapgo/internal/ctxlog"
	"github.com/vk/gridsnapgo/internal/grid"
	"github.com/vk/gridsnapgo/internal/metrics"
	"github.com/vk/gridsnapgo/internal/props"
	"github.com/vk/gridsnapgo/internal/resource"
	"github.com/vk/gridsnapgo/internal/snapshot"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	source  props.Source
	grid    *grid.InMemory
	service *snapshot.Service
	stats   *metrics.Collector

	mu         sync.Mutex
	httpServer *http.Server
	listenAddr string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, grid, and snapshot
// service. A failure to load the manifest or property file is a fatal
// startup error and panics.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	source := buildPropertySource(cfg)
	logger.Debug("Property sources assembled.")

	manifest, err := grid.LoadManifest(ctx, cfg.ManifestPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	memoryGrid, err := manifest.Build(ctx)
	if err != nil {
		panic(err)
	}
	logger.Debug("Grid manifest loaded.", "regions", len(memoryGrid.Regions()))

	loader := resource.NewSchemeLoader()
	if cfg.BundleDir != "" {
		loader.SetBundle(os.DirFS(cfg.BundleDir))
	}

	stats := metrics.NewCollector("")
	service := snapshot.NewService(source)
	service.SetLoader(loader)
	service.SetMetrics(stats)
	service.SetWorkers(cfg.Workers)
	service.Init()
	logger.Debug("Snapshot service initialized.")

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		source:  source,
		grid:    memoryGrid,
		service: service,
		stats:   stats,
	}
}

// buildPropertySource assembles the property chain: environment variables
// first, then the optional YAML file. A missing or malformed property file
// is a fatal startup error.
func buildPropertySource(cfg *Config) props.Source {
	chain := props.Chain{props.Env{}}
	if cfg.PropertiesPath != "" {
		file, err := props.LoadFile(cfg.PropertiesPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		chain = append(chain, file)
	}
	return chain
}

// Grid returns the application's in-memory grid. This is primarily for testing.
func (a *App) Grid() *grid.InMemory {
	return a.grid
}

// Service returns the application's snapshot service. This is primarily for testing.
func (a *App) Service() *snapshot.Service {
	return a.service
}

// Metrics returns the application's metrics collector.
func (a *App) Metrics() *metrics.Collector {
	return a.stats
}
