package app

import (
	"context"
	"fmt"

	"github.com/vk/gridsnapgo/internal/ctxlog"
)

// Run executes the snapshot lifecycle for the configured mode. Imports
// happen immediately. When the healthcheck server is enabled, Run then
// serves until ctx is canceled; exports run on the way out so the grid's
// final state is what lands on disk, mirroring a hosted cache that reloads
// data at startup and persists it at shutdown.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startServer()
	}

	if a.config.importEnabled() {
		a.logger.Info("🚀 Starting region import...", "regions", len(a.grid.Regions()))
		if err := a.service.ImportAll(ctx, a.grid); err != nil {
			a.closeServer()
			return fmt.Errorf("import failed: %w", err)
		}
		a.logger.Info("🏁 Import finished.")
	}

	if a.serving() {
		a.logger.Info("Serving until shutdown signal.", "address", a.ListenAddr())
		<-ctx.Done()
		a.logger.Info("Shutdown signal received.")
		// The incoming context is done; shutdown work gets a fresh one so
		// the export is not canceled by the very signal that triggered it.
		ctx = ctxlog.WithLogger(context.Background(), a.logger)
	}

	if a.config.exportEnabled() {
		a.logger.Info("🚀 Starting region export...", "regions", len(a.grid.Regions()))
		if err := a.service.ExportAll(ctx, a.grid); err != nil {
			a.closeServer()
			return fmt.Errorf("export failed: %w", err)
		}
		a.logger.Info("🏁 Export finished.")
	}

	a.closeServer()
	a.logger.Debug("App.Run method finished.")
	return nil
}
