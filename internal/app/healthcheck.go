package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// healthHandler reports liveness and logs each probe.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// startServer binds the health check server to the configured port. A bind
// failure is logged but not fatal: the snapshot lifecycle still runs.
func (a *App) startServer() {
	a.logger.Debug("Configuring health check server.")

	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		a.logger.Error("Health check server failed to listen", "address", addr, "error", err)
		return
	}
	a.serve(ln)
}

// serve runs the health and metrics endpoints on an existing listener.
func (a *App) serve(ln net.Listener) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.Handle("/metrics", a.stats.Handler())

	srv := &http.Server{Handler: mux}

	a.mu.Lock()
	a.httpServer = srv
	a.listenAddr = ln.Addr().String()
	a.mu.Unlock()

	// Run the server in a goroutine so it doesn't block.
	go func() {
		a.logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://%s/health", ln.Addr()))
		// Serve returns ErrServerClosed on graceful shutdown. We check for
		// this specific error to avoid logging a false positive.
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeServer() error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()

	if srv == nil {
		a.logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down health check server...")
	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("Health check server shutdown failed", "error", err)
		return err
	}

	a.logger.Debug("Health check server shut down gracefully.")
	return nil
}

func (a *App) serving() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.httpServer != nil
}

// ListenAddr returns the bound address of the health check server, or the
// empty string when it is not running.
func (a *App) ListenAddr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listenAddr
}
