// Package testutil provides a shared harness for end-to-end snapshot tests:
// it lays out a temporary workspace, builds an App from it, and runs the
// full import/export lifecycle.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/gridsnapgo/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Chdir changes the working directory to dir for the duration of the test
// and restores it on cleanup. It stands in for testing.T.Chdir, which is
// only available from Go 1.24; this module builds with Go 1.21.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Open(".")
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	if !filepath.IsAbs(dir) {
		dir, err = os.Getwd()
		require.NoError(t, err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		err := oldwd.Chdir()
		oldwd.Close()
		if err != nil {
			panic("testutil.Chdir: " + err.Error())
		}
	})
}

// HarnessResult holds the outcomes of an end-to-end snapshot run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Dir       string
}

// RunSnapshotTest lays out the files map inside a temporary workspace,
// builds an app from cfg, and runs the snapshot lifecycle to completion.
//
// Relative paths in cfg resolve against the workspace; an empty
// ManifestPath defaults to "grid". The working directory is switched to
// the workspace for the duration of the test, so default export locations
// land in HarnessResult.Dir. Startup panics are recovered and reported
// through HarnessResult.Err.
//
// The run is one-shot: cfg must leave the healthcheck server disabled,
// otherwise Run would block waiting for a shutdown signal.
func RunSnapshotTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	require.Zero(t, cfg.HealthcheckPort, "the harness runs one-shot; serve-mode tests manage their own context")

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	if cfg.ManifestPath == "" {
		cfg.ManifestPath = "grid"
	}
	if !filepath.IsAbs(cfg.ManifestPath) {
		cfg.ManifestPath = filepath.Join(tmpDir, cfg.ManifestPath)
	}
	if cfg.PropertiesPath != "" && !filepath.IsAbs(cfg.PropertiesPath) {
		cfg.PropertiesPath = filepath.Join(tmpDir, cfg.PropertiesPath)
	}
	if cfg.BundleDir != "" && !filepath.IsAbs(cfg.BundleDir) {
		cfg.BundleDir = filepath.Join(tmpDir, cfg.BundleDir)
	}
	cfg.LogLevel = "debug"
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	Chdir(t, tmpDir)

	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, validated)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			Dir:       tmpDir,
		}
	}

	runErr := testApp.Run(context.Background())

	if os.Getenv("GRIDSNAP_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Dir:       tmpDir,
	}
}
