package integration_tests

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridsnapgo/internal/app"
	"github.com/vk/gridsnapgo/internal/snapshot"
	apptest "github.com/vk/gridsnapgo/internal/testutil"
)

// Test for: one missing snapshot fails the whole import run.
func TestErrorHandling_MissingSnapshot_TriggersFailFast(t *testing.T) {
	// --- Arrange ---
	// Three regions, but the bundle only carries snapshots for two of them.
	files := map[string]string{
		"grid/regions.hcl": `
			region "Alpha" {}
			region "Beta" {}
			region "Gamma" {}
		`,
		"bundle/data-alpha.json": `[{"key":"a","value":1}]`,
		"bundle/data-gamma.json": `[{"key":"g","value":3}]`,
	}

	// --- Act ---
	result := apptest.RunSnapshotTest(t, files, app.Config{
		Mode:      app.ModeImport,
		BundleDir: "bundle",
		Workers:   2,
	})

	// --- Assert ---
	require.Error(t, result.Err, "a region without a snapshot must fail the import run")
	assert.ErrorIs(t, result.Err, snapshot.ErrResourceMissing)
	assert.Contains(t, result.Err.Error(), "data-beta.json")
	assert.Contains(t, result.Err.Error(), "/Beta")

	// Exactly one region failed; the failure series should say so.
	expected := strings.NewReader(`
# HELP gridsnap_failures_total Total number of failed snapshot operations
# TYPE gridsnap_failures_total counter
gridsnap_failures_total{direction="import"} 1
`)
	require.NoError(t, testutil.GatherAndCompare(result.App.Metrics().Registry(), expected, "gridsnap_failures_total"))

	if !strings.Contains(result.LogOutput, "Region snapshot operation failed.") {
		t.Errorf("expected the worker failure to be logged, got:\n%s", result.LogOutput)
	}
}
