package integration_tests

import (
	"strings"
	"testing"

	"github.com/vk/gridsnapgo/internal/app"
	"github.com/vk/gridsnapgo/internal/testutil"
)

// Test for: invalid hcl is rejected
func TestErrorHandling_InvalidHCL_IsRejected(t *testing.T) {
	// --- Arrange ---
	// Define an HCL string with a clear syntax error (a missing closing brace).
	invalidHCL := `
		region "Customers" {
			description = "customer profiles"
	`
	files := map[string]string{
		"grid/regions.hcl": invalidHCL,
	}

	// --- Act ---
	// Build and run the application. The failure should happen during
	// manifest loading, long before any snapshot work is attempted.
	result := testutil.RunSnapshotTest(t, files, app.Config{Mode: app.ModeExport})

	// --- Assert ---
	if result.Err == nil {
		t.Fatal("the run should have failed for invalid HCL, but it did not")
	}

	// Check for keywords that indicate a parsing or decoding error, which
	// confirms the failure happened at the expected stage.
	errMsg := result.Err.Error()
	if !strings.Contains(errMsg, "failed to parse") && !strings.Contains(errMsg, "failed to decode") {
		t.Errorf("expected error message to indicate an HCL parsing failure, but got: %s", errMsg)
	}
}
