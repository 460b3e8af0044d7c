package integration_tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vk/gridsnapgo/internal/grid"
)

func TestLoader_MergesManifestsFromDirectory(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()

	coreHCL := `
		region "Customers" {
			description = "customer profiles"
		}
	`
	extraHCL := `
		region "Orders" {
			seed = {
				o-1 = "paid"
			}
		}
	`
	if err := os.WriteFile(filepath.Join(tempDir, "core.hcl"), []byte(coreHCL), 0600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "extra.hcl"), []byte(extraHCL), 0600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	// --- Act ---
	manifest, err := grid.LoadManifest(context.Background(), tempDir)

	// --- Assert ---
	if err != nil {
		t.Fatalf("LoadManifest() returned an unexpected error: %v", err)
	}
	if manifest == nil {
		t.Fatal("LoadManifest() returned a nil manifest")
	}

	expected := []grid.RegionDefinition{
		{Name: "Customers", Description: "customer profiles"},
		{Name: "Orders", Seed: map[string]string{"o-1": "paid"}},
	}
	if diff := cmp.Diff(expected, manifest.Regions); diff != "" {
		t.Errorf("Regions mismatch (-want +got):\n%s", diff)
	}

	// The merged manifest should materialize both regions.
	memoryGrid, err := manifest.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() returned an unexpected error: %v", err)
	}
	if got := len(memoryGrid.Regions()); got != 2 {
		t.Fatalf("Expected 2 regions in the grid, got %d", got)
	}
	orders, ok := memoryGrid.Region("Orders")
	if !ok {
		t.Fatal("Expected region 'Orders' not found in grid")
	}
	if orders.Size() != 1 {
		t.Errorf("Expected 1 seeded entry in 'Orders', got %d", orders.Size())
	}
}
