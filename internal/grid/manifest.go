package grid

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/gridsnapgo/internal/ctxlog"
	"github.com/vk/gridsnapgo/internal/fsutil"
)

// RegionDefinition declares one region in a manifest.
type RegionDefinition struct {
	Name        string            `hcl:"name,label"`
	Description string            `hcl:"description,optional"`
	Seed        map[string]string `hcl:"seed,optional"`
}

// Manifest is the merged set of region definitions discovered under a path.
type Manifest struct {
	Regions []RegionDefinition
}

type manifestFile struct {
	Regions []*RegionDefinition `hcl:"region,block"`
}

// LoadManifest parses every .hcl file under path (a single file or a
// directory walked recursively) and merges the region blocks it finds.
// A region name declared twice is an error.
func LoadManifest(ctx context.Context, path string) (*Manifest, error) {
	log := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to discover manifest files: %w", err)
	}
	log.Debug("Discovered manifest files", "path", path, "count", len(files))

	parser := hclparse.NewParser()
	manifest := &Manifest{}
	seen := make(map[string]string)

	for _, name := range files {
		file, diags := parser.ParseHCLFile(name)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest file %s: %w", name, diags)
		}

		var mf manifestFile
		if diags := gohcl.DecodeBody(file.Body, nil, &mf); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest file %s: %w", name, diags)
		}

		for _, def := range mf.Regions {
			if prev, ok := seen[def.Name]; ok {
				return nil, fmt.Errorf("region %q declared in both %s and %s", def.Name, prev, name)
			}
			seen[def.Name] = name
			manifest.Regions = append(manifest.Regions, *def)
		}
	}

	log.Debug("Manifest loaded", "regions", len(manifest.Regions))
	return manifest, nil
}

// Build materializes the manifest as an in-memory grid, creating every
// declared region and loading its seed entries.
func (m *Manifest) Build(ctx context.Context) (*InMemory, error) {
	g := NewInMemory()
	for _, def := range m.Regions {
		region, err := g.CreateRegion(def.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to build grid: %w", err)
		}
		if len(def.Seed) == 0 {
			continue
		}
		entries := make([]Entry, 0, len(def.Seed))
		for k, v := range def.Seed {
			entries = append(entries, Entry{Key: k, Value: v})
		}
		if err := region.PutAll(ctx, entries); err != nil {
			return nil, fmt.Errorf("failed to seed region %q: %w", def.Name, err)
		}
	}
	return g, nil
}
