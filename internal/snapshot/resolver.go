package snapshot

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/gridsnapgo/internal/ctxlog"
	"github.com/vk/gridsnapgo/internal/expr"
	"github.com/vk/gridsnapgo/internal/grid"
	"github.com/vk/gridsnapgo/internal/props"
	"github.com/vk/gridsnapgo/internal/resource"
)

// Property names that override the computed default location per direction.
// The configured value is a template expression; see package expr.
const (
	PropertyExportLocation = "gridsnap.export.resource.location"
	PropertyImportLocation = "gridsnap.import.resource.location"
)

// resourceNamePattern names a region's snapshot inside a base path.
const resourceNamePattern = "data-%s.json"

// ResourceName returns the default snapshot file name for a region,
// e.g. "data-customers.json" for a region named "Customers".
func ResourceName(regionName string) string {
	return fmt.Sprintf(resourceNamePattern, strings.ToLower(regionName))
}

// ResourceResolver maps a region to the resource its snapshot lives in.
type ResourceResolver interface {
	Resolve(ctx context.Context, region grid.Region) (resource.Resource, error)
}

// resolverBase carries the location strategy shared by both directions.
// Fields are wired at construction and through setters before first use;
// resolvers are not meant to be reconfigured while operations run.
type resolverBase struct {
	property string
	source   props.Source
	eval     *expr.Evaluator
	loader   resource.Loader
	basePath func() string
}

// SetLoader implements resource.LoaderAware.
func (b *resolverBase) SetLoader(loader resource.Loader) {
	if loader != nil {
		b.loader = loader
	}
}

// SetEvaluator replaces the resolver's expression evaluator, letting
// several resolvers share one compilation cache.
func (b *resolverBase) SetEvaluator(eval *expr.Evaluator) {
	if eval != nil {
		b.eval = eval
	}
}

// ResourceLocation computes the snapshot location for a region: the
// configured property evaluated as a template when set and non-blank, the
// resolver's default path otherwise. A template result counts only when
// non-empty; an expression that yields nothing falls through to the
// default.
func (b *resolverBase) ResourceLocation(region grid.Region) (string, error) {
	if region == nil {
		return "", ErrRegionRequired
	}
	if strings.TrimSpace(b.property) == "" {
		return "", ErrPropertyRequired
	}

	if b.source != nil {
		if configured, ok := b.source.Lookup(b.property); ok && strings.TrimSpace(configured) != "" {
			location, err := b.eval.Evaluate(configured, region.Name(), b.source)
			if err != nil {
				return "", err
			}
			if location != "" {
				return location, nil
			}
		}
	}

	return b.basePath() + ResourceName(region.Name()), nil
}

func (b *resolverBase) resolveHandle(region grid.Region) (resource.Resource, error) {
	location, err := b.ResourceLocation(region)
	if err != nil {
		return nil, err
	}
	return b.loader.Resolve(location)
}

// ExportResolver locates where a region's snapshot gets written. The
// default base path is "file:" plus the current working directory, looked
// up per call so long-running hosts follow directory changes.
type ExportResolver struct {
	resolverBase
}

// NewExportResolver builds a filesystem-targeting export resolver reading
// overrides from source. A nil source means no overrides.
func NewExportResolver(source props.Source) *ExportResolver {
	return &ExportResolver{resolverBase{
		property: PropertyExportLocation,
		source:   source,
		eval:     expr.NewEvaluator(),
		loader:   resource.NewSchemeLoader(),
		basePath: exportBasePath,
	}}
}

// Resolve returns the target handle for a region's export. Missing or
// unwritable targets warn and still resolve; the writer creates missing
// files and surfaces genuine write failures at write time.
func (r *ExportResolver) Resolve(ctx context.Context, region grid.Region) (resource.Resource, error) {
	res, err := r.resolveHandle(region)
	if err != nil {
		return nil, err
	}

	log := ctxlog.FromContext(ctx)
	if !res.Exists() {
		log.Warn("Resource does not exist; will try to create it",
			"location", res.Location(), "region", region.FullPath())
	}
	if !res.Writable() {
		log.Warn("Resource is not writable",
			"location", res.Location(), "region", region.FullPath())
	}
	return res, nil
}

// ImportResolver locates where a region's snapshot gets read from. The
// default base path is the bundle scheme, mirroring seed data shipped with
// the application.
type ImportResolver struct {
	resolverBase
}

// NewImportResolver builds a bundle-targeting import resolver reading
// overrides from source. A nil source means no overrides.
func NewImportResolver(source props.Source) *ImportResolver {
	return &ImportResolver{resolverBase{
		property: PropertyImportLocation,
		source:   source,
		eval:     expr.NewEvaluator(),
		loader:   resource.NewSchemeLoader(),
		basePath: importBasePath,
	}}
}

// Resolve returns the source handle for a region's import. A handle only
// qualifies when the resource exists and is readable; anything else is a
// hard error.
func (r *ImportResolver) Resolve(_ context.Context, region grid.Region) (resource.Resource, error) {
	res, err := r.resolveHandle(region)
	if err != nil {
		return nil, err
	}

	if !res.Exists() {
		return nil, fmt.Errorf("resource [%s] for region [%s]: %w",
			res.Location(), region.FullPath(), ErrResourceMissing)
	}
	if !res.Readable() {
		return nil, fmt.Errorf("resource [%s] for region [%s]: %w",
			res.Location(), region.FullPath(), ErrResourceUnreadable)
	}
	return res, nil
}

func exportBasePath() string {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return resource.SchemeFile.Prefix() + wd + string(os.PathSeparator)
}

func importBasePath() string {
	return resource.SchemeBundle.Prefix()
}

var (
	_ ResourceResolver     = (*ExportResolver)(nil)
	_ ResourceResolver     = (*ImportResolver)(nil)
	_ resource.LoaderAware = (*ExportResolver)(nil)
	_ resource.LoaderAware = (*ImportResolver)(nil)
)
