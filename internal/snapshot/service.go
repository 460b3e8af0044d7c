package snapshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vk/gridsnapgo/internal/ctxlog"
	"github.com/vk/gridsnapgo/internal/grid"
	"github.com/vk/gridsnapgo/internal/metrics"
	"github.com/vk/gridsnapgo/internal/props"
	"github.com/vk/gridsnapgo/internal/resource"
)

// defaultWorkers bounds the per-region fan-out of ExportAll and ImportAll.
const defaultWorkers = 4

// Service drives imports and exports across regions. Collaborators left
// unset get defaults from Init; setters exist so hosts can swap in their
// own resolver, reader, writer, or loader before that.
type Service struct {
	source  props.Source
	loader  resource.Loader
	export  ResourceResolver
	imports ResourceResolver
	reader  resource.Reader
	writer  resource.Writer
	stats   *metrics.Collector
	workers int

	initialized bool
}

// NewService creates an unwired service reading configuration from source.
// Call Init before use.
func NewService(source props.Source) *Service {
	return &Service{source: source}
}

func (s *Service) SetLoader(loader resource.Loader) { s.loader = loader }

func (s *Service) SetExportResolver(r ResourceResolver) { s.export = r }

func (s *Service) SetImportResolver(r ResourceResolver) { s.imports = r }

func (s *Service) SetReader(reader resource.Reader) { s.reader = reader }

func (s *Service) SetWriter(writer resource.Writer) { s.writer = writer }

func (s *Service) SetMetrics(collector *metrics.Collector) { s.stats = collector }

// SetWorkers bounds the bulk fan-out; values below 1 keep the default.
func (s *Service) SetWorkers(n int) {
	if n >= 1 {
		s.workers = n
	}
}

// Init supplies defaults for every collaborator still unset, then hands
// the loader to each collaborator that wants one. Idempotent; overrides
// applied through setters are kept.
func (s *Service) Init() {
	if s.loader == nil {
		s.loader = resource.NewSchemeLoader()
	}
	if s.export == nil {
		s.export = NewExportResolver(s.source)
	}
	if s.imports == nil {
		s.imports = NewImportResolver(s.source)
	}
	if s.reader == nil {
		s.reader = resource.BytesReader{}
	}
	if s.writer == nil {
		s.writer = resource.FileWriter{}
	}
	if s.stats == nil {
		s.stats = metrics.NewCollector("")
	}
	if s.workers < 1 {
		s.workers = defaultWorkers
	}

	for _, collaborator := range []any{s.export, s.imports, s.reader, s.writer} {
		if aware, ok := collaborator.(resource.LoaderAware); ok {
			aware.SetLoader(s.loader)
		}
	}

	s.initialized = true
}

// Metrics returns the collector the service reports into. Only valid
// after Init.
func (s *Service) Metrics() *metrics.Collector {
	return s.stats
}

func (s *Service) ready() error {
	if !s.initialized {
		return errors.New("snapshot service is not initialized")
	}
	return nil
}

// ExportRegion writes one region's entries to its resolved resource.
func (s *Service) ExportRegion(ctx context.Context, region grid.Region) error {
	if err := s.ready(); err != nil {
		return err
	}
	start := time.Now()
	bytes, err := s.doExport(ctx, region)
	s.stats.RecordExport(bytes, time.Since(start), err)
	return err
}

func (s *Service) doExport(ctx context.Context, region grid.Region) (int, error) {
	res, err := s.export.Resolve(ctx, region)
	if err != nil {
		return 0, err
	}

	entries, err := region.Entries(ctx)
	if err != nil {
		return 0, err
	}
	data, err := Encode(entries)
	if err != nil {
		return 0, err
	}
	if err := s.writer.Write(ctx, res, data); err != nil {
		return 0, err
	}

	ctxlog.FromContext(ctx).Info("📦 Exported region",
		"region", region.FullPath(),
		"location", res.Location(),
		"entries", len(entries),
		"bytes", len(data))
	return len(data), nil
}

// ImportRegion loads one region's entries from its resolved resource.
func (s *Service) ImportRegion(ctx context.Context, region grid.Region) error {
	if err := s.ready(); err != nil {
		return err
	}
	start := time.Now()
	bytes, err := s.doImport(ctx, region)
	s.stats.RecordImport(bytes, time.Since(start), err)
	return err
}

func (s *Service) doImport(ctx context.Context, region grid.Region) (int, error) {
	res, err := s.imports.Resolve(ctx, region)
	if err != nil {
		return 0, err
	}

	data, err := s.reader.Read(ctx, res)
	if err != nil {
		return 0, err
	}
	entries, err := Decode(data)
	if err != nil {
		return 0, err
	}
	if err := region.PutAll(ctx, entries); err != nil {
		return 0, err
	}

	ctxlog.FromContext(ctx).Info("📥 Imported region",
		"region", region.FullPath(),
		"location", res.Location(),
		"entries", len(entries),
		"bytes", len(data))
	return len(data), nil
}

// ExportAll exports every region of the grid over a bounded worker pool.
// The first failure cancels the remaining work and is returned.
func (s *Service) ExportAll(ctx context.Context, g grid.Grid) error {
	return s.forEachRegion(ctx, g, metrics.DirectionExport, s.ExportRegion)
}

// ImportAll imports every region of the grid over a bounded worker pool.
// The first failure cancels the remaining work and is returned.
func (s *Service) ImportAll(ctx context.Context, g grid.Grid) error {
	return s.forEachRegion(ctx, g, metrics.DirectionImport, s.ImportRegion)
}

func (s *Service) forEachRegion(ctx context.Context, g grid.Grid, direction string, op func(context.Context, grid.Region) error) error {
	if err := s.ready(); err != nil {
		return err
	}

	regions := g.Regions()
	log := ctxlog.FromContext(ctx).With("direction", direction, "operation", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, log)
	log.Info("🚚 Starting bulk snapshot operation", "regions", len(regions), "workers", s.workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan grid.Region)
	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			workerLog := log.With("workerID", workerID)
			for region := range jobs {
				if ctx.Err() != nil {
					workerLog.Debug("Skipping region after cancellation.", "region", region.FullPath())
					continue
				}
				if err := op(ctx, region); err != nil {
					workerLog.Error("Region snapshot operation failed.", "region", region.FullPath(), "error", err)
					select {
					case errCh <- err:
					default:
					}
					cancel()
				}
			}
		}(i)
	}

	for _, region := range regions {
		jobs <- region
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
	}

	log.Info("✅ Bulk snapshot operation complete", "regions", len(regions))
	return nil
}
