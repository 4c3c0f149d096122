package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/henri-ngl/learning-dbt/internal/checksum"
	"github.com/henri-ngl/learning-dbt/internal/files/scanner"
	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// Tracker wraps a blocking wait with progress feedback.
type Tracker interface {
	Track(ctx context.Context, message string, wait func(ctx context.Context) error) error
}

// plainTracker runs the wait without any feedback.
type plainTracker struct{}

func (plainTracker) Track(ctx context.Context, _ string, wait func(ctx context.Context) error) error {
	return wait(ctx)
}

// Inventory lists the CSV sources present under a base path.
type Inventory interface {
	ScanResources(basePath string) ([]scanner.SourceFile, error)
}

// LoadService implements the Loader interface.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type LoadService struct {
	warehouseFactory bqseed.WarehouseFactory
	files            bqseed.FileOpener
	approver         bqseed.Approver
	logger           bqseed.Logger
	tracker          Tracker
	inventory        Inventory
}

// NewLoadService creates a new LoadService with all dependencies injected.
// Panics on nil dependencies: these are wiring errors that should fail at startup.
func NewLoadService(
	warehouseFactory bqseed.WarehouseFactory,
	files bqseed.FileOpener,
	approver bqseed.Approver,
	logger bqseed.Logger,
) *LoadService {
	if warehouseFactory == nil {
		panic("warehouseFactory cannot be nil")
	}
	if files == nil {
		panic("files cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &LoadService{
		warehouseFactory: warehouseFactory,
		files:            files,
		approver:         approver,
		logger:           logger,
		tracker:          plainTracker{},
	}
}

// WithInventory returns a copy of the service whose dry runs also report
// checksums and the CSV files no mapping names.
func (s *LoadService) WithInventory(inv Inventory) *LoadService {
	clone := *s
	clone.inventory = inv
	return &clone
}

// WithTracker returns a copy of the service that reports job waits through t.
func (s *LoadService) WithTracker(t Tracker) *LoadService {
	clone := *s
	clone.tracker = t
	return &clone
}

// Run loads each mapping in order and stops at the first failure.
// Loads that completed before the failure are left in place.
func (s *LoadService) Run(ctx context.Context, config bqseed.LoadConfig) (err error) {
	if err := config.Validate(); err != nil {
		return err
	}

	s.logger.Verbose("Base path: %s", config.BasePath)
	s.logger.Verbose("Destination dataset: %s.%s", config.ProjectID, config.DatasetID)

	if config.DryRun {
		return s.plan(config)
	}

	if config.Job.WriteDisposition == bqseed.WriteTruncate {
		approved, err := s.approver.RequestApproval(ctx, config.DatasetID, config.Tables())
		if err != nil {
			return fmt.Errorf("approval failed: %w", err)
		}
		if !approved {
			return bqseed.ErrApprovalDenied
		}
	}

	wh, err := s.warehouseFactory(ctx, config)
	if err != nil {
		if errors.Is(err, bqseed.ErrClientFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", bqseed.ErrClientFailed, err)
	}
	defer func() {
		if cerr := wh.Close(); cerr != nil {
			if err == nil {
				err = fmt.Errorf("close warehouse client: %w", cerr)
			} else {
				s.logger.Verbose("Closing warehouse client: %v", cerr)
			}
		}
	}()

	// One configuration value for the whole run.
	job := config.Job

	for _, m := range config.Mappings {
		if err := s.loadOne(ctx, wh, config, m, job); err != nil {
			return err
		}
	}

	s.logger.Verbose("Loaded %d table(s) into %s.%s", len(config.Mappings), config.ProjectID, config.DatasetID)
	return nil
}

// loadOne opens one source, submits its load job and waits for it.
// The source handle is closed before returning.
func (s *LoadService) loadOne(
	ctx context.Context,
	wh bqseed.Warehouse,
	config bqseed.LoadConfig,
	m bqseed.FileTableMapping,
	job bqseed.JobConfiguration,
) error {
	path := config.SourcePath(m)
	dest := config.Destination(m)
	fail := func(kind, cause error) error {
		return &bqseed.LoadError{Name: m.Name, Table: dest.String(), Path: path, Kind: kind, Err: cause}
	}

	s.logger.Info("Generating %s table....", m.Name)

	f, err := s.files.Open(path)
	if err != nil {
		return fail(bqseed.ErrFileAccess, err)
	}
	defer f.Close()

	hashed := checksum.NewReader(f)
	src := bqseed.Source{Name: m.Name, Path: path, Reader: hashed}

	submitted, err := wh.Load(ctx, src, dest, job, config.Labels)
	if err != nil {
		return fail(bqseed.ErrSubmission, err)
	}
	s.logger.Verbose("Submitted job %s: %s -> %s", submitted.ID(), path, dest)

	var result bqseed.JobResult
	err = s.tracker.Track(ctx, fmt.Sprintf("Loading %s into %s", m.Name, dest), func(ctx context.Context) error {
		var werr error
		result, werr = submitted.Wait(ctx)
		return werr
	})
	if err != nil {
		return fail(bqseed.ErrJobFailed, err)
	}

	s.logger.Verbose("Job %s done: %d row(s), %d byte(s) read, sha256 %s",
		result.JobID, result.OutputRows, hashed.BytesRead(), hashed.Sum())
	return nil
}

// plan checks every source without contacting the service.
// Unlike a real run it reports all missing sources, not just the first.
func (s *LoadService) plan(config bqseed.LoadConfig) error {
	var errs []error
	for _, m := range config.Mappings {
		path := config.SourcePath(m)
		dest := config.Destination(m)
		size, err := s.files.Size(path)
		if err != nil {
			errs = append(errs, &bqseed.LoadError{Name: m.Name, Table: dest.String(), Path: path, Kind: bqseed.ErrFileAccess, Err: err})
			s.logger.Info("  %s -> %s (missing)", path, dest)
			continue
		}
		s.logger.Info("  %s (%d bytes) -> %s", path, size, dest)
	}
	s.reportInventory(config)
	return errors.Join(errs...)
}

// reportInventory logs checksums of the scanned sources and flags unmapped ones.
// A failed scan is only reported; the plan itself decides the outcome.
func (s *LoadService) reportInventory(config bqseed.LoadConfig) {
	if s.inventory == nil {
		return
	}
	files, err := s.inventory.ScanResources(config.BasePath)
	if err != nil {
		s.logger.Verbose("Skipping resource inventory: %v", err)
		return
	}
	for _, f := range files {
		s.logger.Verbose("  %s sha256=%s", f.Path, f.Checksum)
	}
	for _, f := range scanner.Unmapped(files, config.Mappings) {
		s.logger.Info("  %s (not mapped)", f.Path)
	}
}

var _ bqseed.Loader = (*LoadService)(nil)
