package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"calpipe/refmatch/pkg/usage"
)

// Refresher rebuilds the usage index from the mapping directory at
// scheduled intervals using cron syntax.
type Refresher struct {
	scanner  *usage.Scanner
	storage  usage.Storage
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewRefresher creates a refresher over the given scanner and storage.
func NewRefresher(scanner *usage.Scanner, storage usage.Storage, schedule string) *Refresher {
	return &Refresher{
		scanner:  scanner,
		storage:  storage,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "usage.refresher"),
	}
}

// Rebuild performs one full rebuild: scan the mapping directory, clear
// the index, and store the fresh records. Returns the number of records
// stored.
func (r *Refresher) Rebuild(ctx context.Context) (int, error) {
	graph, err := r.scanner.Scan()
	if err != nil {
		return 0, err
	}

	if err := r.storage.Clear(ctx); err != nil {
		return 0, err
	}

	records := graph.Records()
	if err := r.storage.Store(ctx, records); err != nil {
		return 0, err
	}

	return len(records), nil
}

// Start begins scheduled rebuilds based on the cron expression.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "*/30 * * * *" - Every 30 minutes
//
// If the schedule is empty, the refresher does nothing.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("refresh schedule not configured, skipping refresher")
		return nil
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", r.schedule, err)
	}

	_, err := r.cron.AddFunc(r.schedule, func() {
		r.runRebuild(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule usage refresh: %w", err)
	}

	r.cron.Start()
	r.running = true

	r.logger.Info("usage refresher started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// runRebuild executes one scheduled rebuild cycle.
func (r *Refresher) runRebuild(ctx context.Context) {
	r.logger.Info("starting scheduled usage index rebuild")

	count, err := r.Rebuild(ctx)
	if err != nil {
		r.logger.Error("scheduled usage rebuild failed", "error", err)
		return
	}

	r.logger.Info("scheduled usage rebuild completed", "records", count)
}

// Stop stops the refresher and waits for a running rebuild to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil && r.running {
		ctx := r.cron.Stop()
		<-ctx.Done()
		r.running = false
		r.logger.Info("usage refresher stopped")
	}
}

// IsRunning returns true if the refresher is running.
func (r *Refresher) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.running
}

// NextRun returns the next scheduled rebuild time.
func (r *Refresher) NextRun() *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
