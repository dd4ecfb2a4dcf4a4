package domain

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

// WorkFunc processes one claimed file. A returned error fails that file only.
type WorkFunc func(ctx context.Context, unit *PackageUnit, file *m.File) error

// ScheduleStats reports what a scheduler run did.
type ScheduleStats struct {
	Workers   int
	Processed int
	Failed    int
}

// Scheduler fans the files of a report out to a fixed pool of workers.
type Scheduler interface {
	Run(ctx context.Context, units []*PackageUnit, threads int, fn WorkFunc) (ScheduleStats, error)
}

type scheduler struct{}

// NewScheduler constructs a Scheduler.
func NewScheduler() Scheduler {
	return &scheduler{}
}

// Run starts min(threads, files) workers and blocks until every file has been
// processed. Only cancellation of ctx makes it return early with an error.
func (s *scheduler) Run(ctx context.Context, units []*PackageUnit, threads int, fn WorkFunc) (ScheduleStats, error) {
	files := 0
	for _, u := range units {
		u.mu.Lock()
		files += len(u.pending)
		u.mu.Unlock()
	}

	workers := min(max(threads, 1), files)
	stats := ScheduleStats{Workers: workers}

	if workers == 0 {
		return stats, nil
	}

	list := newWorklist(units)

	var processed, failed atomic.Int64

	var group errgroup.Group

	for id := range workers {
		group.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}

				unit, file, ok := list.claim()
				if !ok {
					slog.Debug("Worker finished", "worker", id)
					return nil
				}

				processed.Add(1)

				if err := fn(ctx, unit, file); err != nil {
					failed.Add(1)
					slog.Error("Failed to reduce file", "worker", id, "file", unit.Package().QualifiedName(file), "path", file.Path, "error", err)
				}
			}
		})
	}

	err := group.Wait()

	stats.Processed = int(processed.Load())
	stats.Failed = int(failed.Load())

	return stats, err
}
