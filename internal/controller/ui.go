// Package controller provides output adapters for displaying reduction progress and results.
package controller

import (
	"context"
	"time"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

// RunInfo describes the inputs of a reduction run.
type RunInfo struct {
	Report      m.Path
	Output      m.Path
	WorkingCopy m.Path
	Cutoff      string
	Policy      m.PrunePolicy
	Threads     int
}

// UI defines the interface for reporting a reduction run.
// Display methods may be called from several workers at once.
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)
	DisplayRunInfo(ctx context.Context, info RunInfo)
	DisplayCutoff(ctx context.Context, cutoff string, revision m.Revision)
	DisplayConcurrencyInfo(ctx context.Context, workers int, files int)
	DisplayNotice(ctx context.Context, message string)
	DisplayFileOutcome(ctx context.Context, outcome m.FileOutcome)
	DisplaySummary(ctx context.Context, summary m.Summary)
	DisplayElapsed(ctx context.Context, elapsed time.Duration)
}
