package domain

import (
	"context"
	"fmt"
	"log/slog"

	"covreduct.dev/pkg/covreduct/internal/adapter"
	m "covreduct.dev/pkg/covreduct/internal/model"
)

// Reducer removes stale coverage from a single file.
type Reducer interface {
	ReduceFile(ctx context.Context, unit *PackageUnit, file *m.File, cutoff m.Revision) (m.FileOutcome, error)
}

type reducer struct {
	fsAdapter  adapter.SourceFSAdapter
	vcsAdapter adapter.VCSAdapter
	policy     m.PrunePolicy
}

// NewReducer constructs a Reducer applying policy to stale lines and files.
func NewReducer(fsAdapter adapter.SourceFSAdapter, vcsAdapter adapter.VCSAdapter, policy m.PrunePolicy) Reducer {
	if policy == "" {
		policy = m.PruneCovered
	}

	return &reducer{fsAdapter: fsAdapter, vcsAdapter: vcsAdapter, policy: policy}
}

// ReduceFile decides which parts of file predate cutoff and subtracts their
// contribution from the file, its package and the project. On error the file
// is left as loaded and the returned outcome has status Failed.
func (r *reducer) ReduceFile(ctx context.Context, unit *PackageUnit, file *m.File, cutoff m.Revision) (m.FileOutcome, error) {
	outcome := m.FileOutcome{
		Package: unit.Package().Name,
		File:    file.Name,
		Path:    file.Path,
		Status:  m.Retained,
	}

	rev, err := r.fileRevision(ctx, file)
	if err != nil {
		return failed(outcome, err)
	}

	outcome.Revision = rev

	if rev.OlderThan(cutoff) {
		return r.dropFile(unit, file, outcome), nil
	}

	revisions, err := r.vcsAdapter.Blame(ctx, file.Path)
	if err != nil {
		return failed(outcome, err)
	}

	return r.pruneLines(unit, file, revisions, cutoff, outcome)
}

func (r *reducer) fileRevision(ctx context.Context, file *m.File) (m.Revision, error) {
	if file.Path == "" {
		return 0, fmt.Errorf("%s has no path: %w", file.Name, ErrMissingSourceFile)
	}

	exists, err := r.fsAdapter.Exists(ctx, file.Path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", file.Path, err)
	}

	if !exists {
		return 0, fmt.Errorf("%s: %w", file.Path, ErrMissingSourceFile)
	}

	props, err := r.vcsAdapter.Info(ctx, file.Path)
	if err != nil {
		return 0, err
	}

	key := adapter.InfoLastChangedRev
	if _, ok := props[key]; !ok {
		key = adapter.InfoRevision
	}

	rev, err := adapter.ParseInfoRevision(props, key)
	if err != nil {
		return 0, fmt.Errorf("info %s: %w", file.Path, err)
	}

	return rev, nil
}

// dropFile handles a file whose last change predates the cutoff: no blame is needed.
func (r *reducer) dropFile(unit *PackageUnit, file *m.File, outcome m.FileOutcome) m.FileOutcome {
	var target m.Counts
	if r.policy == m.PruneCovered {
		target = file.Metrics.Totals()
	}

	outcome.Status = m.Dropped
	outcome.Removed = unit.Apply(file, target)

	slog.Debug("Dropped stale file", "file", outcome.QualifiedName(), "revision", outcome.Revision, "removed", outcome.Removed.Elements)

	return outcome
}

// pruneLines handles a file changed after the cutoff by judging each line on its
// own blame revision. The file's new metrics are derived from its lines, so a
// second pass over an already reduced file subtracts nothing.
func (r *reducer) pruneLines(unit *PackageUnit, file *m.File, revisions []m.Revision, cutoff m.Revision, outcome m.FileOutcome) (m.FileOutcome, error) {
	var (
		target  m.Counts
		affects bool
		stale   []int
	)

	for _, line := range file.Lines {
		if line.Num < 1 || line.Num > len(revisions) {
			err := fmt.Errorf("line %d of %s (blame has %d lines): %w", line.Num, file.Path, len(revisions), ErrLineOutOfRange)
			return failed(outcome, err)
		}

		counts := line.Counts()

		if !revisions[line.Num-1].OlderThan(cutoff) {
			target.Add(counts)
			continue
		}

		stale = append(stale, line.Num)

		switch r.policy {
		case m.PruneRemove:
			affects = affects || !counts.IsZero()
		default:
			target.Add(counts.Totals())
			affects = affects || counts.CoveredElements > 0
		}
	}

	outcome.StaleLines = stale

	if !affects {
		return outcome, nil
	}

	outcome.Removed = unit.Apply(file, target)
	if !outcome.Removed.IsZero() {
		outcome.Status = m.Reduced
	}

	return outcome, nil
}

func failed(outcome m.FileOutcome, err error) (m.FileOutcome, error) {
	outcome.Status = m.Failed
	outcome.Error = err.Error()

	return outcome, err
}
