package domain

import (
	"context"
	"fmt"
	"log/slog"

	"covreduct.dev/pkg/covreduct/internal/adapter"
	m "covreduct.dev/pkg/covreduct/internal/model"
)

// RevisionResolver translates a cutoff timestamp into the repository revision
// that was current at that time.
type RevisionResolver interface {
	Resolve(ctx context.Context, workingCopy m.Path, cutoff string) (m.Revision, error)
}

type revisionResolver struct {
	fsAdapter  adapter.SourceFSAdapter
	vcsAdapter adapter.VCSAdapter
}

// NewRevisionResolver constructs a RevisionResolver.
func NewRevisionResolver(fsAdapter adapter.SourceFSAdapter, vcsAdapter adapter.VCSAdapter) RevisionResolver {
	return &revisionResolver{fsAdapter: fsAdapter, vcsAdapter: vcsAdapter}
}

// Resolve looks up the repository root of workingCopy and performs an empty
// checkout of it at {cutoff} into a temporary directory. The revision reported
// by the checkout is the cutoff revision.
func (r *revisionResolver) Resolve(ctx context.Context, workingCopy m.Path, cutoff string) (m.Revision, error) {
	if err := r.fsAdapter.CheckWorkingCopy(ctx, workingCopy); err != nil {
		slog.Error("Failed to open working copy", "path", workingCopy, "error", err)
		return 0, err
	}

	props, err := r.vcsAdapter.Info(ctx, workingCopy)
	if err != nil {
		slog.Error("Failed to query working copy", "path", workingCopy, "error", err)
		return 0, fmt.Errorf("resolve cutoff: %w", err)
	}

	root, err := adapter.InfoValue(props, adapter.InfoRepositoryRoot)
	if err != nil {
		return 0, fmt.Errorf("resolve cutoff: %w", err)
	}

	tmpDir, err := r.fsAdapter.CreateTempDir(ctx, "covreduct-checkout-*")
	if err != nil {
		slog.Error("Failed to create temp dir", "error", err)
		return 0, fmt.Errorf("resolve cutoff: %w", err)
	}

	defer func() {
		if err := r.fsAdapter.RemoveAll(ctx, tmpDir); err != nil {
			slog.Error("Failed to cleanup temp dir", "tmpDir", tmpDir, "error", err)
		}
	}()

	rev, err := r.vcsAdapter.Checkout(ctx, root, "{"+cutoff+"}", "empty", tmpDir)
	if err != nil {
		slog.Error("Failed to check out cutoff revision", "root", root, "cutoff", cutoff, "error", err)
		return 0, fmt.Errorf("resolve cutoff: %w", err)
	}

	slog.Info("Resolved cutoff revision", "cutoff", cutoff, "revision", rev, "root", root)

	return rev, nil
}
