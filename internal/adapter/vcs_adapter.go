package adapter

import (
	"context"
	"fmt"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

// Keys of `svn info` output the reduction relies on.
const (
	InfoRepositoryRoot = "Repository Root"
	InfoLastChangedRev = "Last Changed Rev"
	InfoRevision       = "Revision"
)

// DefaultVCSCommand is the Subversion client executable.
const DefaultVCSCommand = "svn"

// VCSAdapter abstracts the version-control text protocol used by the reduction.
type VCSAdapter interface {
	// Info runs `info` for path and returns its `key: value` properties.
	Info(ctx context.Context, path m.Path) (map[string]string, error)

	// Blame returns the revision that last touched each line of path, in file order.
	Blame(ctx context.Context, path m.Path) ([]m.Revision, error)

	// Checkout performs a checkout of url at revisionSpec with the given depth into
	// dest and returns the revision it reports.
	Checkout(ctx context.Context, url string, revisionSpec string, depth string, dest m.Path) (m.Revision, error)

	// WithUsername returns a copy of the adapter that authenticates as username.
	WithUsername(username string) VCSAdapter
}

// SubversionAdapter implements VCSAdapter on top of the svn command line client.
type SubversionAdapter struct {
	runner   CommandRunner
	command  string
	username string
}

var _ VCSAdapter = (*SubversionAdapter)(nil)

// NewSubversionAdapter constructs a SubversionAdapter. An empty command selects
// DefaultVCSCommand.
func NewSubversionAdapter(runner CommandRunner, command string) *SubversionAdapter {
	if command == "" {
		command = DefaultVCSCommand
	}

	return &SubversionAdapter{runner: runner, command: command}
}

// WithUsername implements VCSAdapter.
func (a *SubversionAdapter) WithUsername(username string) VCSAdapter {
	clone := *a
	clone.username = username

	return &clone
}

// Info implements VCSAdapter.
func (a *SubversionAdapter) Info(ctx context.Context, path m.Path) (map[string]string, error) {
	consumer := NewInfoConsumer()

	if err := a.run(ctx, consumer.Consume, opInfo, string(path)); err != nil {
		return nil, fmt.Errorf("info %s: %w", path, err)
	}

	return consumer.Properties, nil
}

// Blame implements VCSAdapter.
func (a *SubversionAdapter) Blame(ctx context.Context, path m.Path) ([]m.Revision, error) {
	consumer := &BlameConsumer{}

	if err := a.run(ctx, consumer.Consume, opBlame, string(path)); err != nil {
		return nil, fmt.Errorf("blame %s: %w", path, err)
	}

	if consumer.Err != nil {
		return nil, fmt.Errorf("blame %s: %w", path, consumer.Err)
	}

	return consumer.Revisions, nil
}

// Checkout implements VCSAdapter.
func (a *SubversionAdapter) Checkout(ctx context.Context, url string, revisionSpec string, depth string, dest m.Path) (m.Revision, error) {
	consumer := &RevisionConsumer{}

	args := []string{"-r", revisionSpec}
	if depth != "" {
		args = append(args, "--depth", depth)
	}

	args = append(args, url, string(dest))

	if err := a.run(ctx, consumer.Consume, opCheckout, args...); err != nil {
		return 0, fmt.Errorf("checkout %s: %w", url, err)
	}

	rev, err := consumer.Revision()
	if err != nil {
		return 0, fmt.Errorf("checkout %s: %w", url, err)
	}

	return rev, nil
}

func (a *SubversionAdapter) run(ctx context.Context, stdout LineConsumer, subcommand string, args ...string) error {
	full := []string{subcommand, "--non-interactive"}
	if a.username != "" {
		full = append(full, "--username="+a.username)
	}

	full = append(full, args...)

	return a.runner.Run(ctx, "", a.command, full, stdout, nil)
}
