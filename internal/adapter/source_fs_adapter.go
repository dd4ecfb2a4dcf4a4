// Package adapter contains the infrastructure adapters of the covreduct CLI: the
// external command runner, the Subversion protocol, report and audit storage and
// filesystem access.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

// workingCopyAdminDir marks the root of a Subversion working copy.
const workingCopyAdminDir = ".svn"

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on. It hides direct `os` access so the workflow logic can be tested
// without touching the disk.
type SourceFSAdapter interface {
	// FileInfo returns metadata for a path so the domain can check existence.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// Exists reports whether path exists. Errors other than "not exist" are returned.
	Exists(ctx context.Context, path m.Path) (bool, error)

	// CheckWorkingCopy verifies that path is an existing Subversion working copy.
	CheckWorkingCopy(ctx context.Context, path m.Path) error

	// CreateTempDir creates a temporary directory.
	CreateTempDir(ctx context.Context, pattern string) (m.Path, error)

	// RemoveAll removes a directory and all its contents.
	RemoveAll(ctx context.Context, path m.Path) error

	// MkdirAll creates a directory and its parents.
	MkdirAll(ctx context.Context, path m.Path) error

	// CopyFile copies a single file, creating the destination directory.
	CopyFile(ctx context.Context, src, dst m.Path) error

	// JoinPath joins path elements into a single path.
	JoinPath(ctx context.Context, elem ...string) m.Path
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

var _ SourceFSAdapter = (*LocalSourceFSAdapter)(nil)

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(_ context.Context, path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Exists reports whether path exists.
func (a *LocalSourceFSAdapter) Exists(_ context.Context, path m.Path) (bool, error) {
	_, err := os.Stat(string(path))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// CheckWorkingCopy returns an os.ErrNotExist error for a missing path and
// ErrNotAWorkingCopy when the administrative directory is absent.
func (a *LocalSourceFSAdapter) CheckWorkingCopy(ctx context.Context, path m.Path) error {
	info, err := a.FileInfo(ctx, path)
	if err != nil {
		return fmt.Errorf("working copy %s: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotAWorkingCopy)
	}

	admin, err := a.FileInfo(ctx, a.JoinPath(ctx, string(path), workingCopyAdminDir))
	if err != nil || !admin.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotAWorkingCopy)
	}

	return nil
}

// CreateTempDir creates a temporary directory.
func (a *LocalSourceFSAdapter) CreateTempDir(_ context.Context, pattern string) (m.Path, error) {
	tmpDir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", err
	}

	return m.Path(tmpDir), nil
}

// RemoveAll removes a directory and all its contents.
func (a *LocalSourceFSAdapter) RemoveAll(_ context.Context, path m.Path) error {
	return os.RemoveAll(string(path))
}

// MkdirAll creates a directory and its parents.
func (a *LocalSourceFSAdapter) MkdirAll(_ context.Context, path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// CopyFile copies a single file.
func (a *LocalSourceFSAdapter) CopyFile(_ context.Context, src, dst m.Path) error {
	// #nosec G304 - src is the report the user pointed us at
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is derived from the configured work directory
	destFile, err := os.Create(string(dst))
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(string(dst), info.Mode())
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
