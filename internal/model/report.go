package model

import (
	"fmt"
	"strings"
)

// PrunePolicy selects what happens to stale coverage.
type PrunePolicy string

const (
	// PruneCovered drops the covered contribution of stale lines and keeps their totals
	// and their place in the tree.
	PruneCovered PrunePolicy = "covered"
	// PruneRemove drops stale lines entirely, totals included, and deletes stale
	// Line and File nodes from the tree once all workers are done.
	PruneRemove PrunePolicy = "remove"
)

// ParsePrunePolicy converts a configuration value into a PrunePolicy.
func ParsePrunePolicy(value string) (PrunePolicy, error) {
	switch PrunePolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PruneCovered:
		return PruneCovered, nil
	case PruneRemove:
		return PruneRemove, nil
	default:
		return "", fmt.Errorf("unknown prune policy %q (want %q or %q)", value, PruneCovered, PruneRemove)
	}
}

// FileStatus represents what the reduction did to a file.
type FileStatus int

const (
	// Retained indicates no stale coverage was found.
	Retained FileStatus = iota
	// Reduced indicates stale lines were pruned after a blame.
	Reduced
	// Dropped indicates the whole file predates the cutoff.
	Dropped
	// Failed indicates the file could not be processed and was left as loaded.
	Failed
)

func (s FileStatus) String() string {
	switch s {
	case Retained:
		return "retained"
	case Reduced:
		return "reduced"
	case Dropped:
		return "dropped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileOutcome is the per-file record of one reduction.
type FileOutcome struct {
	Package  string
	File     string
	Path     Path
	Revision Revision
	Status   FileStatus
	// Removed is the amount subtracted from the file and its ancestors.
	Removed Counts
	// StaleLines lists the line numbers judged older than the cutoff.
	StaleLines []int
	Error      string
}

// QualifiedName returns "package.File" or just the file name in the default package.
func (o FileOutcome) QualifiedName() string {
	if o.Package == "" {
		return o.File
	}

	return o.Package + "." + o.File
}

// PackageSummary aggregates the outcomes of the files of one package.
type PackageSummary struct {
	Name     string
	Files    int
	Reduced  int
	Dropped  int
	Failed   int
	Removed  Counts
	Coverage Counts
}

// Summary describes a completed reduction run.
type Summary struct {
	Project   string
	Cutoff    Revision
	Workers   int
	Files     int
	Reduced   int
	Dropped   int
	Failed    int
	Removed   Counts
	Before    Counts
	After     Counts
	Packages  []PackageSummary
	Policy    PrunePolicy
	Output    Path
	AuditPath Path
}

// Record folds one outcome into the summary and its package entry.
func (s *Summary) Record(o FileOutcome) {
	s.Files++

	idx := -1
	for i := range s.Packages {
		if s.Packages[i].Name == o.Package {
			idx = i
			break
		}
	}

	if idx < 0 {
		s.Packages = append(s.Packages, PackageSummary{Name: o.Package})
		idx = len(s.Packages) - 1
	}

	p := &s.Packages[idx]
	p.Files++

	switch o.Status {
	case Reduced:
		s.Reduced++
		p.Reduced++
	case Dropped:
		s.Dropped++
		p.Dropped++
	case Failed:
		s.Failed++
		p.Failed++
	case Retained:
	}

	s.Removed.Add(o.Removed)
	p.Removed.Add(o.Removed)
}
