package domain

import (
	"fmt"
	"sync"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

// Aggregates guards the project-level metrics. Its lock is only ever taken while
// holding the lock of a PackageUnit, never the other way around.
type Aggregates struct {
	mu      sync.Mutex
	project *m.Project
	units   []*PackageUnit
}

// PackageUnit is the lock handle of one package: it serializes updates of the
// package metrics and hands out the package's files to workers one at a time.
type PackageUnit struct {
	mu         sync.Mutex
	pkg        *m.Package
	pending    []*m.File
	aggregates *Aggregates
}

// NewAggregates builds one PackageUnit per package that has files, in report order.
func NewAggregates(project *m.Project) *Aggregates {
	a := &Aggregates{project: project}

	for _, pkg := range project.Packages {
		if len(pkg.Files) == 0 {
			continue
		}

		pending := make([]*m.File, len(pkg.Files))
		copy(pending, pkg.Files)

		a.units = append(a.units, &PackageUnit{pkg: pkg, pending: pending, aggregates: a})
	}

	return a
}

// Units returns the package units with pending work.
func (a *Aggregates) Units() []*PackageUnit {
	return a.units
}

// FileCount returns the number of files across all units.
func (a *Aggregates) FileCount() int {
	total := 0
	for _, u := range a.units {
		total += len(u.pkg.Files)
	}

	return total
}

// Totals returns a snapshot of the project metrics.
func (a *Aggregates) Totals() m.Counts {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.project.Metrics.Counts
}

func (a *Aggregates) subtract(delta m.Counts) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.project.Metrics.Sub(delta)
}

// Package returns the package guarded by the unit.
func (u *PackageUnit) Package() *m.Package {
	return u.pkg
}

// Apply replaces the metrics of file with target and subtracts the difference
// from the package and the project. It returns the subtracted delta.
func (u *PackageUnit) Apply(file *m.File, target m.Counts) m.Counts {
	u.mu.Lock()
	defer u.mu.Unlock()

	delta := file.Metrics.Minus(target)
	if delta.IsZero() {
		return delta
	}

	file.Metrics.Counts = target
	u.pkg.Metrics.Sub(delta)
	u.aggregates.subtract(delta)

	return delta
}

// Metrics returns a snapshot of the package metrics.
func (u *PackageUnit) Metrics() m.Counts {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.pkg.Metrics.Counts
}

// next pops the first pending file. The caller must hold u.mu.
func (u *PackageUnit) next() (*m.File, bool) {
	if len(u.pending) == 0 {
		return nil, false
	}

	file := u.pending[0]
	u.pending[0] = nil
	u.pending = u.pending[1:]

	return file, true
}

// VerifyAggregates checks that every package equals the sum of its files, the
// project equals the sum of its packages and no node covers more than its totals.
func VerifyAggregates(project *m.Project) error {
	var projectSum m.Counts

	for _, pkg := range project.Packages {
		var pkgSum m.Counts

		for _, file := range pkg.Files {
			if !file.Metrics.CoveredWithinTotals() {
				return fmt.Errorf("file %s: covered exceeds totals %+v: %w", pkg.QualifiedName(file), file.Metrics.Counts, ErrAggregateMismatch)
			}

			pkgSum.Add(file.Metrics.Counts)
		}

		if pkgSum != pkg.Metrics.Counts {
			return fmt.Errorf("package %q: have %+v, files sum to %+v: %w", pkg.Name, pkg.Metrics.Counts, pkgSum, ErrAggregateMismatch)
		}

		if !pkg.Metrics.CoveredWithinTotals() {
			return fmt.Errorf("package %q: covered exceeds totals: %w", pkg.Name, ErrAggregateMismatch)
		}

		projectSum.Add(pkg.Metrics.Counts)
	}

	if projectSum != project.Metrics.Counts {
		return fmt.Errorf("project %q: have %+v, packages sum to %+v: %w", project.Name, project.Metrics.Counts, projectSum, ErrAggregateMismatch)
	}

	return nil
}
