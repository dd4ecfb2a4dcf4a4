package domain

import (
	"sync"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

// worklist is the ordered list of package units that still have pending files.
type worklist struct {
	mu    sync.Mutex
	units []*PackageUnit
}

func newWorklist(units []*PackageUnit) *worklist {
	list := make([]*PackageUnit, 0, len(units))

	for _, u := range units {
		u.mu.Lock()
		hasWork := len(u.pending) > 0
		u.mu.Unlock()

		if hasWork {
			list = append(list, u)
		}
	}

	return &worklist{units: list}
}

// claim hands out one file. A unit emptied by the claim leaves the list within
// the same critical section, so no worker ever sees an exhausted unit.
func (w *worklist) claim() (*PackageUnit, *m.File, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for len(w.units) > 0 {
		unit := w.units[0]

		unit.mu.Lock()
		file, ok := unit.next()
		drained := len(unit.pending) == 0
		unit.mu.Unlock()

		if drained {
			w.units[0] = nil
			w.units = w.units[1:]
		}

		if ok {
			return unit, file, true
		}
	}

	return nil, nil, false
}
