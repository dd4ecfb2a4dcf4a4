// Package model defines the coverage tree and the outcome types of a reduction run.
package model

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Revision is a Subversion revision number.
type Revision int64

// OlderThan reports whether r predates the cutoff revision.
func (r Revision) OlderThan(cutoff Revision) bool {
	return r < cutoff
}
