package domain

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "covreduct.dev/pkg/covreduct/internal/adapter/mocks"
	m "covreduct.dev/pkg/covreduct/internal/model"
)

func hits(v int) *int {
	return &v
}

func stmt(num, count int) m.Line {
	return m.Line{Num: num, Type: m.ConstructStatement, Count: hits(count)}
}

func method(num, count int) m.Line {
	return m.Line{Num: num, Type: m.ConstructMethod, Count: hits(count)}
}

func cond(num, trueCount, falseCount int) m.Line {
	return m.Line{Num: num, Type: m.ConstructConditional, TrueCount: hits(trueCount), FalseCount: hits(falseCount)}
}

// newFile builds a file whose metrics are the sum of its lines.
func newFile(name string, path string, lines ...m.Line) *m.File {
	file := &m.File{Name: name, Path: m.Path(path), Lines: lines}
	for _, line := range lines {
		file.Metrics.Add(line.Counts())
	}

	return file
}

func newPackage(name string, files ...*m.File) *m.Package {
	pkg := &m.Package{Name: name, Files: files}
	for _, f := range files {
		pkg.Metrics.Add(f.Metrics.Counts)
	}

	return pkg
}

func newProject(name string, pkgs ...*m.Package) *m.Project {
	project := &m.Project{Name: name, Packages: pkgs}
	for _, p := range pkgs {
		project.Metrics.Add(p.Metrics.Counts)
	}

	return project
}

func xmlAttr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// touch creates an empty source file and returns its path.
func touch(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("// source\n"), 0o600))

	return path
}

// newWorkingCopy creates a directory that looks like a Subversion working copy.
func newWorkingCopy(t *testing.T) string {
	t.Helper()

	wc := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(wc, ".svn"), 0o750))

	return wc
}

// history is a fake repository: the last-changed revision and the per-line blame of every path.
type history struct {
	lastChanged map[m.Path]m.Revision
	blame       map[m.Path][]m.Revision
	failBlame   map[m.Path]error
}

func newHistory() *history {
	return &history{
		lastChanged: map[m.Path]m.Revision{},
		blame:       map[m.Path][]m.Revision{},
		failBlame:   map[m.Path]error{},
	}
}

// expect wires the history into a VCS mock. Every query is optional.
func (h *history) expect(vcs *adaptermocks.MockVCSAdapter) {
	vcs.EXPECT().Info(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, path m.Path) (map[string]string, error) {
		rev, ok := h.lastChanged[path]
		if !ok {
			return nil, fmt.Errorf("info %s: %w", path, os.ErrNotExist)
		}

		return map[string]string{"Revision": "999", "Last Changed Rev": fmt.Sprint(int64(rev))}, nil
	}).Maybe()

	vcs.EXPECT().Blame(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, path m.Path) ([]m.Revision, error) {
		if err, ok := h.failBlame[path]; ok {
			return nil, err
		}

		return h.blame[path], nil
	}).Maybe()
}
