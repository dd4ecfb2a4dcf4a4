package domain

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"covreduct.dev/pkg/covreduct/internal/adapter"
	adaptermocks "covreduct.dev/pkg/covreduct/internal/adapter/mocks"
	m "covreduct.dev/pkg/covreduct/internal/model"
)

// reduceOne reduces the single file of a one-package project.
func reduceOne(t *testing.T, vcs adapter.VCSAdapter, policy m.PrunePolicy, file *m.File, cutoff m.Revision) (*m.Project, m.FileOutcome, error) {
	t.Helper()

	project := newProject("demo", newPackage("com.example", file))
	unit := NewAggregates(project).Units()[0]

	outcome, err := NewReducer(adapter.NewLocalSourceFSAdapter(), vcs, policy).ReduceFile(context.Background(), unit, file, cutoff)

	return project, outcome, err
}

func TestReducer_PerLinePruning(t *testing.T) {
	dir := t.TempDir()
	path := m.Path(touch(t, dir, "Foo.java"))

	tests := []struct {
		name    string
		policy  m.PrunePolicy
		removed m.Counts
		after   m.Counts
	}{
		{
			name:    "covered policy keeps totals",
			policy:  m.PruneCovered,
			removed: m.Counts{CoveredStatements: 2, CoveredElements: 2},
			after:   m.Counts{Statements: 4, CoveredStatements: 2, Elements: 4, CoveredElements: 2},
		},
		{
			name:    "remove policy drops totals",
			policy:  m.PruneRemove,
			removed: m.Counts{Statements: 2, CoveredStatements: 2, Elements: 2, CoveredElements: 2},
			after:   m.Counts{Statements: 2, CoveredStatements: 2, Elements: 2, CoveredElements: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vcs := adaptermocks.NewMockVCSAdapter(t)
			vcs.EXPECT().Info(mock.Anything, path).Return(map[string]string{"Revision": "30", "Last Changed Rev": "20"}, nil)
			vcs.EXPECT().Blame(mock.Anything, path).Return([]m.Revision{5, 12, 5, 20}, nil)

			file := newFile("Foo.java", string(path), stmt(1, 1), stmt(2, 1), stmt(3, 1), stmt(4, 1))

			project, outcome, err := reduceOne(t, vcs, tt.policy, file, 10)
			require.NoError(t, err)

			assert.Equal(t, m.Reduced, outcome.Status)
			assert.Equal(t, m.Revision(20), outcome.Revision)
			assert.Equal(t, []int{1, 3}, outcome.StaleLines)
			assert.Equal(t, tt.removed, outcome.Removed)
			assert.Equal(t, tt.after, file.Metrics.Counts)
			assert.Len(t, file.Lines, 4, "lines are never removed by a worker")
			require.NoError(t, VerifyAggregates(project))
		})
	}
}

func TestReducer_ConditionalCapping(t *testing.T) {
	path := m.Path(touch(t, t.TempDir(), "Branch.java"))

	vcs := adaptermocks.NewMockVCSAdapter(t)
	vcs.EXPECT().Info(mock.Anything, path).Return(map[string]string{"Last Changed Rev": "50"}, nil)
	vcs.EXPECT().Blame(mock.Anything, path).Return([]m.Revision{3}, nil)

	file := newFile("Branch.java", string(path), cond(1, 3, 0))
	require.Equal(t, m.Counts{Conditionals: 2, CoveredConditionals: 1, Elements: 2, CoveredElements: 1}, file.Metrics.Counts)

	project, outcome, err := reduceOne(t, vcs, m.PruneCovered, file, 10)
	require.NoError(t, err)

	assert.Equal(t, m.Counts{CoveredConditionals: 1, CoveredElements: 1}, outcome.Removed)
	assert.Equal(t, m.Counts{Conditionals: 2, Elements: 2}, file.Metrics.Counts)
	require.NoError(t, VerifyAggregates(project))
}

func TestReducer_WholeFileWithoutBlame(t *testing.T) {
	path := m.Path(touch(t, t.TempDir(), "Old.java"))

	for _, policy := range []m.PrunePolicy{m.PruneCovered, m.PruneRemove} {
		t.Run(string(policy), func(t *testing.T) {
			vcs := adaptermocks.NewMockVCSAdapter(t)
			vcs.EXPECT().Info(mock.Anything, path).Return(map[string]string{"Revision": "100", "Last Changed Rev": "7"}, nil)

			file := newFile("Old.java", string(path), stmt(1, 2), cond(2, 1, 1), method(3, 1))

			project, outcome, err := reduceOne(t, vcs, policy, file, 10)
			require.NoError(t, err)

			vcs.AssertNotCalled(t, "Blame", mock.Anything, mock.Anything)

			assert.Equal(t, m.Dropped, outcome.Status)
			assert.Equal(t, m.Revision(7), outcome.Revision)
			assert.Empty(t, outcome.StaleLines)
			assert.Equal(t, 0, file.Metrics.CoveredElements)

			if policy == m.PruneRemove {
				assert.True(t, file.Metrics.IsZero())
			} else {
				assert.Equal(t, 4, file.Metrics.Elements)
			}

			require.NoError(t, VerifyAggregates(project))
		})
	}
}

func TestReducer_FallsBackToRevision(t *testing.T) {
	path := m.Path(touch(t, t.TempDir(), "Foo.java"))

	vcs := adaptermocks.NewMockVCSAdapter(t)
	vcs.EXPECT().Info(mock.Anything, path).Return(map[string]string{"Revision": "4"}, nil)

	file := newFile("Foo.java", string(path), stmt(1, 1))

	_, outcome, err := reduceOne(t, vcs, m.PruneCovered, file, 10)
	require.NoError(t, err)
	assert.Equal(t, m.Dropped, outcome.Status)
	assert.Equal(t, m.Revision(4), outcome.Revision)
}

func TestReducer_CutoffRevisionIsNotStale(t *testing.T) {
	path := m.Path(touch(t, t.TempDir(), "Foo.java"))

	vcs := adaptermocks.NewMockVCSAdapter(t)
	vcs.EXPECT().Info(mock.Anything, path).Return(map[string]string{"Last Changed Rev": "10"}, nil)
	vcs.EXPECT().Blame(mock.Anything, path).Return([]m.Revision{10, 9}, nil)

	file := newFile("Foo.java", string(path), stmt(1, 1), stmt(2, 1))

	_, outcome, err := reduceOne(t, vcs, m.PruneCovered, file, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, outcome.StaleLines)
	assert.Equal(t, 1, outcome.Removed.CoveredElements)
}

func TestReducer_ZeroHitStaleLinesAreRetained(t *testing.T) {
	path := m.Path(touch(t, t.TempDir(), "Foo.java"))

	vcs := adaptermocks.NewMockVCSAdapter(t)
	vcs.EXPECT().Info(mock.Anything, path).Return(map[string]string{"Last Changed Rev": "50"}, nil)
	vcs.EXPECT().Blame(mock.Anything, path).Return([]m.Revision{1, 60, 1}, nil)

	file := newFile("Foo.java", string(path), stmt(1, 0), stmt(2, 5), cond(3, 0, 0))
	before := file.Metrics.Counts

	project, outcome, err := reduceOne(t, vcs, m.PruneCovered, file, 10)
	require.NoError(t, err)

	assert.Equal(t, m.Retained, outcome.Status)
	assert.Equal(t, []int{1, 3}, outcome.StaleLines)
	assert.True(t, outcome.Removed.IsZero())
	assert.Equal(t, before, file.Metrics.Counts)
	assert.Equal(t, before, project.Metrics.Counts)
}

func TestReducer_Idempotent(t *testing.T) {
	path := m.Path(touch(t, t.TempDir(), "Foo.java"))

	vcs := adaptermocks.NewMockVCSAdapter(t)
	vcs.EXPECT().Info(mock.Anything, path).Return(map[string]string{"Last Changed Rev": "50"}, nil)
	vcs.EXPECT().Blame(mock.Anything, path).Return([]m.Revision{1, 60, 1, 60}, nil)

	file := newFile("Foo.java", string(path), stmt(1, 4), cond(2, 1, 1), cond(3, 2, 0), method(4, 1))
	project := newProject("demo", newPackage("p", file))
	unit := NewAggregates(project).Units()[0]
	reducer := NewReducer(adapter.NewLocalSourceFSAdapter(), vcs, m.PruneCovered)

	first, err := reducer.ReduceFile(context.Background(), unit, file, 10)
	require.NoError(t, err)
	assert.Equal(t, m.Counts{CoveredStatements: 1, CoveredConditionals: 1, CoveredElements: 2}, first.Removed)

	afterFirst := project.Metrics.Counts

	second, err := reducer.ReduceFile(context.Background(), unit, file, 10)
	require.NoError(t, err)
	assert.True(t, second.Removed.IsZero())
	assert.Equal(t, afterFirst, project.Metrics.Counts)
	require.NoError(t, VerifyAggregates(project))
}

func TestReducer_Failures(t *testing.T) {
	dir := t.TempDir()
	present := m.Path(touch(t, dir, "Foo.java"))
	missing := m.Path(filepath.Join(dir, "Gone.java"))

	t.Run("missing source file", func(t *testing.T) {
		vcs := adaptermocks.NewMockVCSAdapter(t)
		file := newFile("Gone.java", string(missing), stmt(1, 1))
		before := file.Metrics.Counts

		project, outcome, err := reduceOne(t, vcs, m.PruneCovered, file, 10)

		require.ErrorIs(t, err, ErrMissingSourceFile)
		vcs.AssertNotCalled(t, "Info", mock.Anything, mock.Anything)
		assert.Equal(t, m.Failed, outcome.Status)
		assert.NotEmpty(t, outcome.Error)
		assert.Equal(t, before, file.Metrics.Counts)
		assert.Equal(t, before, project.Metrics.Counts)
	})

	t.Run("file without path", func(t *testing.T) {
		vcs := adaptermocks.NewMockVCSAdapter(t)
		_, _, err := reduceOne(t, vcs, m.PruneCovered, newFile("NoPath.java", "", stmt(1, 1)), 10)
		require.ErrorIs(t, err, ErrMissingSourceFile)
	})

	t.Run("info failure", func(t *testing.T) {
		vcs := adaptermocks.NewMockVCSAdapter(t)
		vcs.EXPECT().Info(mock.Anything, present).Return(nil, &adapter.CommandError{Name: "svn", ExitCode: 1})

		_, outcome, err := reduceOne(t, vcs, m.PruneCovered, newFile("Foo.java", string(present), stmt(1, 1)), 10)
		require.ErrorIs(t, err, adapter.ErrVCSCommandFailed)
		assert.Equal(t, m.Failed, outcome.Status)
	})

	t.Run("unparsable info", func(t *testing.T) {
		vcs := adaptermocks.NewMockVCSAdapter(t)
		vcs.EXPECT().Info(mock.Anything, present).Return(map[string]string{"Last Changed Rev": "abc"}, nil)

		_, _, err := reduceOne(t, vcs, m.PruneCovered, newFile("Foo.java", string(present), stmt(1, 1)), 10)
		require.ErrorIs(t, err, adapter.ErrVCSCommandFailed)
	})

	t.Run("blame parse error", func(t *testing.T) {
		vcs := adaptermocks.NewMockVCSAdapter(t)
		vcs.EXPECT().Info(mock.Anything, present).Return(map[string]string{"Last Changed Rev": "50"}, nil)
		vcs.EXPECT().Blame(mock.Anything, present).Return(nil, &adapter.ParseError{Op: "blame", Line: "x", Err: errors.New("bad")})

		file := newFile("Foo.java", string(present), stmt(1, 1))
		before := file.Metrics.Counts

		_, outcome, err := reduceOne(t, vcs, m.PruneCovered, file, 10)
		require.ErrorIs(t, err, adapter.ErrBlameParse)
		assert.Equal(t, m.Failed, outcome.Status)
		assert.Equal(t, before, file.Metrics.Counts)
	})

	t.Run("blame shorter than file", func(t *testing.T) {
		vcs := adaptermocks.NewMockVCSAdapter(t)
		vcs.EXPECT().Info(mock.Anything, present).Return(map[string]string{"Last Changed Rev": "50"}, nil)
		vcs.EXPECT().Blame(mock.Anything, present).Return([]m.Revision{1, 1}, nil)

		file := newFile("Foo.java", string(present), stmt(1, 1), stmt(3, 1))
		before := file.Metrics.Counts

		project, outcome, err := reduceOne(t, vcs, m.PruneCovered, file, 10)
		require.ErrorIs(t, err, ErrLineOutOfRange)
		assert.Equal(t, m.Failed, outcome.Status)
		assert.Empty(t, outcome.StaleLines)
		assert.Equal(t, before, file.Metrics.Counts)
		assert.Equal(t, before, project.Metrics.Counts)
	})
}
