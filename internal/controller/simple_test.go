package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

func newTestUI(t *testing.T) (*SimpleUI, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	return NewSimpleUI(cmd), &out
}

func TestSimpleUI_DisplayFileOutcome(t *testing.T) {
	ctx := context.Background()
	ui, out := newTestUI(t)

	ui.DisplayFileOutcome(ctx, m.FileOutcome{
		Package: "com.example", File: "Foo.java", Revision: 42, Status: m.Reduced,
		Removed: m.Counts{Elements: 3, CoveredElements: 2},
	})
	ui.DisplayFileOutcome(ctx, m.FileOutcome{File: "Bar.java", Status: m.Failed, Error: "blame failed"})
	ui.DisplayFileOutcome(ctx, m.FileOutcome{File: "Quiet.java", Status: m.Retained})

	text := out.String()
	assert.Contains(t, text, "Removed 3 elements (2 covered) from com.example.Foo.java @ r42")
	assert.Contains(t, text, "FAILED Bar.java: blame failed")
	assert.NotContains(t, text, "Quiet.java")
	assert.NotContains(t, text, "\x1b[", "colors are disabled for non-terminal output")
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ctx := context.Background()
	ui, out := newTestUI(t)

	summary := m.Summary{
		Cutoff:  10,
		Files:   3,
		Reduced: 1,
		Dropped: 1,
		Failed:  1,
		Removed: m.Counts{CoveredElements: 1500},
		Before:  m.Counts{Elements: 4000, CoveredElements: 2000},
		After:   m.Counts{Elements: 4000, CoveredElements: 500},
		Packages: []m.PackageSummary{
			{Name: "com.example", Files: 2, Reduced: 1, Dropped: 1, Coverage: m.Counts{Elements: 10, CoveredElements: 5}},
			{Name: "", Files: 1, Failed: 1},
		},
		Output:    "out/clover-reduced.xml",
		AuditPath: "target/reduction-audit.yaml",
	}

	ui.DisplaySummary(ctx, summary)

	text := out.String()
	assert.Contains(t, text, "com.example")
	assert.Contains(t, text, "(default)")
	assert.Contains(t, text, "50.00%")
	assert.Contains(t, text, "Total r10")
	assert.Contains(t, text, "Coverage 50.00% -> 12.50% (1,500 of 2,000 covered elements removed)")
	assert.Contains(t, text, "1 file(s) could not be reduced")
	assert.Contains(t, text, "Reduced report written to out/clover-reduced.xml")
	assert.Contains(t, text, "Audit written to target/reduction-audit.yaml")
}

func TestSimpleUI_RunInfoAndNotices(t *testing.T) {
	ctx := context.Background()
	ui, out := newTestUI(t)

	require.NoError(t, ui.Start(ctx))
	ui.DisplayRunInfo(ctx, RunInfo{Report: "clover.xml", WorkingCopy: "wc", Cutoff: "2013-01-01", Policy: m.PruneCovered, Threads: 15, Output: "reduced.xml"})
	ui.DisplayCutoff(ctx, "2013-01-01", 4711)
	ui.DisplayConcurrencyInfo(ctx, 4, 1200)
	ui.DisplayNotice(ctx, "No files found.")
	ui.DisplayElapsed(ctx, 1500*time.Millisecond)
	ui.Close(ctx)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"Reducing clover.xml (working copy wc)",
		"Cutoff 2013-01-01, policy covered, 15 thread(s), output reduced.xml",
		"Cutoff 2013-01-01 resolved to r4711",
		"Reducing 1,200 file(s) with 4 worker(s)",
		"No files found.",
		"Executed in 1.5s",
	}, lines)
}

func TestSimpleUI_CanceledContextOnlyPrintsElapsed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui, out := newTestUI(t)

	require.ErrorIs(t, ui.Start(ctx), context.Canceled)
	ui.DisplayNotice(ctx, "hidden")
	ui.DisplayElapsed(ctx, time.Second)

	assert.Equal(t, "Executed in 1s\n", out.String())
}
