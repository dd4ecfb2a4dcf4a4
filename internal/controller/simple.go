package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

// SimpleUI implements UI by printing lines to the command's output.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex

	ok   *color.Color
	warn *color.Color
	fail *color.Color
	dim  *color.Color
}

var _ UI = (*SimpleUI)(nil)

// NewSimpleUI creates a new SimpleUI. Colors are only used when the command
// writes to a terminal.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	s := &SimpleUI{
		cmd:  cmd,
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
	}

	s.setColor(IsTTY(cmd.OutOrStdout()))

	return s
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

func (s *SimpleUI) setColor(enabled bool) {
	for _, c := range []*color.Color{s.ok, s.warn, s.fail, s.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayRunInfo prints the inputs of the run.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Reducing %s (working copy %s)\n", info.Report, info.WorkingCopy)
	s.printf("Cutoff %s, policy %s, %d thread(s), output %s\n", info.Cutoff, info.Policy, info.Threads, info.Output)
}

// DisplayCutoff prints the resolved cutoff revision.
func (s *SimpleUI) DisplayCutoff(ctx context.Context, cutoff string, revision m.Revision) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Cutoff %s resolved to r%d\n", cutoff, revision)
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, workers int, files int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Reducing %s file(s) with %d worker(s)\n", humanize.Comma(int64(files)), workers)
}

// DisplayNotice prints a single informational line.
func (s *SimpleUI) DisplayNotice(ctx context.Context, message string) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s\n", message)
}

// DisplayFileOutcome prints one line per file that lost coverage or failed.
func (s *SimpleUI) DisplayFileOutcome(ctx context.Context, outcome m.FileOutcome) {
	if ctx.Err() != nil {
		return
	}

	switch outcome.Status {
	case m.Failed:
		s.printf("%s %s: %s\n", s.fail.Sprint("FAILED"), outcome.QualifiedName(), outcome.Error)
	case m.Reduced, m.Dropped:
		s.printf("%s Removed %d elements (%d covered) from %s @ r%d\n",
			s.statusLabel(outcome.Status),
			outcome.Removed.Elements,
			outcome.Removed.CoveredElements,
			outcome.QualifiedName(),
			outcome.Revision,
		)
	case m.Retained:
	}
}

func (s *SimpleUI) statusLabel(status m.FileStatus) string {
	label := fmt.Sprintf("%-7s", status.String())

	switch status {
	case m.Reduced:
		return s.ok.Sprint(label)
	case m.Dropped:
		return s.warn.Sprint(label)
	case m.Failed:
		return s.fail.Sprint(label)
	default:
		return s.dim.Sprint(label)
	}
}

// DisplaySummary prints the per-package table and the totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(summary))
	s.printf("Coverage %.2f%% -> %.2f%% (%s of %s covered elements removed)\n",
		summary.Before.CoveredPercent(),
		summary.After.CoveredPercent(),
		humanize.Comma(int64(summary.Removed.CoveredElements)),
		humanize.Comma(int64(summary.Before.CoveredElements)),
	)

	if summary.Failed > 0 {
		s.printf("%s %d file(s) could not be reduced and were left as loaded\n", s.fail.Sprint("WARNING"), summary.Failed)
	}

	if summary.Output != "" {
		s.printf("Reduced report written to %s\n", summary.Output)
	}

	if summary.AuditPath != "" {
		s.printf("Audit written to %s\n", summary.AuditPath)
	}
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Package", "Files", "Reduced", "Dropped", "Failed", "Removed", "Coverage"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, p := range summary.Packages {
		name := p.Name
		if name == "" {
			name = "(default)"
		}

		table.Append([]string{
			name,
			humanize.Comma(int64(p.Files)),
			humanize.Comma(int64(p.Reduced)),
			humanize.Comma(int64(p.Dropped)),
			humanize.Comma(int64(p.Failed)),
			humanize.Comma(int64(p.Removed.CoveredElements)),
			fmt.Sprintf("%.2f%%", p.Coverage.CoveredPercent()),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total r%d", summary.Cutoff),
		humanize.Comma(int64(summary.Files)),
		humanize.Comma(int64(summary.Reduced)),
		humanize.Comma(int64(summary.Dropped)),
		humanize.Comma(int64(summary.Failed)),
		humanize.Comma(int64(summary.Removed.CoveredElements)),
		fmt.Sprintf("%.2f%%", summary.After.CoveredPercent()),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayElapsed prints the total run time. It is printed even when ctx is done.
func (s *SimpleUI) DisplayElapsed(_ context.Context, elapsed time.Duration) {
	s.printf("Executed in %s\n", elapsed.Round(time.Millisecond))
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
