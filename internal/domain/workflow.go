package domain

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"covreduct.dev/pkg/covreduct/internal/adapter"
	"covreduct.dev/pkg/covreduct/internal/controller"
	m "covreduct.dev/pkg/covreduct/internal/model"
	"covreduct.dev/pkg/covreduct/pkg"
)

// Defaults of a reduction run.
const (
	DefaultThreads  = 15
	DefaultWorkDir  = "target/clover-reductor"
	BackupFileName  = "clover-original.xml"
	ReducedFileName = "clover-reduced.xml"
	AuditFileName   = "reduction-audit.yaml"
)

// ReduceArgs contains the arguments of a reduction run.
type ReduceArgs struct {
	Report      m.Path
	Output      m.Path
	WorkDir     m.Path
	WorkingCopy m.Path
	Cutoff      string
	Threads     int
	Policy      m.PrunePolicy
	Username    string
	NoBackup    bool
}

// Workflow defines the reduction entry point used by the CLI.
type Workflow interface {
	Reduce(ctx context.Context, args ReduceArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.AuditStore
	adapter.SourceFSAdapter
	controller.UI

	vcsAdapter adapter.VCSAdapter
	scheduler  Scheduler
	now        func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	auditStore adapter.AuditStore,
	vcsAdapter adapter.VCSAdapter,
	ui controller.UI,
	scheduler Scheduler,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		AuditStore:      auditStore,
		UI:              ui,
		vcsAdapter:      vcsAdapter,
		scheduler:       scheduler,
		now:             time.Now,
	}
}

// Reduce loads the report, prunes coverage older than the cutoff and writes the
// reduced report and its audit. Per-file failures are reported but do not fail the run.
func (w *workflow) Reduce(ctx context.Context, args ReduceArgs) error {
	started := w.now()

	defer func() {
		w.DisplayElapsed(ctx, w.now().Sub(started))
	}()

	if err := w.Start(ctx); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	args = withDefaults(args)

	w.DisplayRunInfo(ctx, controller.RunInfo{
		Report:      args.Report,
		Output:      args.Output,
		WorkingCopy: args.WorkingCopy,
		Cutoff:      args.Cutoff,
		Policy:      args.Policy,
		Threads:     args.Threads,
	})

	coverage, err := w.LoadReport(ctx, args.Report)
	if err != nil {
		return fmt.Errorf("load report %s: %w", args.Report, err)
	}

	if err := w.backup(ctx, args); err != nil {
		return err
	}

	project := coverage.Project

	if len(project.Packages) == 0 {
		w.DisplayNotice(ctx, "No packages found.")
		return w.saveReport(ctx, args.Output, coverage)
	}

	aggregates := NewAggregates(project)

	files := aggregates.FileCount()
	if files == 0 {
		w.DisplayNotice(ctx, "No files found.")
		return w.saveReport(ctx, args.Output, coverage)
	}

	vcs := w.vcsAdapter
	if args.Username != "" {
		vcs = vcs.WithUsername(args.Username)
	}

	cutoff, err := NewRevisionResolver(w.SourceFSAdapter, vcs).Resolve(ctx, args.WorkingCopy, args.Cutoff)
	if err != nil {
		return fmt.Errorf("resolve cutoff %q in %s: %w", args.Cutoff, args.WorkingCopy, err)
	}

	w.DisplayCutoff(ctx, args.Cutoff, cutoff)

	before := aggregates.Totals()

	outcomes, stats, err := w.reduceAll(ctx, aggregates, NewReducer(w.SourceFSAdapter, vcs, args.Policy), cutoff, args)
	if err != nil {
		return err
	}

	if args.Policy == m.PruneRemove {
		pruneStructure(project, outcomes)
	}

	if err := VerifyAggregates(project); err != nil {
		slog.Warn("Aggregates inconsistent after reduction", "error", err)
	}

	if err := w.saveReport(ctx, args.Output, coverage); err != nil {
		return err
	}

	auditPath := w.JoinPath(ctx, string(args.WorkDir), AuditFileName)

	summary := buildSummary(project, outcomes)
	summary.Cutoff = cutoff
	summary.Workers = stats.Workers
	summary.Policy = args.Policy
	summary.Before = before
	summary.After = project.Metrics.Counts
	summary.Output = args.Output
	summary.AuditPath = auditPath

	if err := w.SaveAudit(ctx, auditPath, summary, outcomes); err != nil {
		return fmt.Errorf("save audit: %w", err)
	}

	w.DisplaySummary(ctx, summary)

	slog.Info("Reduction finished", "files", summary.Files, "reduced", summary.Reduced,
		"dropped", summary.Dropped, "failed", summary.Failed, "removed_covered", summary.Removed.CoveredElements)

	return nil
}

// reduceAll runs the reducer over every file and returns the outcomes in report order.
func (w *workflow) reduceAll(ctx context.Context, aggregates *Aggregates, reducer Reducer, cutoff m.Revision, args ReduceArgs) ([]m.FileOutcome, ScheduleStats, error) {
	journal, err := pkg.NewJournal[m.FileOutcome](string(args.WorkDir))
	if err != nil {
		return nil, ScheduleStats{}, fmt.Errorf("create outcome journal: %w", err)
	}

	defer func() {
		if err := journal.Remove(); err != nil {
			slog.Error("Failed to remove outcome journal", "path", journal.Path(), "error", err)
		}
	}()

	files := aggregates.FileCount()
	w.DisplayConcurrencyInfo(ctx, min(args.Threads, files), files)

	stats, err := w.scheduler.Run(ctx, aggregates.Units(), args.Threads, func(ctx context.Context, unit *PackageUnit, file *m.File) error {
		outcome, reduceErr := reducer.ReduceFile(ctx, unit, file, cutoff)

		if err := journal.Append(outcome); err != nil {
			slog.Error("Failed to record outcome", "file", outcome.QualifiedName(), "error", err)
		}

		w.DisplayFileOutcome(ctx, outcome)

		return reduceErr
	})
	if err != nil {
		return nil, stats, fmt.Errorf("reduce files: %w", err)
	}

	outcomes := make([]m.FileOutcome, 0, journal.Len())

	if err := journal.Range(func(_ uint64, outcome m.FileOutcome) error {
		outcomes = append(outcomes, outcome)
		return nil
	}); err != nil {
		return nil, stats, fmt.Errorf("read outcome journal: %w", err)
	}

	sortOutcomes(aggregates.project, outcomes)

	return outcomes, stats, nil
}

func (w *workflow) backup(ctx context.Context, args ReduceArgs) error {
	if args.NoBackup {
		return nil
	}

	dst := w.JoinPath(ctx, string(args.WorkDir), BackupFileName)

	if err := w.CopyFile(ctx, args.Report, dst); err != nil {
		slog.Error("Failed to back up report", "src", args.Report, "dst", dst, "error", err)
		return fmt.Errorf("back up report to %s: %w", dst, err)
	}

	slog.Debug("Backed up report", "path", dst)

	return nil
}

func (w *workflow) saveReport(ctx context.Context, path m.Path, coverage *m.Coverage) error {
	if err := w.SaveReport(ctx, path, coverage); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}

	return nil
}

func withDefaults(args ReduceArgs) ReduceArgs {
	if args.Threads < 1 {
		args.Threads = DefaultThreads
	}

	if args.Policy == "" {
		args.Policy = m.PruneCovered
	}

	if args.WorkDir == "" {
		args.WorkDir = DefaultWorkDir
	}

	if args.Output == "" {
		args.Output = m.Path(filepath.Join(filepath.Dir(string(args.Report)), ReducedFileName))
	}

	return args
}

// sortOutcomes restores report order, which the concurrent workers do not keep.
func sortOutcomes(project *m.Project, outcomes []m.FileOutcome) {
	order := map[string]int{}

	for _, pkg := range project.Packages {
		for _, file := range pkg.Files {
			order[outcomeKey(pkg.Name, file.Name, file.Path)] = len(order)
		}
	}

	slices.SortStableFunc(outcomes, func(a, b m.FileOutcome) int {
		return cmp.Compare(order[outcomeKey(a.Package, a.File, a.Path)], order[outcomeKey(b.Package, b.File, b.Path)])
	})
}

func outcomeKey(pkg, file string, path m.Path) string {
	return pkg + "\x00" + file + "\x00" + string(path)
}

// pruneStructure deletes stale lines and stale files from the tree. It runs
// after all workers have joined, so no locks are needed. Packages emptied by
// the pass are removed too.
func pruneStructure(project *m.Project, outcomes []m.FileOutcome) {
	byKey := make(map[string]m.FileOutcome, len(outcomes))
	for _, o := range outcomes {
		byKey[outcomeKey(o.Package, o.File, o.Path)] = o
	}

	packages := project.Packages[:0]

	for _, pkg := range project.Packages {
		hadFiles := len(pkg.Files) > 0
		files := pkg.Files[:0]

		for _, file := range pkg.Files {
			o, ok := byKey[outcomeKey(pkg.Name, file.Name, file.Path)]

			switch {
			case ok && o.Status == m.Dropped:
				slog.Debug("Removed stale file", "file", pkg.QualifiedName(file))
				continue
			case ok && len(o.StaleLines) > 0:
				file.Lines = removeLines(file.Lines, o.StaleLines)
			}

			files = append(files, file)
		}

		pkg.Files = files

		if hadFiles && len(files) == 0 && pkg.Metrics.IsZero() {
			slog.Debug("Removed empty package", "package", pkg.Name)
			continue
		}

		packages = append(packages, pkg)
	}

	project.Packages = packages
}

func removeLines(lines []m.Line, stale []int) []m.Line {
	drop := make(map[int]struct{}, len(stale))
	for _, n := range stale {
		drop[n] = struct{}{}
	}

	kept := lines[:0]

	for _, line := range lines {
		if _, ok := drop[line.Num]; ok {
			continue
		}

		kept = append(kept, line)
	}

	return kept
}

func buildSummary(project *m.Project, outcomes []m.FileOutcome) m.Summary {
	summary := m.Summary{Project: project.Name}

	for _, o := range outcomes {
		summary.Record(o)
	}

	coverage := make(map[string]m.Counts, len(project.Packages))
	for _, pkg := range project.Packages {
		coverage[pkg.Name] = pkg.Metrics.Counts
	}

	for i := range summary.Packages {
		summary.Packages[i].Coverage = coverage[summary.Packages[i].Name]
	}

	return summary
}
