package cmd

import (
	"github.com/spf13/cobra"

	"covreduct.dev/pkg/covreduct/internal/domain"
	m "covreduct.dev/pkg/covreduct/internal/model"
)

var runReportFlag string
var runWorkingCopyFlag string
var runCutoffFlag string
var runThreadsFlag int
var runOutputFlag string
var runWorkDirFlag string
var runUsernameFlag string
var runPolicyFlag string
var runNoBackupFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "run",
		Short:        "Reduce a Clover report against a cutoff date",
		Long:         runLongDescription,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := reduceArgsFromConfig()
			if err != nil {
				return err
			}

			return workflow.Reduce(cmd.Context(), args)
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVarP(&runReportFlag, reportFlagName, "r", "", "Clover XML report to reduce")
	bindFlagToConfig(flags.Lookup(reportFlagName), reportKey)

	flags.StringVarP(&runWorkingCopyFlag, workingCopyFlagName, "w", "", "Subversion working copy the report was produced from")
	bindFlagToConfig(flags.Lookup(workingCopyFlagName), workingCopyKey)

	flags.StringVarP(&runCutoffFlag, cutoffFlagName, "c", "", "cutoff date, e.g. 2013-01-01 or {2013-01-01 12:00}")
	bindFlagToConfig(flags.Lookup(cutoffFlagName), cutoffKey)

	flags.IntVarP(&runThreadsFlag, threadsFlagName, "t", domain.DefaultThreads, "number of files reduced concurrently")
	bindFlagToConfig(flags.Lookup(threadsFlagName), threadsKey)

	flags.StringVarP(&runOutputFlag, outputFlagName, "o", "", "reduced report path (default <report dir>/"+domain.ReducedFileName+")")
	bindFlagToConfig(flags.Lookup(outputFlagName), outputKey)

	flags.StringVar(&runWorkDirFlag, workDirFlagName, domain.DefaultWorkDir, "directory for the report backup and the reduction audit")
	bindFlagToConfig(flags.Lookup(workDirFlagName), workDirKey)

	flags.StringVar(&runUsernameFlag, usernameFlagName, "", "user name passed to every svn invocation")
	bindFlagToConfig(flags.Lookup(usernameFlagName), vcsUsernameKey)

	flags.StringVar(&runPolicyFlag, policyFlagName, string(m.PruneCovered), "stale coverage policy: covered (keep totals) or remove (drop lines)")
	bindFlagToConfig(flags.Lookup(policyFlagName), policyKey)

	flags.BoolVar(&runNoBackupFlag, noBackupFlagName, defaultNoBackup, "do not copy the input report into the work directory")
	bindFlagToConfig(flags.Lookup(noBackupFlagName), noBackupKey)
}
