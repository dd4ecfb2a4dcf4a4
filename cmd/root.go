// Package cmd provides the root command and CLI setup for covreduct.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"covreduct.dev/pkg/covreduct/internal/adapter"
	"covreduct.dev/pkg/covreduct/internal/controller"
	"covreduct.dev/pkg/covreduct/internal/domain"
)

var commandRunner adapter.CommandRunner
var vcsAdapter adapter.VCSAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var auditStore adapter.AuditStore
var scheduler domain.Scheduler
var workflow domain.Workflow
var ui controller.UI

// logFileFlag and verboseFlag are root-level flags shared by every command.
var logFileFlag string
var verboseFlag bool

func init() {
	wireDependencies(rootCmd)
}

// wireDependencies builds the production object graph. The VCS command and
// timeout come from config and env only.
func wireDependencies(cmd *cobra.Command) {
	ui = controller.NewSimpleUI(cmd)
	commandRunner = adapter.NewLocalCommandRunner(vcsTimeout())
	vcsAdapter = adapter.NewSubversionAdapter(commandRunner, stringSetting(vcsCommandKey))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewXMLReportStore()
	auditStore = adapter.NewYAMLAuditStore()
	scheduler = domain.NewScheduler()
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		auditStore,
		vcsAdapter,
		ui,
		scheduler,
	)
}

const rootLongDescription = `covreduct removes stale coverage from a Clover XML report.

Coverage recorded for source lines that were last changed before a cutoff
date is subtracted from the report, so only recently touched code keeps its
covered status. Line history comes from the Subversion working copy the report
was produced from.`

const runLongDescription = `Reduce a Clover report against a cutoff date.

The cutoff is resolved to a repository revision once; every file of the report
is then compared with its history and the reduced report is written to the
output path. Files that cannot be processed are reported and left as loaded.

Example:
  covreduct run -r target/site/clover/clover.xml -w . -c 2013-01-01`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "covreduct",
		Short: "Clover coverage reduction tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "path of the rotating log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the running reduction.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
