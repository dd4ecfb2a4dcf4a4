package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"covreduct.dev/pkg/covreduct/internal/domain"
	m "covreduct.dev/pkg/covreduct/internal/model"
)

// ErrInvalidConfig is returned when the run configuration is incomplete or malformed.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "covreduct"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	reportFlagName      = "report"
	workingCopyFlagName = "working-copy"
	cutoffFlagName      = "cutoff"
	threadsFlagName     = "threads"
	outputFlagName      = "output"
	workDirFlagName     = "work-dir"
	usernameFlagName    = "username"
	policyFlagName      = "policy"
	noBackupFlagName    = "no-backup"
	logFileFlagName     = "log-file"
	verboseFlagName     = "verbose"

	reportKey      = "report"
	workingCopyKey = "working_copy"
	cutoffKey      = "cutoff"
	outputKey      = "output"
	workDirKey     = "work_dir"
	threadsKey     = "run.threads"
	policyKey      = "run.policy"
	noBackupKey    = "run.no_backup"
	vcsCommandKey  = "vcs.command"
	vcsUsernameKey = "vcs.username"
	vcsTimeoutKey  = "vcs.timeout"

	defaultVCSCommand = "svn"
	defaultVCSTimeout = 5 * time.Minute
	defaultNoBackup   = false

	envPrefix = "COVREDUCT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".covreduct.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func setDefaults() {
	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(reportKey, "")
	viper.SetDefault(workingCopyKey, "")
	viper.SetDefault(cutoffKey, "")
	viper.SetDefault(outputKey, "")
	viper.SetDefault(workDirKey, domain.DefaultWorkDir)
	viper.SetDefault(threadsKey, domain.DefaultThreads)
	viper.SetDefault(policyKey, string(m.PruneCovered))
	viper.SetDefault(noBackupKey, defaultNoBackup)
	viper.SetDefault(vcsCommandKey, defaultVCSCommand)
	viper.SetDefault(vcsUsernameKey, "")
	viper.SetDefault(vcsTimeoutKey, int64(defaultVCSTimeout.Seconds()))

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// trimQuotes removes one pair of surrounding double quotes, which some launchers
// leave on property values.
func trimQuotes(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}

	return value
}

// stringSetting reads a string setting with surrounding quotes removed.
func stringSetting(key string) string {
	return trimQuotes(viper.GetString(key))
}

// normalizeCutoff accepts "2013-01-01" as well as "{2013-01-01}".
func normalizeCutoff(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
		value = strings.TrimSpace(value[1 : len(value)-1])
	}

	return value
}

func vcsTimeout() time.Duration {
	seconds := viper.GetInt64(vcsTimeoutKey)
	if seconds <= 0 {
		return defaultVCSTimeout
	}

	return time.Duration(seconds) * time.Second
}

// reduceArgsFromConfig assembles and validates the run arguments from flags,
// environment and config file.
func reduceArgsFromConfig() (domain.ReduceArgs, error) {
	args := domain.ReduceArgs{
		Report:      m.Path(stringSetting(reportKey)),
		Output:      m.Path(stringSetting(outputKey)),
		WorkDir:     m.Path(stringSetting(workDirKey)),
		WorkingCopy: m.Path(stringSetting(workingCopyKey)),
		Cutoff:      normalizeCutoff(stringSetting(cutoffKey)),
		Threads:     viper.GetInt(threadsKey),
		Username:    stringSetting(vcsUsernameKey),
		NoBackup:    viper.GetBool(noBackupKey),
	}

	var missing []string

	if args.Report == "" {
		missing = append(missing, reportFlagName)
	}

	if args.WorkingCopy == "" {
		missing = append(missing, workingCopyFlagName)
	}

	if args.Cutoff == "" {
		missing = append(missing, cutoffFlagName)
	}

	if len(missing) > 0 {
		return domain.ReduceArgs{}, fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	if args.Threads < 1 {
		return domain.ReduceArgs{}, fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidConfig, threadsFlagName, args.Threads)
	}

	policy, err := m.ParsePrunePolicy(stringSetting(policyKey))
	if err != nil {
		return domain.ReduceArgs{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	args.Policy = policy

	return args, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	logPath = trimQuotes(logPath)
	if logPath == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
