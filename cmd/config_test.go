package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "covreduct", configBaseName)
	assert.Equal(t, "covreduct.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "run.threads", threadsKey)
	assert.Equal(t, "run.policy", policyKey)
	assert.Equal(t, "working_copy", workingCopyKey)
	assert.Equal(t, "svn", defaultVCSCommand)
	assert.Equal(t, ".covreduct.log", defaultLogFilename)
	assert.Equal(t, "COVREDUCT", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestTrimQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{`"`, `"`},
		{`""`, ""},
		{`"clover.xml"`, "clover.xml"},
		{`  "a b"  `, "a b"},
		{`"half`, `"half`},
		{`plain`, "plain"},
		{`""nested""`, `"nested"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, trimQuotes(tt.in))
		})
	}
}

func TestNormalizeCutoff(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2013-01-01", "2013-01-01"},
		{"{2013-01-01}", "2013-01-01"},
		{" { 2013-01-01 12:00 } ", "2013-01-01 12:00"},
		{"{2013-01-01", "{2013-01-01"},
		{"{}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeCutoff(tt.in))
		})
	}
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.in, slog.LevelWarn))
		})
	}
}

func TestVCSTimeout(t *testing.T) {
	assert.Equal(t, defaultVCSTimeout, vcsTimeout())

	t.Setenv("COVREDUCT_VCS_TIMEOUT", "30")
	assert.Equal(t, 30*time.Second, vcsTimeout())

	t.Setenv("COVREDUCT_VCS_TIMEOUT", "0")
	assert.Equal(t, defaultVCSTimeout, vcsTimeout())
}

func TestConfigureLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "covreduct.log")

	configureLogger(`"`+logPath+`"`, true)
	slog.Debug("Resolved cutoff revision", "revision", 42)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=DEBUG")
	assert.Contains(t, string(data), "revision=42")
	assert.Contains(t, string(data), "source=")
}

func TestConfigureLogger_DefaultLevelSkipsDebug(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "covreduct.log")

	configureLogger(logPath, false)
	slog.Debug("hidden")
	slog.Info("shown")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
