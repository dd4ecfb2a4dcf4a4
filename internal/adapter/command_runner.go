package adapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultCommandTimeout bounds a single external command.
const DefaultCommandTimeout = 5 * time.Minute

// LineConsumer receives one line of command output, without its line terminator.
type LineConsumer func(line string)

// CommandRunner abstracts external command execution so version-control queries
// can be tested without the real binaries.
type CommandRunner interface {
	// Run executes name with args in dir and streams stdout and stderr line by line
	// into the given consumers. Either consumer may be nil.
	Run(ctx context.Context, dir string, name string, args []string, stdout, stderr LineConsumer) error
}

// LocalCommandRunner provides a concrete implementation using os/exec.
type LocalCommandRunner struct {
	timeout time.Duration
}

// NewLocalCommandRunner constructs a LocalCommandRunner. A non-positive timeout
// falls back to DefaultCommandTimeout.
func NewLocalCommandRunner(timeout time.Duration) *LocalCommandRunner {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	return &LocalCommandRunner{timeout: timeout}
}

// Run executes the command and reports a *CommandError when it cannot be started or
// exits with a non-zero status.
func (r *LocalCommandRunner) Run(ctx context.Context, dir string, name string, args []string, stdout, stderr LineConsumer) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var captured []string

	errLines := func(line string) {
		captured = append(captured, line)
		if stderr != nil {
			stderr(line)
		}
	}

	outWriter := newLineWriter(stdout)
	errWriter := newLineWriter(errLines)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = outWriter
	cmd.Stderr = errWriter

	slog.Debug("Running command", "name", name, "args", args, "dir", dir)

	err := cmd.Run()

	outWriter.Flush()
	errWriter.Flush()

	if err == nil {
		return nil
	}

	cmdErr := &CommandError{Name: name, Args: args, Stderr: captured, Err: err}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}

	if ctx.Err() != nil {
		cmdErr.Err = ctx.Err()
	}

	slog.Error("Failed to run command", "name", name, "args", args, "error", cmdErr)

	return cmdErr
}

// lineWriter splits written bytes into lines and hands each complete line to a consumer.
type lineWriter struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	consume LineConsumer
}

func newLineWriter(consume LineConsumer) *lineWriter {
	return &lineWriter{consume: consume}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)

	for {
		idx := bytes.IndexByte(w.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}

		line := string(w.buf.Next(idx + 1))
		w.emit(line)
	}

	return len(p), nil
}

// Flush emits a trailing line that was not terminated by a newline.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return
	}

	w.emit(w.buf.String())
	w.buf.Reset()
}

func (w *lineWriter) emit(line string) {
	if w.consume == nil {
		return
	}

	w.consume(strings.TrimRight(line, "\r\n"))
}
