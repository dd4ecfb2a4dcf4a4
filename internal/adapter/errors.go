package adapter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrVCSCommandFailed matches every failure of a version-control query: a command
	// that could not be started, exited non-zero, or printed output that does not
	// have the expected shape.
	ErrVCSCommandFailed = errors.New("vcs command failed")

	// ErrBlameParse matches blame output lines that cannot be mapped to a revision.
	ErrBlameParse = errors.New("unable to parse blame output")

	// ErrNotAWorkingCopy is returned when a directory is not a Subversion working copy.
	ErrNotAWorkingCopy = errors.New("not a working copy")
)

// CommandError describes an external command that failed to run or exited non-zero.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   []string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Name, strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	if len(e.Stderr) > 0 {
		msg += ": " + strings.Join(e.Stderr, "; ")
	}

	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is makes every CommandError match ErrVCSCommandFailed.
func (e *CommandError) Is(target error) bool {
	return target == ErrVCSCommandFailed
}

// ParseError describes output of a successful command that did not have the expected shape.
type ParseError struct {
	Op   string
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("parse %s output: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("parse %s output %q: %v", e.Op, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrBlameParse for blame output and ErrVCSCommandFailed for everything else.
func (e *ParseError) Is(target error) bool {
	if e.Op == opBlame {
		return target == ErrBlameParse
	}

	return target == ErrVCSCommandFailed
}
