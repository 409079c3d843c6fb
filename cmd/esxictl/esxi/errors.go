package esxi

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, wrapped by CommandError
var (
	ErrUnknownVM           = errors.New("no such vm here")
	ErrInvalidOrder        = errors.New("invalid startup order")
	ErrInvalidState        = errors.New("unknown new state")
	ErrMissingURL          = errors.New("url is required to install or update a package")
	ErrUnknownPackageState = errors.New("package is neither present nor absent")
)

// CommandError is a fatal error: it carries everything needed to
// report what was run on the host and what it answered
type CommandError struct {
	Msg      string
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Msg)
	if e.Command != "" {
		fmt.Fprintf(&sb, " (cmd: %s)", e.Command)
	}
	fmt.Fprintf(&sb, " [rc=%d]", e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		sb.WriteString(": " + stderr)
	}
	return sb.String()
}

// Unwrap allows errors.Is() on sentinel errors
func (e *CommandError) Unwrap() error {
	return e.Err
}

// newCommandError builds a CommandError from a command output
func newCommandError(msg string, out *CommandOutput) *CommandError {
	return &CommandError{
		Msg:      msg,
		Command:  out.Command,
		ExitCode: out.ExitCode,
		Stdout:   out.Stdout,
		Stderr:   out.Stderr,
	}
}

// newConfigError builds a CommandError for errors not related
// to any command (rc is -1)
func newConfigError(err error, format string, args ...interface{}) *CommandError {
	return &CommandError{
		Msg:      fmt.Sprintf(format, args...),
		ExitCode: -1,
		Err:      err,
	}
}
