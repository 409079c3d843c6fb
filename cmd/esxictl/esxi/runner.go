package esxi

import (
	"context"
	"fmt"
)

// CommandOutput is the result of a command executed on the host
type CommandOutput struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes a shell command string against the host. The error
// is only used when the command could not be executed at all, a
// non-zero exit code is not an error.
type Runner interface {
	Run(ctx context.Context, command string) (*CommandOutput, error)
}

// runChecked runs command and turns any transport error or non-zero
// exit code into a *CommandError using failMsg
func runChecked(ctx context.Context, runner Runner, command string, failMsg string) (*CommandOutput, error) {
	out, err := runner.Run(ctx, command)
	if err != nil {
		return nil, &CommandError{
			Msg:      failMsg,
			Command:  command,
			ExitCode: -1,
			Stderr:   err.Error(),
			Err:      err,
		}
	}
	if out.ExitCode != 0 {
		return out, newCommandError(failMsg, out)
	}
	return out, nil
}

// describeOutput is used for traces
func describeOutput(out *CommandOutput) string {
	return fmt.Sprintf("rc=%d, %d bytes out, %d bytes err", out.ExitCode, len(out.Stdout), len(out.Stderr))
}
