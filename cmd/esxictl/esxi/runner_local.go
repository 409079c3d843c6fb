package esxi

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// LocalRunner executes commands on the local host using sh, useful
// when esxictl runs directly in the ESXi shell
type LocalRunner struct {
	Shell string
	Log   *Log
}

// NewLocalRunner returns a LocalRunner using /bin/sh
func NewLocalRunner(log *Log) *LocalRunner {
	return &LocalRunner{
		Shell: "/bin/sh",
		Log:   log,
	}
}

// Run executes command with "sh -c"
func (r *LocalRunner) Run(ctx context.Context, command string) (*CommandOutput, error) {
	r.Log.Tracef("local: %s", command)

	cmd := exec.CommandContext(ctx, r.Shell, "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	out := &CommandOutput{Command: command}
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		out.ExitCode = exitErr.ExitCode()
	}
	out.Stdout = stdout.String()
	out.Stderr = stderr.String()

	r.Log.Tracef("local: %s", describeOutput(out))
	return out, nil
}
