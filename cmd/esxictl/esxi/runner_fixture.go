package esxi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Fixture file names, relative to the fixture directory
const (
	FixtureVMList    = "getallvms.txt"
	FixtureAutoruns  = "get_autostartseq.txt"
	fixtureRCSuffix  = ".rc"
	fixtureErrSuffix = ".err"
)

// FixtureRunner serves captured command outputs from a directory
// instead of talking to a host ("mock" mode). Every command is recorded
// in Executed. Read commands are mapped to fixture files, any other
// command is echoed with a zero exit code.
//
// A fixture "foo.txt" may come with "foo.txt.rc" (exit code) and
// "foo.txt.err" (stderr).
type FixtureRunner struct {
	Dir      string
	Fixtures map[string]string
	Executed []string
	Log      *Log
}

// NewFixtureRunner creates a FixtureRunner for dir, mapping listing
// commands of cs to their usual fixture files
func NewFixtureRunner(dir string, cs *CommandSet, log *Log) *FixtureRunner {
	r := &FixtureRunner{
		Dir:      dir,
		Fixtures: make(map[string]string),
		Log:      log,
	}
	r.AddFixture(cs.GetVMList, FixtureVMList)
	r.AddFixture(cs.GetAutoruns, FixtureAutoruns)
	return r
}

// AddFixture maps command to a fixture file
func (r *FixtureRunner) AddFixture(command string, file string) {
	r.Fixtures[command] = file
}

// Run returns the fixture content for a mapped command
func (r *FixtureRunner) Run(_ context.Context, command string) (*CommandOutput, error) {
	r.Executed = append(r.Executed, command)

	file, exists := r.Fixtures[command]
	if !exists {
		r.Log.Tracef("mock: %s", command)
		return &CommandOutput{
			Command: command,
			Stdout:  fmt.Sprintf("mock: %s\n", command),
		}, nil
	}

	path := filepath.Join(r.Dir, file)
	r.Log.Tracef("mock: %s < %s", command, path)

	out := &CommandOutput{Command: command}
	data, err := os.ReadFile(path)
	if err != nil {
		out.ExitCode = 1
		out.Stderr = err.Error()
		return out, nil
	}
	out.Stdout = string(data)

	if rc, err := os.ReadFile(path + fixtureRCSuffix); err == nil {
		code, err := strconv.Atoi(strings.TrimSpace(string(rc)))
		if err != nil {
			return nil, fmt.Errorf("%s%s: %s", path, fixtureRCSuffix, err)
		}
		out.ExitCode = code
	}
	if stderr, err := os.ReadFile(path + fixtureErrSuffix); err == nil {
		out.Stderr = string(stderr)
	}

	return out, nil
}
