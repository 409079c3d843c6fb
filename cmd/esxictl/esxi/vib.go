package esxi

import (
	"context"
	"fmt"
	"strings"

	"github.com/OnitiFR/esxictl/common"
	"github.com/blang/semver/v4"
)

// VibState is the installation state of a VIB package
type VibState string

// VIB states (VibLatest is only a desired state)
const (
	VibAbsent  VibState = "absent"
	VibPresent VibState = "present"
	VibLatest  VibState = "latest"
)

// VibAction is a corrective esxcli action
type VibAction string

// VIB actions
const (
	VibNoAction VibAction = ""
	VibInstall  VibAction = "install"
	VibUpdate   VibAction = "update"
	VibRemove   VibAction = "remove"
)

const (
	vibNoMatchMarker    = "[NoMatchError]"
	vibInstalledMarker  = "VIBs Installed"
	vibRemovedMarker    = "VIBs Removed"
	vibVersionAttribute = "Version"
)

// "vib update" sometimes fails with this output and an empty stderr,
// but the update is applied
const vibAmbiguousStdout = "''\n"

// VibRequest is the desired state of a VIB package
type VibRequest struct {
	Name  string
	State VibState
	URL   string
	// Stage, when URL is empty, provides the URL only once an install
	// or update is needed (uploading a local file, for instance)
	Stage func(ctx context.Context) (string, error)
	// CheckMode runs the command with the dry-run flag
	CheckMode bool
}

// VibPackage is the observed state of a VIB package
type VibPackage struct {
	Name    string
	State   VibState
	Version string
	Record  *VibRecord
}

// VibReconciler manages one VIB package per run
type VibReconciler struct {
	Runner   Runner
	Commands *CommandSet
	Log      *Log
}

// NewVibReconciler creates a new VibReconciler
func NewVibReconciler(runner Runner, cs *CommandSet, log *Log) *VibReconciler {
	return &VibReconciler{
		Runner:   runner,
		Commands: cs,
		Log:      log,
	}
}

// GetPackage queries the current state of a VIB package
func (r *VibReconciler) GetPackage(ctx context.Context, name string) (*VibPackage, error) {
	command := r.Commands.VibGetCommand(name)
	out, err := r.Runner.Run(ctx, command)
	if err != nil {
		return nil, &CommandError{
			Msg:      "unable to get vib info",
			Command:  command,
			ExitCode: -1,
			Stderr:   err.Error(),
			Err:      err,
		}
	}

	if out.ExitCode != 0 {
		if strings.HasPrefix(strings.TrimLeft(out.Stdout, " \t\r\n"), vibNoMatchMarker) {
			return &VibPackage{Name: name, State: VibAbsent}, nil
		}
		return nil, newCommandError("unable to get vib info", out)
	}

	record := ParseVibRecord(out.Stdout, true)
	if !record.Has(vibVersionAttribute) {
		cerr := newCommandError(fmt.Sprintf("package %s is neither present nor absent", name), out)
		cerr.Err = ErrUnknownPackageState
		return nil, cerr
	}

	return &VibPackage{
		Name:    name,
		State:   VibPresent,
		Version: record.Get(vibVersionAttribute),
		Record:  record,
	}, nil
}

// PlanVib returns the action needed to move current to desired
func PlanVib(current *VibPackage, desired VibState) (VibAction, error) {
	switch desired {
	case VibAbsent:
		if current.State != VibAbsent {
			return VibRemove, nil
		}
	case VibPresent:
		if current.State != VibPresent {
			return VibInstall, nil
		}
	case VibLatest:
		if current.State == VibPresent {
			return VibUpdate, nil
		}
		return VibInstall, nil
	default:
		return VibNoAction, newConfigError(ErrInvalidState, "unknown new state %s", desired)
	}
	return VibNoAction, nil
}

// Command returns the esxcli command for action
func (r *VibReconciler) Command(ctx context.Context, action VibAction, req *VibRequest) (string, error) {
	var command string
	switch action {
	case VibRemove:
		command = r.Commands.VibRemoveCommand(req.Name)
	case VibInstall, VibUpdate:
		url := req.URL
		if url == "" && req.Stage != nil {
			staged, err := req.Stage(ctx)
			if err != nil {
				return "", err
			}
			url = staged
		}
		if url == "" {
			return "", newConfigError(ErrMissingURL, "url is required to %s %s", action, req.Name)
		}
		if action == VibInstall {
			command = r.Commands.VibInstallCommand(url)
		} else {
			command = r.Commands.VibUpdateCommand(url)
		}
	default:
		return "", fmt.Errorf("no command for action '%s'", action)
	}

	if req.CheckMode {
		command = r.Commands.WithDryRun(command)
	}
	return command, nil
}

// Reconcile queries the package, then installs, updates or removes it
func (r *VibReconciler) Reconcile(ctx context.Context, req *VibRequest) (*common.Result, error) {
	current, err := r.GetPackage(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	action, err := PlanVib(current, req.State)
	if err != nil {
		return nil, err
	}

	res := common.NewResult()
	if action == VibNoAction {
		res.Msg = fmt.Sprintf("already ok: %s", current.State)
		if current.Record != nil {
			res.Details["details"] = current.Record.Attributes
			res.Details["version"] = current.Version
		}
		return res, nil
	}

	command, err := r.Command(ctx, action, req)
	if err != nil {
		return nil, err
	}

	r.Log.Infof("%s %s", action, req.Name)
	out, err := r.Runner.Run(ctx, command)
	if err != nil {
		return nil, &CommandError{
			Msg:      "command failed",
			Command:  command,
			ExitCode: -1,
			Stderr:   err.Error(),
			Err:      err,
		}
	}

	if out.ExitCode != 0 {
		if action == VibUpdate && isAmbiguousUpdateFailure(out) {
			return r.recoverUpdate(ctx, req, current, command)
		}
		return nil, newCommandError("command failed", out)
	}

	record := ParseVibRecord(out.Stdout, true)
	res.Changed = record.Has(vibInstalledMarker) || record.Has(vibRemovedMarker)
	res.Msg = fmt.Sprintf("%s: nothing changed", action)
	if res.Changed {
		res.Msg = fmt.Sprintf("%s finished", action)
	}
	res.Details["action"] = string(action)
	res.Details["command"] = command
	res.Details["details"] = record.Attributes
	return res, nil
}

func isAmbiguousUpdateFailure(out *CommandOutput) bool {
	return out.ExitCode == 1 && out.Stderr == "" && out.Stdout == vibAmbiguousStdout
}

// recoverUpdate classifies an ambiguous update failure by comparing
// versions, the update command is not run again
func (r *VibReconciler) recoverUpdate(ctx context.Context, req *VibRequest, before *VibPackage, command string) (*common.Result, error) {
	r.Log.Warningf("update of %s returned an empty failure, checking version", req.Name)

	after, err := r.GetPackage(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	res := common.NewResult()
	res.Details["action"] = string(VibUpdate)
	res.Details["command"] = command
	res.Details["old_version"] = before.Version
	res.Details["new_version"] = after.Version
	res.Details["version_change"] = VersionChange(before.Version, after.Version)

	if before.Version != after.Version {
		res.Changed = true
		res.Msg = "update finished mostly ok :)"
	} else {
		res.Msg = "update skipped mostly ok :)"
	}
	return res, nil
}

// VersionChange describes a version move: "upgrade", "downgrade",
// "same" or "changed" when versions are not comparable
func VersionChange(before string, after string) string {
	if before == after {
		return "same"
	}

	vBefore, err1 := semver.ParseTolerant(before)
	vAfter, err2 := semver.ParseTolerant(after)
	if err1 != nil || err2 != nil {
		return "changed"
	}

	switch {
	case vAfter.GT(vBefore):
		return "upgrade"
	case vAfter.LT(vBefore):
		return "downgrade"
	}
	return "changed"
}
