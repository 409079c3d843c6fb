package esxi

import (
	"context"
	"fmt"

	"github.com/OnitiFR/esxictl/common"
)

// AutostartRequest is the desired autostart state of a VM
type AutostartRequest struct {
	Name    string
	Enabled bool
	// Order is the wanted position in the startup list, 0 means
	// "keep current position or append at the end"
	Order int
	// Skip unknown VM names instead of failing
	Skip bool
	// DryRun computes and reports the command without running it
	DryRun bool
}

// AutostartPlan is the outcome of PlanAutostart: the result to report
// and the corrective command, if any
type AutostartPlan struct {
	Result  *common.Result
	Command string
}

// AutostartReconciler manages the autostart entry of one VM per run
type AutostartReconciler struct {
	Runner   Runner
	Commands *CommandSet
	Log      *Log
}

// NewAutostartReconciler creates a new AutostartReconciler
func NewAutostartReconciler(runner Runner, cs *CommandSet, log *Log) *AutostartReconciler {
	return &AutostartReconciler{
		Runner:   runner,
		Commands: cs,
		Log:      log,
	}
}

// PlanAutostart computes the minimal corrective command (or none) to
// move the snapshot state to req. It never returns more than one command.
func PlanAutostart(snap *Snapshot, req *AutostartRequest, cs *CommandSet) (*AutostartPlan, error) {
	if req.Order < 0 {
		return nil, newConfigError(ErrInvalidOrder, "invalid order %d for %s, must be positive", req.Order, req.Name)
	}

	plan := &AutostartPlan{
		Result: common.NewResult(),
	}
	res := plan.Result

	vmID, exists := snap.VMIDByName(req.Name)
	if !exists {
		if req.Skip {
			res.Skipped = true
			res.Msg = fmt.Sprintf("VM %s not found, skipping", req.Name)
			return plan, nil
		}
		return nil, newConfigError(ErrUnknownVM, "no such vm here: %s", req.Name)
	}

	res.Details["vm_id"] = vmID
	entry, present := snap.Autostart(vmID)

	if !req.Enabled {
		switch {
		case !present:
			res.Msg = "already ok: not in autostart"
		case entry.Action == ActionPowerOff:
			res.Msg = "already ok: autostart disabled"
		default:
			res.Changed = true
			res.Msg = "autostart disabled, moved to pos -1"
			res.Details["old_action"] = entry.Action
			plan.Command = cs.DisableStartCommand(vmID)
		}
		return plan, nil
	}

	newOrder := req.Order
	if newOrder == 0 {
		newOrder = snap.NextFreePosition()
	}

	switch {
	case !present:
		res.Changed = true
		res.Msg = fmt.Sprintf("autostart added at pos %d", newOrder)
		res.Details["new_pos"] = newOrder
		plan.Command = cs.ModStartCommand(vmID, newOrder)

	case entry.Action != ActionPowerOn || entry.Order < 1:
		res.Changed = true
		res.Msg = fmt.Sprintf("autostart enabled at pos %d", newOrder)
		res.Details["old_action"] = entry.Action
		res.Details["old_pos"] = entry.Order
		res.Details["new_pos"] = newOrder
		plan.Command = cs.ModStartCommand(vmID, newOrder)

	case req.Order != 0 && req.Order != entry.Order:
		res.Changed = true
		res.Msg = fmt.Sprintf("autostart enabled, moved from %d to %d", entry.Order, req.Order)
		res.Details["old_pos"] = entry.Order
		res.Details["new_pos"] = req.Order
		plan.Command = cs.ModStartCommand(vmID, req.Order)

	default:
		res.Msg = fmt.Sprintf("already ok: autostart enabled, pos %d", entry.Order)
	}

	return plan, nil
}

// Reconcile loads a fresh snapshot, plans and applies the change
func (r *AutostartReconciler) Reconcile(ctx context.Context, req *AutostartRequest) (*common.Result, error) {
	snap, err := LoadSnapshot(ctx, r.Runner, r.Commands, AutostartAllEntries, r.Log)
	if err != nil {
		return nil, err
	}

	plan, err := PlanAutostart(snap, req, r.Commands)
	if err != nil {
		return nil, err
	}

	return r.Apply(ctx, plan, req.DryRun)
}

// Apply runs the plan command, if any. In dry-run mode, the command is
// only reported.
func (r *AutostartReconciler) Apply(ctx context.Context, plan *AutostartPlan, dryRun bool) (*common.Result, error) {
	res := plan.Result
	if plan.Command == "" {
		return res, nil
	}

	res.Details["command"] = plan.Command
	if dryRun {
		r.Log.Infof("dry run, not running: %s", plan.Command)
		return res, nil
	}

	out, err := runChecked(ctx, r.Runner, plan.Command, "unable to perform changes")
	if err != nil {
		return nil, err
	}

	res.Details["cmd_ret"] = out.ExitCode
	res.Details["cmd_out"] = out.Stdout
	res.Details["cmd_err"] = out.Stderr
	return res, nil
}
