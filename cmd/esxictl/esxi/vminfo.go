package esxi

import (
	"context"
	"strconv"

	"github.com/OnitiFR/esxictl/common"
	"golang.org/x/time/rate"
)

// VMInfoOptions selects optional (and slower) informations
type VMInfoOptions struct {
	StartState bool
	PowerState bool
	// PowerRate limits power state queries per second (0: no limit)
	PowerRate float64
}

// VMInfo lists registered VMs with their optional start and power state
type VMInfo struct {
	VMs []*VM
	// StartByID only includes VMs that will actually start with the host
	StartByID map[int]int
	PowerByID map[int]bool
}

// ReadVMInfo queries the host for VM informations
func ReadVMInfo(ctx context.Context, runner Runner, cs *CommandSet, opts VMInfoOptions, log *Log) (*VMInfo, error) {
	vms, err := LoadVMList(ctx, runner, cs)
	if err != nil {
		return nil, err
	}

	info := &VMInfo{VMs: vms}

	if opts.StartState {
		entries, err := LoadAutostart(ctx, runner, cs, AutostartEnabledOnly)
		if err != nil {
			return nil, err
		}
		info.StartByID = make(map[int]int, len(entries))
		for id, entry := range entries {
			info.StartByID[id] = entry.Order
		}
	}

	if opts.PowerState {
		limit := rate.Inf
		if opts.PowerRate > 0 {
			limit = rate.Limit(opts.PowerRate)
		}
		limiter := rate.NewLimiter(limit, 1)

		info.PowerByID = make(map[int]bool, len(vms))
		for _, vm := range vms {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}

			out, err := runner.Run(ctx, cs.PowerGetStateCommand(vm.ID))
			if err != nil {
				return nil, err
			}
			if out.ExitCode != 0 {
				log.Warningf("unable to get power state of %s (rc=%d)", vm.Name, out.ExitCode)
			}
			info.PowerByID[vm.ID] = out.ExitCode == 0 && ParsePowerState(out.Stdout)
		}
	}

	return info, nil
}

// API returns VM informations as name/id maps. Autostart entries of
// unknown VMs are ignored.
func (info *VMInfo) API() *common.APIVMInfos {
	res := &common.APIVMInfos{
		VMByID:   make(map[string]string, len(info.VMs)),
		IDByVM:   make(map[string]int, len(info.VMs)),
		PathByVM: make(map[string]string, len(info.VMs)),
	}

	names := make(map[int]string, len(info.VMs))
	for _, vm := range info.VMs {
		names[vm.ID] = vm.Name
		res.VMByID[strconv.Itoa(vm.ID)] = vm.Name
		res.IDByVM[vm.Name] = vm.ID
		res.PathByVM[vm.Name] = vm.Path
	}

	if info.StartByID != nil {
		res.StartByVM = make(map[string]int, len(info.StartByID))
		for id, order := range info.StartByID {
			if name, exists := names[id]; exists {
				res.StartByVM[name] = order
			}
		}
	}

	if info.PowerByID != nil {
		res.PowerByVM = make(map[string]bool, len(info.PowerByID))
		for id, on := range info.PowerByID {
			res.PowerByVM[names[id]] = on
		}
	}

	return res
}

// Entries returns one entry per VM, in host order
func (info *VMInfo) Entries() common.APIVMListEntries {
	entries := make(common.APIVMListEntries, 0, len(info.VMs))
	for _, vm := range info.VMs {
		entry := common.APIVMListEntry{
			ID:         vm.ID,
			Name:       vm.Name,
			Datastore:  vm.Datastore,
			Path:       vm.Path,
			GuestOS:    vm.GuestOS,
			HWVersion:  vm.HWVersion,
			StartOrder: info.StartByID[vm.ID],
		}
		if on, exists := info.PowerByID[vm.ID]; exists {
			entry.PoweredOn = &on
		}
		entries = append(entries, entry)
	}
	return entries
}
