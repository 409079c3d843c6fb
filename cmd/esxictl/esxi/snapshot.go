package esxi

import (
	"context"
	"sort"
)

// Snapshot is the in-memory picture of the host state at the start of
// a run. It's never cached nor updated: each run builds its own.
type Snapshot struct {
	VMs        []*VM
	vmIDByName map[string]int
	vmNameByID map[int]string
	autostart  map[int]*AutostartEntry
}

// NewSnapshot builds lookups from parsed records
func NewSnapshot(vms []*VM, autostart map[int]*AutostartEntry) *Snapshot {
	snap := &Snapshot{
		VMs:        vms,
		vmIDByName: make(map[string]int, len(vms)),
		vmNameByID: make(map[int]string, len(vms)),
		autostart:  autostart,
	}
	if snap.autostart == nil {
		snap.autostart = make(map[int]*AutostartEntry)
	}

	for _, vm := range vms {
		snap.vmIDByName[vm.Name] = vm.ID
		snap.vmNameByID[vm.ID] = vm.Name
	}
	return snap
}

// LoadVMList runs the VM list command and parses its output
func LoadVMList(ctx context.Context, runner Runner, cs *CommandSet) ([]*VM, error) {
	out, err := runChecked(ctx, runner, cs.GetVMList, "unable to get vm list")
	if err != nil {
		return nil, err
	}
	return ParseVMList(out.Stdout), nil
}

// LoadAutostart runs the autostart sequence command and parses its output
func LoadAutostart(ctx context.Context, runner Runner, cs *CommandSet, mode AutostartParseMode) (map[int]*AutostartEntry, error) {
	out, err := runChecked(ctx, runner, cs.GetAutoruns, "unable to get startup list")
	if err != nil {
		return nil, err
	}
	return ParseAutostart(out.Stdout, mode), nil
}

// LoadSnapshot queries the host and builds a Snapshot. Any failure is
// fatal, there's no partial snapshot.
func LoadSnapshot(ctx context.Context, runner Runner, cs *CommandSet, mode AutostartParseMode, log *Log) (*Snapshot, error) {
	vms, err := LoadVMList(ctx, runner, cs)
	if err != nil {
		return nil, err
	}

	autostart, err := LoadAutostart(ctx, runner, cs, mode)
	if err != nil {
		return nil, err
	}

	log.Tracef("snapshot: %d VM(s), %d autostart entrie(s) (%s)", len(vms), len(autostart), mode)
	return NewSnapshot(vms, autostart), nil
}

// VMIDByName returns the id of a VM
func (snap *Snapshot) VMIDByName(name string) (int, bool) {
	id, exists := snap.vmIDByName[name]
	return id, exists
}

// VMNameByID returns the name of a VM
func (snap *Snapshot) VMNameByID(id int) (string, bool) {
	name, exists := snap.vmNameByID[id]
	return name, exists
}

// Autostart returns the autostart entry of a VM, if any
func (snap *Snapshot) Autostart(id int) (*AutostartEntry, bool) {
	entry, exists := snap.autostart[id]
	return entry, exists
}

// AutostartEntries returns all entries, sorted by VM id
func (snap *Snapshot) AutostartEntries() []*AutostartEntry {
	entries := make([]*AutostartEntry, 0, len(snap.autostart))
	for _, entry := range snap.autostart {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].VMID < entries[j].VMID
	})
	return entries
}

// EnabledCount returns the number of entries with a positive order
func (snap *Snapshot) EnabledCount() int {
	count := 0
	for _, entry := range snap.autostart {
		if entry.Order > 0 {
			count++
		}
	}
	return count
}

// NextFreePosition is the end of the startup list. Gaps are never
// looked for.
func (snap *Snapshot) NextFreePosition() int {
	return snap.EnabledCount() + 1
}
