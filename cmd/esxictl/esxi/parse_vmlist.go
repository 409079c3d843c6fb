package esxi

import (
	"regexp"
	"strconv"
	"strings"
)

// VM is a registered virtual machine, as listed by getallvms
type VM struct {
	ID        int
	Name      string
	Datastore string
	// Path is the full path of the .vmx file
	Path      string
	GuestOS   string
	HWVersion string
}

// annotations may span multiple lines, only lines starting with
// "<id> <name> [<store>] <dir>/<file>.vmx" are VM lines
var vmListLineRegexp = regexp.MustCompile(`^(\d+) +(\S+) +\[(\S+)\] (\S+)/(\S+)\.vmx(\s+.*)?$`)

// ParseVMList parses "vim-cmd vmsvc/getallvms" output. Header, blank
// and unrecognized lines are skipped.
func ParseVMList(text string) []*VM {
	var vms []*VM

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "Vmid") {
			continue
		}

		parts := vmListLineRegexp.FindStringSubmatch(line)
		if parts == nil {
			continue
		}

		id, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}

		vm := &VM{
			ID:        id,
			Name:      parts[2],
			Datastore: parts[3],
			Path:      "/vmfs/volumes/" + parts[3] + "/" + parts[4] + "/" + parts[5] + ".vmx",
		}

		extra := strings.Fields(parts[6])
		if len(extra) > 0 {
			vm.GuestOS = extra[0]
		}
		if len(extra) > 1 && strings.HasPrefix(extra[1], "vmx-") {
			vm.HWVersion = extra[1]
		}

		vms = append(vms, vm)
	}
	return vms
}
