package esxi

import (
	"fmt"
	"strings"

	"github.com/OnitiFR/esxictl/common"
	"github.com/alessio/shellescape"
)

// CommandSet holds all remote command templates. Placeholders are
// {vm_id}, {order}, {name} and {url}.
type CommandSet struct {
	GetVMList     string `toml:"get_vmlist"`
	GetAutoruns   string `toml:"get_autoruns"`
	ModStart      string `toml:"mod_start"`
	DisableStart  string `toml:"disable_start"`
	PowerGetState string `toml:"power_getstate"`
	VibGet        string `toml:"vib_get"`
	VibInstall    string `toml:"vib_install"`
	VibUpdate     string `toml:"vib_update"`
	VibRemove     string `toml:"vib_remove"`
	DryRunFlag    string `toml:"dry_run_flag"`
	HostVersion   string `toml:"host_version"`
}

// DefaultCommandSet returns the commands used against a real ESXi host
func DefaultCommandSet() *CommandSet {
	return &CommandSet{
		GetVMList:   "vim-cmd vmsvc/getallvms",
		GetAutoruns: "vim-cmd hostsvc/autostartmanager/get_autostartseq",
		ModStart: "vim-cmd hostsvc/autostartmanager/update_autostartentry " +
			`{vm_id} "PowerOn" "10" "{order}" ` +
			`"guestShutdown" "systemDefault" "systemDefault"`,
		// '--' marks the end of options, or vim-cmd complains about -1
		DisableStart: "vim-cmd hostsvc/autostartmanager/update_autostartentry -- " +
			`"{vm_id}" "PowerOff" "1" "-1" ` +
			`"guestShutdown" "systemDefault" "systemDefault"`,
		PowerGetState: "vim-cmd vmsvc/power.getstate {vm_id}",
		VibGet:        "esxcli software vib get -n {name}",
		VibInstall:    "esxcli software vib install -v {url}",
		VibUpdate:     "esxcli software vib update -v {url}",
		VibRemove:     "esxcli software vib remove -n {name}",
		DryRunFlag:    "--dry-run",
		HostVersion:   "vmware -vl",
	}
}

// Merge replaces templates by non-empty templates from override
func (cs *CommandSet) Merge(override *CommandSet) *CommandSet {
	if override == nil {
		return cs
	}
	pick := func(dst *string, src string) {
		if strings.TrimSpace(src) != "" {
			*dst = src
		}
	}
	pick(&cs.GetVMList, override.GetVMList)
	pick(&cs.GetAutoruns, override.GetAutoruns)
	pick(&cs.ModStart, override.ModStart)
	pick(&cs.DisableStart, override.DisableStart)
	pick(&cs.PowerGetState, override.PowerGetState)
	pick(&cs.VibGet, override.VibGet)
	pick(&cs.VibInstall, override.VibInstall)
	pick(&cs.VibUpdate, override.VibUpdate)
	pick(&cs.VibRemove, override.VibRemove)
	pick(&cs.DryRunFlag, override.DryRunFlag)
	pick(&cs.HostVersion, override.HostVersion)
	return cs
}

// Validate checks that templates only use their own placeholders
func (cs *CommandSet) Validate() error {
	templates := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"get_vmlist", cs.GetVMList, nil},
		{"get_autoruns", cs.GetAutoruns, nil},
		{"mod_start", cs.ModStart, []string{"vm_id", "order"}},
		{"disable_start", cs.DisableStart, []string{"vm_id"}},
		{"power_getstate", cs.PowerGetState, []string{"vm_id"}},
		{"vib_get", cs.VibGet, []string{"name"}},
		{"vib_install", cs.VibInstall, []string{"url"}},
		{"vib_update", cs.VibUpdate, []string{"url"}},
		{"vib_remove", cs.VibRemove, []string{"name"}},
		{"host_version", cs.HostVersion, nil},
	}

	for _, tpl := range templates {
	placeholders:
		for _, placeholder := range common.StringFindPlaceholders(tpl.value) {
			for _, allowed := range tpl.allowed {
				if placeholder == allowed {
					continue placeholders
				}
			}
			return fmt.Errorf("command %s: unknown placeholder {%s}", tpl.name, placeholder)
		}
	}
	return nil
}

// ModStartCommand enables autostart of vmID at position order
func (cs *CommandSet) ModStartCommand(vmID int, order int) string {
	return common.StringExpandPlaceholders(cs.ModStart, map[string]interface{}{
		"vm_id": vmID,
		"order": order,
	})
}

// DisableStartCommand disables autostart of vmID
func (cs *CommandSet) DisableStartCommand(vmID int) string {
	return common.StringExpandPlaceholders(cs.DisableStart, map[string]interface{}{
		"vm_id": vmID,
	})
}

// PowerGetStateCommand queries the power state of vmID
func (cs *CommandSet) PowerGetStateCommand(vmID int) string {
	return common.StringExpandPlaceholders(cs.PowerGetState, map[string]interface{}{
		"vm_id": vmID,
	})
}

// VibGetCommand queries a VIB package by name
func (cs *CommandSet) VibGetCommand(name string) string {
	return expandQuoted(cs.VibGet, "name", name)
}

// VibInstallCommand installs a VIB from url
func (cs *CommandSet) VibInstallCommand(url string) string {
	return expandQuoted(cs.VibInstall, "url", url)
}

// VibUpdateCommand updates a VIB from url
func (cs *CommandSet) VibUpdateCommand(url string) string {
	return expandQuoted(cs.VibUpdate, "url", url)
}

// VibRemoveCommand removes a VIB package by name
func (cs *CommandSet) VibRemoveCommand(name string) string {
	return expandQuoted(cs.VibRemove, "name", name)
}

// WithDryRun returns command with the non-mutating verification flag
func (cs *CommandSet) WithDryRun(command string) string {
	if cs.DryRunFlag == "" {
		return command
	}
	return command + " " + cs.DryRunFlag
}

// safe strings (package names, plain URLs) are left untouched by Quote
func expandQuoted(template string, key string, value string) string {
	return common.StringExpandPlaceholders(template, map[string]interface{}{
		key: shellescape.Quote(value),
	})
}
