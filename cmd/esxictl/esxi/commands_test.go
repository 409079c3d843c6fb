package esxi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCommands(t *testing.T) {
	cs := DefaultCommandSet()

	assert.Equal(t,
		`vim-cmd hostsvc/autostartmanager/update_autostartentry 5 "PowerOn" "10" "3" "guestShutdown" "systemDefault" "systemDefault"`,
		cs.ModStartCommand(5, 3))
	assert.Equal(t,
		`vim-cmd hostsvc/autostartmanager/update_autostartentry -- "5" "PowerOff" "1" "-1" "guestShutdown" "systemDefault" "systemDefault"`,
		cs.DisableStartCommand(5))
	assert.Equal(t, "vim-cmd vmsvc/power.getstate 12", cs.PowerGetStateCommand(12))

	assert.Equal(t, "esxcli software vib get -n esx-ui", cs.VibGetCommand("esx-ui"))
	assert.Equal(t, "esxcli software vib remove -n esx-ui", cs.VibRemoveCommand("esx-ui"))
	assert.Equal(t,
		"esxcli software vib install -v https://example.org/esxui-signed.vib",
		cs.VibInstallCommand("https://example.org/esxui-signed.vib"))
	assert.Equal(t,
		"esxcli software vib update -v /tmp/esxui.vib",
		cs.VibUpdateCommand("/tmp/esxui.vib"))
}

func TestCommandsQuoting(t *testing.T) {
	cs := DefaultCommandSet()
	assert.Equal(t, "esxcli software vib install -v '/tmp/my package.vib'", cs.VibInstallCommand("/tmp/my package.vib"))
	assert.Equal(t, `esxcli software vib get -n 'x; reboot'`, cs.VibGetCommand("x; reboot"))
}

func TestWithDryRun(t *testing.T) {
	cs := DefaultCommandSet()
	assert.Equal(t, "esxcli software vib remove -n esx-ui --dry-run", cs.WithDryRun(cs.VibRemoveCommand("esx-ui")))

	cs.DryRunFlag = ""
	assert.Equal(t, "esxcli software vib remove -n esx-ui", cs.WithDryRun(cs.VibRemoveCommand("esx-ui")))
}

func TestCommandSetMerge(t *testing.T) {
	cs := DefaultCommandSet().Merge(&CommandSet{
		GetVMList: "cat /tmp/vms.txt",
		VibGet:    "  ",
	})
	assert.Equal(t, "cat /tmp/vms.txt", cs.GetVMList)
	assert.Equal(t, "esxcli software vib get -n {name}", cs.VibGet)
	assert.Equal(t, "vim-cmd hostsvc/autostartmanager/get_autostartseq", cs.GetAutoruns)

	assert.Equal(t, DefaultCommandSet(), DefaultCommandSet().Merge(nil))
}

func TestCommandSetValidate(t *testing.T) {
	assert.NoError(t, DefaultCommandSet().Validate())

	cs := DefaultCommandSet().Merge(&CommandSet{ModStart: "autostart {vm_id} {position}"})
	assert.EqualError(t, cs.Validate(), "command mod_start: unknown placeholder {position}")
}
