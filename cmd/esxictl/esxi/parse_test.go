package esxi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVMList(t *testing.T) {
	vms := ParseVMList(testVMList)
	require.Len(t, vms, 4)

	assert.Equal(t, 1, vms[0].ID)
	assert.Equal(t, "vcsa", vms[0].Name)
	assert.Equal(t, "datastore1", vms[0].Datastore)
	assert.Equal(t, "/vmfs/volumes/datastore1/vcsa/vcsa.vmx", vms[0].Path)
	assert.Equal(t, "other3xLinux64Guest", vms[0].GuestOS)
	assert.Equal(t, "vmx-10", vms[0].HWVersion)

	assert.Equal(t, 3, vms[1].ID)
	assert.Equal(t, "/vmfs/volumes/datastore2/oldvm/oldvm.vmx", vms[1].Path)
}

func TestParseVMListSingleLine(t *testing.T) {
	vms := ParseVMList("5  webserv  [datastore1] webserv/webserv.vmx ")
	require.Len(t, vms, 1)
	assert.Equal(t, 5, vms[0].ID)
	assert.Equal(t, "webserv", vms[0].Name)
	assert.Equal(t, "/vmfs/volumes/datastore1/webserv/webserv.vmx", vms[0].Path)
	assert.Empty(t, vms[0].GuestOS)
}

func TestParseVMListIgnoresNoise(t *testing.T) {
	assert.Empty(t, ParseVMList(""))
	assert.Empty(t, ParseVMList("Vmid   Name   File   Guest OS   Version   Annotation\n\n"))
	assert.Empty(t, ParseVMList("not a vm line\r\n12 broken\n"))
}

func TestParseAutostartAllEntries(t *testing.T) {
	entries := ParseAutostart(testAutostart, AutostartAllEntries)
	require.Len(t, entries, 3)

	assert.Equal(t, &AutostartEntry{VMID: 1, Order: 1, Action: ActionPowerOn}, entries[1])
	assert.Equal(t, &AutostartEntry{VMID: 3, Order: OrderDisabled, Action: ActionPowerOff}, entries[3])
	// action case is normalized
	assert.Equal(t, &AutostartEntry{VMID: 5, Order: 2, Action: ActionPowerOn}, entries[5])
}

func TestParseAutostartEnabledOnly(t *testing.T) {
	entries := ParseAutostart(testAutostart, AutostartEnabledOnly)
	require.Len(t, entries, 2)
	assert.Contains(t, entries, 1)
	assert.Contains(t, entries, 5)
	assert.NotContains(t, entries, 3)
}

func TestParseAutostartColonSyntax(t *testing.T) {
	text := `key: vim.VirtualMachine:12
startAction: PowerOn
startOrder : 4
key = 'vim.Something:2',
startOrder = 9,
`
	entries := ParseAutostart(text, AutostartAllEntries)
	require.Len(t, entries, 1)
	assert.Equal(t, &AutostartEntry{VMID: 12, Order: 4, Action: ActionPowerOn}, entries[12])
}

func TestParseAutostartMissingOrder(t *testing.T) {
	entries := ParseAutostart("key = 'vim.VirtualMachine:8',\nstartAction = \"PowerOn\",\n", AutostartAllEntries)
	require.Contains(t, entries, 8)
	assert.Equal(t, 0, entries[8].Order)
	assert.False(t, entries[8].Enabled())

	assert.Empty(t, ParseAutostart("key = 'vim.VirtualMachine:8',\nstartAction = \"PowerOn\",\n", AutostartEnabledOnly))
}

func TestParseAutostartEmpty(t *testing.T) {
	assert.Empty(t, ParseAutostart("", AutostartAllEntries))
	assert.Empty(t, ParseAutostart("(vim.host.AutoStartManager.AutoPowerInfo) [\n]\n", AutostartAllEntries))
}

func TestNormalizeAction(t *testing.T) {
	assert.Equal(t, ActionPowerOn, NormalizeAction("powerOn"))
	assert.Equal(t, ActionPowerOff, NormalizeAction("POWEROFF"))
	assert.Equal(t, "none", NormalizeAction("none"))
}

func TestParseVibRecord(t *testing.T) {
	text := `VMware_bootbank_esx-ui_1.33.4-14093553
   Name: esx-ui
   Version: 1.33.4-14093553
   Type: bootbank
   Summary: VMware Host Client
   Tags:
   Reference URLs: website: http://www.vmware.com
`
	record := ParseVibRecord(text, true)
	assert.Equal(t, "VMware_bootbank_esx-ui_1.33.4-14093553", record.Title)
	assert.Equal(t, "esx-ui", record.Get("Name"))
	assert.Equal(t, "1.33.4-14093553", record.Get("Version"))
	assert.Equal(t, "website: http://www.vmware.com", record.Get("Reference URLs"))
	assert.False(t, record.Has("Tags"))

	record = ParseVibRecord(text, false)
	assert.True(t, record.Has("Tags"))
	assert.Equal(t, "", record.Get("Tags"))
}

func TestParseVibRecordInstallResult(t *testing.T) {
	text := "Installation Result\n" +
		"   Message: Operation finished successfully.\n" +
		"   Reboot Required: false\n" +
		"   VIBs Installed: VMware_bootbank_esx-ui_1.34.0-15603211\n" +
		"   VIBs Removed: VMware_bootbank_esx-ui_1.33.4-14093553\n" +
		"   VIBs Skipped:\n"
	record := ParseVibRecord(text, true)
	assert.Equal(t, "Installation Result", record.Title)
	assert.True(t, record.Has("VIBs Installed"))
	assert.True(t, record.Has("VIBs Removed"))
	assert.False(t, record.Has("VIBs Skipped"))
}

func TestParsePowerState(t *testing.T) {
	assert.True(t, ParsePowerState("Retrieved runtime info\nPowered on\n"))
	assert.False(t, ParsePowerState("Retrieved runtime info\nPowered off\n"))
	assert.False(t, ParsePowerState(""))
}

func TestParseAutostartTwoRecords(t *testing.T) {
	text := `{
key: 'vim.VirtualMachine:4',
startOrder: 1,
startAction: "PowerOn",
},
{
key: 'vim.VirtualMachine:9',
startOrder: -1,
startAction: "PowerOff",
}
`
	entries := ParseAutostart(text, AutostartAllEntries)
	require.Len(t, entries, 2)
	assert.Equal(t, &AutostartEntry{VMID: 4, Order: 1, Action: ActionPowerOn}, entries[4])
	assert.Equal(t, &AutostartEntry{VMID: 9, Order: -1, Action: ActionPowerOff}, entries[9])
}
