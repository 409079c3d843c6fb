package esxi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVMInfoBasic(t *testing.T) {
	cs := DefaultCommandSet()
	runner := newScriptedRunner().on(cs.GetVMList, 0, testVMList, "")

	info, err := ReadVMInfo(context.Background(), runner, cs, VMInfoOptions{}, testLog())
	require.NoError(t, err)
	assert.Len(t, info.VMs, 4)
	assert.Nil(t, info.StartByID)
	assert.Nil(t, info.PowerByID)
	assert.Len(t, runner.executed, 1)

	api := info.API()
	assert.Equal(t, "webserv", api.VMByID["5"])
	assert.Equal(t, 5, api.IDByVM["webserv"])
	assert.Equal(t, "/vmfs/volumes/datastore1/webserv/webserv.vmx", api.PathByVM["webserv"])
	assert.Nil(t, api.StartByVM)
}

func TestReadVMInfoFull(t *testing.T) {
	cs := DefaultCommandSet()
	runner := newScriptedRunner().
		on(cs.GetVMList, 0, testVMList, "").
		on(cs.GetAutoruns, 0, testAutostart, "").
		on(cs.PowerGetStateCommand(1), 0, "Retrieved runtime info\nPowered on\n", "").
		on(cs.PowerGetStateCommand(3), 0, "Retrieved runtime info\nPowered off\n", "").
		on(cs.PowerGetStateCommand(5), 0, "Retrieved runtime info\nPowered on\n", "").
		on(cs.PowerGetStateCommand(7), 1, "", "vim.fault.NotFound")

	info, err := ReadVMInfo(context.Background(), runner, cs, VMInfoOptions{
		StartState: true,
		PowerState: true,
		PowerRate:  1000,
	}, testLog())
	require.NoError(t, err)

	// disabled entries are not part of the start list
	assert.Equal(t, map[int]int{1: 1, 5: 2}, info.StartByID)
	assert.Equal(t, map[int]bool{1: true, 3: false, 5: true, 7: false}, info.PowerByID)

	api := info.API()
	assert.Equal(t, map[string]int{"vcsa": 1, "webserv": 2}, api.StartByVM)
	assert.Equal(t, true, api.PowerByVM["webserv"])

	entries := info.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "vcsa", entries[0].Name)
	assert.Equal(t, 1, entries[0].StartOrder)
	require.NotNil(t, entries[0].PoweredOn)
	assert.True(t, *entries[0].PoweredOn)
	assert.Equal(t, 0, entries[1].StartOrder)
	assert.False(t, *entries[1].PoweredOn)
}

func TestReadVMInfoFailure(t *testing.T) {
	cs := DefaultCommandSet()
	runner := newScriptedRunner().on(cs.GetVMList, 1, "", "fail")

	_, err := ReadVMInfo(context.Background(), runner, cs, VMInfoOptions{}, testLog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to get vm list")
}
