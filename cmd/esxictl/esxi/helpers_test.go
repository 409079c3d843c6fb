package esxi

import (
	"context"
	"fmt"
	"io"
)

const testVMList = `Vmid         Name                         File                           Guest OS          Version   Annotation
1      vcsa          [datastore1] vcsa/vcsa.vmx           other3xLinux64Guest   vmx-10    VMware vCenter Server Appliance
3      oldvm         [datastore2] oldvm/oldvm.vmx         debian8_64Guest       vmx-11
this annotation spans two lines
5      webserv       [datastore1] webserv/webserv.vmx     debian10_64Guest      vmx-14
7      newvm         [datastore1] newvm/newvm.vmx         debian10_64Guest      vmx-14

`

const testAutostart = `(vim.host.AutoStartManager.AutoPowerInfo) [
   (vim.host.AutoStartManager.AutoPowerInfo) {
      key = 'vim.VirtualMachine:1',
      startOrder = 1,
      startDelay = 120,
      waitForHeartbeat = "systemDefault",
      startAction = "PowerOn",
      stopDelay = 120,
      stopAction = "systemDefault"
   },
   (vim.host.AutoStartManager.AutoPowerInfo) {
      key = 'vim.VirtualMachine:3',
      startOrder = -1,
      startDelay = 120,
      waitForHeartbeat = "systemDefault",
      startAction = "PowerOff",
      stopDelay = 120,
      stopAction = "systemDefault"
   },
   (vim.host.AutoStartManager.AutoPowerInfo) {
      key = 'vim.VirtualMachine:5',
      startOrder = 2,
      startDelay = 120,
      waitForHeartbeat = "systemDefault",
      startAction = "powerOn",
      stopDelay = 120,
      stopAction = "systemDefault"
   }
]
`

// scriptedRunner answers with canned outputs and records every command
type scriptedRunner struct {
	outputs  map[string][]*CommandOutput
	executed []string
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{
		outputs: make(map[string][]*CommandOutput),
	}
}

// on queues an answer for command, successive calls get successive
// answers (the last one is repeated)
func (r *scriptedRunner) on(command string, rc int, stdout string, stderr string) *scriptedRunner {
	r.outputs[command] = append(r.outputs[command], &CommandOutput{
		Command:  command,
		ExitCode: rc,
		Stdout:   stdout,
		Stderr:   stderr,
	})
	return r
}

func (r *scriptedRunner) Run(_ context.Context, command string) (*CommandOutput, error) {
	r.executed = append(r.executed, command)
	outs, exists := r.outputs[command]
	if !exists {
		return nil, fmt.Errorf("unexpected command: %s", command)
	}
	out := outs[0]
	if len(outs) > 1 {
		r.outputs[command] = outs[1:]
	}
	return out, nil
}

func testLog() *Log {
	return NewLog("test", io.Discard, true)
}

func testSnapshot() *Snapshot {
	return NewSnapshot(ParseVMList(testVMList), ParseAutostart(testAutostart, AutostartAllEntries))
}
