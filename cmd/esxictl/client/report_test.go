package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/OnitiFR/esxictl/cmd/esxictl/esxi"
	"github.com/OnitiFR/esxictl/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestPrintResult(t *testing.T) {
	res := common.NewResult()
	res.Changed = true
	res.Msg = "autostart added at pos 3"
	res.Details["vm_id"] = 7
	res.Details["cmd_out"] = "line1\nline2\n"

	var buf bytes.Buffer
	require.NoError(t, PrintResult(&buf, res, false))
	assert.Equal(t, "changed: autostart added at pos 3\n"+
		"  cmd_out:\n"+
		"    line1\n"+
		"    line2\n"+
		"  vm_id: 7\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintResult(&buf, res, true))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["changed"])
	assert.Equal(t, 7.0, decoded["vm_id"])
}

func TestPrintResultSkipped(t *testing.T) {
	res := common.NewResult()
	res.Skipped = true
	res.Msg = "VM ghost not found, skipping"

	var buf bytes.Buffer
	require.NoError(t, PrintResult(&buf, res, false))
	assert.Equal(t, "skipped: VM ghost not found, skipping\n", buf.String())
}

func TestReportError(t *testing.T) {
	err := &esxi.CommandError{
		Msg:      "unable to perform changes",
		Command:  "vim-cmd hostsvc/autostartmanager/update_autostartentry 1",
		ExitCode: 1,
		Stderr:   "denied",
	}

	var buf bytes.Buffer
	ReportError(&buf, err, true)
	var failure common.APIFailure
	require.NoError(t, json.Unmarshal(buf.Bytes(), &failure))
	assert.True(t, failure.Failed)
	assert.Equal(t, "unable to perform changes", failure.Msg)
	assert.Equal(t, 1, failure.RC)
	assert.Equal(t, "denied", failure.Stderr)

	buf.Reset()
	ReportError(&buf, err, false)
	assert.Contains(t, buf.String(), "failed: unable to perform changes\n")
	assert.Contains(t, buf.String(), "  rc: 1\n")
	assert.Contains(t, buf.String(), "  stderr: denied\n")
	assert.NotContains(t, buf.String(), "stdout")

	buf.Reset()
	ReportError(&buf, errors.New("no host defined"), true)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &failure))
	assert.Equal(t, "no host defined", failure.Msg)
	assert.Equal(t, -1, failure.RC)
}
