package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/OnitiFR/esxictl/cmd/esxictl/esxi"
	"github.com/OnitiFR/esxictl/common"
	"github.com/fatih/color"
)

// PrintResult writes a reconciliation result, as JSON or for humans
func PrintResult(w io.Writer, res *common.Result, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, res)
	}

	green := color.New(color.FgHiGreen).SprintFunc()
	yellow := color.New(color.FgHiYellow).SprintFunc()
	cyan := color.New(color.FgHiCyan).SprintFunc()

	status := green("ok")
	switch {
	case res.Skipped:
		status = cyan("skipped")
	case res.Changed:
		status = yellow("changed")
	}
	fmt.Fprintf(w, "%s: %s\n", status, res.Msg)

	for _, key := range common.SortedKeys(res.Details) {
		printDetail(w, key, res.Details[key])
	}
	return nil
}

func printDetail(w io.Writer, key string, value interface{}) {
	str := common.InterfaceValueToString(value)
	if !strings.Contains(strings.TrimRight(str, "\n"), "\n") {
		fmt.Fprintf(w, "  %s: %s\n", key, strings.TrimRight(str, "\n"))
		return
	}

	fmt.Fprintf(w, "  %s:\n", key)
	for _, line := range strings.Split(strings.TrimRight(str, "\n"), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}

// ReportError writes a fatal error: message, command, return code,
// stdout and stderr when available
func ReportError(w io.Writer, err error, jsonOutput bool) {
	failure := common.APIFailure{
		Failed: true,
		Msg:    err.Error(),
		RC:     -1,
	}

	var cmdErr *esxi.CommandError
	if errors.As(err, &cmdErr) {
		failure.Msg = cmdErr.Msg
		failure.Command = cmdErr.Command
		failure.RC = cmdErr.ExitCode
		failure.Stdout = cmdErr.Stdout
		failure.Stderr = cmdErr.Stderr
	}

	if jsonOutput {
		if jerr := writeJSON(w, failure); jerr != nil {
			fmt.Fprintf(w, "Error: %s\n", err)
		}
		return
	}

	red := color.New(color.FgHiRed).SprintFunc()
	fmt.Fprintf(w, "%s: %s\n", red("failed"), failure.Msg)
	if failure.Command != "" {
		printDetail(w, "cmd", failure.Command)
	}
	if cmdErr != nil {
		printDetail(w, "rc", failure.RC)
		if failure.Stdout != "" {
			printDetail(w, "stdout", failure.Stdout)
		}
		if failure.Stderr != "" {
			printDetail(w, "stderr", failure.Stderr)
		}
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
