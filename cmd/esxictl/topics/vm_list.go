package topics

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/OnitiFR/esxictl/cmd/esxictl/client"
	"github.com/OnitiFR/esxictl/cmd/esxictl/esxi"
	"github.com/OnitiFR/esxictl/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// vmListCmd represents the "vm list" command
var vmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all VMs",
	Long: `List VMs registered on the host, with their startup position
and power state if requested.

With --json, --facts outputs lookup maps (vm_by_id, id_by_vm, path_by_vm,
start_by_vm, power_by_vm) instead of a list.

Search expressions use VM variables: id, name, datastore, path, guest_os,
hw_version, start_order, autostart, powered_on, and functions like(glob),
on_datastore(name), strlen(str).

Examples:
  esxictl vm list --start --power
  esxictl vm list --like 'web*' --basic
  esxictl vm list --start --search 'autostart && start_order < 3'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetBool("start")
		power, _ := cmd.Flags().GetBool("power")
		basic, _ := cmd.Flags().GetBool("basic")
		facts, _ := cmd.Flags().GetBool("facts")
		search, _ := cmd.Flags().GetString("search")
		like, _ := cmd.Flags().GetString("like")

		if basic {
			client.GetExitMessage().Disable()
		}

		runner, closeRunner, err := newRunner()
		if err != nil {
			return err
		}
		defer closeRunner()

		info, err := esxi.ReadVMInfo(cmd.Context(), runner, globalConfig.Commands, esxi.VMInfoOptions{
			StartState: start,
			PowerState: power,
			PowerRate:  globalConfig.PowerRate,
		}, globalLog)
		if err != nil {
			return err
		}

		if globalConfig.JSON && facts {
			return json.NewEncoder(os.Stdout).Encode(info.API())
		}

		entries := info.Entries()
		if like != "" {
			entries = client.LikeVMs(entries, like)
		}
		if search != "" {
			entries, err = client.SearchVMs(entries, search)
			if err != nil {
				return err
			}
		}

		switch {
		case globalConfig.JSON:
			return json.NewEncoder(os.Stdout).Encode(entries)
		case basic:
			for _, entry := range entries {
				fmt.Println(entry.Name)
			}
		default:
			printVMTable(entries, start, power)
		}
		return nil
	},
}

func printVMTable(entries common.APIVMListEntries, start bool, power bool) {
	if len(entries) == 0 {
		fmt.Printf("No VM found.\n")
		return
	}

	red := color.New(color.FgHiRed).SprintFunc()
	green := color.New(color.FgHiGreen).SprintFunc()

	headers := []string{"ID", "Name", "Guest OS", "HW"}
	if start {
		headers = append(headers, "Start")
	}
	if power {
		headers = append(headers, "Power")
	}

	strData := [][]string{}
	for _, entry := range entries {
		line := []string{
			strconv.Itoa(entry.ID),
			entry.Name,
			entry.GuestOS,
			entry.HWVersion,
		}
		if start {
			pos := "-"
			if entry.StartOrder > 0 {
				pos = strconv.Itoa(entry.StartOrder)
			}
			line = append(line, pos)
		}
		if power {
			state := "?"
			if entry.PoweredOn != nil {
				state = red("off")
				if *entry.PoweredOn {
					state = green("on")
				}
			}
			line = append(line, state)
		}
		line = append(line, entry.Path)
		strData = append(strData, line)
	}

	// path is the last column, shortened to fit the terminal
	headers = append(headers, "Path")
	client.RenderTableTruncateCol(os.Stdout, len(headers)-1, headers, strData)
}

func init() {
	vmCmd.AddCommand(vmListCmd)
	vmListCmd.Flags().BoolP("start", "s", false, "show startup position (slower)")
	vmListCmd.Flags().BoolP("power", "p", false, "show power state (slower, one query per VM)")
	vmListCmd.Flags().BoolP("basic", "b", false, "show basic list, without any formating")
	vmListCmd.Flags().BoolP("facts", "f", false, "with --json, output lookup maps instead of a list")
	vmListCmd.Flags().StringP("search", "q", "", "filter VMs with an expression")
	vmListCmd.Flags().StringP("like", "l", "", "filter VM names with a glob pattern")
}
