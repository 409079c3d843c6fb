package topics

import (
	"errors"
	"os"

	"github.com/OnitiFR/esxictl/cmd/esxictl/client"
	"github.com/OnitiFR/esxictl/cmd/esxictl/esxi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// autostartCmd represents the "autostart" command
var autostartCmd = &cobra.Command{
	Use:   "autostart <vm-name>",
	Short: "Manage VM autostart with the host",
	Long: `Make sure a VM is (or is not) part of the host startup list.

The VM is added at the requested position, or kept at its current
position, or appended at the end of the list. Only one command is sent
to the host, and none if the VM is already in the requested state.

Examples:
  esxictl autostart web1
  esxictl autostart web1 --order 2
  esxictl autostart web1 --enabled=false
  esxictl autostart old-vm --skip --enabled=false`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := autostartRequestFromFlags(cmd.Flags(), args[0])
		if err != nil {
			return err
		}
		req.DryRun = checkMode()

		runner, closeRunner, err := newRunner()
		if err != nil {
			return err
		}
		defer closeRunner()

		reconciler := esxi.NewAutostartReconciler(runner, globalConfig.Commands, globalLog)
		res, err := reconciler.Reconcile(cmd.Context(), req)
		if err != nil {
			return err
		}

		return client.PrintResult(os.Stdout, res, globalConfig.JSON)
	},
}

// --autostart is an alias of --enabled
func autostartFlagNormalize(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "autostart" {
		name = "enabled"
	}
	return pflag.NormalizedName(name)
}

func addAutostartFlags(flags *pflag.FlagSet) {
	flags.BoolP("enabled", "e", true, "VM starts with the host (alias: --autostart)")
	flags.IntP("order", "o", 0, "position in the startup list (default: keep or append)")
	flags.BoolP("skip", "s", false, "do not fail if the VM does not exist")
	flags.SetNormalizeFunc(autostartFlagNormalize)
}

// an explicit order must be positive, 0 is "unset"
func autostartRequestFromFlags(flags *pflag.FlagSet, name string) (*esxi.AutostartRequest, error) {
	enabled, _ := flags.GetBool("enabled")
	order, _ := flags.GetInt("order")
	skip, _ := flags.GetBool("skip")

	if flags.Lookup("order").Changed && order < 1 {
		return nil, errors.New("--order must be greater than 0")
	}

	return &esxi.AutostartRequest{
		Name:    name,
		Enabled: enabled,
		Order:   order,
		Skip:    skip,
	}, nil
}

func init() {
	rootCmd.AddCommand(autostartCmd)
	addAutostartFlags(autostartCmd.Flags())
}
