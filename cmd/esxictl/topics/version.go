package topics

import (
	"fmt"

	"github.com/OnitiFR/esxictl/cmd/esxictl/client"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version",
	Long: `Display client version. You can also add the host
software version to the result.

Examples:
  esxictl version
  esxictl version --remote`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("client version: %s\n", client.Version)

		remote, _ := cmd.Flags().GetBool("remote")
		if !remote {
			return nil
		}

		runner, closeRunner, err := newRunner()
		if err != nil {
			return err
		}
		defer closeRunner()

		out, err := runner.Run(cmd.Context(), globalConfig.Commands.HostVersion)
		if err != nil {
			return err
		}
		if out.ExitCode != 0 {
			return fmt.Errorf("unable to get host version [rc=%d]: %s", out.ExitCode, out.Stderr)
		}
		fmt.Printf("host version: %s", out.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("remote", "r", false, "also show host version")
}
