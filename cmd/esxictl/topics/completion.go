package topics

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// completionCmd represents the "completion" command
var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generates bash completion",
	Long: `esxictl can provide bash completion for commands, VM names and hosts.
To load completion, run:

. <({{esxictl}} completion generate)

To configure your bash shell to load completions for each session;
add this line to your ~/.bashrc or ~/.profile file.
`,
}

func init() {
	binaryPath, _ := os.Executable()

	if os.PathSeparator == '\\' {
		binaryPath = strings.Replace(binaryPath, "\\", "/", -1)
	}

	completionCmd.Long = strings.Replace(completionCmd.Long, "{{esxictl}}", binaryPath, -1)
	rootCmd.AddCommand(completionCmd)
}
