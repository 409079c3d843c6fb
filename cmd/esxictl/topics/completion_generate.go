package topics

import (
	"os"

	"github.com/spf13/cobra"
)

// completionGenerateCmd represents the "completion generate" command
var completionGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Actually generates bash completion (see 'esxictl completion')",
	RunE: func(_ *cobra.Command, _ []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

func init() {
	completionCmd.AddCommand(completionGenerateCmd)
}
