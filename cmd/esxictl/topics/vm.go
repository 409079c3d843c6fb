package topics

import (
	"github.com/spf13/cobra"
)

// vmCmd represents the vm command
var vmCmd = &cobra.Command{
	Use:   "vm",
	Short: "Virtual Machines informations",
}

func init() {
	rootCmd.AddCommand(vmCmd)
}
