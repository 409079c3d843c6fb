package topics

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/OnitiFR/esxictl/cmd/esxictl/client"
	"github.com/OnitiFR/esxictl/cmd/esxictl/esxi"
	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var globalHome string
var globalCfgFile string

var globalConfig *client.RootConfig
var globalLog *esxi.Log

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "esxictl",
	Short: "Stand-alone ESXi host management",
	Long: `esxictl manages a stand-alone ESXi host (no vCenter) over SSH,
using vim-cmd and esxcli: VM autostart, VIB packages and VM listing.
Every command is idempotent: it only changes what needs to be changed.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s\n\n", cmd.Short)
		fmt.Printf("%s\n\n", cmd.Long)
		fmt.Printf("Use --help to list commands and options.\n\n")
		if globalConfig.ConfigFile != "" {
			host := "(none)"
			if globalConfig.Host != nil {
				host = globalConfig.Host.Name
			}
			fmt.Printf("configuration file '%s', host '%s'\n",
				globalConfig.ConfigFile,
				host,
			)
		} else {
			fmt.Printf(`No configuration file found (%s).

Example:
[[host]]
name = "nest1"
address = "192.168.10.20"
user = "root"
key_file = "~/.ssh/id_ed25519"

You can define multiple hosts and use -H option to select one, or use
default = "nest1" as a global setting (i.e. before [[host]]).
First host is the default. -H also accepts [user@]address[:port].

Global settings: trace, time, json, mock_dir, power_rate, [commands]
Note: you can also use environment variables (TRACE, TIME, HOST,
ESXICTL_PASSWORD), and a .env file in the current directory.
------
`, path.Clean(globalHome+"/.esxictl.toml"))
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	var err error
	globalHome, err = homedir.Dir()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = rootCmd.ExecuteContext(ctx)
	if err != nil {
		jsonOutput := globalConfig != nil && globalConfig.JSON
		out := os.Stderr
		if jsonOutput {
			out = os.Stdout
		}
		client.ReportError(out, err, jsonOutput)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&globalCfgFile, "config", "c", "", "config file (default is $HOME/.esxictl.toml)")

	rootCmd.PersistentFlags().StringP("host", "H", "", "selected host in the config file, or [user@]address[:port]")
	rootCmd.PersistentFlags().BoolP("trace", "t", false, "show TRACE messages (commands, debug)")
	rootCmd.PersistentFlags().BoolP("time", "d", false, "show timestamps on messages")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "JSON output")
	rootCmd.PersistentFlags().BoolP("check", "n", false, "check mode: report what would change, change nothing (vib --file still uploads the package)")
	rootCmd.PersistentFlags().BoolP("mock", "m", false, "read host state from fixture files (see mock_dir)")
	rootCmd.PersistentFlags().Bool("local", false, "run commands locally (esxictl running in the ESXi shell)")

	rootCmd.BashCompletionFunction = bashCompletionFunc
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// a missing .env is fine
	_ = godotenv.Load()

	cfgFile := globalCfgFile
	if cfgFile == "" {
		cfgFile = path.Clean(globalHome + "/.esxictl.toml")
	}

	var err error
	globalConfig, err = NewRootConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}

	target := ""
	if globalConfig.Host != nil {
		target = globalConfig.Host.Name
	}
	globalLog = esxi.NewLog(target, os.Stderr, globalConfig.Trace)
	globalLog.SetTime(globalConfig.Time)

	if globalConfig.JSON {
		client.GetExitMessage().Disable()
	}
}
