package topics

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/OnitiFR/esxictl/cmd/esxictl/client"
	"github.com/OnitiFR/esxictl/cmd/esxictl/esxi"
	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
)

// vibCmd represents the "vib" command
var vibCmd = &cobra.Command{
	Use:   "vib <name>",
	Short: "Manage a VIB package",
	Long: `Make sure a VIB package is present, absent, or up to date.

The package source is an URL (or a path on the host), or a local file
uploaded to the host when an install or update is needed.

Examples:
  esxictl vib esx-ui --url https://example.org/esxui-signed.vib
  esxictl vib esx-ui --state latest --file ./esxui-signed.vib
  esxictl vib esx-ui --state absent`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stateStr, _ := cmd.Flags().GetString("state")
		url, _ := cmd.Flags().GetString("url")
		file, _ := cmd.Flags().GetString("file")

		state := esxi.VibState(stateStr)
		switch state {
		case esxi.VibPresent, esxi.VibLatest, esxi.VibAbsent:
		default:
			return fmt.Errorf("invalid state '%s' (valid: %s, %s, %s)", stateStr, esxi.VibPresent, esxi.VibLatest, esxi.VibAbsent)
		}

		if url != "" && file != "" {
			return fmt.Errorf("--url and --file are mutually exclusive")
		}

		if file != "" {
			stat, err := os.Stat(file)
			if err != nil {
				return err
			}
			if stat.IsDir() {
				return fmt.Errorf("%s is a directory", file)
			}
		}

		runner, closeRunner, err := newRunner()
		if err != nil {
			return err
		}
		defer closeRunner()

		req := &esxi.VibRequest{
			Name:      args[0],
			State:     state,
			URL:       url,
			CheckMode: checkMode(),
		}
		if file != "" {
			req.Stage = vibStageFile(runner, file)
		}

		reconciler := esxi.NewVibReconciler(runner, globalConfig.Commands, globalLog)
		res, err := reconciler.Reconcile(cmd.Context(), req)
		if err != nil {
			return err
		}

		return client.PrintResult(os.Stdout, res, globalConfig.JSON)
	},
}

// returns a Stage function making file available to the host
func vibStageFile(runner esxi.Runner, file string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		sshRunner, isSSH := runner.(*esxi.SSHRunner)
		if !isSSH {
			// local or mock: the host sees our filesystem
			return filepath.Abs(file)
		}

		uploadDir := "/tmp"
		if globalConfig.Host != nil && globalConfig.Host.UploadDir != "" {
			uploadDir = globalConfig.Host.UploadDir
		}
		remote := path.Join(uploadDir, filepath.Base(file))

		globalLog.Infof("uploading %s to %s", file, remote)
		size, err := sshRunner.Upload(ctx, file, remote)
		if err != nil {
			return "", err
		}
		globalLog.Infof("%s uploaded", (datasize.ByteSize(size) * datasize.B).HR())

		client.GetExitMessage().Append("uploaded file left on host: %s", remote)
		return remote, nil
	}
}

func vibStateList() string {
	states := []string{string(esxi.VibPresent), string(esxi.VibLatest), string(esxi.VibAbsent)}
	return strings.Join(states, ", ")
}

func init() {
	rootCmd.AddCommand(vibCmd)
	vibCmd.Flags().StringP("state", "s", string(esxi.VibPresent), "wanted state: "+vibStateList())
	vibCmd.Flags().StringP("url", "u", "", "package URL (or path on the host)")
	vibCmd.Flags().StringP("file", "f", "", "local package file, uploaded to the host if needed")
}
