package topics

import (
	"strconv"

	"github.com/OnitiFR/esxictl/cmd/esxictl/client"
	"github.com/OnitiFR/esxictl/cmd/esxictl/esxi"
)

// NewRootConfig reads configuration from filename and
// environment, with CLI flags on top.
func NewRootConfig(filename string) (*client.RootConfig, error) {
	overrides := client.ConfigOverrides{}

	flags := rootCmd.PersistentFlags()
	flagTrace := flags.Lookup("trace")
	flagTime := flags.Lookup("time")
	flagJSON := flags.Lookup("json")
	flagHost := flags.Lookup("host")

	if flagTrace.Changed {
		trace, _ := strconv.ParseBool(flagTrace.Value.String())
		overrides.Trace = &trace
	}
	if flagTime.Changed {
		time, _ := strconv.ParseBool(flagTime.Value.String())
		overrides.Time = &time
	}
	if flagJSON.Changed {
		json, _ := strconv.ParseBool(flagJSON.Value.String())
		overrides.JSON = &json
	}
	if flagHost.Changed {
		host := flagHost.Value.String()
		overrides.Host = &host
	}

	return client.NewRootConfig(filename, overrides)
}

// newRunner returns a runner according to --mock and --local flags
func newRunner() (esxi.Runner, func() error, error) {
	flags := rootCmd.PersistentFlags()
	mock, _ := flags.GetBool("mock")
	local, _ := flags.GetBool("local")

	mode := client.RunnerSSH
	switch {
	case mock:
		mode = client.RunnerMock
	case local:
		mode = client.RunnerLocal
	}
	return client.NewRunner(globalConfig, mode, globalLog)
}

func checkMode() bool {
	check, _ := rootCmd.PersistentFlags().GetBool("check")
	return check
}
