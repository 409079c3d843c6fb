package client

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/OnitiFR/esxictl/cmd/esxictl/esxi"
	homedir "github.com/mitchellh/go-homedir"
)

// Default values for [[host]] blocks
const (
	DefaultSSHPort    = 22
	DefaultSSHUser    = "root"
	DefaultKnownHosts = "~/.ssh/known_hosts"
	DefaultUploadDir  = "/tmp"
	DefaultMockDir    = "./mocks"
)

// RootConfig describes client application config parameters
type RootConfig struct {
	ConfigFile string

	Host      *HostConfig
	Trace     bool
	Time      bool
	JSON      bool
	MockDir   string
	PowerRate float64
	Commands  *esxi.CommandSet
}

// HostConfig describes an ESXi host (from config file)
type HostConfig struct {
	Name             string `toml:"name"`
	Address          string `toml:"address"`
	Port             int    `toml:"port"`
	User             string `toml:"user"`
	KeyFile          string `toml:"key_file"`
	Password         string `toml:"password"`
	KnownHosts       string `toml:"known_hosts"`
	TrustUnknownHost bool   `toml:"trust_unknown_host"`
	UploadDir        string `toml:"upload_dir"`
}

type tomlRootConfig struct {
	Trace     bool             `toml:"trace"`
	Time      bool             `toml:"time"`
	JSON      bool             `toml:"json"`
	Default   string           `toml:"default"`
	MockDir   string           `toml:"mock_dir"`
	PowerRate float64          `toml:"power_rate"`
	Host      []*HostConfig    `toml:"host"`
	Commands  *esxi.CommandSet `toml:"commands"`
}

// ConfigOverrides are values given on the command line, nil when unset
type ConfigOverrides struct {
	Host  *string
	Trace *bool
	Time  *bool
	JSON  *bool
}

// NewRootConfig reads configuration from filename and environment.
// Priority: CLI flags, config file, environment.
// RootConfig.Host is nil if no host is defined at all.
func NewRootConfig(filename string, overrides ConfigOverrides) (*RootConfig, error) {
	rootConfig := &RootConfig{}

	envTrace, _ := strconv.ParseBool(os.Getenv("TRACE"))
	envTime, _ := strconv.ParseBool(os.Getenv("TIME"))
	envHost := os.Getenv("HOST")

	tConfig := &tomlRootConfig{
		Trace:   envTrace,
		Time:    envTime,
		Default: envHost,
		MockDir: DefaultMockDir,
	}

	if _, err := os.Stat(filename); err == nil {
		if _, err := toml.DecodeFile(filename, tConfig); err != nil {
			return nil, err
		}
		rootConfig.ConfigFile = filename
	}

	if overrides.Trace != nil {
		tConfig.Trace = *overrides.Trace
	}
	if overrides.Time != nil {
		tConfig.Time = *overrides.Time
	}
	if overrides.JSON != nil {
		tConfig.JSON = *overrides.JSON
	}
	if overrides.Host != nil {
		tConfig.Default = *overrides.Host
	}

	if tConfig.Default == "" && len(tConfig.Host) > 0 {
		tConfig.Default = tConfig.Host[0].Name
	}

	for _, host := range tConfig.Host {
		if host.Name == "" {
			return nil, fmt.Errorf("a [[host]] has no name")
		}
		if host.Name == tConfig.Default {
			if rootConfig.Host != nil {
				return nil, fmt.Errorf("multiple declaration of host '%s'", host.Name)
			}
			rootConfig.Host = host
		}
	}

	if rootConfig.Host == nil && tConfig.Default != "" {
		// not a configured host, use it as an address
		host, err := ParseHostSpec(tConfig.Default)
		if err != nil {
			return nil, err
		}
		rootConfig.Host = host
	}

	if rootConfig.Host != nil {
		if err := rootConfig.Host.applyDefaults(); err != nil {
			return nil, err
		}
	}

	mockDir, err := homedir.Expand(tConfig.MockDir)
	if err != nil {
		return nil, err
	}

	rootConfig.Trace = tConfig.Trace
	rootConfig.Time = tConfig.Time
	rootConfig.JSON = tConfig.JSON
	rootConfig.MockDir = mockDir
	rootConfig.PowerRate = tConfig.PowerRate
	rootConfig.Commands = esxi.DefaultCommandSet().Merge(tConfig.Commands)
	if err := rootConfig.Commands.Validate(); err != nil {
		return nil, err
	}

	return rootConfig, nil
}

func (host *HostConfig) applyDefaults() error {
	if host.Address == "" {
		host.Address = host.Name
	}
	if host.Port == 0 {
		host.Port = DefaultSSHPort
	}
	if host.User == "" {
		host.User = DefaultSSHUser
	}
	if host.KnownHosts == "" {
		host.KnownHosts = DefaultKnownHosts
	}
	if host.UploadDir == "" {
		host.UploadDir = DefaultUploadDir
	}
	if host.Password == "" {
		host.Password = os.Getenv("ESXICTL_PASSWORD")
	}

	var err error
	if host.KeyFile, err = homedir.Expand(host.KeyFile); err != nil {
		return err
	}
	if host.KnownHosts, err = homedir.Expand(host.KnownHosts); err != nil {
		return err
	}
	return nil
}
