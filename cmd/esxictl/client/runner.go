package client

import (
	"errors"
	"time"

	"github.com/OnitiFR/esxictl/cmd/esxictl/esxi"
	"golang.org/x/crypto/ssh"
)

// RunnerMode selects how commands reach the host
type RunnerMode int

// Runner modes
const (
	RunnerSSH RunnerMode = iota
	RunnerLocal
	RunnerMock
)

// SSHDialTimeout is the timeout of the SSH connection
const SSHDialTimeout = 15 * time.Second

// NewRunner creates the esxi.Runner for mode. The returned function
// releases the runner resources.
func NewRunner(config *RootConfig, mode RunnerMode, log *esxi.Log) (esxi.Runner, func() error, error) {
	noop := func() error { return nil }

	switch mode {
	case RunnerMock:
		log.Infof("mock mode, using fixtures from %s", config.MockDir)
		return esxi.NewFixtureRunner(config.MockDir, config.Commands, log), noop, nil
	case RunnerLocal:
		return esxi.NewLocalRunner(log), noop, nil
	}

	host := config.Host
	if host == nil {
		return nil, nil, errors.New("no host defined, use --host or a [[host]] in the configuration file")
	}

	auths, err := hostAuthMethods(host)
	if err != nil {
		return nil, nil, err
	}

	hostKeyCallback, err := esxi.HostKeyChecker(host.KnownHosts, host.TrustUnknownHost, log)
	if err != nil {
		return nil, nil, err
	}

	runner := &esxi.SSHRunner{
		User:            host.User,
		Auths:           auths,
		Host:            host.Address,
		Port:            host.Port,
		HostKeyCallback: hostKeyCallback,
		Timeout:         SSHDialTimeout,
		Log:             log,
	}
	return runner, runner.Close, nil
}

// key file, then agent, then password (ESXi usually wants
// keyboard-interactive for passwords)
func hostAuthMethods(host *HostConfig) ([]ssh.AuthMethod, error) {
	var auths []ssh.AuthMethod

	if host.KeyFile != "" {
		auth, err := esxi.PublicKeyFile(host.KeyFile)
		if err != nil {
			return nil, err
		}
		auths = append(auths, auth)
	}

	if auth, ok := esxi.AgentAuth(); ok {
		auths = append(auths, auth)
	}

	if host.Password != "" {
		password := host.Password
		auths = append(auths,
			ssh.Password(password),
			ssh.KeyboardInteractive(func(_ string, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range questions {
					answers[i] = password
				}
				return answers, nil
			}),
		)
	}

	if len(auths) == 0 {
		return nil, errors.New("no SSH authentication method: define key_file or password, or run an ssh-agent")
	}
	return auths, nil
}
