package esxi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/OnitiFR/esxictl/common"
	"github.com/c2h5oh/datasize"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// output above this size is truncated (we keep the tail)
const sshOutputMaxSize = 4 * 1024 * 1024

const uploadProgressStep = 16 * 1024 * 1024

// SSHRunner runs commands on the host over a single SSH connection,
// one session per command
type SSHRunner struct {
	User            string
	Auths           []ssh.AuthMethod
	Host            string
	Port            int
	HostKeyCallback ssh.HostKeyCallback
	Timeout         time.Duration
	Client          *ssh.Client
	Log             *Log
}

// Connect will dial the SSH server (only once)
func (r *SSHRunner) Connect() error {
	if r.Client != nil {
		return nil
	}

	sshConfig := &ssh.ClientConfig{
		User:            r.User,
		Auth:            r.Auths,
		HostKeyCallback: r.HostKeyCallback,
		Timeout:         r.Timeout,
	}
	if sshConfig.HostKeyCallback == nil {
		return errors.New("no host key callback defined")
	}

	addr := net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
	r.Log.Tracef("SSH connection to %s@%s", r.User, addr)

	dial, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return fmt.Errorf("failed to dial: %s", err)
	}
	r.Client = dial
	return nil
}

// Close will close the connection
func (r *SSHRunner) Close() error {
	if r.Client == nil {
		return nil
	}
	r.Log.Tracef("SSH closing connection (%s)", r.Host)
	err := r.Client.Close()
	r.Client = nil
	return err
}

// Run executes command in a new SSH session
func (r *SSHRunner) Run(ctx context.Context, command string) (*CommandOutput, error) {
	if err := r.Connect(); err != nil {
		return nil, err
	}

	session, err := r.Client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %s", err)
	}
	defer session.Close()

	stdout := NewOverflowBuffer(sshOutputMaxSize)
	stderr := NewOverflowBuffer(sshOutputMaxSize)
	session.Stdout = stdout
	session.Stderr = stderr

	r.Log.Tracef("ssh: %s", command)

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	var runErr error
	select {
	case runErr = <-done:
	case <-ctx.Done():
		r.Log.Tracef("close request received, closing SSH session (%s)", ctx.Err())
		session.Close()
		return nil, ctx.Err()
	}

	out := &CommandOutput{
		Command: command,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}
	if stdout.Lost() > 0 {
		r.Log.Warningf("stdout truncated, %d bytes lost", stdout.Lost())
	}

	if runErr != nil {
		var exitErr *ssh.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, runErr
		}
		out.ExitCode = exitErr.ExitStatus()
	}

	r.Log.Tracef("ssh: %s", describeOutput(out))
	return out, nil
}

// Upload copies a local file to remotePath on the host using SFTP,
// returns the number of bytes written
func (r *SSHRunner) Upload(ctx context.Context, localPath string, remotePath string) (int64, error) {
	if err := r.Connect(); err != nil {
		return 0, err
	}

	client, err := sftp.NewClient(r.Client)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	src, err := os.Open(localPath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	stat, err := src.Stat()
	if err != nil {
		return 0, err
	}

	dst, err := client.Create(remotePath)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	r.Log.Tracef("sftp: %s → %s", localPath, remotePath)

	// the SFTP protocol has no cancel, we only check before the copy
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	counter := &common.WriteCounter{
		Total: uint64(stat.Size()),
		Step:  uploadProgressStep,
		CB: func(current uint64, total uint64) {
			r.Log.Tracef("sftp: %s/%s",
				(datasize.ByteSize(current) * datasize.B).HR(),
				(datasize.ByteSize(total) * datasize.B).HR(),
			)
		},
	}
	return io.Copy(dst, io.TeeReader(src, counter))
}

// PublicKeyFile returns an AuthMethod using a private key file
func PublicKeyFile(file string) (ssh.AuthMethod, error) {
	buffer, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	key, err := ssh.ParsePrivateKey(buffer)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", file, err)
	}
	return ssh.PublicKeys(key), nil
}

// AgentAuth returns an AuthMethod using the running ssh-agent, if any
func AgentAuth() (ssh.AuthMethod, bool) {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil, false
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, false
	}
	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers), true
}

// HostKeyChecker verifies the host key against a known_hosts file.
// With trustUnknown, a host missing from the file is only a warning
// (a mismatching key is still an error).
func HostKeyChecker(knownHostsFile string, trustUnknown bool, log *Log) (ssh.HostKeyCallback, error) {
	if trustUnknown && (knownHostsFile == "" || !common.PathExist(knownHostsFile)) {
		return func(hostname string, _ net.Addr, _ ssh.PublicKey) error {
			log.Warningf("host key of %s is not checked", hostname)
			return nil
		}, nil
	}

	hostKeyCallback, err := knownhosts.New(knownHostsFile)
	if err != nil {
		return nil, err
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := hostKeyCallback(hostname, remote, key)
		var keyError *knownhosts.KeyError
		if errors.As(err, &keyError) && len(keyError.Want) == 0 && trustUnknown {
			log.Warningf("host key of %s is unknown, authenticity can't be established!", hostname)
			return nil
		}
		return err
	}, nil
}
