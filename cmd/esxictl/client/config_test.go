package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
trace = true
power_rate = 5.0
mock_dir = "/tmp/mocks"

[[host]]
name = "esx1"
address = "192.168.10.20"
key_file = "/home/me/.ssh/id_ed25519"

[[host]]
name = "esx2"
user = "admin"
port = 2222
trust_unknown_host = true

[commands]
get_vmlist = "cat /tmp/getallvms.txt"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "esxictl.toml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0600))
	return filename
}

func clearConfigEnv(t *testing.T) {
	t.Setenv("TRACE", "")
	t.Setenv("TIME", "")
	t.Setenv("HOST", "")
	t.Setenv("ESXICTL_PASSWORD", "")
}

func TestConfigFirstHostIsDefault(t *testing.T) {
	clearConfigEnv(t)
	filename := writeTestConfig(t, testConfig)

	config, err := NewRootConfig(filename, ConfigOverrides{})
	require.NoError(t, err)

	assert.Equal(t, filename, config.ConfigFile)
	assert.True(t, config.Trace)
	assert.Equal(t, 5.0, config.PowerRate)
	assert.Equal(t, "/tmp/mocks", config.MockDir)

	require.NotNil(t, config.Host)
	assert.Equal(t, "esx1", config.Host.Name)
	assert.Equal(t, "192.168.10.20", config.Host.Address)
	assert.Equal(t, DefaultSSHPort, config.Host.Port)
	assert.Equal(t, DefaultSSHUser, config.Host.User)
	assert.Equal(t, DefaultUploadDir, config.Host.UploadDir)

	assert.Equal(t, "cat /tmp/getallvms.txt", config.Commands.GetVMList)
	assert.Equal(t, "vim-cmd hostsvc/autostartmanager/get_autostartseq", config.Commands.GetAutoruns)
}

func TestConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	filename := writeTestConfig(t, testConfig)

	host := "esx2"
	trace := false
	config, err := NewRootConfig(filename, ConfigOverrides{Host: &host, Trace: &trace})
	require.NoError(t, err)

	assert.False(t, config.Trace)
	require.NotNil(t, config.Host)
	assert.Equal(t, "esx2", config.Host.Address)
	assert.Equal(t, "admin", config.Host.User)
	assert.Equal(t, 2222, config.Host.Port)
	assert.True(t, config.Host.TrustUnknownHost)
}

func TestConfigEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HOST", "esx2")
	t.Setenv("ESXICTL_PASSWORD", "secret")
	filename := writeTestConfig(t, testConfig)

	config, err := NewRootConfig(filename, ConfigOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "esx2", config.Host.Name)
	assert.Equal(t, "secret", config.Host.Password)
}

func TestConfigHostSpec(t *testing.T) {
	clearConfigEnv(t)
	filename := writeTestConfig(t, testConfig)

	spec := "ops@10.0.0.5:2200"
	config, err := NewRootConfig(filename, ConfigOverrides{Host: &spec})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", config.Host.Address)
	assert.Equal(t, "ops", config.Host.User)
	assert.Equal(t, 2200, config.Host.Port)
}

func TestConfigNoFile(t *testing.T) {
	clearConfigEnv(t)
	config, err := NewRootConfig(filepath.Join(t.TempDir(), "missing.toml"), ConfigOverrides{})
	require.NoError(t, err)
	assert.Empty(t, config.ConfigFile)
	assert.Nil(t, config.Host)
	assert.Equal(t, "vim-cmd vmsvc/getallvms", config.Commands.GetVMList)
}

func TestConfigErrors(t *testing.T) {
	clearConfigEnv(t)

	_, err := NewRootConfig(writeTestConfig(t, "[[host]]\naddress = \"1.2.3.4\"\n"), ConfigOverrides{})
	assert.Error(t, err)

	_, err = NewRootConfig(writeTestConfig(t, "[[host]]\nname = \"a\"\n[[host]]\nname = \"a\"\n"), ConfigOverrides{})
	assert.Error(t, err)

	_, err = NewRootConfig(writeTestConfig(t, "trace = \"maybe\n"), ConfigOverrides{})
	assert.Error(t, err)
}

func TestParseHostSpec(t *testing.T) {
	host, err := ParseHostSpec("esx.example.org")
	require.NoError(t, err)
	assert.Equal(t, "esx.example.org", host.Address)
	assert.Empty(t, host.User)
	assert.Equal(t, 0, host.Port)

	host, err = ParseHostSpec("root@[fd00::1]:22")
	require.NoError(t, err)
	assert.Equal(t, "root", host.User)
	assert.Equal(t, "fd00::1", host.Address)
	assert.Equal(t, 22, host.Port)

	_, err = ParseHostSpec("root@esx:http")
	assert.Error(t, err)

	_, err = ParseHostSpec("root@")
	assert.Error(t, err)
}

func TestConfigInvalidCommand(t *testing.T) {
	clearConfigEnv(t)
	_, err := NewRootConfig(writeTestConfig(t, "[commands]\nvib_get = \"esxcli software vib get -n {vib}\"\n"), ConfigOverrides{})
	assert.EqualError(t, err, "command vib_get: unknown placeholder {vib}")
}
