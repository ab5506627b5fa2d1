package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfigCommand builds a config command with a fixed install prefix.
func newTestConfigCommand(format string, args ...string) (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := newConfigCommand(&RootOptions{Format: format}, func() (InstallInfo, error) {
		info := InstallFrom("/opt/fortest")
		info.Version = "1.2.0"
		return info, nil
	})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd, buf
}

func TestConfigCommand_SingleValues(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"--prefix", "/opt/fortest"},
		{"--includedir", "/opt/fortest/include"},
		{"--moddir", "/opt/fortest/include/fortest"},
		{"--libdir", "/opt/fortest/lib"},
		{"--cmake-prefix", "/opt/fortest/lib/cmake/fortest"},
		{"--libs", "-L/opt/fortest/lib -lfortest"},
		{"--version", "1.2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			cmd, buf := newTestConfigCommand("text", tt.flag)
			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestConfigCommand_All(t *testing.T) {
	cmd, buf := newTestConfigCommand("text", "--all")
	require.NoError(t, cmd.Execute())

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "config_all", buf.Bytes())
}

func TestConfigCommand_JSON(t *testing.T) {
	cmd, buf := newTestConfigCommand("json", "--libdir")
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string            `json:"status"`
		Data   map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]string{"library_dir": "/opt/fortest/lib"}, resp.Data)
}

func TestConfigCommand_NoOption(t *testing.T) {
	cmd, buf := newTestConfigCommand("text")
	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "--cmake-prefix")
}

func TestConfigCommand_TooManyOptions(t *testing.T) {
	cmd, _ := newTestConfigCommand("text", "--prefix", "--libs")
	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDetectInstall_PrefixFromEnv(t *testing.T) {
	t.Setenv(PrefixEnvVar, "/usr/local")

	info, err := DetectInstall()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local", info.Prefix)
	assert.Equal(t, "-L/usr/local/lib -lfortest", info.Libs)
}
