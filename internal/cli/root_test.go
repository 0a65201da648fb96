package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	cmd := NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "invoices dev\n", out.String())
}

func TestServeCmd_PassesConfigPath(t *testing.T) {
	var gotPath string
	runApp = func(path string) error {
		gotPath = path
		return errors.New("stopped")
	}
	t.Cleanup(func() { runApp = appRun })

	cmd := NewRootCmdForTest()
	cmd.SetArgs([]string{"serve", "--config", "prod.yaml"})

	require.EqualError(t, cmd.Execute(), "stopped")
	require.Equal(t, "prod.yaml", gotPath)
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	cmd := NewRootCmdForTest()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate"})

	require.Error(t, cmd.Execute())
}
