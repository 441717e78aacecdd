package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, version+"\n", out.String())
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCmd()

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
	assert.Empty(t, flag.DefValue)
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"unexpected"})

	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestRun_MissingConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))

	err := run(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrLoadConfig)
}
