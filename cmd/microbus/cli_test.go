package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseArgs_DefaultsToRun(t *testing.T) {
	opts, err := parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, commandRun, opts.Type)
}

func Test_ParseArgs_RunSubcommandWithProfile(t *testing.T) {
	opts, err := parseArgs([]string{"run", "--profile", "producer,collector"})
	require.NoError(t, err)
	assert.Equal(t, commandRun, opts.Type)
	assert.Equal(t, "producer,collector", opts.Profile)
}

func Test_ParseArgs_InspectSubcommand(t *testing.T) {
	opts, err := parseArgs([]string{"inspect"})
	require.NoError(t, err)
	assert.Equal(t, commandInspect, opts.Type)
}

func Test_ParseArgs_VersionSubcommand(t *testing.T) {
	opts, err := parseArgs([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, commandVersion, opts.Type)
}

func Test_ParseArgs_ConfigFlagPropagates(t *testing.T) {
	opts, err := parseArgs([]string{"run", "--config", "/tmp/custom.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", opts.ConfigPath)
}

func Test_ParseArgs_UnknownSubcommandErrors(t *testing.T) {
	_, err := parseArgs([]string{"bogus"})
	assert.Error(t, err)
}
