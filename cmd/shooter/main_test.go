package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/config"
)

func TestPlayerName(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("USERNAME", "")
	assert.Equal(t, "Player", playerName(""))

	t.Setenv("USERNAME", "win")
	assert.Equal(t, "win", playerName(""))

	t.Setenv("USER", "unix")
	assert.Equal(t, "unix", playerName(""))
	assert.Equal(t, "ace", playerName("ace"))
}

func TestParseModeFlag(t *testing.T) {
	mode, err := parseModeFlag("", true)
	require.NoError(t, err)
	assert.Equal(t, config.Mode(""), mode)

	_, err = parseModeFlag("", false)
	assert.Error(t, err)

	mode, err = parseModeFlag("HARD", false)
	require.NoError(t, err)
	assert.Equal(t, config.ModeHard, mode)

	_, err = parseModeFlag("nightmare", true)
	assert.ErrorContains(t, err, "nightmare")
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-3", "x"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, "23234", portOf(":23234"))
	assert.Equal(t, "2222", portOf("0.0.0.0:2222"))
	assert.Equal(t, "nonsense", portOf("nonsense"))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"play"}, {"menu"}, {"serve"}, {"modes"}, {"list"},
		{"scores", "list"}, {"scores", "add"}, {"scores", "update"},
		{"scores", "delete"}, {"scores", "clear"}, {"scores", "stats"}, {"scores", "top"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
