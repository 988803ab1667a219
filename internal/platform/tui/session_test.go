package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/config"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm, cmd
}

func TestSessionPlayAndReturn(t *testing.T) {
	opts := testOptions(t)
	m := NewSessionModel(testRuntime("Hard"), opts)
	assert.Contains(t, m.View(), "S P A C E")

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, m.current)
	require.NotNil(t, m.gameModel)
	require.NotNil(t, cmd)
	assert.Equal(t, "Hard", m.config.Mode)

	gen := m.gameModel.gen
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = sessionUpdate(t, m, TickMsg{Time: time.Now(), Gen: gen})
	assert.Contains(t, m.View(), "Run ended")

	m, _ = sessionUpdate(t, m, keyRunes("b"))
	assert.Equal(t, screenMenu, m.current)
	assert.Nil(t, m.gameModel)

	scores, err := opts.Store.ListScores(config.ModeHard)
	require.NoError(t, err)
	assert.Len(t, scores, 1)

	// a late tick from the finished run is ignored by the menu
	m, cmd = sessionUpdate(t, m, TickMsg{Time: time.Now(), Gen: gen})
	assert.Nil(t, cmd)
	assert.Equal(t, screenMenu, m.current)
}

func TestSessionScoreboard(t *testing.T) {
	opts := testOptions(t)
	_, err := opts.Store.AddScore("ann", config.ModeEasy, 40, time.Minute)
	require.NoError(t, err)

	m := NewSessionModel(testRuntime(""), opts)
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScoreboard, m.current)
	assert.Contains(t, m.View(), "HIGH SCORES")
	assert.Len(t, m.scoreboard.Scores(), 1)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.current)
	assert.Equal(t, 40, m.menu.items[0].HighScore)

	m, cmd := sessionUpdate(t, m, keyRunes("q"))
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestSessionResizeTracksConfig(t *testing.T) {
	m := NewSessionModel(testRuntime(""), testOptions(t))
	m, _ = sessionUpdate(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.config.ScreenW)
	assert.Equal(t, 40, m.menu.Config().ScreenH)
}
