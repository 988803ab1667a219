package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
)

// screen identifies which view a session is showing.
type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full session flow: menu, game and scoreboard.
// It is the top-level model for SSH sessions.
type SessionModel struct {
	config     core.RuntimeConfig
	opts       Options
	current    screen
	menu       MenuModel
	gameModel  *GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(cfg core.RuntimeConfig, opts Options) SessionModel {
	return SessionModel{
		config: cfg,
		opts:   opts,
		menu:   NewMenuModel(cfg, opts),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.current = screenScoreboard
		m.scoreboard = NewScoreboardModel(m.config.ScreenW, m.config.ScreenH, m.opts)
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.config.Mode = selected.Mode.String()
		m.config.Seed = 0 // fresh seed per run

		game := shooter.NewWithConfig(m.opts.Shooter)
		gameModel := NewGameModel(game, m.config, m.opts)
		m.gameModel = &gameModel
		m.current = screenGame

		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when showing scores.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so high scores are current.
func (m *SessionModel) backToMenu() {
	m.current = screenMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.config, m.opts)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScoreboard:
		return m.scoreboard.View()
	}

	return m.menu.View()
}
