package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

// DefaultPlayer is recorded when no player name is known.
const DefaultPlayer = "Player"

// Options carries the collaborators shared by the game, menu and
// scoreboard screens.
type Options struct {
	// Store receives finished runs. Nil disables persistence.
	Store *storage.Store

	// Player is the name recorded with each run.
	Player string

	// Shooter is the gameplay configuration for runs and the mode menu.
	Shooter config.ShooterConfig

	// Sink receives gameplay events, e.g. the audio sink. May be nil.
	Sink core.EventSink

	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

func (o Options) player() string {
	if o.Player == "" {
		return DefaultPlayer
	}
	return o.Player
}

// GameModel is the Bubble Tea model for running a game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	sink       core.EventSink
	keyMapper  *KeyMapper
	tracker    *InputTracker
	gen        int64
	lastTick   time.Time
	gameState  core.GameState
	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	runSaved   bool // whether the current run has been recorded
	lastRunID  int64
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := orDiscard(opts.Logger)
	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		opts:      opts,
		logger:    logger,
		sink:      core.MultiSink{opts.Sink, NewEventLogger(logger)},
		keyMapper: NewKeyMapper(),
		tracker:   NewInputTracker(),
		gen:       nextTickGen(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("run started", "game", m.game.ID(), "mode", m.config.Mode, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen || m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.endRun()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to the menu is allowed once the run is over or paused.
	// Leaving a paused run ends it so the score is still recorded.
	if action == core.ActionBack {
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		m.endRun()
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.tracker.Press(action, time.Now())
	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := tickDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now
	frame := m.tracker.Frame(now)

	// Restart with a fresh seed
	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.tracker.Reset()
		m.logger.Info("run restarted", "mode", m.config.Mode, "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	result := m.game.Step(frame, dt)
	m.gameState = result.State
	core.Dispatch(m.sink, result.Events)

	if m.gameState.GameOver {
		m.recordRun()
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// endRun finishes a live run on request and records it.
func (m *GameModel) endRun() {
	if m.gameState.GameOver || m.runSaved {
		return
	}
	q, ok := m.game.(registry.Quitter)
	if !ok {
		return
	}
	core.Dispatch(m.sink, q.Quit())
	m.gameState = m.game.State()
	m.recordRun()
}

// recordRun saves the finished run once.
func (m *GameModel) recordRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	rep, ok := m.game.(registry.RunReporter)
	if !ok {
		return
	}
	res, ok := rep.Result()
	if !ok {
		return
	}

	m.logger.Info("run ended",
		"mode", res.Mode,
		"score", res.Score,
		"ticks", res.Ticks,
		"duration", res.Duration.Round(time.Millisecond),
		"reason", res.Reason,
	)

	if m.opts.Store == nil {
		return
	}
	id, err := m.opts.Store.SaveRun(storage.RunRecord{
		Player:   m.opts.player(),
		Mode:     config.ParseMode(res.Mode),
		Score:    res.Score,
		Duration: res.Duration,
		Ticks:    res.Ticks,
	})
	if err != nil {
		m.logger.Error("cannot save run", "error", err)
		return
	}
	m.lastRunID = id
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the scoreboard id of the last recorded run, or 0.
func (m GameModel) LastRunID() int64 {
	return m.lastRunID
}

// Run plays a single game until the user quits or asks for the menu.
// Returns true if user wants to go back to menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (goBack bool, err error) {
	model := NewGameModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}

	return m.BackToMenu(), nil
}
