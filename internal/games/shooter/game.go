// Package shooter implements the space shooter: a ship at the bottom of
// the field fires upward at enemies descending from the top.
//
// The simulation (Controller and its components) works in field units
// and knows nothing about terminals. Game adapts it to the registry
// interface and renders it onto a cell screen.
package shooter

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	PlayerNose   = '▲'
	BulletChar   = '|'
	CircleChar   = 'O'
	TriangleChar = '▼'
	AsteroidChar = '@'
	LifeChar     = '♥'
)

// Minimum screen size in cells.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements registry.Game for the shooter.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.ShooterConfig
	cfgErr   error
	fixedCfg bool
	ctrl     *Controller
	stars    *Starfield
	paused   bool
	tooSmall bool
}

// New creates a new shooter game instance.
func New() *Game {
	return &Game{cfg: config.DefaultShooterConfig()}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(cfg config.ShooterConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("shooter", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "shooter"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Space Shooter"
}

// ConfigError returns the error from the last config load, if any.
// The game falls back to defaults when loading fails.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Reset starts a new run in the mode named by runtime.Mode.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadShooter(configPath)
		g.cfg, g.cfgErr = cfg, err
	}

	mode := config.ParseMode(runtime.Mode)
	g.runtime.Mode = mode.String()
	g.ctrl = NewController(mode, g.cfg, runtime)
	g.stars = NewStarfield(runtime.Seed)
	g.paused = false
	g.tooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH
}

// Resize records a new screen size. The run continues; rendering scales
// the field to whatever fits.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.tooSmall = width < MinScreenW || height < MinScreenH
}

// Controller exposes the running simulation.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// Step advances the game by dt nominal ticks.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.ctrl == nil {
		return core.StepResult{State: g.State()}
	}

	over := g.ctrl.State().Phase.Terminal()

	// Handle restart
	if in.Has(core.ActionRestart) && over {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}

	// A quit request ends the run even while paused.
	if in.Has(core.ActionQuit) && !over {
		g.paused = false
		g.ctrl.Quit()
		return core.StepResult{State: g.State(), Events: g.ctrl.Drain()}
	}

	if g.paused || over || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	out := g.ctrl.Step(InputFromFrame(in), dt)
	return core.StepResult{State: g.State(), Events: out.Events}
}

// InputFromFrame maps platform actions onto simulation input.
func InputFromFrame(in core.InputFrame) Input {
	return Input{
		MoveLeft:  in.Has(core.ActionLeft),
		MoveRight: in.Has(core.ActionRight),
		MoveUp:    in.Has(core.ActionUp),
		MoveDown:  in.Has(core.ActionDown),
		Fire:      in.Has(core.ActionFire),
		Quit:      in.Has(core.ActionQuit),
	}
}

// Quit ends a live run and returns the events it produced.
func (g *Game) Quit() []core.Event {
	if g.ctrl == nil {
		return nil
	}
	g.ctrl.Quit()
	return g.ctrl.Drain()
}

// Result returns the outcome of the finished run.
func (g *Game) Result() (core.RunResult, bool) {
	if g.ctrl == nil {
		return core.RunResult{}, false
	}
	return g.ctrl.Result()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	s := g.ctrl.State()
	return core.GameState{
		Score:    s.Score,
		Lives:    s.Lives,
		Mode:     g.runtime.Mode,
		GameOver: s.Phase.Terminal(),
		Paused:   g.paused,
	}
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.ctrl == nil {
		return
	}

	snap := g.ctrl.Snapshot()
	g.renderHUD(dst, snap)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need at least %dx%d", MinScreenW, MinScreenH))
		return
	}

	frame := core.NewRect(0, 2, dst.Width(), dst.Height()-2)
	dst.DrawBox(frame)
	area := core.NewRect(frame.X+1, frame.Y+1, frame.W-2, frame.H-2)

	g.stars.Draw(dst, area, snap.Elapsed)

	v := newViewport(area, snap.FieldW, snap.FieldH)
	for _, e := range snap.Enemies {
		glyph, color := enemyGlyph(e.Shape)
		v.fill(dst, e.Box, glyph, color)
	}
	for _, b := range snap.Bullets {
		v.fill(dst, b, BulletChar, core.ColorBrightYellow)
	}
	v.fill(dst, snap.Player, PlayerChar, core.ColorBrightCyan)
	pr := v.cells(snap.Player)
	v.set(dst, pr.X+pr.W/2, pr.Y, PlayerNose, core.ColorBrightWhite)

	switch {
	case snap.Phase == PhaseGameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  R restart  B menu", snap.Score))
	case snap.Phase == PhaseAborted:
		g.renderOverlay(dst, "Run ended", fmt.Sprintf("Score: %d  R restart  B menu", snap.Score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" Space Shooter | Mode: %s | Score: %d | Lives: ", snap.Mode, snap.Score)
	dst.DrawText(0, 0, hud)
	lives := strings.Repeat(string(LifeChar), snap.Lives)
	dst.DrawTextColored(len([]rune(hud)), 0, lives, core.ColorBrightRed)

	// Draw separator
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := len([]rune(line1))
	if n := len([]rune(line2)); n > maxLen {
		maxLen = n
	}
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

func enemyGlyph(s Shape) (rune, core.Color) {
	switch s {
	case ShapeTriangle:
		return TriangleChar, core.ColorMagenta
	case ShapeAsteroid:
		return AsteroidChar, core.ColorOrange
	default:
		return CircleChar, core.ColorRed
	}
}

// viewport maps field units onto a cell area.
type viewport struct {
	area   core.Rect
	sx, sy float64
}

func newViewport(area core.Rect, fieldW, fieldH float64) viewport {
	return viewport{
		area: area,
		sx:   float64(area.W) / fieldW,
		sy:   float64(area.H) / fieldH,
	}
}

func (v viewport) cells(b core.Box) core.Rect {
	r := b.ToCells(v.sx, v.sy)
	r.X += v.area.X
	r.Y += v.area.Y
	return r
}

// fill draws b clipped to the viewport area.
func (v viewport) fill(dst *core.Screen, b core.Box, glyph rune, c core.Color) {
	r := v.cells(b)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			v.set(dst, x, y, glyph, c)
		}
	}
}

func (v viewport) set(dst *core.Screen, x, y int, glyph rune, c core.Color) {
	if x < v.area.X || x >= v.area.Right() || y < v.area.Y || y >= v.area.Bottom() {
		return
	}
	dst.SetColored(x, y, glyph, c)
}
