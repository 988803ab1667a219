package shooter

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Phase is the run state machine position.
type Phase int

const (
	PhasePlaying  Phase = iota
	PhaseGameOver       // lives reached zero
	PhaseAborted        // ended by a quit request
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseGameOver:
		return "GameOver"
	case PhaseAborted:
		return "Aborted"
	default:
		return "Playing"
	}
}

// Terminal reports whether no further simulation happens in this phase.
func (p Phase) Terminal() bool {
	return p != PhasePlaying
}

// Result reasons.
const (
	ReasonGameOver = "gameover"
	ReasonQuit     = "quit"
)

// RunState is the scoring and progress state of one run.
type RunState struct {
	Score   int
	Lives   int
	Ticks   int     // steps taken
	Elapsed float64 // accumulated dt in nominal ticks
	Phase   Phase
}

// Input is the per-tick player intent.
type Input struct {
	MoveLeft  bool
	MoveRight bool
	MoveUp    bool
	MoveDown  bool
	Fire      bool
	Quit      bool
}

// Direction returns the unnormalized movement vector.
func (in Input) Direction() (dx, dy float64) {
	if in.MoveLeft {
		dx--
	}
	if in.MoveRight {
		dx++
	}
	if in.MoveUp {
		dy--
	}
	if in.MoveDown {
		dy++
	}
	return dx, dy
}

// RunContext holds everything a single run mutates.
// A new one is built for every run.
type RunContext struct {
	Profile ModeProfile
	Config  config.ShooterConfig
	Store   *EntityStore
	Player  *Player
	State   RunState

	rng      *rand.Rand
	spawner  *Spawner
	lastShot float64
	hasShot  bool
	events   []core.Event
}

// NewRunContext builds a fresh run for profile.
func NewRunContext(p ModeProfile, cfg config.ShooterConfig, seed int64) *RunContext {
	pc := cfg.Player
	rc := &RunContext{
		Profile: p,
		Config:  cfg,
		Store:   NewEntityStore(),
		Player: &Player{
			Box: core.NewBox(
				(cfg.Field.Width-pc.Width)/2,
				cfg.Field.Height-pc.BottomOffset,
				pc.Width,
				pc.Height,
			),
			Speed: p.PlayerSpeed,
		},
		State: RunState{
			Lives: p.StartingLives,
			Phase: PhasePlaying,
		},
		rng:     rand.New(rand.NewSource(seed)),
		spawner: NewSpawner(p),
	}
	rc.Player.Box = rc.Player.Box.ClampInside(cfg.Field.Width, cfg.Field.Height)
	return rc
}

// emit queues an event stamped with the current state.
func (rc *RunContext) emit(kind core.EventKind) {
	rc.events = append(rc.events, core.Event{
		Kind:  kind,
		Tick:  rc.State.Ticks,
		Score: rc.State.Score,
		Lives: rc.State.Lives,
	})
}

func (rc *RunContext) loseLife() {
	if rc.State.Lives > 0 {
		rc.State.Lives--
	}
}

// drainEvents hands out the queued events and resets the queue.
func (rc *RunContext) drainEvents() []core.Event {
	if len(rc.events) == 0 {
		return nil
	}
	out := rc.events
	rc.events = nil
	return out
}

// tryFire spawns a bullet above the ship unless the cooldown is running.
func (rc *RunContext) tryFire() bool {
	cooldown := rc.Config.Gameplay.FireCooldownTicks
	if rc.hasShot && rc.State.Elapsed-rc.lastShot < cooldown {
		return false
	}
	bc := rc.Config.Bullet
	pb := rc.Player.Box
	rc.Store.AddBullet(&Bullet{
		Box:       core.NewBox(pb.CenterX()-bc.Width/2, pb.Y-bc.Height, bc.Width, bc.Height),
		VelocityY: rc.Profile.BulletSpeed,
	})
	rc.lastShot = rc.State.Elapsed
	rc.hasShot = true
	rc.emit(core.EventShotFired)
	return true
}

// StepOutcome is what one controller step reports.
type StepOutcome struct {
	State  RunState
	Events []core.Event
}

// Controller drives one run tick by tick.
type Controller struct {
	rc       *RunContext
	tickRate int
}

// NewController starts a run in the given mode.
func NewController(mode config.Mode, cfg config.ShooterConfig, rt core.RuntimeConfig) *Controller {
	return NewControllerWithProfile(ProfileFor(mode, cfg), cfg, rt)
}

// NewControllerWithProfile starts a run with an explicit profile.
func NewControllerWithProfile(p ModeProfile, cfg config.ShooterConfig, rt core.RuntimeConfig) *Controller {
	return &Controller{
		rc:       NewRunContext(p, cfg, rt.Seed),
		tickRate: rt.TickRate,
	}
}

// Context exposes the run context.
func (c *Controller) Context() *RunContext {
	return c.rc
}

// State returns the current run state.
func (c *Controller) State() RunState {
	return c.rc.State
}

// Step advances the run by dt nominal ticks.
// dt <= 0 counts as one tick and dt is capped at the configured maximum.
// Motion and collisions run in slices of at most one tick, so a large dt
// cannot carry a bullet through an enemy.
func (c *Controller) Step(in Input, dt float64) StepOutcome {
	rc := c.rc
	if rc.State.Phase.Terminal() {
		return StepOutcome{State: rc.State}
	}
	if in.Quit {
		c.Quit()
		return StepOutcome{State: rc.State, Events: rc.drainEvents()}
	}

	dt = clampDT(dt, rc.Config.Gameplay.MaxStepTicks)

	if in.Fire {
		rc.tryFire()
	}

	rc.State.Ticks++
	for left := dt; left > 0; left -= maxSubStep {
		c.subStep(in, math.Min(left, maxSubStep))
		if rc.State.Phase.Terminal() {
			break
		}
	}
	return StepOutcome{State: rc.State, Events: rc.drainEvents()}
}

// maxSubStep is the largest slice of a step, in nominal ticks.
const maxSubStep = 1.0

// subStep spawns, moves and resolves collisions over h ticks.
// Escapes that end the run skip the collision pass.
func (c *Controller) subStep(in Input, h float64) {
	rc := c.rc
	rc.spawner.Step(rc, h)

	movePlayer(rc, in, h)
	moveBullets(rc, h)
	moveEnemies(rc, h)

	rc.State.Elapsed += h

	if rc.State.Lives <= 0 {
		c.end(PhaseGameOver)
		return
	}

	Resolve(rc)

	if rc.State.Lives <= 0 {
		c.end(PhaseGameOver)
	}
}

// Quit ends a live run at the tick boundary. Lives are left untouched.
// The queued RunEnded event is delivered by the next Step, or by Drain.
func (c *Controller) Quit() {
	if c.rc.State.Phase.Terminal() {
		return
	}
	c.end(PhaseAborted)
}

// Drain returns events queued outside of Step.
func (c *Controller) Drain() []core.Event {
	return c.rc.drainEvents()
}

func (c *Controller) end(phase Phase) {
	c.rc.State.Phase = phase
	c.rc.emit(core.EventRunEnded)
}

// Result returns the final outcome once the run is over.
func (c *Controller) Result() (core.RunResult, bool) {
	s := c.rc.State
	if !s.Phase.Terminal() {
		return core.RunResult{}, false
	}
	reason := ReasonGameOver
	if s.Phase == PhaseAborted {
		reason = ReasonQuit
	}
	return core.RunResult{
		Mode:     c.rc.Profile.Mode.String(),
		Score:    s.Score,
		Ticks:    s.Ticks,
		Elapsed:  s.Elapsed,
		Duration: ticksToDuration(s.Elapsed, c.tickRate),
		Reason:   reason,
	}, true
}

func clampDT(dt, maxTicks float64) float64 {
	if dt <= 0 {
		return 1
	}
	if maxTicks > 0 && dt > maxTicks {
		return maxTicks
	}
	return dt
}

func ticksToDuration(ticks float64, tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Duration(ticks / float64(tickRate) * float64(time.Second))
}
