package shooter

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     12345,
}

// quietRun returns a controller whose spawner never fires, so tests can
// place entities by hand.
func quietRun(mode config.Mode) *Controller {
	c := NewController(mode, config.DefaultShooterConfig(), testRuntime)
	c.rc.spawner.interval = 1e9
	c.rc.spawner.sinceLast = 0
	return c
}

func kinds(events []core.Event) []core.EventKind {
	out := make([]core.EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}

func TestNewRunStartsPlaying(t *testing.T) {
	c := NewController(config.ModeHard, config.DefaultShooterConfig(), testRuntime)
	s := c.State()
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, 2, s.Lives)
	assert.Zero(t, s.Score)

	// Player centered, top edge 70 above the bottom.
	assert.Equal(t, core.NewBox(425, 580, 50, 40), c.rc.Player.Box)

	_, ok := c.Result()
	assert.False(t, ok, "no result while playing")
}

// An enemy dropping from y=-18 at speed 2 escapes after 334 ticks.
func TestEnemyEscapeCostsLife(t *testing.T) {
	c := quietRun(config.ModeEasy)
	c.rc.Player.Box.X = 0 // out of the enemy's lane
	c.rc.Store.AddEnemy(&Enemy{X: 450, Y: -18, Size: 36, Speed: 2, Shape: ShapeCircle})

	for i := range 333 {
		out := c.Step(Input{}, 1)
		require.Equal(t, 3, out.State.Lives, "tick %d", i)
	}
	require.Equal(t, 1, c.rc.Store.EnemyCount())

	out := c.Step(Input{}, 1)
	assert.Equal(t, 2, out.State.Lives)
	assert.Zero(t, c.rc.Store.EnemyCount())
	assert.Equal(t, []core.EventKind{core.EventEnemyEscaped}, kinds(out.Events))
	assert.Equal(t, PhasePlaying, out.State.Phase)
}

// A bullet with its bottom edge at 50 moving -10/tick is gone at tick 5.
func TestBulletCulledAtTopBound(t *testing.T) {
	c := quietRun(config.ModeEasy)
	c.rc.Store.AddBullet(&Bullet{Box: core.NewBox(100, 38, 6, 12), VelocityY: -10})

	for i := 1; i <= 4; i++ {
		c.Step(Input{}, 1)
		require.Equal(t, 1, c.rc.Store.BulletCount(), "bullet must survive tick %d", i)
	}
	c.Step(Input{}, 1)
	assert.Zero(t, c.rc.Store.BulletCount())
}

func TestFireCooldown(t *testing.T) {
	c := quietRun(config.ModeEasy)

	shots := 0
	for tick := 0; tick <= 11; tick++ {
		fire := tick == 0 || tick == 5 || tick == 11
		out := c.Step(Input{Fire: fire}, 1)
		for _, ev := range out.Events {
			if ev.Kind == core.EventShotFired {
				shots++
			}
		}
		switch tick {
		case 0:
			assert.Equal(t, 1, shots, "first shot is always accepted")
		case 5:
			assert.Equal(t, 1, shots, "shot inside cooldown is dropped")
		case 11:
			assert.Equal(t, 2, shots, "shot after cooldown is accepted")
		}
	}
	assert.Equal(t, 2, c.rc.Store.BulletCount())
}

func TestBulletSpawnsAboveShip(t *testing.T) {
	c := quietRun(config.ModeMedium)
	c.Step(Input{Fire: true}, 1)

	require.Equal(t, 1, c.rc.Store.BulletCount())
	b := c.rc.Store.bullets[0]
	// spawned at (centerX-3, top-12) then moved once at -12
	assert.Equal(t, core.NewBox(447, 580-12-12, 6, 12), b.Box)
	assert.Equal(t, -12.0, b.VelocityY)
}

// A kill in the same tick wins over the player hit.
func TestKillPreemptsPlayerHit(t *testing.T) {
	c := quietRun(config.ModeEasy)
	enemy := &Enemy{X: 450, Y: 570, Size: 36, Speed: 0, Shape: ShapeCircle}
	require.True(t, enemy.Box().Overlaps(c.rc.Player.Box))
	c.rc.Store.AddEnemy(enemy)
	c.rc.Store.AddBullet(&Bullet{Box: core.NewBox(447, 590, 6, 12), VelocityY: -10})

	out := c.Step(Input{}, 1)

	assert.Equal(t, 10, out.State.Score)
	assert.Equal(t, 3, out.State.Lives)
	assert.Zero(t, c.rc.Store.EnemyCount())
	assert.Zero(t, c.rc.Store.BulletCount())
	assert.Equal(t, []core.EventKind{core.EventEnemyKilled}, kinds(out.Events))
}

func TestBulletKillsOnlyOneEnemy(t *testing.T) {
	c := quietRun(config.ModeEasy)
	c.rc.Store.AddEnemy(&Enemy{X: 200, Y: 300, Size: 36})
	c.rc.Store.AddEnemy(&Enemy{X: 205, Y: 300, Size: 36})
	c.rc.Store.AddBullet(&Bullet{Box: core.NewBox(200, 310, 6, 12)})

	out := c.Step(Input{}, 1)

	assert.Equal(t, 10, out.State.Score)
	assert.Equal(t, 1, c.rc.Store.EnemyCount())
	assert.Zero(t, c.rc.Store.BulletCount())
}

func TestTwoBulletsTwoKills(t *testing.T) {
	c := quietRun(config.ModeEasy)
	c.rc.Store.AddEnemy(&Enemy{X: 200, Y: 300, Size: 36})
	c.rc.Store.AddEnemy(&Enemy{X: 600, Y: 300, Size: 36})
	c.rc.Store.AddBullet(&Bullet{Box: core.NewBox(200, 310, 6, 12)})
	c.rc.Store.AddBullet(&Bullet{Box: core.NewBox(600, 310, 6, 12)})

	out := c.Step(Input{}, 1)

	assert.Equal(t, 20, out.State.Score)
	assert.Zero(t, c.rc.Store.EnemyCount())
	assert.Zero(t, c.rc.Store.BulletCount())
}

func TestPlayerHit(t *testing.T) {
	c := quietRun(config.ModeEasy)
	c.rc.Store.AddEnemy(&Enemy{X: 450, Y: 570, Size: 36})

	out := c.Step(Input{}, 1)

	assert.Equal(t, 2, out.State.Lives)
	assert.Zero(t, out.State.Score)
	assert.Zero(t, c.rc.Store.EnemyCount())
	assert.Equal(t, []core.EventKind{core.EventPlayerHit}, kinds(out.Events))
}

func TestGameOverAfterStartingLives(t *testing.T) {
	for _, mode := range config.Modes() {
		t.Run(mode.String(), func(t *testing.T) {
			c := quietRun(mode)
			lives := c.rc.Profile.StartingLives

			var last StepOutcome
			for i := range lives {
				require.Equal(t, PhasePlaying, c.State().Phase, "hit %d", i)
				c.rc.Store.AddEnemy(&Enemy{X: 450, Y: 570, Size: 36})
				last = c.Step(Input{}, 1)
			}

			assert.Equal(t, PhaseGameOver, last.State.Phase)
			assert.Zero(t, last.State.Lives)
			assert.Equal(t, []core.EventKind{core.EventPlayerHit, core.EventRunEnded}, kinds(last.Events))

			// Frozen from here on.
			before := c.Snapshot()
			c.rc.Store.AddEnemy(&Enemy{X: 450, Y: 570, Size: 36})
			for range 50 {
				out := c.Step(Input{Fire: true, MoveLeft: true}, 1)
				assert.Empty(t, out.Events)
				assert.Equal(t, PhaseGameOver, out.State.Phase)
			}
			after := c.Snapshot()
			assert.Equal(t, before.Score, after.Score)
			assert.Equal(t, before.Lives, after.Lives)
			assert.Equal(t, before.Ticks, after.Ticks)
			assert.Equal(t, before.Player, after.Player)
		})
	}
}

func TestGameOverByEscapes(t *testing.T) {
	c := quietRun(config.ModeHard)
	c.rc.Player.Box.X = 0
	c.rc.Store.AddEnemy(&Enemy{X: 800, Y: 649, Size: 36, Speed: 4})
	c.rc.Store.AddEnemy(&Enemy{X: 700, Y: 649, Size: 36, Speed: 4})
	// would be killed if collisions ran after the final escape
	c.rc.Store.AddEnemy(&Enemy{X: 300, Y: 300, Size: 36})
	c.rc.Store.AddBullet(&Bullet{Box: core.NewBox(300, 310, 6, 12)})

	out := c.Step(Input{}, 1)

	assert.Equal(t, PhaseGameOver, out.State.Phase)
	assert.Zero(t, out.State.Lives)
	assert.Zero(t, out.State.Score, "no mutation after the run ends")
	assert.Equal(t, []core.EventKind{
		core.EventEnemyEscaped, core.EventEnemyEscaped, core.EventRunEnded,
	}, kinds(out.Events))
}

func TestQuitEndsRun(t *testing.T) {
	c := quietRun(config.ModeMedium)
	c.Step(Input{}, 1)

	out := c.Step(Input{Quit: true}, 1)
	assert.Equal(t, PhaseAborted, out.State.Phase)
	assert.Equal(t, 3, out.State.Lives, "quit leaves lives untouched")
	assert.Equal(t, []core.EventKind{core.EventRunEnded}, kinds(out.Events))

	res, ok := c.Result()
	require.True(t, ok)
	assert.Equal(t, ReasonQuit, res.Reason)
	assert.Equal(t, "Medium", res.Mode)
	assert.Equal(t, 1, res.Ticks)

	// Quit again is a no-op.
	c.Quit()
	assert.Empty(t, c.Drain())
	assert.Empty(t, c.Step(Input{}, 1).Events)
}

func TestResultDuration(t *testing.T) {
	c := quietRun(config.ModeEasy)
	for range 120 {
		c.Step(Input{}, 1)
	}
	c.Quit()

	res, ok := c.Result()
	require.True(t, ok)
	assert.Equal(t, 120, res.Ticks)
	assert.Equal(t, 120.0, res.Elapsed)
	assert.Equal(t, 2*time.Second, res.Duration)
}

func TestDeltaClamping(t *testing.T) {
	c := quietRun(config.ModeEasy)

	c.Step(Input{}, 0)
	assert.Equal(t, 1.0, c.State().Elapsed, "dt <= 0 counts as one tick")

	c.Step(Input{}, 10)
	assert.Equal(t, 4.0, c.State().Elapsed, "dt is capped")

	c.Step(Input{}, 0.5)
	assert.Equal(t, 4.5, c.State().Elapsed)
	assert.Equal(t, 3, c.State().Ticks)
}

func TestSpawnCadenceFollowsElapsedTime(t *testing.T) {
	tests := []struct {
		name  string
		dt    float64
		steps int
	}{
		{"60fps", 1, 61},
		{"30fps", 2, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(config.ModeEasy, config.DefaultShooterConfig(), testRuntime)
			for range tt.steps {
				c.Step(Input{}, tt.dt)
			}
			// spawns at elapsed 0, 30, 60
			assert.Equal(t, 3, c.rc.Store.EnemyCount())
		})
	}
}

// Over 3015 ticks of elapsed time the spawner fires at 0, 30, ... 3000
// whatever the step size.
func TestSpawnCadenceKeepsOvershoot(t *testing.T) {
	for _, dt := range []float64{1, 1.1, 2.9, 7} {
		t.Run(fmt.Sprintf("dt=%g", dt), func(t *testing.T) {
			c := NewController(config.ModeEasy, config.DefaultShooterConfig(), testRuntime)
			s := NewSpawner(c.rc.Profile)

			spawns := 0
			for e := 0.0; e < 3015; e += dt {
				if s.Step(c.rc, dt) != nil {
					spawns++
				}
			}
			assert.Equal(t, 101, spawns)
		})
	}
}

// At the largest step a fast bullet closes more distance on an enemy than
// the two boxes are tall; sub-stepping still catches the overlap.
func TestLargeStepDoesNotTunnel(t *testing.T) {
	c := quietRun(config.ModeHard)
	c.rc.Player.Box.X = 0
	c.rc.Store.AddEnemy(&Enemy{X: 300, Y: 300, Size: 36, Speed: 4, Shape: ShapeCircle})
	c.rc.Store.AddBullet(&Bullet{Box: core.NewBox(297, 337, 6, 12), VelocityY: -14})

	out := c.Step(Input{}, 3)

	assert.Equal(t, 10, out.State.Score)
	assert.Zero(t, c.rc.Store.EnemyCount())
	assert.Zero(t, c.rc.Store.BulletCount())
	assert.Equal(t, []core.EventKind{core.EventEnemyKilled}, kinds(out.Events))
	assert.Equal(t, 3.0, out.State.Elapsed)
	assert.Equal(t, 1, out.State.Ticks)
}

// A step stops at the slice that ends the run.
func TestLargeStepStopsAtGameOver(t *testing.T) {
	c := quietRun(config.ModeHard)
	c.rc.State.Lives = 1
	c.rc.Player.Box.X = 0
	c.rc.Store.AddEnemy(&Enemy{X: 450, Y: 647, Size: 36, Speed: 4, Shape: ShapeCircle})

	out := c.Step(Input{}, 3)

	assert.Equal(t, PhaseGameOver, out.State.Phase)
	assert.Equal(t, 1.0, out.State.Elapsed)
	assert.Equal(t, []core.EventKind{core.EventEnemyEscaped, core.EventRunEnded}, kinds(out.Events))
}

func TestSpawnedEnemy(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	c := NewController(config.ModeHard, cfg, testRuntime)
	c.Step(Input{}, 1)

	require.Equal(t, 1, c.rc.Store.EnemyCount())
	e := c.rc.Store.enemies[0]
	assert.Equal(t, ShapeAsteroid, e.Shape)
	assert.Equal(t, 4.0, e.Speed)
	assert.Equal(t, -36.0+4, e.Y)
	assert.GreaterOrEqual(t, e.X, 20.0-2)
	assert.LessOrEqual(t, e.X, 880.0+2)
}

func TestSpeedJitter(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	cfg.Enemy.SpeedJitter = 1
	c := NewController(config.ModeEasy, cfg, testRuntime)

	speeds := map[float64]bool{}
	for range 30 * 20 {
		if e := c.rc.spawner.Step(c.rc, 30); e != nil {
			assert.GreaterOrEqual(t, e.Speed, 1.0)
			assert.LessOrEqual(t, e.Speed, 3.0)
			speeds[e.Speed] = true
		}
	}
	assert.Greater(t, len(speeds), 1, "jittered speeds should vary")
}

func TestPlayerClampedToField(t *testing.T) {
	c := quietRun(config.ModeHard)

	for range 200 {
		c.Step(Input{MoveLeft: true, MoveUp: true}, 1)
	}
	assert.Equal(t, 0.0, c.rc.Player.Box.X)
	assert.Equal(t, 0.0, c.rc.Player.Box.Y)

	for range 200 {
		c.Step(Input{MoveRight: true, MoveDown: true}, 1)
	}
	assert.Equal(t, 850.0, c.rc.Player.Box.X)
	assert.Equal(t, 610.0, c.rc.Player.Box.Y)
}

func TestPlayerSpeedScalesWithDelta(t *testing.T) {
	c := quietRun(config.ModeEasy)
	c.Step(Input{MoveRight: true}, 2)
	assert.Equal(t, 425.0+12, c.rc.Player.Box.X)

	c.Step(Input{MoveLeft: true, MoveRight: true}, 1)
	assert.Equal(t, 437.0, c.rc.Player.Box.X, "opposite directions cancel")
}

func TestDriftByShape(t *testing.T) {
	c := quietRun(config.ModeEasy)
	circle := &Enemy{X: 200, Y: 100, Size: 36, Speed: 1, Shape: ShapeCircle}
	tri := &Enemy{X: 400, Y: 100, Size: 36, Speed: 1, Shape: ShapeTriangle, Phase: 1}
	ast := &Enemy{X: 600, Y: 100, Size: 36, Speed: 1, Shape: ShapeAsteroid, Phase: 1}
	c.rc.Store.AddEnemy(circle)
	c.rc.Store.AddEnemy(tri)
	c.rc.Store.AddEnemy(ast)
	c.rc.Player.Box.Y = 0
	c.rc.Player.Box.X = 0

	c.Step(Input{}, 1)

	assert.Equal(t, 200.0, circle.X)
	assert.NotEqual(t, 400.0, tri.X)
	assert.NotEqual(t, 600.0, ast.X)
	assert.Greater(t, abs(ast.X-600), abs(tri.X-400), "asteroid weaves wider than triangle")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	for _, mode := range config.Modes() {
		t.Run(mode.String(), func(t *testing.T) {
			c := NewController(mode, config.DefaultShooterConfig(), testRuntime)
			rng := rand.New(rand.NewSource(7))

			prev := c.State()
			ended := 0
			for range 5000 {
				in := Input{
					MoveLeft:  rng.Intn(3) == 0,
					MoveRight: rng.Intn(3) == 0,
					Fire:      rng.Intn(2) == 0,
				}
				out := c.Step(in, 0.5+rng.Float64())
				s := out.State

				require.GreaterOrEqual(t, s.Score, prev.Score)
				require.LessOrEqual(t, s.Lives, prev.Lives)
				require.GreaterOrEqual(t, s.Lives, 0)
				require.Equal(t, s.Phase == PhaseGameOver, s.Lives <= 0)
				for _, ev := range out.Events {
					if ev.Kind == core.EventRunEnded {
						ended++
					}
				}
				prev = s
			}
			assert.LessOrEqual(t, ended, 1, "RunEnded fires at most once")
		})
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		c := NewController(config.ModeMedium, config.DefaultShooterConfig(), testRuntime)
		for i := range 1500 {
			in := Input{
				MoveLeft:  i%40 < 20,
				MoveRight: i%40 >= 20,
				Fire:      i%3 == 0,
			}
			c.Step(in, 1)
		}
		return c.Snapshot()
	}

	s1, s2 := run(), run()
	assert.Equal(t, s1.Hash(), s2.Hash())
	assert.Equal(t, s1, s2)
}

func TestSnapshotIsCopy(t *testing.T) {
	c := quietRun(config.ModeEasy)
	c.rc.Store.AddEnemy(&Enemy{X: 100, Y: 100, Size: 36, Shape: ShapeCircle})
	snap := c.Snapshot()
	require.Len(t, snap.Enemies, 1)

	snap.Enemies[0].Box.X = 999
	snap.Player.X = 999
	fresh := c.Snapshot()
	assert.Equal(t, 82.0, fresh.Enemies[0].Box.X)
	assert.Equal(t, 425.0, fresh.Player.X)
	assert.Equal(t, config.ModeEasy, fresh.Mode)
}

func TestInputDirection(t *testing.T) {
	dx, dy := Input{MoveLeft: true, MoveDown: true}.Direction()
	assert.Equal(t, -1.0, dx)
	assert.Equal(t, 1.0, dy)

	dx, dy = Input{}.Direction()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}
