package shooter

import (
	"math"
	"math/rand"
)

// Spawner creates enemies at a fixed cadence measured in elapsed ticks.
type Spawner struct {
	interval  float64
	sinceLast float64
}

// NewSpawner creates a spawner for the given profile.
// The accumulator starts full so the first enemy appears on the first tick.
func NewSpawner(p ModeProfile) *Spawner {
	interval := float64(p.SpawnIntervalTicks)
	if interval <= 0 {
		interval = 1
	}
	return &Spawner{interval: interval, sinceLast: interval}
}

// Due reports whether the accumulated time has reached the interval.
func (s *Spawner) Due() bool {
	return s.sinceLast >= s.interval
}

// Step spawns at most one enemy into the run and then accumulates dt.
// A spawn keeps the overshoot past the interval, so the cadence does not
// depend on the step size. It returns the spawned enemy, or nil.
func (s *Spawner) Step(rc *RunContext, dt float64) *Enemy {
	var spawned *Enemy
	if s.Due() {
		spawned = newEnemy(rc)
		rc.Store.AddEnemy(spawned)
		s.sinceLast -= s.interval
	}
	s.sinceLast += dt
	return spawned
}

// newEnemy draws a new enemy just above the visible area.
func newEnemy(rc *RunContext) *Enemy {
	ec := rc.Config.Enemy
	p := rc.Profile

	lo := ec.SpawnMargin
	hi := rc.Config.Field.Width - ec.SpawnMargin
	x := lo
	if hi > lo {
		x = lo + rc.rng.Float64()*(hi-lo)
	}

	speed := p.EnemySpeed
	if p.Jittered() {
		speed = uniform(rc.rng, p.EnemySpeedMin, p.EnemySpeedMax)
	}

	return &Enemy{
		X:     x,
		Y:     -ec.Size,
		Size:  ec.Size,
		Speed: speed,
		Shape: p.EnemyShape,
		Phase: rc.rng.Float64() * 2 * math.Pi,
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
