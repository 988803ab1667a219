package shooter

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// EnemyView is the read-only render view of one enemy.
type EnemyView struct {
	Box   core.Box
	Shape Shape
}

// Snapshot is an immutable copy of a run for renderers and tests.
type Snapshot struct {
	FieldW  float64
	FieldH  float64
	Player  core.Box
	Bullets []core.Box
	Enemies []EnemyView
	Score   int
	Lives   int
	Ticks   int
	Elapsed float64
	Mode    config.Mode
	Phase   Phase
}

// Snapshot copies the current run state.
func (c *Controller) Snapshot() Snapshot {
	rc := c.rc
	snap := Snapshot{
		FieldW:  rc.Config.Field.Width,
		FieldH:  rc.Config.Field.Height,
		Player:  rc.Player.Box,
		Bullets: make([]core.Box, 0, rc.Store.BulletCount()),
		Enemies: make([]EnemyView, 0, rc.Store.EnemyCount()),
		Score:   rc.State.Score,
		Lives:   rc.State.Lives,
		Ticks:   rc.State.Ticks,
		Elapsed: rc.State.Elapsed,
		Mode:    rc.Profile.Mode,
		Phase:   rc.State.Phase,
	}
	rc.Store.ForEachBullet(func(b *Bullet) {
		snap.Bullets = append(snap.Bullets, b.Box)
	})
	rc.Store.ForEachEnemy(func(e *Enemy) {
		snap.Enemies = append(snap.Enemies, EnemyView{Box: e.Box(), Shape: e.Shape})
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Ticks)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Phase)      //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Elapsed)
	h = hashBox(h, snap.Player)

	for _, b := range snap.Bullets {
		h = hashBox(h, b)
	}
	for _, e := range snap.Enemies {
		h = hashBox(h, e.Box)
		h = h*31 + uint64(e.Shape) //#nosec G115 -- hash computation
	}
	return h
}

func hashBox(h uint64, b core.Box) uint64 {
	h = h*31 + math.Float64bits(b.X)
	h = h*31 + math.Float64bits(b.Y)
	h = h*31 + math.Float64bits(b.W)
	h = h*31 + math.Float64bits(b.H)
	return h
}
