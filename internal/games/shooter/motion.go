package shooter

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// movePlayer advances the player by the input direction and keeps the
// whole ship inside the field.
func movePlayer(rc *RunContext, in Input, dt float64) {
	dx, dy := in.Direction()
	p := rc.Player
	p.Box.X += dx * p.Speed * dt
	p.Box.Y += dy * p.Speed * dt
	p.Box = p.Box.ClampInside(rc.Config.Field.Width, rc.Config.Field.Height)
}

// moveBullets advances every bullet and culls those whose bottom edge
// reached the top bound. Returns the number culled.
func moveBullets(rc *RunContext, dt float64) int {
	rc.Store.ForEachBullet(func(b *Bullet) {
		b.Box.Y += b.VelocityY * dt
	})
	return rc.Store.RemoveBullets(func(b *Bullet) bool {
		return b.Box.Bottom() <= 0
	})
}

// moveEnemies advances every enemy, applies shape drift, and removes
// enemies whose top edge reached the bottom bound. Each escape costs a life.
func moveEnemies(rc *RunContext, dt float64) int {
	height := rc.Config.Field.Height
	t := rc.State.Elapsed

	rc.Store.ForEachEnemy(func(e *Enemy) {
		e.Y += e.Speed * dt
		if amp := driftAmplitude(rc, e.Shape); amp != 0 {
			e.X += math.Sin((t+e.Y)*rc.Config.Enemy.DriftFrequency+e.Phase) * amp * dt
		}
	})

	escaped := rc.Store.RemoveEnemies(func(e *Enemy) bool {
		return e.Y >= height
	})
	for range escaped {
		rc.loseLife()
		rc.emit(core.EventEnemyEscaped)
	}
	return escaped
}

func driftAmplitude(rc *RunContext, s Shape) float64 {
	switch s {
	case ShapeTriangle:
		return rc.Config.Enemy.TriangleAmplitude
	case ShapeAsteroid:
		return rc.Config.Enemy.AsteroidAmplitude
	default:
		return 0
	}
}
