package shooter

import "github.com/vovakirdan/tui-shooter/internal/core"

// Resolution summarizes one collision pass.
type Resolution struct {
	Kills int
	Hits  int
}

// Resolve runs the two collision passes and applies their removals as a
// single batch.
//
// Pass 1 tests each enemy against the bullets still unclaimed; the first
// overlap kills the enemy and consumes that bullet. Pass 2 tests the
// enemies that survived pass 1 against the player. A kill therefore
// always wins over a player hit in the same tick.
func Resolve(rc *RunContext) Resolution {
	var res Resolution
	batch := newRemovalBatch()
	player := rc.Player.Box

	// pass 1: bullets x enemies
	rc.Store.ForEachEnemy(func(e *Enemy) {
		eb := e.Box()
		for _, b := range rc.Store.bullets {
			if batch.hasBullet(b) || !b.Box.Overlaps(eb) {
				continue
			}
			batch.markBullet(b)
			batch.markEnemy(e)
			rc.State.Score += rc.Config.Gameplay.KillPoints
			rc.emit(core.EventEnemyKilled)
			res.Kills++
			return
		}
	})

	// pass 2: surviving enemies x player
	rc.Store.ForEachEnemy(func(e *Enemy) {
		if batch.hasEnemy(e) || !e.Box().Overlaps(player) {
			return
		}
		batch.markEnemy(e)
		rc.loseLife()
		rc.emit(core.EventPlayerHit)
		res.Hits++
	})

	if !batch.empty() {
		batch.apply(rc.Store)
	}
	return res
}
