package shooter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

func TestEntityStoreAddRemove(t *testing.T) {
	s := NewEntityStore()
	b1 := &Bullet{Box: core.NewBox(0, 10, 6, 12)}
	b2 := &Bullet{Box: core.NewBox(0, -20, 6, 12)}
	b3 := &Bullet{Box: core.NewBox(0, 30, 6, 12)}
	s.AddBullet(b1)
	s.AddBullet(b2)
	s.AddBullet(b3)
	require.Equal(t, 3, s.BulletCount())

	removed := s.RemoveBullets(func(b *Bullet) bool { return b.Box.Bottom() <= 0 })
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, s.BulletCount())

	var seen []*Bullet
	s.ForEachBullet(func(b *Bullet) { seen = append(seen, b) })
	assert.ElementsMatch(t, []*Bullet{b1, b3}, seen)
}

func TestEntityStoreRemoveEnemies(t *testing.T) {
	s := NewEntityStore()
	for i := range 5 {
		s.AddEnemy(&Enemy{X: float64(i * 100), Size: 36})
	}
	removed := s.RemoveEnemies(func(e *Enemy) bool { return e.X >= 200 })
	assert.Equal(t, 3, removed)
	assert.Equal(t, 2, s.EnemyCount())

	assert.Equal(t, 0, s.RemoveEnemies(func(e *Enemy) bool { return false }))
}

func TestEntityStoreClear(t *testing.T) {
	s := NewEntityStore()
	s.AddBullet(&Bullet{})
	s.AddEnemy(&Enemy{})
	s.Clear()
	assert.Zero(t, s.BulletCount())
	assert.Zero(t, s.EnemyCount())
}

func TestRemovalBatchMarksOnce(t *testing.T) {
	batch := newRemovalBatch()
	e := &Enemy{}
	b := &Bullet{}

	assert.True(t, batch.markEnemy(e))
	assert.False(t, batch.markEnemy(e))
	assert.True(t, batch.markBullet(b))
	assert.False(t, batch.markBullet(b))
	assert.False(t, batch.empty())
}

func TestRemovalBatchApplyTwiceIsNoop(t *testing.T) {
	s := NewEntityStore()
	keep := &Enemy{X: 1}
	drop := &Enemy{X: 2}
	shot := &Bullet{}
	s.AddEnemy(keep)
	s.AddEnemy(drop)
	s.AddBullet(shot)

	batch := newRemovalBatch()
	batch.markEnemy(drop)
	batch.markBullet(shot)

	nb, ne := batch.apply(s)
	assert.Equal(t, 1, nb)
	assert.Equal(t, 1, ne)

	nb, ne = batch.apply(s)
	assert.Zero(t, nb)
	assert.Zero(t, ne)
	assert.Equal(t, 1, s.EnemyCount())
}

func TestEnemyBox(t *testing.T) {
	e := &Enemy{X: 450, Y: -18, Size: 36}
	assert.Equal(t, core.NewBox(432, -18, 36, 36), e.Box())
}
