package shooter

import "github.com/vovakirdan/tui-shooter/internal/core"

// Player is the ship controlled by input. One per run.
type Player struct {
	Box   core.Box
	Speed float64
}

// Bullet is a player shot travelling vertically.
type Bullet struct {
	Box       core.Box
	VelocityY float64
}

// Enemy is a descending hostile.
// X is the horizontal center, Y the top edge, Size the full extent.
type Enemy struct {
	X     float64
	Y     float64
	Size  float64
	Speed float64
	Shape Shape
	Phase float64 // lateral drift phase offset, radians
}

// Box returns the enemy's bounding box.
func (e *Enemy) Box() core.Box {
	return core.NewBox(e.X-e.Size/2, e.Y, e.Size, e.Size)
}

// EntityStore owns all bullets and enemies of one run.
// Identity is the pointer; order carries no meaning.
type EntityStore struct {
	bullets []*Bullet
	enemies []*Enemy
}

// NewEntityStore creates an empty store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		bullets: make([]*Bullet, 0, 32),
		enemies: make([]*Enemy, 0, 32),
	}
}

// AddBullet adds a bullet to the store.
func (s *EntityStore) AddBullet(b *Bullet) {
	s.bullets = append(s.bullets, b)
}

// AddEnemy adds an enemy to the store.
func (s *EntityStore) AddEnemy(e *Enemy) {
	s.enemies = append(s.enemies, e)
}

// RemoveBullets removes every bullet matching pred in one compaction pass
// and returns how many were removed.
func (s *EntityStore) RemoveBullets(pred func(*Bullet) bool) int {
	kept := s.bullets[:0]
	for _, b := range s.bullets {
		if !pred(b) {
			kept = append(kept, b)
		}
	}
	removed := len(s.bullets) - len(kept)
	clear(s.bullets[len(kept):])
	s.bullets = kept
	return removed
}

// RemoveEnemies removes every enemy matching pred in one compaction pass
// and returns how many were removed.
func (s *EntityStore) RemoveEnemies(pred func(*Enemy) bool) int {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if !pred(e) {
			kept = append(kept, e)
		}
	}
	removed := len(s.enemies) - len(kept)
	clear(s.enemies[len(kept):])
	s.enemies = kept
	return removed
}

// ForEachBullet calls fn for every bullet. fn must not add or remove entities.
func (s *EntityStore) ForEachBullet(fn func(*Bullet)) {
	for _, b := range s.bullets {
		fn(b)
	}
}

// ForEachEnemy calls fn for every enemy. fn must not add or remove entities.
func (s *EntityStore) ForEachEnemy(fn func(*Enemy)) {
	for _, e := range s.enemies {
		fn(e)
	}
}

// BulletCount returns the number of live bullets.
func (s *EntityStore) BulletCount() int {
	return len(s.bullets)
}

// EnemyCount returns the number of live enemies.
func (s *EntityStore) EnemyCount() int {
	return len(s.enemies)
}

// Clear drops every entity.
func (s *EntityStore) Clear() {
	clear(s.bullets)
	clear(s.enemies)
	s.bullets = s.bullets[:0]
	s.enemies = s.enemies[:0]
}

// removalBatch collects entities marked during a scan so they can be
// removed together once the scan is done.
type removalBatch struct {
	bullets map[*Bullet]struct{}
	enemies map[*Enemy]struct{}
}

func newRemovalBatch() *removalBatch {
	return &removalBatch{
		bullets: make(map[*Bullet]struct{}),
		enemies: make(map[*Enemy]struct{}),
	}
}

// markBullet marks b and reports whether it was not marked before.
func (r *removalBatch) markBullet(b *Bullet) bool {
	if _, ok := r.bullets[b]; ok {
		return false
	}
	r.bullets[b] = struct{}{}
	return true
}

// markEnemy marks e and reports whether it was not marked before.
func (r *removalBatch) markEnemy(e *Enemy) bool {
	if _, ok := r.enemies[e]; ok {
		return false
	}
	r.enemies[e] = struct{}{}
	return true
}

func (r *removalBatch) hasBullet(b *Bullet) bool {
	_, ok := r.bullets[b]
	return ok
}

func (r *removalBatch) hasEnemy(e *Enemy) bool {
	_, ok := r.enemies[e]
	return ok
}

func (r *removalBatch) empty() bool {
	return len(r.bullets) == 0 && len(r.enemies) == 0
}

// apply removes every marked entity still present in the store.
// Entities already gone are ignored.
func (r *removalBatch) apply(s *EntityStore) (bullets, enemies int) {
	if len(r.bullets) > 0 {
		bullets = s.RemoveBullets(r.hasBullet)
	}
	if len(r.enemies) > 0 {
		enemies = s.RemoveEnemies(r.hasEnemy)
	}
	return bullets, enemies
}
