package shooter

import "github.com/vovakirdan/tui-shooter/internal/config"

// Shape is the visual and kinematic class of an enemy.
type Shape int

const (
	ShapeCircle   Shape = iota // falls straight down
	ShapeTriangle              // weaves gently
	ShapeAsteroid              // weaves widely
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeTriangle:
		return "Triangle"
	case ShapeAsteroid:
		return "Asteroid"
	default:
		return "Circle"
	}
}

// ParseShape converts a config shape name into a Shape.
// Unknown names resolve to ShapeCircle.
func ParseShape(name string) Shape {
	switch name {
	case config.ShapeTriangle:
		return ShapeTriangle
	case config.ShapeAsteroid:
		return ShapeAsteroid
	default:
		return ShapeCircle
	}
}

// ModeProfile is the immutable parameter bundle of one difficulty mode.
// Speeds are field units per nominal tick.
type ModeProfile struct {
	Mode               config.Mode
	PlayerSpeed        float64
	BulletSpeed        float64 // negative: bullets travel up
	EnemySpeed         float64
	EnemySpeedMin      float64
	EnemySpeedMax      float64
	SpawnIntervalTicks int
	EnemyShape         Shape
	StartingLives      int
}

// ProfileFor builds the profile of a mode from the shooter config.
// Modes outside the closed set get the Easy profile.
func ProfileFor(mode config.Mode, cfg config.ShooterConfig) ModeProfile {
	if !mode.Valid() {
		mode = config.ModeEasy
	}
	mc := cfg.Modes.For(mode)

	jitter := cfg.Enemy.SpeedJitter
	minSpeed := mc.EnemySpeed - jitter
	if minSpeed < 0 {
		minSpeed = 0
	}

	return ModeProfile{
		Mode:               mode,
		PlayerSpeed:        mc.PlayerSpeed,
		BulletSpeed:        mc.BulletSpeed,
		EnemySpeed:         mc.EnemySpeed,
		EnemySpeedMin:      minSpeed,
		EnemySpeedMax:      mc.EnemySpeed + jitter,
		SpawnIntervalTicks: mc.SpawnIntervalTicks,
		EnemyShape:         ParseShape(mc.Shape),
		StartingLives:      mc.Lives,
	}
}

// Jittered reports whether enemy speed is drawn from a range.
func (p ModeProfile) Jittered() bool {
	return p.EnemySpeedMax > p.EnemySpeedMin
}
