// Package config provides YAML-based game configuration loading and
// mode profiles for the shooter.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is a difficulty mode chosen once per run.
type Mode string

const (
	ModeEasy   Mode = "Easy"
	ModeMedium Mode = "Medium"
	ModeHard   Mode = "Hard"
)

// Modes returns all modes in menu order.
func Modes() []Mode {
	return []Mode{ModeEasy, ModeMedium, ModeHard}
}

// ParseMode resolves a mode name case-insensitively.
// Unknown or empty names resolve to Easy.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium":
		return ModeMedium
	case "hard":
		return ModeHard
	default:
		return ModeEasy
	}
}

// LookupMode resolves a mode name case-insensitively and reports whether
// it names a known mode.
func LookupMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return ModeEasy, true
	case "medium":
		return ModeMedium, true
	case "hard":
		return ModeHard, true
	default:
		return "", false
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeEasy || m == ModeMedium || m == ModeHard
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// Enemy shape names used in mode configs.
const (
	ShapeCircle   = "circle"
	ShapeTriangle = "triangle"
	ShapeAsteroid = "asteroid"
)

// ShooterConfig contains all configuration for the shooter game.
type ShooterConfig struct {
	Field    FieldConfig    `yaml:"field"`
	Player   PlayerConfig   `yaml:"player"`
	Bullet   BulletConfig   `yaml:"bullet"`
	Enemy    EnemyConfig    `yaml:"enemy"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Modes    ModesConfig    `yaml:"modes"`
}

// FieldConfig defines the playfield size in field units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player ship box and start position.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // distance from field bottom to ship top
}

// BulletConfig defines the bullet box.
type BulletConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// EnemyConfig defines enemy geometry and lateral drift.
type EnemyConfig struct {
	Size              float64 `yaml:"size"`
	SpawnMargin       float64 `yaml:"spawn_margin"`
	DriftFrequency    float64 `yaml:"drift_frequency"`
	TriangleAmplitude float64 `yaml:"triangle_amplitude"`
	AsteroidAmplitude float64 `yaml:"asteroid_amplitude"`
	SpeedJitter       float64 `yaml:"speed_jitter"` // +/- range around the mode enemy speed
}

// GameplayConfig defines scoring and timing rules.
type GameplayConfig struct {
	KillPoints        int     `yaml:"kill_points"`
	FireCooldownTicks float64 `yaml:"fire_cooldown_ticks"`
	MaxStepTicks      float64 `yaml:"max_step_ticks"`
}

// ModeConfig is the tunable part of one mode profile.
type ModeConfig struct {
	PlayerSpeed        float64 `yaml:"player_speed"`
	BulletSpeed        float64 `yaml:"bullet_speed"` // negative: bullets travel up
	EnemySpeed         float64 `yaml:"enemy_speed"`
	SpawnIntervalTicks int     `yaml:"spawn_interval_ticks"`
	Shape              string  `yaml:"shape"`
	Lives              int     `yaml:"lives"`
}

// ModesConfig holds one ModeConfig per mode.
type ModesConfig struct {
	Easy   ModeConfig `yaml:"easy"`
	Medium ModeConfig `yaml:"medium"`
	Hard   ModeConfig `yaml:"hard"`
}

// For returns the config of a mode. Unknown modes get the Easy entry.
func (m ModesConfig) For(mode Mode) ModeConfig {
	switch mode {
	case ModeMedium:
		return m.Medium
	case ModeHard:
		return m.Hard
	default:
		return m.Easy
	}
}

// Validate checks that the config describes a playable game.
func (c ShooterConfig) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %gx%g", c.Field.Width, c.Field.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %gx%g", c.Player.Width, c.Player.Height))
	}
	if c.Bullet.Width <= 0 || c.Bullet.Height <= 0 {
		errs = append(errs, fmt.Errorf("bullet size must be positive, got %gx%g", c.Bullet.Width, c.Bullet.Height))
	}
	if c.Enemy.Size <= 0 {
		errs = append(errs, fmt.Errorf("enemy size must be positive, got %g", c.Enemy.Size))
	}
	if c.Enemy.SpeedJitter < 0 {
		errs = append(errs, fmt.Errorf("enemy speed_jitter must not be negative, got %g", c.Enemy.SpeedJitter))
	}
	if c.Gameplay.KillPoints < 0 {
		errs = append(errs, fmt.Errorf("gameplay kill_points must not be negative, got %d", c.Gameplay.KillPoints))
	}
	if c.Gameplay.MaxStepTicks < 1 {
		errs = append(errs, fmt.Errorf("gameplay max_step_ticks must be at least 1, got %g", c.Gameplay.MaxStepTicks))
	}
	for _, mode := range Modes() {
		mc := c.Modes.For(mode)
		if mc.SpawnIntervalTicks <= 0 {
			errs = append(errs, fmt.Errorf("mode %s: spawn_interval_ticks must be positive, got %d", mode, mc.SpawnIntervalTicks))
		}
		if mc.BulletSpeed >= 0 {
			errs = append(errs, fmt.Errorf("mode %s: bullet_speed must be negative, got %g", mode, mc.BulletSpeed))
		}
		if mc.Lives <= 0 {
			errs = append(errs, fmt.Errorf("mode %s: lives must be positive, got %d", mode, mc.Lives))
		}
		switch mc.Shape {
		case ShapeCircle, ShapeTriangle, ShapeAsteroid:
		default:
			errs = append(errs, fmt.Errorf("mode %s: unknown shape %q", mode, mc.Shape))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid shooter config: %w", errors.Join(errs...))
	}
	return nil
}
