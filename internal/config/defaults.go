package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultShooterConfig returns the default shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Field: FieldConfig{
			Width:  900,
			Height: 650,
		},
		Player: PlayerConfig{
			Width:        50,
			Height:       40,
			BottomOffset: 70,
		},
		Bullet: BulletConfig{
			Width:  6,
			Height: 12,
		},
		Enemy: EnemyConfig{
			Size:              36,
			SpawnMargin:       20,
			DriftFrequency:    0.03,
			TriangleAmplitude: 1,
			AsteroidAmplitude: 2,
			SpeedJitter:       0,
		},
		Gameplay: GameplayConfig{
			KillPoints:        10,
			FireCooldownTicks: 10,
			MaxStepTicks:      3,
		},
		Modes: ModesConfig{
			Easy: ModeConfig{
				PlayerSpeed:        6,
				BulletSpeed:        -10,
				EnemySpeed:         2,
				SpawnIntervalTicks: 30,
				Shape:              ShapeCircle,
				Lives:              3,
			},
			Medium: ModeConfig{
				PlayerSpeed:        7,
				BulletSpeed:        -12,
				EnemySpeed:         3,
				SpawnIntervalTicks: 24,
				Shape:              ShapeTriangle,
				Lives:              3,
			},
			Hard: ModeConfig{
				PlayerSpeed:        8,
				BulletSpeed:        -14,
				EnemySpeed:         4,
				SpawnIntervalTicks: 18,
				Shape:              ShapeAsteroid,
				Lives:              2,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "shooter":
		return defaultShooterYAML
	default:
		return nil
	}
}
