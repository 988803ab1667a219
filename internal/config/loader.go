package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadShooter loads shooter configuration.
// Search order: customPath -> ~/.arcade/configs/shooter.yaml -> ./configs/shooter.yaml -> embedded default
//
// Files are decoded over the hardcoded defaults, so a file only needs the
// keys it changes.
func LoadShooter(customPath string) (ShooterConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultShooterConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseShooter(data)
		if err != nil {
			return DefaultShooterConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("shooter.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseShooter(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "shooter.yaml")); err == nil {
		if cfg, err := ParseShooter(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseShooter(defaultShooterYAML)
	if err != nil {
		return DefaultShooterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseShooter decodes YAML over the default config and validates the result.
func ParseShooter(data []byte) (ShooterConfig, error) {
	cfg := DefaultShooterConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
