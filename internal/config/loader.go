package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRoids loads the roids configuration.
// Search order: customPath -> ~/.roids/configs/roids.yaml -> ./configs/roids.yaml -> embedded default
// The result is validated; a config that fails validation is an error.
func LoadRoids(customPath string) (RoidsConfig, error) {
	cfg, err := loadRoidsUnvalidated(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadRoidsUnvalidated(customPath string) (RoidsConfig, error) {
	var cfg RoidsConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return ParseRoids(data)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("roids.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRoids(data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/roids.yaml"); err == nil {
		if cfg, err := ParseRoids(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseRoids(GetDefaultYAML("roids"))
	if err != nil {
		return DefaultRoidsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRoids decodes a roids config document. Unknown keys are rejected.
func ParseRoids(data []byte) (RoidsConfig, error) {
	var cfg RoidsConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse roids config: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".roids", "configs", filename)
}
