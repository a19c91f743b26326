package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadVoyage loads the voyage configuration.
// Search order: customPath -> ~/.starquest/configs/voyage.yaml -> ./configs/voyage.yaml -> embedded default
// Fields missing from a file keep their built-in defaults.
func LoadVoyage(customPath string) (VoyageConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultVoyageConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseVoyage(data)
		if err != nil {
			return DefaultVoyageConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("voyage.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseVoyage(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/voyage.yaml"); err == nil {
		if cfg, err := parseVoyage(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseVoyage(defaultVoyageYAML)
	if err != nil {
		return DefaultVoyageConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseVoyage decodes YAML over the built-in defaults and validates the result.
func parseVoyage(data []byte) (VoyageConfig, error) {
	cfg := DefaultVoyageConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings the engine cannot run with.
func (c VoyageConfig) Validate() error {
	switch {
	case c.Ship.Fuel <= 0:
		return fmt.Errorf("ship.fuel must be positive, got %d", c.Ship.Fuel)
	case c.Ship.Hull <= 0:
		return fmt.Errorf("ship.hull must be positive, got %d", c.Ship.Hull)
	case c.Rules.MoveCost < 0:
		return fmt.Errorf("rules.move_cost must not be negative, got %d", c.Rules.MoveCost)
	case c.Difficulty.MaxError <= 0:
		return fmt.Errorf("difficulty.max_error must be positive, got %d", c.Difficulty.MaxError)
	case c.Difficulty.BaseProbability < 0:
		return fmt.Errorf("difficulty.base_probability must not be negative, got %v", c.Difficulty.BaseProbability)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".starquest", "configs", filename)
}

// ApplyVoyagePreset modifies the config based on a difficulty preset.
func ApplyVoyagePreset(cfg *VoyageConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.BaseProbability = BaseProbabilityForPreset(preset)

	// Adjust the ship based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Ship.Fuel = 60
		cfg.Ship.Hull = 60
	case DifficultyHard:
		cfg.Ship.Fuel = 40
		cfg.Ship.Hull = 40
	}
}
