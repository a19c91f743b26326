package config

import (
	_ "embed"
)

//go:embed defaults/voyage.yaml
var defaultVoyageYAML []byte

// DefaultVoyageConfig returns the built-in voyage configuration.
func DefaultVoyageConfig() VoyageConfig {
	return VoyageConfig{
		Ship: ShipConfig{
			Fuel: 50,
			Hull: 50,
		},
		Rules: RulesConfig{
			MoveCost:          1,
			FuelBonus:         5,
			WrongAnswerDamage: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			BaseProbability: 0.3,
			MaxError:        5,
			Scaling: ScalingConfig{
				ProbabilityStep:    0.05,
				NegativeWeightBase: 0.3,
				NegativeWeightSpan: 0.6,
				SeverityStep:       0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultVoyageYAML
}
