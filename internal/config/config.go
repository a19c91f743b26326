// Package config provides YAML-based voyage configuration loading and
// difficulty management for starquest.
package config

// VoyageConfig contains all tunable rules of a voyage.
type VoyageConfig struct {
	Ship       ShipConfig       `yaml:"ship"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShipConfig defines the starting resources of the ship.
type ShipConfig struct {
	Fuel int `yaml:"fuel"`
	Hull int `yaml:"hull"`
}

// RulesConfig defines the fixed costs and rewards of the resource economy.
type RulesConfig struct {
	MoveCost          int `yaml:"move_cost"`           // Fuel burned per move
	FuelBonus         int `yaml:"fuel_bonus"`          // Fuel granted by a fuel-bonus location on first visit
	WrongAnswerDamage int `yaml:"wrong_answer_damage"` // Hull lost per wrong answer
}

// DifficultyConfig defines the adaptive event system.
type DifficultyConfig struct {
	Enabled         bool          `yaml:"enabled"`          // false freezes the curves at zero errors
	BaseProbability float64       `yaml:"base_probability"` // Event trigger chance with no mistakes
	MaxError        int           `yaml:"max_error"`        // Ceiling of the running error count
	Scaling         ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines how strongly the error count bends each curve.
type ScalingConfig struct {
	ProbabilityStep    float64 `yaml:"probability_step"`     // Trigger chance added per error
	NegativeWeightBase float64 `yaml:"negative_weight_base"` // Chance of a negative card at zero errors
	NegativeWeightSpan float64 `yaml:"negative_weight_span"` // Added chance at max errors
	SeverityStep       float64 `yaml:"severity_step"`        // Negative effect multiplier added per error
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty input is normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// BaseProbabilityForPreset returns the event trigger base chance for a preset.
func BaseProbabilityForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.2
	case DifficultyHard:
		return 0.45
	default:
		return 0.3
	}
}

// IsFixedPreset returns true if the preset disables adaptive difficulty.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
