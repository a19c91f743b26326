package config

import "github.com/vovakirdan/starquest/internal/core"

// DifficultyManager derives the adaptive event curves from the running error count.
// The error count is first mapped onto a level in [0, 1]; the curves then
// interpolate from their base values the way the level grows.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.MaxError <= 0 {
		cfg.MaxError = DefaultVoyageConfig().Difficulty.MaxError
	}
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables adaptive difficulty.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether the curves react to mistakes.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// MaxError returns the ceiling of the error count.
func (d *DifficultyManager) MaxError() int {
	return d.cfg.MaxError
}

// BaseProbability returns the trigger chance at zero errors.
func (d *DifficultyManager) BaseProbability() float64 {
	return d.cfg.BaseProbability
}

// effectiveErrors returns the error count the curves see.
func (d *DifficultyManager) effectiveErrors(errorCount int) int {
	if !d.cfg.Enabled {
		return 0
	}
	if errorCount < 0 {
		return 0
	}
	if errorCount > d.cfg.MaxError {
		return d.cfg.MaxError
	}
	return errorCount
}

// Level returns the current difficulty level (0.0 to 1.0) for an error count.
func (d *DifficultyManager) Level(errorCount int) float64 {
	return core.ClampF(float64(d.effectiveErrors(errorCount))/float64(d.cfg.MaxError), 0.0, 1.0)
}

// TriggerProbability returns the chance that a random event fires on a visit.
// It never decreases as the error count grows.
func (d *DifficultyManager) TriggerProbability(errorCount int) float64 {
	return d.cfg.BaseProbability + d.cfg.Scaling.ProbabilityStep*float64(d.effectiveErrors(errorCount))
}

// NegativeWeight returns the chance that a fired event is drawn from the negative pool.
// With the default scaling it spans 0.3 at zero errors to 0.9 at max errors.
func (d *DifficultyManager) NegativeWeight(errorCount int) float64 {
	return d.cfg.Scaling.NegativeWeightBase + d.cfg.Scaling.NegativeWeightSpan*d.Level(errorCount)
}

// SeverityScale returns the multiplier applied to the harmful parts of negative events.
func (d *DifficultyManager) SeverityScale(errorCount int) float64 {
	return 1.0 + d.cfg.Scaling.SeverityStep*float64(d.effectiveErrors(errorCount))
}
