package config

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDifficultyCurves(t *testing.T) {
	dm := NewDifficultyManager(DefaultVoyageConfig().Difficulty)

	tests := []struct {
		errors   int
		prob     float64
		negative float64
		scale    float64
	}{
		{0, 0.30, 0.30, 1.0},
		{1, 0.35, 0.42, 1.5},
		{2, 0.40, 0.54, 2.0},
		{5, 0.55, 0.90, 3.5},
		{9, 0.55, 0.90, 3.5}, // clamped to max
		{-3, 0.30, 0.30, 1.0},
	}

	for _, tt := range tests {
		if got := dm.TriggerProbability(tt.errors); !approxEqual(got, tt.prob) {
			t.Errorf("TriggerProbability(%d) = %v, want %v", tt.errors, got, tt.prob)
		}
		if got := dm.NegativeWeight(tt.errors); !approxEqual(got, tt.negative) {
			t.Errorf("NegativeWeight(%d) = %v, want %v", tt.errors, got, tt.negative)
		}
		if got := dm.SeverityScale(tt.errors); !approxEqual(got, tt.scale) {
			t.Errorf("SeverityScale(%d) = %v, want %v", tt.errors, got, tt.scale)
		}
	}
}

func TestDifficultyMonotonic(t *testing.T) {
	dm := NewDifficultyManager(DefaultVoyageConfig().Difficulty)

	prevProb, prevNeg := -1.0, -1.0
	for e := 0; e <= dm.MaxError(); e++ {
		p, n := dm.TriggerProbability(e), dm.NegativeWeight(e)
		if p < prevProb {
			t.Errorf("TriggerProbability decreased at %d errors", e)
		}
		if n < prevNeg {
			t.Errorf("NegativeWeight decreased at %d errors", e)
		}
		prevProb, prevNeg = p, n
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := DefaultVoyageConfig().Difficulty
	cfg.Enabled = false
	dm := NewDifficultyManager(cfg)

	if got := dm.TriggerProbability(4); !approxEqual(got, 0.3) {
		t.Errorf("Disabled TriggerProbability = %v, want 0.3", got)
	}
	if got := dm.SeverityScale(4); !approxEqual(got, 1.0) {
		t.Errorf("Disabled SeverityScale = %v, want 1.0", got)
	}

	dm.SetEnabled(true)
	if !dm.IsEnabled() {
		t.Error("SetEnabled(true) did not enable")
	}
	if got := dm.Level(5); !approxEqual(got, 1.0) {
		t.Errorf("Level(5) = %v, want 1.0", got)
	}
}

func TestDifficultyZeroMaxError(t *testing.T) {
	cfg := DefaultVoyageConfig().Difficulty
	cfg.MaxError = 0
	dm := NewDifficultyManager(cfg)

	if dm.MaxError() != 5 {
		t.Errorf("MaxError() = %d, want fallback 5", dm.MaxError())
	}
}
