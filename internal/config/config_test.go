package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := parseVoyage(GetDefaultYAML())
	if err != nil {
		t.Fatalf("parseVoyage(embedded) failed: %v", err)
	}
	if cfg != DefaultVoyageConfig() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultVoyageConfig())
	}
}

func TestLoadVoyageCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voyage.yaml")
	data := []byte("ship:\n  fuel: 12\ndifficulty:\n  base_probability: 0.5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadVoyage(path)
	if err != nil {
		t.Fatalf("LoadVoyage() failed: %v", err)
	}
	if cfg.Ship.Fuel != 12 {
		t.Errorf("Ship.Fuel = %d, want 12", cfg.Ship.Fuel)
	}
	// Missing fields keep defaults
	if cfg.Ship.Hull != 50 {
		t.Errorf("Ship.Hull = %d, want 50", cfg.Ship.Hull)
	}
	if cfg.Difficulty.BaseProbability != 0.5 {
		t.Errorf("BaseProbability = %v, want 0.5", cfg.Difficulty.BaseProbability)
	}
	if cfg.Difficulty.MaxError != 5 {
		t.Errorf("MaxError = %d, want 5", cfg.Difficulty.MaxError)
	}
}

func TestLoadVoyageErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadVoyage(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("ship:\n  fuel: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadVoyage(bad); err == nil {
		t.Error("expected validation error for negative fuel")
	}
}

func TestApplyVoyagePreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		base    float64
		fuel    int
	}{
		{DifficultyEasy, true, 0.2, 60},
		{DifficultyNormal, true, 0.3, 50},
		{DifficultyHard, true, 0.45, 40},
		{DifficultyFixed, false, 0.3, 50},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultVoyageConfig()
			ApplyVoyagePreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.BaseProbability != tt.base {
				t.Errorf("BaseProbability = %v, want %v", cfg.Difficulty.BaseProbability, tt.base)
			}
			if cfg.Ship.Fuel != tt.fuel {
				t.Errorf("Ship.Fuel = %d, want %d", cfg.Ship.Fuel, tt.fuel)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("brutal"); ok {
		t.Error("ParsePreset(brutal) should fail")
	}
}
