package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/starquest/internal/config"
	"github.com/vovakirdan/starquest/internal/content"
	"github.com/vovakirdan/starquest/internal/core"
	"github.com/vovakirdan/starquest/internal/registry"
	"github.com/vovakirdan/starquest/internal/voyage"
)

// Flags shared by play, menu, serve and sim
var (
	flagConfig     string
	flagDifficulty string
)

// registerContent adds the packs found in the --content directory to the
// registry. Packs whose ID is already taken are skipped.
func registerContent() error {
	if flagContent == "" {
		return nil
	}

	packs, err := content.NewLoader(flagContent).LoadAll()
	if err != nil {
		return err
	}
	for _, p := range packs {
		if registry.Exists(p.ID) {
			logger.Warn("skipping pack with taken id", "id", p.ID, "file", p.FilePath)
			continue
		}
		sc, err := p.Scenario()
		if err != nil {
			logger.Warn("skipping invalid pack", "file", p.FilePath, "error", err)
			continue
		}
		registry.Register(sc.ID, func() *voyage.Scenario { return sc })
		logger.Debug("registered pack", "id", sc.ID, "file", p.FilePath)
	}
	return nil
}

// resolveScenario looks a scenario up by ID.
func resolveScenario(id string) (*voyage.Scenario, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown scenario %q (run 'starquest list')", id)
	}
	return registry.Create(id)
}

// voyageConfig loads the rule set and applies the difficulty preset.
func voyageConfig(preset config.DifficultyPreset) (config.VoyageConfig, error) {
	cfg, err := config.LoadVoyage(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyVoyagePreset(&cfg, preset)
	return cfg, nil
}

// parsePreset validates the --difficulty flag.
func parsePreset() (config.DifficultyPreset, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return "", fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
	}
	return preset, nil
}

// runtimeConfig sizes the view to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}
