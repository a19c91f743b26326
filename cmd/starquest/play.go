package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starquest/internal/platform/tui"
	"github.com/vovakirdan/starquest/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [scenario]",
	Short: "Fly a voyage",
	Long: `Start a voyage through the specified scenario. Without an argument
the scenario picker opens first.

Controls:
  WASD/HJKL/Arrows - Fly one tile (costs fuel)
  0-9              - Pick an answer
  Enter/Space      - Continue, submit a number, skip the card animation
  Tab              - Debug panel
  R                - New voyage (after game over)
  Q/Ctrl+C         - Abandon and quit

Difficulty options:
  easy   - Calm skies, extra fuel and hull
  normal - Events grow harsher with every wrong answer
  hard   - Frequent events, thinner hull
  fixed  - Adaptive curves off, base rates only

Examples:
  starquest play sol
  starquest play terra-nova --difficulty hard
  starquest play sol --seed 42
  starquest play sol --config ./my-voyage.yaml
  starquest play my-pack --content ./packs`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom voyage config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) {
	preset, err := parsePreset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		// Continue without storage - the voyage still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	rt := runtimeConfig()

	var scenarioID string
	if len(args) == 1 {
		scenarioID = args[0]
	} else {
		result, menuErr := tui.RunMenu(store, rt, preset)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			return
		}
		if result.Quit || result.WantsScoreboard || result.ScenarioID == "" {
			return
		}
		scenarioID = result.ScenarioID
		preset = result.Difficulty
		rt = result.Config
	}

	scenario, err := resolveScenario(scenarioID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	cfg, err := voyageConfig(preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	logger.Info("voyage launched", "scenario", scenario.ID, "difficulty", preset, "seed", rt.Seed)
	runErr := tui.Run(tui.VoyageOptions{
		Scenario:   scenario,
		Config:     cfg,
		Difficulty: string(preset),
		Store:      store,
		Runtime:    rt,
		Logger:     logger,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running voyage: %v\n", runErr)
	}
}
