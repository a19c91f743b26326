package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starquest/internal/config"
	"github.com/vovakirdan/starquest/internal/platform/tui"
	"github.com/vovakirdan/starquest/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the scenario picker",
	Long: `Start starquest in interactive menu mode.

Pick a scenario and a difficulty, fly the voyage, and return to the menu
with B or Esc once it is over. Tab opens the voyage log.

Controls:
  Up/Down/j/k     - Navigate scenarios
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Launch
  Tab             - Voyage log
  Q               - Quit

Examples:
  starquest menu
  starquest menu --difficulty hard
  starquest menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom voyage config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Initial difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	preset, err := parsePreset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Presets are applied per voyage from the menu
	base, err := config.LoadVoyage(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		store = nil
	}

	runErr := tui.RunSession(tui.SessionOptions{
		Store:   store,
		Runtime: runtimeConfig(),
		Voyage:  base,
		Preset:  preset,
		Logger:  logger,
	})

	// Cleanup
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
