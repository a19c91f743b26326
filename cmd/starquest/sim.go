package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starquest/internal/sim"
	"github.com/vovakirdan/starquest/internal/storage"
)

var (
	flagSimRuns     int
	flagSimAccuracy float64
	flagSimMaxSteps int
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim <scenario>",
	Short: "Autopilot a batch of voyages",
	Long: `Fly voyages without a terminal. The autopilot heads for the nearest
unvisited location and answers each question correctly with the given
accuracy. Useful for balancing scenario packs and difficulty presets.

Examples:
  starquest sim sol
  starquest sim terra-nova --runs 1000 --accuracy 0.5 --difficulty hard
  starquest sim sol --seed 7 --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", sim.DefaultRuns, "Number of voyages to fly")
	simCmd.Flags().Float64Var(&flagSimAccuracy, "accuracy", sim.DefaultAccuracy, "Share of questions answered correctly (0-1)")
	simCmd.Flags().IntVar(&flagSimMaxSteps, "max-steps", sim.DefaultMaxSteps, "Intents per voyage before it is cut off")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the simulated voyages in the run database")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom voyage config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, args []string) {
	preset, err := parsePreset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scenario, err := resolveScenario(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := voyageConfig(preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := uint64(flagSeed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	start := time.Now()
	rep := sim.Run(scenario, sim.Options{
		Runs:       flagSimRuns,
		Accuracy:   flagSimAccuracy,
		MaxSteps:   flagSimMaxSteps,
		Seed:       seed,
		Config:     cfg,
		Difficulty: "sim-" + string(preset),
		Logger:     logger,
	})
	logger.Info("simulation finished", "runs", rep.Runs, "elapsed", time.Since(start))

	pct := func(n int) float64 { return 100 * float64(n) / float64(rep.Runs) }

	fmt.Printf("Simulation - %s (%s, accuracy %.2f, seed %d)\n", scenario.Title, preset, flagSimAccuracy, seed)
	fmt.Println()
	fmt.Printf("  Voyages      %d\n", rep.Runs)
	fmt.Printf("  Destroyed    %d (%.1f%%)\n", rep.Destroyed, pct(rep.Destroyed))
	fmt.Printf("  Out of fuel  %d (%.1f%%)\n", rep.OutOfFuel, pct(rep.OutOfFuel))
	fmt.Printf("  Doomed       %d (%.1f%%)\n", rep.Doomed, pct(rep.Doomed))
	fmt.Printf("  Cut off      %d (%.1f%%)\n", rep.CutOff, pct(rep.CutOff))
	fmt.Println()
	fmt.Printf("  Best score   %d\n", rep.BestScore)
	fmt.Printf("  Avg score    %.1f\n", rep.AvgScore)
	fmt.Printf("  Avg visited  %.2f / %d\n", rep.AvgVisited, len(scenario.Locations))
	fmt.Printf("  Avg events   %.2f\n", rep.AvgEvents)
	fmt.Printf("  Avg moves    %.1f\n", rep.AvgMoves)

	if !flagSimSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	saved := 0
	for _, r := range rep.Results {
		if _, err := store.SaveRun(r); err != nil {
			logger.Warn("could not save simulated run", "error", err)
			continue
		}
		saved++
	}
	fmt.Printf("\nSaved %d voyages to the run database.\n", saved)
}
