package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starquest/internal/platform/tui"
	"github.com/vovakirdan/starquest/internal/registry"
	"github.com/vovakirdan/starquest/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresClear       bool
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [scenario]",
	Short: "Show the voyage log for a scenario",
	Long: `Display the best voyages and aggregate statistics for a scenario.
Without a scenario, the most recent voyages across all scenarios are listed.

Examples:
  starquest scores sol
  starquest scores terra-nova --limit 20
  starquest scores sol --clear
  starquest scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of voyages to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scenario's voyage log")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse the log in the terminal UI")
}

func runScores(_ *cobra.Command, args []string) {
	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresInteractive {
		rt := runtimeConfig()
		if _, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if len(args) == 0 {
		printRecent(store)
		return
	}

	scenarioID := args[0]
	if !registry.Exists(scenarioID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenarioID)
		fmt.Fprintln(os.Stderr, "Run 'starquest list' to see available scenarios.")
		return
	}

	if flagScoresClear {
		if err := store.ClearRuns(scenarioID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Printf("Voyage log for %s cleared.\n", scenarioID)
		return
	}

	sc, err := registry.Create(scenarioID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	runs, err := store.TopRuns(scenarioID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Voyage Log - %s\n", sc.Title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No voyages logged yet.")
		fmt.Println()
		fmt.Printf("Run 'starquest play %s' to fly the first one!\n", scenarioID)
		return
	}

	printRuns(runs)

	if stats, err := store.ScenarioStats(scenarioID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Survived: %d  Best: %d  Avg: %.0f  Avg visited: %.1f\n",
			stats.Runs, stats.Survived, stats.HighScore, stats.AvgScore, stats.AvgVisited)
	}
}

// printRecent lists the latest voyages across every scenario.
func printRecent(store *storage.Store) {
	runs, err := store.RecentRuns(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Recent voyages")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No voyages logged yet.")
		return
	}
	printRuns(runs)

	all, err := store.AllScenarioStats()
	if err != nil || len(all) == 0 {
		return
	}
	fmt.Println()
	for _, info := range registry.List() {
		if st, ok := all[info.ID]; ok {
			fmt.Printf("  %-12s runs %-4d best %-6d last %s\n",
				info.ID, st.Runs, st.HighScore, st.LastPlayed.Format("2006-01-02 15:04"))
		}
	}
}

func printRuns(runs []storage.Run) {
	fmt.Printf("  %-4s  %-12s  %-6s  %-7s  %-7s  %-8s  %s\n", "Rank", "Scenario", "Score", "Level", "Visited", "Answers", "Ending")
	fmt.Printf("  %-4s  %-12s  %-6s  %-7s  %-7s  %-8s  %s\n", "----", "--------", "-----", "-----", "-------", "-------", "------")

	for i, r := range runs {
		ending := r.Reason
		if r.Abandoned {
			ending = "abandoned"
		}
		fmt.Printf("  %-4d  %-12s  %-6d  %-7s  %-7d  %-8s  %s\n",
			i+1, r.ScenarioID, r.Score, r.Difficulty, r.Visited,
			fmt.Sprintf("%d/%d", r.Correct, r.Correct+r.Wrong), ending)
	}
}
