// starquest is a terminal space exploration game with adaptive events and
// physics challenges.
//
// Usage:
//
//	starquest list                 - List installed scenarios
//	starquest play [scenario]      - Fly a voyage (menu picks one if omitted)
//	starquest menu                 - Scenario picker, voyage log and replays
//	starquest serve                - Start SSH server for remote play
//	starquest scores <scenario>    - Show the voyage log for a scenario
//	starquest sim <scenario>       - Autopilot a batch of voyages headlessly
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible voyages
//	--db <path>         - Set database path (default: ~/.starquest/runs.db)
//	--log-level <lvl>   - debug, info, warn, error (default: warn)
//	--log-file <path>   - Write logs to a file instead of stderr
//	--content <dir>     - Load extra scenario packs from a directory
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the built-in scenario packs
	_ "github.com/vovakirdan/starquest/internal/content/packs"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
	flagContent  string

	logger  *log.Logger
	logSink *os.File
)

func main() {
	err := rootCmd.Execute()
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starquest",
	Short: "Starquest - explore the galaxy, answer physics questions, survive",
	Long: `Starquest is a terminal space exploration game. Fly between planets,
answer physics questions to keep your hull intact, and weather random events
that grow nastier the more mistakes you make.

Available commands:
  list     - Show installed scenarios
  play     - Fly a voyage directly
  menu     - Interactive scenario picker
  serve    - Start SSH server for remote play
  scores   - View the voyage log
  sim      - Autopilot voyages to balance content

Examples:
  starquest list
  starquest play sol
  starquest play terra-nova --difficulty hard
  starquest menu
  starquest serve --ssh :2222
  starquest sim terra-nova --runs 500 --accuracy 0.6`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Animation frame rate")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starquest/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "Directory of extra scenario packs (YAML)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup runs before every command.
func setup(_ *cobra.Command, _ []string) error {
	if err := setupLogger(); err != nil {
		return err
	}
	return registerContent()
}

// setupLogger builds the process-wide logger from the global flags.
func setupLogger() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := os.Stderr
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		logSink = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "starquest",
		Level:           level,
	})
	return nil
}
