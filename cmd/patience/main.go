// patience is Klondike solitaire for the terminal, with a solver and an SSH
// server for remote play.
//
// Usage:
//
//	patience list             - List available variants
//	patience play [variant]   - Play, picking a variant from a menu if none given
//	patience menu             - Start menu to pick variants interactively
//	patience solve --seed N   - Solve one deal and print the moves
//	patience analyze          - Measure how many deals in a seed range can be won
//	patience scores [variant] - Show high scores
//	patience history          - Show recently played deals
//	patience serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Deal seed (0 = resume or random)
//	--db <path>           - Set database path (default: ~/.patience/patience.db)
//	--config <path>       - Custom klondike.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-patience/internal/config"
	"github.com/vovakirdan/tui-patience/internal/games/klondike"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "patience",
	Short: "Klondike solitaire in your terminal",
	Long: `Patience plays Klondike solitaire in the terminal, finds solutions
for any deal and serves games over SSH.

Available commands:
  list     - Show the available variants
  play     - Play a variant
  menu     - Interactive variant picker menu
  solve    - Solve a deal
  analyze  - Winnability statistics over a range of deals
  scores   - View high scores
  history  - View recently played deals
  serve    - Start SSH server for remote play

Examples:
  patience play
  patience play klondike1 --seed 42
  patience solve --seed 42 --draw 3
  patience analyze --from 1 --to 200
  patience serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Deal seed (0 = resume the saved game or deal at random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.patience/patience.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom klondike.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup builds the logger and applies the config flags to new games.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "patience",
		Level:           level,
	})

	if _, ok := config.ParseDifficulty(flagDifficulty); !ok {
		return fmt.Errorf("invalid --difficulty %q: want easy, normal or hard", flagDifficulty)
	}
	klondike.SetConfigPath(flagConfig)
	klondike.SetDifficultyPreset(flagDifficulty)
	return nil
}

// loadConfig returns the klondike config with the difficulty applied.
func loadConfig() config.KlondikeConfig {
	cfg, err := config.LoadKlondike(flagConfig)
	if err != nil {
		logger.Warn("config load failed, using defaults", "err", err)
		cfg = config.DefaultKlondikeConfig()
	}
	if flagDifficulty != "" {
		preset, _ := config.ParseDifficulty(flagDifficulty)
		config.ApplyKlondikePreset(&cfg, preset)
	}
	return cfg
}

// openStore opens the database, falling back to an in-memory one so the
// game still works without a writable home directory.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err == nil {
		return store
	}
	fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
	store, err = storage.OpenMemory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open in-memory database: %v\n", err)
		return nil
	}
	return store
}
