package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores and win statistics for a variant,
or for every variant when none is given.

Examples:
  patience scores
  patience scores klondike3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var historyCmd = &cobra.Command{
	Use:   "history [variant]",
	Short: "Show recently played deals",
	Long: `List recently won and abandoned deals, newest first. The seeds can be
replayed with 'patience play <variant> --seed N'.

Examples:
  patience history
  patience history klondike1 --limit 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of deals to show")
}

// variantArgs validates an optional variant argument and returns the
// variants to report on.
func variantArgs(args []string) []registry.GameInfo {
	if len(args) == 0 {
		return registry.List()
	}
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'patience list' to see available variants.")
		os.Exit(1)
	}
	for _, g := range registry.List() {
		if g.ID == gameID {
			return []registry.GameInfo{g}
		}
	}
	return nil
}

// mustOpenStore opens the database or exits; reports need the real one.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runScores(_ *cobra.Command, args []string) {
	games := variantArgs(args)
	store := mustOpenStore()
	defer store.Close()

	for i, g := range games {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, g); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			store.Close()
			os.Exit(1)
		}
	}
}

func printScores(store *storage.Store, g registry.GameInfo) error {
	scores, err := store.TopScores(g.ID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", g.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'patience play %s' to set the first high score!\n", g.ID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(g.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Played: %d  Won: %d (%.0f%%)", stats.HighScore, stats.GamesCount, stats.Wins, stats.WinRate()*100)
	if stats.FewestMoves > 0 {
		fmt.Printf("  Fewest moves: %d", stats.FewestMoves)
	}
	fmt.Println()
	return nil
}

func runHistory(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = variantArgs(args)[0].ID
	}
	store := mustOpenStore()
	defer store.Close()

	results, err := store.RecentResults(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	if len(results) == 0 {
		fmt.Println("No deals recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %-20s  %-6s  %5s  %6s  %s\n", "Variant", "Seed", "Result", "Moves", "Time", "Date")
	fmt.Printf("  %-10s  %-20s  %-6s  %5s  %6s  %s\n", "-------", "----", "------", "-----", "----", "----")
	for _, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		played := (time.Duration(r.Duration) * time.Second).String()
		fmt.Printf("  %-10s  %-20d  %-6s  %5d  %6s  %s\n",
			r.GameID, r.Seed, outcome, r.Moves, played, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
