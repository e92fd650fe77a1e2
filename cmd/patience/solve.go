package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
	"github.com/vovakirdan/tui-patience/internal/games/klondike/solver"
)

var (
	flagDraw      int
	flagTimeout   time.Duration
	flagMaxStates int
	flagJSON      bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve one deal and print the winning moves",
	Long: `Deal the game for --seed and search for a way to win it.

The search stops at --timeout or after --max-states positions; the
answer is then "unknown". Ctrl+C stops it early.

Moves are printed as "draw", "7♠ -> T3" (tableau column 3) or
"A♥ -> F0" (foundation 0).

Examples:
  patience solve --seed 42
  patience solve --seed 42 --draw 1
  patience solve --seed 7 --timeout 1m --max-states 2000000
  patience solve --seed 42 --json`,
	Args: cobra.NoArgs,
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagDraw, "draw", 0, "Cards per draw, 1 or 3 (0 = from config)")
	solveCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Search time limit (0 = from config)")
	solveCmd.Flags().IntVar(&flagMaxStates, "max-states", 0, "Positions to explore at most (0 = from config)")
	solveCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
}

// solveOutput is the --json shape.
type solveOutput struct {
	Seed        int64           `json:"seed"`
	CardsToDraw int             `json:"cardsToDraw"`
	Status      string          `json:"status"`
	Explored    int             `json:"explored"`
	ElapsedMS   int64           `json:"elapsedMs"`
	Moves       []engine.Action `json:"moves"`
}

// searchOptions merges the solver flags over the config.
func searchOptions() (engine.Rules, solver.Options) {
	cfg := loadConfig()
	draw := cfg.Rules.CardsToDraw
	if flagDraw != 0 {
		draw = flagDraw
	}
	opts := solver.Options{
		MaxStates: cfg.Solver.MaxStates,
		Timeout:   cfg.Solver.Timeout,
		Logger:    logger,
	}
	if flagMaxStates > 0 {
		opts.MaxStates = flagMaxStates
	}
	if flagTimeout > 0 {
		opts.Timeout = flagTimeout
	}
	return engine.Rules{CardsToDraw: draw}, opts
}

func runSolve(_ *cobra.Command, _ []string) {
	rules, opts := searchOptions()
	if rules.CardsToDraw != 1 && rules.CardsToDraw != 3 {
		fmt.Fprintf(os.Stderr, "Error: --draw must be 1 or 3, got %d\n", rules.CardsToDraw)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := engine.NewGame(rules, seed)
	res, err := solver.Solve(ctx, start, opts)
	if err != nil && res.Status != solver.StatusCancelled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if res.Status == solver.StatusSolved {
		end, err := solver.Replay(start, res.Path)
		if err != nil || !end.IsComplete() {
			fmt.Fprintf(os.Stderr, "Error: solution does not replay: %v\n", err)
			os.Exit(1)
		}
	}

	if flagJSON {
		out := solveOutput{
			Seed:        seed,
			CardsToDraw: rules.CardsToDraw,
			Status:      res.Status.String(),
			Explored:    res.Explored,
			ElapsedMS:   res.Elapsed.Milliseconds(),
			Moves:       res.Actions,
		}
		if out.Moves == nil {
			out.Moves = []engine.Action{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Seed %d, draw %d: %s\n", seed, rules.CardsToDraw, res.Status)
	fmt.Printf("Explored %d positions in %s\n", res.Explored, res.Elapsed.Round(time.Millisecond))

	if res.Status != solver.StatusSolved {
		return
	}

	fmt.Printf("Solution in %d moves:\n", len(res.Actions))
	fmt.Println()
	for i, a := range res.Actions {
		fmt.Printf("  %3d. %s\n", i+1, a)
	}
}
