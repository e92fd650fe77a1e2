package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/platform/tui"
	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and a deal from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Then continue the saved game, deal a new one or replay a recent deal.
After a game you return to the menu with B (when paused or won).

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Esc/B        - Back
  Q            - Quit

Examples:
  patience menu
  patience menu --difficulty easy`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	useStore(store)

	err := menuLoop(store, terminalConfig())

	// Cleanup
	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// menuLoop shows the menu until the player quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return nil
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		selection, err := tui.RunDealMenu(store, gameID, game.Title(), cfg)
		if err != nil {
			return err
		}
		// User pressed back or quit
		if selection == nil {
			continue
		}

		cfg.Seed = selection.Seed
		if selection.NewDeal && cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, cfg, selection.NewDeal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if !back {
			return nil // Quit from the game
		}
	}
}
