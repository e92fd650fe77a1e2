package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/games/klondike"
	"github.com/vovakirdan/tui-patience/internal/platform/tui"
	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Klondike",
	Long: `Start playing the given variant, or pick one from a menu.

The game in progress is saved after every move and resumed next time.
Pass --seed to deal a specific game instead.

Controls:
  Arrows/WASD  - Move the cursor
  Enter        - Play the card under the cursor
  Space        - Pick up a card, Space or Enter again to drop it
  Tab          - Draw from the stock
  U            - Undo
  H            - Find a solution and play it
  N            - New deal
  P            - Pause
  ?            - All keys
  Q/Ctrl+C     - Quit

The mouse works too: click a card to play it, click the stock to draw.

Difficulty options:
  easy   - Draw one card at a time
  normal - Draw three cards
  hard   - Draw three cards, no undo

Examples:
  patience play
  patience play klondike1
  patience play klondike --difficulty hard
  patience play klondike3 --seed 1234`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// useStore makes new games save into store.
func useStore(store *storage.Store) {
	if store != nil {
		klondike.SetKV(store)
	}
}

func runPlay(_ *cobra.Command, args []string) {
	store := openStore()
	useStore(store)
	cfg := terminalConfig()

	var err error
	if len(args) == 0 {
		err = menuLoop(store, cfg)
	} else {
		err = playVariant(store, cfg, args[0])
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playVariant plays gameID and continues in the menu if the player asks
// for it.
func playVariant(store *storage.Store, cfg core.RuntimeConfig, gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'patience list' to see the variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	back, err := tui.Run(game, store, cfg, cfg.Seed != 0)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if back {
		return menuLoop(store, cfg)
	}
	return nil
}
