package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/klondike.yaml
var defaultKlondikeYAML []byte

// DefaultKlondikeConfig returns the default Klondike configuration.
func DefaultKlondikeConfig() KlondikeConfig {
	return KlondikeConfig{
		Rules: KlondikeRules{
			CardsToDraw: 3,
		},
		Undo: KlondikeUndo{
			MaxUndos: 3,
		},
		Solver: KlondikeSolver{
			MaxStates: 250000,
			Timeout:   10 * time.Second,
		},
		Autoplay: KlondikeAutoplay{
			Enabled:       true,
			IntervalTicks: 12, // 400ms at 30fps
		},
		Scoring: KlondikeScoring{
			FoundationCard: 10,
			WinBonus:       500,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "klondike":
		return defaultKlondikeYAML
	default:
		return nil
	}
}
