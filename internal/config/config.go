// Package config provides YAML-based game configuration loading and
// difficulty presets for the patience platform.
package config

import "time"

// KlondikeConfig contains all configuration for Klondike.
type KlondikeConfig struct {
	Rules    KlondikeRules    `yaml:"rules"`
	Undo     KlondikeUndo     `yaml:"undo"`
	Solver   KlondikeSolver   `yaml:"solver"`
	Autoplay KlondikeAutoplay `yaml:"autoplay"`
	Scoring  KlondikeScoring  `yaml:"scoring"`
}

// KlondikeRules defines the deal rules.
type KlondikeRules struct {
	CardsToDraw int `yaml:"cards_to_draw"`
}

// KlondikeUndo defines how far moves can be taken back.
type KlondikeUndo struct {
	MaxUndos int `yaml:"max_undos"` // 0 disables undo
}

// KlondikeSolver bounds the in-game solver.
type KlondikeSolver struct {
	MaxStates int           `yaml:"max_states"`
	Timeout   time.Duration `yaml:"timeout"`
}

// KlondikeAutoplay controls playing out a fully exposed board.
type KlondikeAutoplay struct {
	Enabled       bool `yaml:"enabled"`
	IntervalTicks int  `yaml:"interval_ticks"` // ticks between automatic moves
}

// KlondikeScoring defines points awarded.
type KlondikeScoring struct {
	FoundationCard int `yaml:"foundation_card"`
	WinBonus       int `yaml:"win_bonus"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. The empty string selects normal.
func ParseDifficulty(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}
