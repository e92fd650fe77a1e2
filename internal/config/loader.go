package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadKlondike loads Klondike configuration.
// Search order: customPath -> ~/.patience/configs/klondike.yaml -> ./configs/klondike.yaml -> embedded default
func LoadKlondike(customPath string) (KlondikeConfig, error) {
	cfg := DefaultKlondikeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalized(), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("klondike.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.normalized(), nil
			}
			cfg = DefaultKlondikeConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "klondike.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.normalized(), nil
		}
		cfg = DefaultKlondikeConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultKlondikeYAML, &cfg); err != nil {
		return DefaultKlondikeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.normalized(), nil
}

// normalized replaces out-of-range values with defaults.
func (c KlondikeConfig) normalized() KlondikeConfig {
	def := DefaultKlondikeConfig()
	if c.Rules.CardsToDraw < 1 {
		c.Rules.CardsToDraw = def.Rules.CardsToDraw
	}
	if c.Undo.MaxUndos < 0 {
		c.Undo.MaxUndos = 0
	}
	if c.Solver.MaxStates <= 0 {
		c.Solver.MaxStates = def.Solver.MaxStates
	}
	if c.Autoplay.IntervalTicks <= 0 {
		c.Autoplay.IntervalTicks = def.Autoplay.IntervalTicks
	}
	return c
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".patience", "configs", filename)
}

// ApplyKlondikePreset modifies the config based on a difficulty preset.
func ApplyKlondikePreset(cfg *KlondikeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.CardsToDraw = 1
		if cfg.Undo.MaxUndos == 0 {
			cfg.Undo.MaxUndos = DefaultKlondikeConfig().Undo.MaxUndos
		}
	case DifficultyHard:
		cfg.Rules.CardsToDraw = 3
		cfg.Undo.MaxUndos = 0
	case DifficultyNormal:
		cfg.Rules.CardsToDraw = 3
	}
}
