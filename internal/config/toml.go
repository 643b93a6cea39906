// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tuibingo/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
	Log  LogConfig  `toml:"log"`
}

// GameConfig maps game-related settings.
type GameConfig struct {
	MaxNumber *int    `toml:"max-number"`
	WinMode   *string `toml:"win-mode"`
	SortMode  *string `toml:"sort-mode"`
	Seed      *int64  `toml:"seed"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// DefaultLogLevel is used when neither flags, env nor file set a level.
const DefaultLogLevel = "info"

// DefaultConfigTemplate returns the commented file written by `tuibingo config`.
func DefaultConfigTemplate() string {
	return fmt.Sprintf(`# tuibingo configuration
# Uncomment a value to enable it. CLI flags and TUIBINGO_* env vars override config values.

[game]
# max-number = %d         # Highest ball number (%d-%d)
# win-mode = %q       # "line" or "full"
# sort-mode = %q   # "history" or "asc"
# seed = 42               # Fixed RNG seed for reproducible games

[log]
# level = %q          # trace, debug, info, warn, error
# file = ""               # Log file for the TUI (default: XDG state dir)
`,
		model.DefaultMaxNumber,
		model.MinMaxNumber,
		model.MaxMaxNumber,
		string(model.WinModeLine),
		string(model.SortHistory),
		DefaultLogLevel,
	)
}
