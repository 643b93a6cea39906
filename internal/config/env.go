package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig holds TUIBINGO_* overrides. Nil or empty fields are unset.
type EnvConfig struct {
	DBPath   string `env:"TUIBINGO_DB"`
	LogLevel string `env:"TUIBINGO_LOG_LEVEL"`
	LogFile  string `env:"TUIBINGO_LOG_FILE"`
	Seed     *int64 `env:"TUIBINGO_SEED"`
}

// LoadEnv reads an optional .env file from dotenvPath (empty means ./.env)
// and parses the TUIBINGO_* variables. Variables already set in the
// environment win over the file.
func LoadEnv(dotenvPath string) (EnvConfig, error) {
	if dotenvPath == "" {
		dotenvPath = ".env"
	}
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return EnvConfig{}, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
	}
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse env: %w", err)
	}
	return cfg, nil
}
