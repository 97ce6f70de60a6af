// Package config loads the game service configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full service configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Game   GameConfig   `toml:"game"`
	Ledger LedgerConfig `toml:"ledger"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port int `toml:"port"`
}

// GameConfig controls the save and world generation.
type GameConfig struct {
	DBPath string `toml:"db_path"`
	Seed   int64  `toml:"seed"`  // 0 = random
	Towns  int    `toml:"towns"` // Towns on a generated map
}

// LedgerConfig controls trade-ledger policy decisions.
type LedgerConfig struct {
	// SaleWithoutCostBasis decides how to book a sale of a commodity
	// with no purchase record: "zero-cost" (default), "market-rate", or
	// "reject".
	SaleWithoutCostBasis string `toml:"sale_without_cost_basis"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo},
		Server: ServerConfig{
			Port: 8712,
		},
		Game: GameConfig{
			DBPath: "data/siltroad.db",
			Towns:  5,
		},
		Ledger: LedgerConfig{
			SaleWithoutCostBasis: "zero-cost",
		},
	}
}

// Load reads a TOML config file, falling back to defaults when the file
// does not exist. Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
