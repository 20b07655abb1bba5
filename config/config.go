// Package config loads process-level configuration for a bookctl run:
// the instrument, its tick multiplier, preallocation hints, and the feed
// source. The tick multiplier is a configurable constant, never
// hard-coded into arithmetic; this is where that constant is read from.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"bookengine/domain"
)

// Config is the top-level TOML document bookctl loads.
type Config struct {
	Symbol string `toml:"symbol"`

	// TickSize is the decimal multiplier between a raw integer price and
	// its human-readable value, e.g. "0.0001" for ten-thousandths.
	TickSize string `toml:"tick_size"`

	Capacity CapacityConfig `toml:"capacity"`
	Feed     FeedConfig     `toml:"feed"`
}

// CapacityConfig pre-reserves arena and index capacity at construction.
type CapacityConfig struct {
	Orders int `toml:"orders"`
	Levels int `toml:"levels"`
}

// FeedConfig selects and parameterises the feed collaborator.
type FeedConfig struct {
	// Source is one of "file" or "websocket".
	Source string `toml:"source"`
	File   string `toml:"file"`
	WSURL  string `toml:"ws_url"`
}

// Default returns the configuration bookctl falls back to when no file is
// given: a worked-example tick size and modest capacity hints suitable
// for a demo run.
func Default() Config {
	return Config{
		Symbol:   "AAPL",
		TickSize: "0.0001",
		Capacity: CapacityConfig{Orders: 1 << 16, Levels: 1 << 12},
		Feed:     FeedConfig{Source: "file"},
	}
}

// Load reads and decodes a TOML configuration file at path. Default() is
// not applied: any field the file leaves unset keeps its zero value.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// TickSizeValue parses the configured tick multiplier into a domain.TickSize.
func (c Config) TickSizeValue() (domain.TickSize, error) {
	if c.TickSize == "" {
		return domain.DefaultTickSize(), nil
	}
	return domain.NewTickSize(c.TickSize)
}

// MustLoadOrDefault loads path if it exists, falling back to Default()
// when the file is absent; any other read or decode error is fatal and
// returned.
func MustLoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
