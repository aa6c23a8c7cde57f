// Package config holds the small set of tunables the agent terminal
// subsystem exposes: scrollback depth, default PTY dimensions, and the
// debugger-attach banner filter toggle. Loaded from YAML, tolerant of a
// missing file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of subsystem tunables.
type Config struct {
	// ScrollbackRows bounds the Virtual Terminal's scrollback buffer.
	// Must be >= MinScrollbackRows; values below that are rejected on load.
	ScrollbackRows int `yaml:"scrollback_rows"`

	// DefaultCols/DefaultRows size new PTYs when the caller doesn't
	// specify dimensions.
	DefaultCols int `yaml:"default_cols"`
	DefaultRows int `yaml:"default_rows"`

	// FilterDebuggerBanners drops PTY chunks that are entirely a
	// debugger-attach banner. On by default. The agentterminal facade
	// does not read this field: it starts every session with
	// ptysession.DefaultOptions(), where the filter is on; the toggle
	// takes effect only through ptysession.Options.
	FilterDebuggerBanners bool `yaml:"filter_debugger_banners"`
}

// MinScrollbackRows is the floor below which long turns risk losing
// content that scrolled out of the viewport before extraction.
const MinScrollbackRows = 1000

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ScrollbackRows:        5000,
		DefaultCols:           80,
		DefaultRows:           30,
		FilterDebuggerBanners: true,
	}
}

// Load reads YAML configuration from path, overlaying it onto Default().
// A missing file is not an error — it yields the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the tunables are within usable ranges.
func (c Config) Validate() error {
	if c.ScrollbackRows < MinScrollbackRows {
		return fmt.Errorf("scrollback_rows must be >= %d, got %d", MinScrollbackRows, c.ScrollbackRows)
	}
	if c.DefaultCols <= 0 || c.DefaultRows <= 0 {
		return fmt.Errorf("default_cols/default_rows must be positive, got %dx%d", c.DefaultCols, c.DefaultRows)
	}
	return nil
}
