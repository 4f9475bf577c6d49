// Package config loads the demo application's configuration and owns its
// zerolog setup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/richkazz/infinitelist/pagedlist"
)

// Config is the demo application's configuration, loadable from YAML and
// overridable by CLI flags.
type Config struct {
	// PageSize is the number of items requested per page.
	PageSize int `yaml:"page_size"`

	// FirstPage is the cursor of the first page.
	FirstPage int `yaml:"first_page"`

	// Threshold is the prefetch distance from the bottom, in lines.
	Threshold float64 `yaml:"threshold"`

	Demo    DemoConfig    `yaml:"demo"`
	Logging LoggingConfig `yaml:"logging"`
}

// DemoConfig controls the synthetic page source.
type DemoConfig struct {
	// Total is the number of records the source holds.
	Total int `yaml:"total"`

	// LatencyMS is the simulated fetch latency in milliseconds.
	LatencyMS int `yaml:"latency_ms"`

	// FailEvery makes every Nth fetch fail; 0 disables failure injection.
	FailEvery int `yaml:"fail_every"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is a zerolog level name; unparsable values fall back to info.
	Level string `yaml:"level"`

	// File, when set, receives logs in addition to stderr. Recommended for
	// TUI runs: stderr writes corrupt the display.
	File string `yaml:"file"`
}

// Default returns the configuration used when no file and no flags are
// given. The prefetch threshold is deliberately smaller than the library
// default, which is sized for pixel-based scrolling rather than lines.
func Default() Config {
	return Config{
		PageSize:  pagedlist.DefaultPageSize,
		FirstPage: pagedlist.DefaultFirstPageKey,
		Threshold: 10,
		Demo: DemoConfig{
			Total:     1204,
			LatencyMS: 350,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the merged configuration.
func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %v", c.Threshold)
	}
	if c.Demo.Total < 0 {
		return fmt.Errorf("demo.total must be non-negative, got %d", c.Demo.Total)
	}
	if c.Demo.FailEvery < 0 {
		return fmt.Errorf("demo.fail_every must be non-negative, got %d", c.Demo.FailEvery)
	}
	return nil
}
