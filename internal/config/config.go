// Package config loads the notation command's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/notation"
)

// Config holds all notation configuration.
type Config struct {
	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Operation history
	History HistoryConfig `yaml:"history"`

	// Terminal output
	Display DisplayConfig `yaml:"display"`

	// Expression engine
	Engine EngineConfig `yaml:"engine"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// HistoryConfig configures where completed operations are recorded.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
	// File is the append-only text log. Empty disables it.
	File string `yaml:"file"`
	// Database is the SQLite history database. Empty disables it.
	Database string `yaml:"database"`
}

// DisplayConfig configures terminal output.
type DisplayConfig struct {
	Color bool `yaml:"color"`
	// Trace shows conversion events and evaluation steps.
	Trace bool `yaml:"trace"`
}

// EngineConfig configures the expression engine.
type EngineConfig struct {
	// Sqrt enables the unary square root operator s.
	Sqrt bool `yaml:"sqrt"`
	// MaxLen is the limit on meaningful characters in an expression.
	MaxLen int `yaml:"max_len"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		History: HistoryConfig{
			Enabled: true,
			File:    "all_operations_log.txt",
		},
		Display: DisplayConfig{
			Color: true,
			Trace: true,
		},
		Engine: EngineConfig{
			MaxLen: notation.DefaultMaxLen,
		},
	}
}

// Load loads configuration from a YAML file. A missing file gives the
// defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		data = nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("NOTATION_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("NOTATION_HISTORY_FILE"); file != "" {
		c.History.File = file
	}
	if db := os.Getenv("NOTATION_HISTORY_DB"); db != "" {
		c.History.Database = db
	}
}

// ValidLevels are the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for values nothing can use.
func (c *Config) Validate() error {
	valid := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging format: %s (valid: console, json)", c.Logging.Format)
	}

	if c.Engine.MaxLen <= 0 {
		return fmt.Errorf("invalid max_len: %d (must be positive)", c.Engine.MaxLen)
	}

	return nil
}

// Options returns the engine options the configuration selects.
func (c *Config) Options() []notation.Option {
	return []notation.Option{
		notation.Sqrt(c.Engine.Sqrt),
		notation.MaxLen(c.Engine.MaxLen),
	}
}
