package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Search  SearchConfig  `toml:"search"`
	Logging LoggingConfig `toml:"logging"`
}

// OutputConfig holds rendering settings for computed fire times
type OutputConfig struct {
	// TimeLayout is a Go reference-time layout used when printing instants.
	TimeLayout string `toml:"time_layout"`
}

// SearchConfig holds defaults for fire-time searches
type SearchConfig struct {
	// Count is the default number of fire times the next command prints.
	Count int `toml:"count"`
	// Location is the IANA time zone name searches are evaluated in.
	Location string `toml:"location"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			TimeLayout: "2006-01-02 15:04:05",
		},
		Search: SearchConfig{
			Count:    5,
			Location: "Local",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromFile loads configuration from a TOML file
func LoadFromFile(path string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// Parse TOML file
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadConfig loads configuration with the following precedence:
// 1. Default values
// 2. Config file (if specified)
// 3. Command-line flags (handled by caller)
func LoadConfig(configPath string) (*Config, error) {
	// If no config file specified, return defaults
	if configPath == "" {
		return DefaultConfig(), nil
	}

	return LoadFromFile(configPath)
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Search.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid search location: %w", err)
	}
	return loc, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Output validation
	if c.Output.TimeLayout == "" {
		return fmt.Errorf("output time_layout must be specified")
	}

	// Search validation
	if c.Search.Count <= 0 {
		return fmt.Errorf("search count must be positive")
	}
	if _, err := time.LoadLocation(c.Search.Location); err != nil {
		return fmt.Errorf("invalid search location %q: %w", c.Search.Location, err)
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Logging.Format)
	}

	return nil
}
