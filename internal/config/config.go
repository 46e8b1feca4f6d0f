// Package config loads checker configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig configures the validation-run history store.
type HistoryConfig struct {
	// Enabled records each validation run when true.
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database.
	DBPath string `yaml:"db_path"`
}

// Config represents checker configuration options. Command-line flags
// override anything set here.
type Config struct {
	// SpecPath is the default specification document to validate against.
	SpecPath string `yaml:"spec_path"`

	// LogLevel sets logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// IgnoreExtraFiles suppresses the INFORMATION section when rendering.
	IgnoreExtraFiles bool `yaml:"ignore_extra_files"`

	// History configures run recording.
	History HistoryConfig `yaml:"history"`
}

// DefaultConfigPath is where the checker looks for configuration when no
// --config flag is given.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".submission-checker.yaml"
	}
	return filepath.Join(home, ".submission-checker.yaml")
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(".submission-checker", "history.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path. A missing
// file is not an error: defaults are returned. A malformed file is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.History.DBPath == "" {
		cfg.History.DBPath = DefaultConfig().History.DBPath
	}
	return cfg, nil
}
