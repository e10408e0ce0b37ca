// Package config loads sponcom configuration from an optional YAML
// file, with sensible defaults for everything. Command-line flags
// override file values; the file overrides the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings.
type Config struct {
	// Database is the path to the SQLite database file.
	Database string `yaml:"database"`

	// ThankCount is how many sponsors each commit thanks.
	ThankCount int `yaml:"thank_count"`

	// DefaultLevel is the credit ceiling for newly added sponsors.
	DefaultLevel int `yaml:"default_level"`

	// Trailer is the commit-message trailer template; %s receives the
	// formatted name list.
	Trailer string `yaml:"trailer"`
}

// Default returns the built-in configuration. The database lives
// under the user config directory so every repository shares one
// sponsor pool.
func Default() Config {
	return Config{
		Database:     defaultDatabasePath(),
		ThankCount:   3,
		DefaultLevel: 10,
		Trailer:      "Sponsored by %s",
	}
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/sponcom/config.yaml or the platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sponcom", "config.yaml")
}

// Load reads the config file at path, layered over Default. A missing
// file is not an error: the defaults apply unchanged. A malformed
// file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.ThankCount <= 0 {
		return fmt.Errorf("thank_count must be positive (got %d)", c.ThankCount)
	}
	if c.DefaultLevel <= 0 {
		return fmt.Errorf("default_level must be positive (got %d)", c.DefaultLevel)
	}
	return nil
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sponcom.db"
	}
	return filepath.Join(dir, "sponcom", "sponcom.db")
}

// EnsureParentDir creates the directory holding path if it does not
// exist yet, so first use of the default database path succeeds.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
