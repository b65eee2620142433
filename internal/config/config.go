// Package config resolves the runtime configuration of the data layer:
// where the database lives and how the process logs. Values come from an
// optional YAML file, overridden by environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the resolved settings.
type Config struct {
	Environment  string `yaml:"environment"`   // "dev" or "prod"
	DataDir      string `yaml:"data_dir"`      // application data directory
	DatabaseFile string `yaml:"database_file"` // database filename inside DataDir
}

// Load reads the optional YAML config file (VOYENA_CONFIG or ./config.yaml),
// then applies environment overrides, then fills defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	path := os.Getenv("VOYENA_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if v := os.Getenv("VOYENA_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("VOYENA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("VOYENA_DATABASE_FILE"); v != "" {
		cfg.DatabaseFile = v
	}

	if cfg.Environment == "" {
		cfg.Environment = "dev"
	}
	if cfg.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(base, "voyena")
	}
	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = "voyena.db"
	}

	return cfg, nil
}

// DatabasePath returns the full path of the database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}
