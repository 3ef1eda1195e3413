// Package config loads the kvdraft YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/artpar/kvdraft/internal/logger"
	"gopkg.in/yaml.v3"
)

const (
	appName  = "kvdraft"
	fileName = "config.yaml"

	DefaultPageSize  = 50
	DefaultLimit     = 8
	DefaultBlurGrace = 150 * time.Millisecond
)

// Config holds the user configuration.
type Config struct {
	// Workspace scopes URL history. Empty disables history suggestions.
	Workspace string        `yaml:"workspace"`
	History   HistoryConfig `yaml:"history"`
	Suggest   SuggestConfig `yaml:"suggest"`
	Log       LogConfig     `yaml:"log"`
}

// HistoryConfig configures the URL history store.
type HistoryConfig struct {
	Path     string `yaml:"path"`
	PageSize int    `yaml:"page_size"`
}

// SuggestConfig configures suggestion dropdowns.
type SuggestConfig struct {
	Limit     int           `yaml:"limit"`
	BlurGrace time.Duration `yaml:"blur_grace"`
}

// LogConfig configures the diagnostic log.
type LogConfig struct {
	Level string `yaml:"level"`
	// File receives log output while the TUI runs.
	File string `yaml:"file"`
}

// Dir returns the kvdraft configuration directory.
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	return filepath.Join(configDir, appName)
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(Dir(), fileName)
}

// Default returns a Config with sensible defaults.
func Default() Config {
	dir := Dir()
	return Config{
		History: HistoryConfig{
			Path:     filepath.Join(dir, "history.db"),
			PageSize: DefaultPageSize,
		},
		Suggest: SuggestConfig{
			Limit:     DefaultLimit,
			BlurGrace: DefaultBlurGrace,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "kvdraft.log"),
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory when needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.History.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("history.page_size must be positive, got %d", c.History.PageSize))
	}
	if c.Suggest.Limit <= 0 {
		errs = append(errs, fmt.Errorf("suggest.limit must be positive, got %d", c.Suggest.Limit))
	}
	if c.Suggest.BlurGrace < 0 {
		errs = append(errs, fmt.Errorf("suggest.blur_grace must not be negative, got %s", c.Suggest.BlurGrace))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
