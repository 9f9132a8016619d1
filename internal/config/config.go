// Package config loads runtime settings from .odecam.yaml, ODECAM_* env
// vars and CLI flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix maps ODECAM_SNAP_THRESHOLD to snap_threshold and so on
const EnvPrefix = "ODECAM"

// Config holds all runtime configuration for a takeoff session
type Config struct {
	SnapThreshold   float64 `mapstructure:"snap_threshold"`
	SnapEnabled     bool    `mapstructure:"snap_enabled"`
	RequireScale    bool    `mapstructure:"require_scale"`
	Locale          string  `mapstructure:"locale"`
	CatalogFile     string  `mapstructure:"catalog_file"`
	Scope           string  `mapstructure:"scope"`
	Verbose         bool    `mapstructure:"verbose"`
	WatchDebounceMS int     `mapstructure:"watch_debounce_ms"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("snap_threshold", 6.0)
	viper.SetDefault("snap_enabled", true)
	viper.SetDefault("require_scale", true)
	viper.SetDefault("locale", "pt-BR")
	viper.SetDefault("catalog_file", "")
	viper.SetDefault("scope", "project")
	viper.SetDefault("verbose", false)
	viper.SetDefault("watch_debounce_ms", 500)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if cfg.SnapThreshold <= 0 {
		return Config{}, fmt.Errorf("snap_threshold must be positive, got %v", cfg.SnapThreshold)
	}
	if cfg.WatchDebounceMS < 0 {
		return Config{}, fmt.Errorf("watch_debounce_ms must not be negative, got %d", cfg.WatchDebounceMS)
	}
	return cfg, nil
}

// ReadIn points viper at cfgFile, or at .odecam.yaml in the working or
// home directory, and enables env overrides. A missing file is not an
// error.
func ReadIn(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".odecam")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
	}
	return nil
}

// WatchDebounce returns the file watcher debounce interval
func (c Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}
