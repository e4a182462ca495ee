// Package config provides Viper-based configuration loading for the loadout editor.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path.
	Output string `mapstructure:"output"`
}

// CatalogConfig locates the YAML game data.
type CatalogConfig struct {
	// Dir holds the items, chassis, omnipods and upgrades subdirectories.
	Dir string `mapstructure:"dir"`
}

// EditorConfig holds settings of the interactive editing session.
type EditorConfig struct {
	// HistoryDepth is the number of undo entries kept.
	HistoryDepth int `mapstructure:"history_depth"`
	// DefaultChassis is the chassis id loaded when none is given on the command line.
	DefaultChassis string `mapstructure:"default_chassis"`
	// Structure, Armor, HeatSinks and Guidance override the chassis default
	// upgrade ids when non-empty.
	Structure string `mapstructure:"structure"`
	Armor     string `mapstructure:"armor"`
	HeatSinks string `mapstructure:"heat_sinks"`
	Guidance  string `mapstructure:"guidance"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Editor  EditorConfig  `mapstructure:"editor"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCatalog(c.Catalog); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEditor(c.Editor); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateCatalog(c CatalogConfig) error {
	if c.Dir == "" {
		return errors.New("catalog.dir must not be empty")
	}
	return nil
}

func validateEditor(e EditorConfig) error {
	var errs []string
	if e.HistoryDepth < 1 {
		errs = append(errs, fmt.Sprintf("editor.history_depth must be >= 1, got %d", e.HistoryDepth))
	}
	if e.DefaultChassis == "" {
		errs = append(errs, "editor.default_chassis must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with MECHLAB_ prefix
	v.SetEnvPrefix("MECHLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
//
// Postcondition: LoadFromViper(Defaults()) succeeds.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("catalog.dir", "content")

	v.SetDefault("editor.history_depth", 100)
	v.SetDefault("editor.default_chassis", "archer-arc-2r")
}
