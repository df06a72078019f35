// Package config provides configuration management for the dataclean tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingInputPath    = errors.New("normalizer.input is required")
	ErrMissingOutputPath   = errors.New("normalizer.output is required")
	ErrSameInputOutput     = errors.New("normalizer.input and normalizer.output must differ")
	ErrMissingRawLogsDir   = errors.New("collector.raw_logs is required")
	ErrMissingReportDir    = errors.New("collector.output is required")
	ErrMissingArchiveDir   = errors.New("collector.archive is required")
	ErrArchiveIsRawLogsDir = errors.New("collector.archive cannot be collector.raw_logs")
	ErrInvalidPattern      = errors.New("collector.pattern is not a valid glob")
	ErrEmptyMarker         = errors.New("collector.marker must not be empty")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidPreviewRows  = errors.New("features.preview_rows must be at least 1")
)

// Config represents the complete configuration.
type Config struct {
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Collector  CollectorConfig  `yaml:"collector"`
	Logging    LoggingConfig    `yaml:"logging"`
	Features   FeaturesConfig   `yaml:"features"`
}

// NormalizerConfig locates the CSV input and the cleaned output.
type NormalizerConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// CollectorConfig defines the log collection directories and matching rules.
type CollectorConfig struct {
	RawLogs      string `yaml:"raw_logs"`
	Output       string `yaml:"output"`
	Archive      string `yaml:"archive"`
	Pattern      string `yaml:"pattern"`
	Marker       string `yaml:"marker"`
	UniqueSuffix bool   `yaml:"unique_suffix"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	ShowProgress bool   `yaml:"show_progress"`
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	EnablePreview bool `yaml:"enable_preview"`
	PreviewRows   int  `yaml:"preview_rows"`
}

// Default returns the reference deployment layout relative to the project root.
func Default() *Config {
	return &Config{
		Normalizer: NormalizerConfig{
			Input:  filepath.Join("data", "data.csv"),
			Output: filepath.Join("output", "clean_data.csv"),
		},
		Collector: CollectorConfig{
			RawLogs: "raw_logs",
			Output:  "output",
			Archive: "archive",
			Pattern: "*.log",
			Marker:  "ERROR",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Features: FeaturesConfig{
			PreviewRows: 10,
		},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Normalizer
	if c.Normalizer.Input == "" {
		return ErrMissingInputPath
	}

	if c.Normalizer.Output == "" {
		return ErrMissingOutputPath
	}

	if filepath.Clean(c.Normalizer.Input) == filepath.Clean(c.Normalizer.Output) {
		return ErrSameInputOutput
	}

	// Collector
	if c.Collector.RawLogs == "" {
		return ErrMissingRawLogsDir
	}

	if c.Collector.Output == "" {
		return ErrMissingReportDir
	}

	if c.Collector.Archive == "" {
		return ErrMissingArchiveDir
	}

	if filepath.Clean(c.Collector.Archive) == filepath.Clean(c.Collector.RawLogs) {
		return ErrArchiveIsRawLogsDir
	}

	if !doublestar.ValidatePattern(c.Collector.Pattern) {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, c.Collector.Pattern)
	}

	if c.Collector.Marker == "" {
		return ErrEmptyMarker
	}

	// Logging
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	if c.Features.PreviewRows < 1 {
		return ErrInvalidPreviewRows
	}

	return nil
}

// ResolvePaths returns a copy whose relative paths are joined onto root.
// Absolute paths are left untouched.
func (c *Config) ResolvePaths(root string) *Config {
	out := *c

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}

		return filepath.Join(root, p)
	}

	out.Normalizer.Input = resolve(c.Normalizer.Input)
	out.Normalizer.Output = resolve(c.Normalizer.Output)
	out.Collector.RawLogs = resolve(c.Collector.RawLogs)
	out.Collector.Output = resolve(c.Collector.Output)
	out.Collector.Archive = resolve(c.Collector.Archive)

	return &out
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, RawLogs: %s, Archive: %s}",
		c.Normalizer.Input,
		c.Normalizer.Output,
		c.Collector.RawLogs,
		c.Collector.Archive,
	)
}
