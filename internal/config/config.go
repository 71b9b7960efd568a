// =============================================================================
// EDI Remit Analyzer - Configuration Module
// =============================================================================
//
// This module loads the main application configuration. Configuration is
// optional: when no config file exists at the given path, built-in defaults
// apply, so the CLI works out of the box against a conventional ./input
// directory.
//
// CONFIGURATION FILE (config.yaml):
//   input_dir: ./input
//   default_pattern: "./input/*"
//   segment_terminator: "~"
//   element_delimiter: "*"
//   schemas_dir: ./schemas
//   output_dir: ./output
//   max_concurrency: 4
//   strict_remarks: false
//   log_level: info
//
// All settings are validated on load; an invalid delimiter configuration is
// rejected before any file is touched.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// InputDir is the conventional directory for input EDI files. It seeds
	// the default path pattern when none is configured or passed on the
	// command line.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// DefaultPattern is the glob used when the analyze command is run
	// without --path.
	// Default: "<input_dir>/*"
	DefaultPattern string `yaml:"default_pattern"`

	// SegmentTerminator is the single character that terminates a segment.
	// Default: "~"
	SegmentTerminator string `yaml:"segment_terminator"`

	// ElementDelimiter is the single character separating elements within a
	// segment.
	// Default: "*"
	ElementDelimiter string `yaml:"element_delimiter"`

	// SchemasDir optionally contains YAML schema override files. A missing
	// directory is ignored.
	// Default: "./schemas"
	SchemasDir string `yaml:"schemas_dir"`

	// OutputDir is where generated reports are written when an output flag
	// names a directory rather than a file.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// MaxConcurrency is the maximum number of files to process
	// concurrently. Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// StrictRemarks narrows the heuristic remark-code scan to elements
	// shaped like official remark codes.
	// Default: false (the permissive scan is the reference behavior)
	StrictRemarks bool `yaml:"strict_remarks"`

	// LogLevel controls verbosity of progress output.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyDefaults(cfg)
	return cfg
}

// LoadMainConfig loads the configuration from a YAML file. A missing file is
// not an error: defaults are returned so the config file stays optional.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg MainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *MainConfig) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.DefaultPattern == "" {
		cfg.DefaultPattern = filepath.Join(cfg.InputDir, "*")
	}
	if cfg.SegmentTerminator == "" {
		cfg.SegmentTerminator = "~"
	}
	if cfg.ElementDelimiter == "" {
		cfg.ElementDelimiter = "*"
	}
	if cfg.SchemasDir == "" {
		cfg.SchemasDir = "./schemas"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks the configuration for values that would corrupt parsing.
func Validate(cfg *MainConfig) error {
	if utf8.RuneCountInString(cfg.SegmentTerminator) != 1 {
		return fmt.Errorf("segment_terminator must be exactly one character, got %q", cfg.SegmentTerminator)
	}
	if utf8.RuneCountInString(cfg.ElementDelimiter) != 1 {
		return fmt.Errorf("element_delimiter must be exactly one character, got %q", cfg.ElementDelimiter)
	}
	if cfg.SegmentTerminator == cfg.ElementDelimiter {
		return fmt.Errorf("segment_terminator and element_delimiter must differ, both are %q", cfg.SegmentTerminator)
	}
	if cfg.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", cfg.MaxConcurrency)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}
	return nil
}

// Terminator returns the segment terminator as a rune.
func (c *MainConfig) Terminator() rune {
	r, _ := utf8.DecodeRuneInString(c.SegmentTerminator)
	return r
}

// Delimiter returns the element delimiter as a rune.
func (c *MainConfig) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.ElementDelimiter)
	return r
}
