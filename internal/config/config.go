package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-syntree/internal/colorutil"
	"github.com/alnah/go-syntree/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxCommandLength = 4096 // Renderer binary path
	MaxPathLength    = 4096 // Directories
	MaxColorLength   = 20   // "#262626"
	MaxStyleLength   = 4096 // Style name or path
	MaxWorkers       = 64
)

// Defaults applied by DefaultConfig.
const (
	DefaultCommand    = "rsyntaxtree"
	DefaultBackground = "#262626"
	DefaultForeground = "#c7c7c7"
	DefaultStyle      = "dark"
)

// userConfigDirName is the directory searched under os.UserConfigDir.
const userConfigDirName = "go-syntree"

// Config holds all configuration for rendering and document conversion.
type Config struct {
	Renderer RendererConfig `yaml:"renderer" toml:"renderer"`
	Theme    ThemeConfig    `yaml:"theme" toml:"theme"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
	Style    string         `yaml:"style" toml:"style"`     // Embedded style name or CSS file path
	Workers  int            `yaml:"workers" toml:"workers"` // 0 = auto
}

// RendererConfig defines how the external renderer is invoked.
type RendererConfig struct {
	Command    string `yaml:"command" toml:"command"`       // Binary name or path (default: rsyntaxtree)
	OutputDir  string `yaml:"outputDir" toml:"outputDir"`   // Base directory for per-request output
	Timeout    string `yaml:"timeout" toml:"timeout"`       // Go duration; empty = no timeout
	KeepOutput bool   `yaml:"keepOutput" toml:"keepOutput"` // Keep per-request directories after use
}

// ThemeConfig defines the palette remap applied to rendered images.
type ThemeConfig struct {
	Disabled   bool   `yaml:"disabled" toml:"disabled"`
	Background string `yaml:"background" toml:"background"` // replaces "white"
	Foreground string `yaml:"foreground" toml:"foreground"` // replaces "black"
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // Empty = same as source
	PDF        bool   `yaml:"pdf" toml:"pdf"`               // Also write PDF next to HTML
}

// Validate checks field lengths and value formats.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("renderer.command", c.Renderer.Command, MaxCommandLength); err != nil {
		return err
	}
	if err := validateFieldLength("renderer.outputDir", c.Renderer.OutputDir, MaxPathLength); err != nil {
		return err
	}
	if c.Renderer.Timeout != "" {
		d, err := time.ParseDuration(c.Renderer.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: renderer.timeout %q (must be a positive duration like 30s)", ErrInvalidValue, c.Renderer.Timeout)
		}
	}

	if err := validateFieldLength("theme.background", c.Theme.Background, MaxColorLength); err != nil {
		return err
	}
	if err := validateFieldLength("theme.foreground", c.Theme.Foreground, MaxColorLength); err != nil {
		return err
	}
	if err := validateColor("theme.background", c.Theme.Background); err != nil {
		return err
	}
	if err := validateColor("theme.foreground", c.Theme.Foreground); err != nil {
		return err
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("style", c.Style, MaxStyleLength); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// RendererTimeout returns the parsed renderer timeout, or 0 when unset.
// Assumes Validate has passed.
func (c *Config) RendererTimeout() time.Duration {
	if c.Renderer.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Renderer.Timeout)
	return d
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateColor accepts empty values (default applies) and #rgb / #rrggbb hex.
func validateColor(fieldName, value string) error {
	if value == "" {
		return nil
	}
	if _, err := colorutil.NormalizeHex(value); err != nil {
		return fmt.Errorf("%w: %s %q (must be hex like #262626)", ErrInvalidValue, fieldName, value)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Renderer: RendererConfig{
			Command:   DefaultCommand,
			OutputDir: DefaultOutputDir(),
		},
		Theme: ThemeConfig{
			Background: DefaultBackground,
			Foreground: DefaultForeground,
		},
		Style: DefaultStyle,
	}
}

// DefaultOutputDir returns the base directory for renderer output.
func DefaultOutputDir() string {
	return filepath.Join(os.TempDir(), "syntree", "images")
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values missing from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(configPath, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml, .toml
// Tries locations in order: current directory, ~/.config/go-syntree/
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(configExtensions)*2)

	for _, ext := range configExtensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range configExtensions {
			userPath := filepath.Join(userConfigDir, userConfigDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
