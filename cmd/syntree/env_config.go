package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-syntree/internal/config"
)

// envPrefix namespaces every recognized environment variable.
const envPrefix = "SYNTREE_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath  string        // SYNTREE_CONFIG: config file name or path
	RendererBin string        // SYNTREE_RENDERER_BIN: renderer binary
	OutputDir   string        // SYNTREE_OUTPUT_DIR: base renderer output directory
	Timeout     time.Duration // SYNTREE_TIMEOUT: per-tree renderer timeout
	Workers     int           // SYNTREE_WORKERS: parallel workers
	Style       string        // SYNTREE_STYLE: CSS style name or path
	Background  string        // SYNTREE_BACKGROUND: theme background
	Foreground  string        // SYNTREE_FOREGROUND: theme foreground
}

// knownEnvVars lists valid SYNTREE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SYNTREE_CONFIG":       true,
	"SYNTREE_RENDERER_BIN": true,
	"SYNTREE_OUTPUT_DIR":   true,
	"SYNTREE_TIMEOUT":      true,
	"SYNTREE_WORKERS":      true,
	"SYNTREE_STYLE":        true,
	"SYNTREE_BACKGROUND":   true,
	"SYNTREE_FOREGROUND":   true,
	"SYNTREE_CONTAINER":    true, // doctor override
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("SYNTREE_CONFIG"),
		RendererBin: os.Getenv("SYNTREE_RENDERER_BIN"),
		OutputDir:   os.Getenv("SYNTREE_OUTPUT_DIR"),
		Style:       os.Getenv("SYNTREE_STYLE"),
		Background:  os.Getenv("SYNTREE_BACKGROUND"),
		Foreground:  os.Getenv("SYNTREE_FOREGROUND"),
	}

	if timeout := os.Getenv("SYNTREE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("SYNTREE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized SYNTREE_* variable.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig fills config fields that are still at their default with
// environment values. CLI flags are merged afterwards and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	def := config.DefaultConfig()

	if env.RendererBin != "" && cfg.Renderer.Command == def.Renderer.Command {
		cfg.Renderer.Command = env.RendererBin
	}
	if env.OutputDir != "" && cfg.Renderer.OutputDir == def.Renderer.OutputDir {
		cfg.Renderer.OutputDir = env.OutputDir
	}
	if env.Timeout > 0 && cfg.Renderer.Timeout == "" {
		cfg.Renderer.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.Style != "" && cfg.Style == def.Style {
		cfg.Style = env.Style
	}
	if env.Background != "" && cfg.Theme.Background == def.Theme.Background {
		cfg.Theme.Background = env.Background
	}
	if env.Foreground != "" && cfg.Theme.Foreground == def.Theme.Foreground {
		cfg.Theme.Foreground = env.Foreground
	}
}
