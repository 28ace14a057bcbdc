package main

import (
	"cmp"
	"errors"
	"fmt"
	"os/exec"
	"time"

	syntree "github.com/alnah/go-syntree"
	"github.com/alnah/go-syntree/internal/config"
)

// Sentinel errors for settings resolution.
var (
	ErrRendererNotFound = errors.New("renderer not found")
	ErrInvalidTimeout   = errors.New("invalid timeout")
)

// rendererNotFoundError keeps the command name for hints.
type rendererNotFoundError struct {
	command string
	err     error
}

func (e *rendererNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrRendererNotFound, e.command, e.err)
}

func (e *rendererNotFoundError) Unwrap() []error {
	return []error{ErrRendererNotFound, e.err}
}

// execLookPath is the production LookPath.
var execLookPath = exec.LookPath

// loadSettings resolves configuration with priority
// CLI flags > config file > environment > defaults.
func loadSettings(common commonFlags, rf rendererFlags) (*config.Config, error) {
	envCfg := loadEnvConfig()

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)

	if err := mergeRendererFlags(rf, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeRendererFlags merges CLI flags into config. CLI values override config values.
func mergeRendererFlags(rf rendererFlags, cfg *config.Config) error {
	if rf.command != "" {
		cfg.Renderer.Command = rf.command
	}
	if rf.outputDir != "" {
		cfg.Renderer.OutputDir = rf.outputDir
	}
	if rf.timeout != "" {
		d, err := time.ParseDuration(rf.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q (use a positive duration like 30s)", ErrInvalidTimeout, rf.timeout)
		}
		cfg.Renderer.Timeout = rf.timeout
	}
	if rf.keepOutput {
		cfg.Renderer.KeepOutput = true
	}
	if rf.background != "" {
		cfg.Theme.Background = rf.background
	}
	if rf.foreground != "" {
		cfg.Theme.Foreground = rf.foreground
	}
	if rf.noTheme {
		cfg.Theme.Disabled = true
	}
	return cfg.Validate()
}

// buildRenderer creates a Renderer from resolved configuration. The
// renderer binary must be resolvable unless env injects a runner.
func buildRenderer(cfg *config.Config, env *Environment) (*syntree.Renderer, error) {
	if env.Runner == nil {
		lookPath := env.LookPath
		if lookPath == nil {
			lookPath = execLookPath
		}
		if _, err := lookPath(cfg.Renderer.Command); err != nil {
			return nil, &rendererNotFoundError{command: cfg.Renderer.Command, err: err}
		}
	}

	opts := []syntree.Option{
		syntree.WithCommand(cfg.Renderer.Command),
		syntree.WithOutputDir(cfg.Renderer.OutputDir),
		syntree.WithKeepOutput(cfg.Renderer.KeepOutput),
		syntree.WithLogger(env.Logger),
	}
	if env.Runner != nil {
		opts = append(opts, syntree.WithRunner(env.Runner))
	}
	if d := cfg.RendererTimeout(); d > 0 {
		opts = append(opts, syntree.WithTimeout(d))
	}

	if cfg.Theme.Disabled {
		opts = append(opts, syntree.WithoutTheme())
	} else {
		theme, err := syntree.NewTheme(
			cmp.Or(cfg.Theme.Background, syntree.DefaultBackground),
			cmp.Or(cfg.Theme.Foreground, syntree.DefaultForeground),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, syntree.WithTheme(theme))
	}

	return syntree.NewRenderer(opts...), nil
}
