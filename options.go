package syntree

import (
	"io"
	"log/slog"
	"time"
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	command    string
	outputDir  string
	timeout    time.Duration
	keepOutput bool
}

// WithCommand sets the renderer binary (name or path).
func WithCommand(command string) Option {
	return func(r *Renderer) {
		r.cfg.command = command
	}
}

// WithOutputDir sets the base directory for per-request output.
func WithOutputDir(dir string) Option {
	return func(r *Renderer) {
		r.cfg.outputDir = dir
	}
}

// WithTimeout bounds each renderer run. There is no timeout by default.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("syntree: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithKeepOutput keeps per-request directories after presenting.
func WithKeepOutput(keep bool) Option {
	return func(r *Renderer) {
		r.cfg.keepOutput = keep
	}
}

// WithTheme sets the palette applied to rendered images.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
	}
}

// WithoutTheme leaves rendered images in the renderer's own colors.
func WithoutTheme() Option {
	return WithTheme(Theme{})
}

// WithRunner replaces the process runner (tests, sandboxes).
func WithRunner(runner CommandRunner) Option {
	return func(r *Renderer) {
		r.runner = runner
	}
}

// WithInvoker replaces the invoker entirely. Command, output directory,
// timeout and runner options are then ignored.
func WithInvoker(inv Invoker) Option {
	return func(r *Renderer) {
		r.invoker = inv
	}
}

// WithLogger sets the structured logger. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
