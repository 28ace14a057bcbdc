package syntree

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputDir returns the base directory used when WithOutputDir is
// not given: <tmp>/syntree/images.
func DefaultOutputDir() string {
	return filepath.Join(os.TempDir(), "syntree", "images")
}

// Renderer runs the render-and-present pipeline for one block at a time.
// It holds no per-request state and is safe for concurrent use; the host
// element passed to Render is not shared across calls by the Renderer.
type Renderer struct {
	cfg       rendererConfig
	theme     Theme
	runner    CommandRunner
	invoker   Invoker
	presenter *Presenter
	logger    *slog.Logger
}

// NewRenderer creates a Renderer with the dark theme, the rsyntaxtree
// binary and DefaultOutputDir.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		cfg: rendererConfig{
			command:   DefaultCommand,
			outputDir: DefaultOutputDir(),
		},
		theme:  DarkTheme(),
		logger: discardLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	// Build the default invoker unless one was injected.
	if r.invoker == nil {
		r.invoker = NewCommandInvoker(r.runner, r.cfg.command, r.cfg.outputDir, r.cfg.timeout, r.logger)
	}
	r.presenter = NewPresenter(r.theme, r.logger)

	return r
}

// Render strips line breaks from text, invokes the renderer once and
// presents the outcome on host. The returned error mirrors what was shown
// on host and wraps ErrProcess, ErrParse or ErrReadImage.
// Blank source is reported on host as ErrEmptySource without spawning a
// process.
func (r *Renderer) Render(ctx context.Context, text string, host TextInjectable) error {
	req := NewRequest(text)
	if strings.TrimSpace(req.Source) == "" {
		host.AppendText("Error: " + ErrEmptySource.Error())
		return ErrEmptySource
	}

	outcome := r.invoker.Invoke(ctx, req)
	defer r.release(outcome)

	r.logger.Debug("presenting outcome", "kind", outcome.Kind)
	return r.presenter.Present(outcome, host)
}

// RenderAsync runs Render on its own goroutine and calls done with its
// error once host has been populated. done may be nil.
func (r *Renderer) RenderAsync(ctx context.Context, text string, host TextInjectable, done func(error)) {
	go func() {
		err := r.Render(ctx, text, host)
		if done != nil {
			done(err)
		}
	}()
}

// RenderSVG renders text and returns the themed SVG document instead of
// attaching it to a host.
func (r *Renderer) RenderSVG(ctx context.Context, text string) (string, error) {
	req := NewRequest(text)
	if strings.TrimSpace(req.Source) == "" {
		return "", ErrEmptySource
	}

	outcome := r.invoker.Invoke(ctx, req)
	defer r.release(outcome)

	if err := outcome.Err(); err != nil {
		return "", err
	}
	svg, err := r.presenter.Load(outcome)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", outcome.ImagePath, err)
	}
	return svg, nil
}

// release removes the request directory unless output is kept.
func (r *Renderer) release(outcome Outcome) {
	if r.cfg.keepOutput || outcome.OutputDir == "" {
		return
	}
	if err := os.RemoveAll(outcome.OutputDir); err != nil {
		r.logger.Warn("removing request directory", "dir", outcome.OutputDir, "error", err)
	}
}
