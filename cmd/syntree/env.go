package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	syntree "github.com/alnah/go-syntree"
	"github.com/alnah/go-syntree/internal/assets"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the renderer process runner and asset loading.
type Environment struct {
	Now         func() time.Time
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Runner      syntree.CommandRunner // nil = real processes
	LookPath    func(file string) (string, error)
	AssetLoader *assets.EmbeddedLoader
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Logger:      newLogger(os.Stderr, false, false),
		LookPath:    execLookPath,
		AssetLoader: assets.NewEmbeddedLoader(),
	}
}

// newLogger returns a text logger on w. Warnings by default, errors only
// with quiet, everything with verbose.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
