package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	syntree "github.com/alnah/go-syntree"
)

// Render output formats.
const (
	formatSVG = "svg"
	formatURI = "uri"
)

// Sentinel errors for the render command.
var (
	ErrReadInput      = errors.New("failed to read input")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrInvalidFormat  = errors.New("invalid output format")
	ErrTooManySources = errors.New("pass the tree as one argument or on stdin")
)

// runRender renders one tree given as an argument or on stdin ("-" or no
// argument) and writes the themed SVG or its data URI.
func runRender(ctx context.Context, args []string, flags *renderFlags, env *Environment) error {
	if flags.format != formatSVG && flags.format != formatURI {
		return fmt.Errorf("%w: %q (use svg or uri)", ErrInvalidFormat, flags.format)
	}

	source, err := readSource(args, env.Stdin)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common, flags.renderer)
	if err != nil {
		return err
	}

	renderer, err := buildRenderer(cfg, env)
	if err != nil {
		return err
	}

	start := env.Now()
	svg, err := renderer.RenderSVG(ctx, source)
	if err != nil {
		return err
	}
	env.Logger.Debug("rendered tree", "bytes", len(svg), "duration", env.Now().Sub(start))

	out := svg
	if flags.format == formatURI {
		out = syntree.SVGDataURI(svg)
	}

	if flags.output == "" {
		_, err := fmt.Fprintln(env.Stdout, out)
		return err
	}

	// #nosec G306 -- rendered images are meant to be readable
	if err := os.WriteFile(flags.output, []byte(out), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}

// readSource returns the tree text from args or stdin. Line breaks are
// kept; the renderer strips them.
func readSource(args []string, stdin io.Reader) (string, error) {
	switch {
	case len(args) > 1:
		return "", ErrTooManySources
	case len(args) == 1 && args[0] != "-":
		return args[0], nil
	}

	if stdin == nil {
		return "", fmt.Errorf("%w: no stdin", ErrReadInput)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", syntree.ErrEmptySource
	}
	return string(data), nil
}
