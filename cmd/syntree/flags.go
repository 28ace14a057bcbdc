package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// rendererFlags holds flags controlling the external renderer and theme.
type rendererFlags struct {
	command    string
	outputDir  string
	timeout    string
	keepOutput bool
	background string
	foreground string
	noTheme    bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	renderer rendererFlags
	output   string // SVG file; empty = stdout
	format   string // svg or uri
}

func (f *renderFlags) commonOptions() commonFlags { return f.common }

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	renderer  rendererFlags
	output    string
	workers   int
	style     string
	css       string
	noStyle   bool
	pdf       bool
	title     string
	languages []string
	strict    bool
}

func (f *convertFlags) commonOptions() commonFlags { return f.common }

// newBlockFlags holds all flags for the new-block command.
type newBlockFlags struct {
	common commonFlags
	line   int // 1-based; 0 = last line
	stdout bool
}

func (f *newBlockFlags) commonOptions() commonFlags { return f.common }

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addRendererFlags adds renderer and theme flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.command, "renderer", "", "renderer binary name or path (default: rsyntaxtree)")
	fs.StringVar(&f.outputDir, "output-dir", "", "base directory for renderer output")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-tree renderer timeout (e.g., 10s, 1m)")
	fs.BoolVar(&f.keepOutput, "keep-output", false, "keep renderer output directories")
	fs.StringVar(&f.background, "background", "", "theme background color (hex)")
	fs.StringVar(&f.foreground, "foreground", "", "theme foreground color (hex)")
	fs.BoolVar(&f.noTheme, "no-theme", false, "keep the renderer's own colors")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, env *Environment) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write SVG to file instead of stdout")
	fs.StringVarP(&f.format, "format", "f", formatSVG, "output format: svg, uri")
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	fs.Usage = func() { printRenderUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the base style")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF next to the HTML")
	fs.StringVar(&f.title, "title", "", "document title (default: first heading)")
	fs.StringSliceVar(&f.languages, "lang", nil, "fence languages rendered as trees (default: syntax,syntree)")
	fs.BoolVar(&f.strict, "strict", false, "fail when any tree fails to render")
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseNewBlockFlags parses new-block command flags and returns positional args.
func parseNewBlockFlags(args []string, env *Environment) (*newBlockFlags, []string, error) {
	fs := flag.NewFlagSet("new-block", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &newBlockFlags{}

	fs.IntVarP(&f.line, "line", "l", 0, "cursor line, 1-based (0 = last line)")
	fs.BoolVar(&f.stdout, "stdout", false, "print the result instead of editing the file")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printNewBlockUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// configFlags holds flags for the config command.
type configFlags struct {
	common   commonFlags
	renderer rendererFlags
}

func (f *configFlags) commonOptions() commonFlags { return f.common }

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, env *Environment) (*configFlags, []string, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &configFlags{}

	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	fs.Usage = func() { printConfigUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
