package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: syntree <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render one bracketed tree to SVG")
	fmt.Fprintln(w, "  convert    Convert markdown with syntax fences to HTML (and PDF)")
	fmt.Fprintln(w, "  new-block  Insert an empty syntax block into a markdown file")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  doctor     Check the renderer, browser and output directory")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'syntree help <command>' for details on a specific command.")
}

// printRendererFlags prints flags shared by render and convert.
func printRendererFlags(w io.Writer) {
	fmt.Fprintln(w, "Renderer:")
	fmt.Fprintln(w, "      --renderer <path>     Renderer binary (default: rsyntaxtree)")
	fmt.Fprintln(w, "      --output-dir <dir>    Base directory for renderer output")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-tree timeout (e.g., 10s); none by default")
	fmt.Fprintln(w, "      --keep-output         Keep renderer output directories")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "      --background <hex>    Replaces white (default: #262626)")
	fmt.Fprintln(w, "      --foreground <hex>    Replaces black (default: #c7c7c7)")
	fmt.Fprintln(w, "      --no-theme            Keep the renderer's own colors")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: syntree render [flags] [tree | -]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one bracketed tree, e.g. \"[S [NP Alice] [VP runs]]\".")
	fmt.Fprintln(w, "Reads the tree from stdin when no argument or \"-\" is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Write to file instead of stdout")
	fmt.Fprintln(w, "  -f, --format <s>          svg (default) or uri (data URI)")
	fmt.Fprintln(w)
	printRendererFlags(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: syntree convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to standalone HTML. Fenced blocks tagged")
	fmt.Fprintln(w, "```syntax or ```syntree are rendered as tree images.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --pdf                 Also write a PDF (needs Chrome)")
	fmt.Fprintln(w, "      --title <s>           Document title (default: first heading)")
	fmt.Fprintln(w, "      --lang <s,...>        Fence languages rendered as trees")
	fmt.Fprintln(w, "      --strict              Fail when any tree fails to render")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>   Embedded style (dark, plain) or CSS file")
	fmt.Fprintln(w, "      --css <path>          Extra CSS appended after the style")
	fmt.Fprintln(w, "      --no-style            Disable the base style")
	fmt.Fprintln(w)
	printRendererFlags(w)
}

// printNewBlockUsage prints usage for the new-block command.
func printNewBlockUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: syntree new-block <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Insert an empty ```syntax block. A blank line at --line is replaced;")
	fmt.Fprintln(w, "otherwise the block goes below it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -l, --line <n>            Line number, 1-based (default: last line)")
	fmt.Fprintln(w, "      --stdout              Print the result instead of editing the file")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: syntree config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after merging the config file, SYNTREE_*")
	fmt.Fprintln(w, "environment variables and flags.")
	fmt.Fprintln(w)
	printRendererFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: syntree doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the renderer, Chrome and the output directory are usable.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "convert":
		printConvertUsage(env.Stdout)
	case "new-block":
		printNewBlockUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: syntree version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: syntree help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
