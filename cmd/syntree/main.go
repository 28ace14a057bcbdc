package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	// A bare Markdown path is shorthand for convert.
	if looksLikeMarkdown(cmd) {
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "render":
		return runCommand(env, rest, parseRenderFlags, runRender)
	case "convert":
		return runCommand(env, rest, parseConvertFlags, runConvert)
	case "new-block":
		return runCommand(env, rest, parseNewBlockFlags, runNewBlock)
	case "config":
		return runCommand(env, rest, parseConfigFlags, runConfig)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "syntree %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// flagged is implemented by every command's flag struct.
type flagged interface {
	commonOptions() commonFlags
}

// runCommand parses flags, wires logging and signals, runs fn and maps
// its error to an exit code.
func runCommand[F flagged](
	env *Environment,
	args []string,
	parse func([]string, *Environment) (F, []string, error),
	fn func(context.Context, []string, F, *Environment) error,
) int {
	flags, positional, err := parse(args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	common := flags.commonOptions()
	setMaxProcs(env, common.verbose)
	env.Logger = newLogger(env.Stderr, common.quiet, common.verbose)
	warnUnknownEnvVars(env.Logger)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := fn(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs aligns GOMAXPROCS with the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setMaxProcs(env *Environment, verbose bool) {
	logf := func(string, ...any) {}
	if verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}

// looksLikeMarkdown reports whether arg is a Markdown file path.
func looksLikeMarkdown(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
