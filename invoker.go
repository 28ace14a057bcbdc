package syntree

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-syntree/internal/fileutil"
)

// Renderer invocation constants.
const (
	// DefaultCommand is the external renderer binary.
	DefaultCommand = "rsyntaxtree"

	// OutputFileName is the fixed name the renderer gives its SVG output.
	OutputFileName = "syntree.svg"

	// OutputFormat is always SVG; the palette remap works on SVG text.
	OutputFormat = "svg"

	// TimeoutMessage is the process error message when the timeout fires.
	TimeoutMessage = "renderer timed out"
)

// Invoker runs the external renderer for one Request.
type Invoker interface {
	Invoke(ctx context.Context, req Request) Outcome
}

// CommandInvoker invokes the renderer as an external process.
// Each call gets its own output directory under outputDir, so concurrent
// calls never read each other's images.
type CommandInvoker struct {
	runner    CommandRunner
	command   string
	outputDir string
	timeout   time.Duration
	logger    *slog.Logger
}

// Compile-time interface check.
var _ Invoker = (*CommandInvoker)(nil)

// NewCommandInvoker creates an invoker writing under outputDir.
// A nil runner uses ExecRunner, a nil logger discards, an empty command
// uses DefaultCommand. timeout <= 0 means no timeout.
func NewCommandInvoker(runner CommandRunner, command, outputDir string, timeout time.Duration, logger *slog.Logger) *CommandInvoker {
	if runner == nil {
		runner = &ExecRunner{}
	}
	if command == "" {
		command = DefaultCommand
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &CommandInvoker{
		runner:    runner,
		command:   command,
		outputDir: outputDir,
		timeout:   timeout,
		logger:    logger,
	}
}

// Command returns the renderer binary this invoker runs.
func (i *CommandInvoker) Command() string {
	return i.command
}

// BuildArgs returns the renderer argument vector.
// The source is always the last element and is passed verbatim: quotes,
// semicolons or $(...) in it reach the renderer as literal text.
func BuildArgs(outputDir, source string) []string {
	return []string{"-o", outputDir, "-f", OutputFormat, "-c", "off", source}
}

// Invoke spawns exactly one renderer process and classifies its result.
// Blocks until the process exits or ctx ends.
func (i *CommandInvoker) Invoke(ctx context.Context, req Request) Outcome {
	dir, cleanup, err := fileutil.MakeRequestDir(i.outputDir)
	if err != nil {
		i.logger.Error("creating request directory", "base", i.outputDir, "error", err)
		return Outcome{Kind: OutcomeProcessError, Message: err.Error()}
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	start := time.Now()
	stdout, stderr, err := i.runner.Run(ctx, i.command, BuildArgs(dir, req.Source)...)
	i.logger.Debug("renderer finished",
		"command", i.command,
		"dir", dir,
		"duration", time.Since(start),
		"error", err)

	if stderr != "" {
		i.logger.Warn("renderer wrote to stderr", "stderr", strings.TrimSpace(stderr))
	}

	if err != nil {
		cleanup()
		return Outcome{
			Kind:    OutcomeProcessError,
			Message: processMessage(err, stderr),
			Stderr:  stderr,
		}
	}

	if stdout != "" {
		cleanup()
		return Outcome{
			Kind:    OutcomeParseError,
			Message: strings.TrimRight(stdout, "\r\n"),
			Stderr:  stderr,
		}
	}

	return Outcome{
		Kind:      OutcomeSuccess,
		Stderr:    stderr,
		OutputDir: dir,
		ImagePath: filepath.Join(dir, OutputFileName),
	}
}

// InvokeAsync runs Invoke on its own goroutine and hands the Outcome to done.
// done is called exactly once.
func (i *CommandInvoker) InvokeAsync(ctx context.Context, req Request, done func(Outcome)) {
	go func() {
		done(i.Invoke(ctx, req))
	}()
}

// processMessage formats a process failure, appending stderr when the
// error itself does not carry it.
func processMessage(err error, stderr string) string {
	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		msg = TimeoutMessage
	}
	if s := strings.TrimSpace(stderr); s != "" {
		msg += ": " + s
	}
	return msg
}
