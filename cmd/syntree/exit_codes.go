package main

import (
	"context"
	"errors"
	"os"
	"strings"

	syntree "github.com/alnah/go-syntree"
	"github.com/alnah/go-syntree/internal/assets"
	"github.com/alnah/go-syntree/internal/config"
	"github.com/alnah/go-syntree/internal/hints"
)

// Exit codes for the syntree CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful run
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitRenderer = 4 // Renderer missing, crashed, or rejected the tree
	ExitBrowser  = 5 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 5)
	if errors.Is(err, syntree.ErrBrowserConnect) ||
		errors.Is(err, syntree.ErrPageCreate) ||
		errors.Is(err, syntree.ErrPageLoad) ||
		errors.Is(err, syntree.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Renderer errors (exit 4)
	if errors.Is(err, ErrRendererNotFound) ||
		errors.Is(err, ErrFailedBlocks) ||
		errors.Is(err, syntree.ErrProcess) ||
		errors.Is(err, syntree.ErrParse) ||
		errors.Is(err, syntree.ErrReadImage) {
		return ExitRenderer
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, syntree.ErrEmptySource) ||
		errors.Is(err, syntree.ErrEmptyMarkdown) ||
		errors.Is(err, syntree.ErrInvalidThemeColor) ||
		errors.Is(err, syntree.ErrStyleNotFound) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidLine) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrTooManySources) ||
		errors.Is(err, ErrUnexpectedArgs) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, ErrRendererNotFound):
		var nf *rendererNotFoundError
		if errors.As(err, &nf) {
			return hints.ForRendererNotFound(nf.command)
		}
		return hints.ForRendererNotFound("")
	case errors.Is(err, syntree.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), strings.Contains(err.Error(), syntree.TimeoutMessage):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, syntree.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Styles())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
