package syntree

import (
	"errors"

	"github.com/alnah/go-syntree/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptySource   = errors.New("syntax tree source cannot be empty")
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Render outcome errors. Each is terminal for its block.
	ErrProcess   = errors.New("renderer process failed")
	ErrParse     = errors.New("renderer reported a parse error")
	ErrReadImage = errors.New("failed to load rendered image")

	// Theme validation errors.
	ErrInvalidThemeColor = errors.New("invalid theme color")

	// Document conversion errors. ErrHTMLConversion is the pipeline's own
	// sentinel, so markdown render errors arrive already wrapped.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrStyleNotFound  = errors.New("style not found")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
