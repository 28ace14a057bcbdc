package syntree

import (
	"fmt"
	"regexp"
)

// lineBreaks matches \r\n, \n and \r.
var lineBreaks = regexp.MustCompile(`\r\n|\n|\r`)

// Request is one syntax tree description to render.
// Source must be a single line; use NewRequest to strip line breaks.
type Request struct {
	Source string
}

// NewRequest builds a Request from raw block text, removing every line break.
// Lines are joined without a separator, so "[S\n[NP]]" becomes "[S[NP]]".
func NewRequest(text string) Request {
	return Request{Source: lineBreaks.ReplaceAllString(text, "")}
}

// OutcomeKind tags a render Outcome.
type OutcomeKind int

// Outcome kinds.
const (
	OutcomeSuccess      OutcomeKind = iota // image written to ImagePath
	OutcomeProcessError                    // process failed to start or exited non-zero
	OutcomeParseError                      // process succeeded but printed diagnostics
)

// String returns a lowercase name for logs.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeProcessError:
		return "process-error"
	case OutcomeParseError:
		return "parse-error"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result of exactly one invocation.
type Outcome struct {
	Kind OutcomeKind

	// Message is the process error text for OutcomeProcessError and the
	// renderer's stdout diagnostics for OutcomeParseError.
	Message string

	// Stderr holds whatever the renderer wrote to stderr. Informational only.
	Stderr string

	// OutputDir is the per-request directory the renderer wrote into.
	// Empty when the directory could not be created.
	OutputDir string

	// ImagePath is the rendered SVG. Set only for OutcomeSuccess.
	ImagePath string
}

// Err returns nil for success, otherwise the matching sentinel wrapped
// with the message.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeParseError:
		return fmt.Errorf("%w: %s", ErrParse, o.Message)
	default:
		return fmt.Errorf("%w: %s", ErrProcess, o.Message)
	}
}
