package syntree

import (
	"fmt"
	"log/slog"
	"os"
)

// Presenter turns an Outcome into something visible on a host element.
type Presenter struct {
	theme  Theme
	logger *slog.Logger
}

// NewPresenter creates a presenter. A nil logger discards.
func NewPresenter(theme Theme, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = discardLogger()
	}
	return &Presenter{theme: theme, logger: logger}
}

// Present performs exactly one of show-error, show-parse-error or
// load-and-display for outcome. It never clears host, so presenting twice
// leaves two siblings.
// The returned error mirrors what was displayed; nil means an image was
// attached.
func (p *Presenter) Present(outcome Outcome, host TextInjectable) error {
	switch outcome.Kind {
	case OutcomeProcessError:
		host.AppendText("Error: " + outcome.Message)
		return outcome.Err()
	case OutcomeParseError:
		host.AppendText("Parse error: " + outcome.Message)
		return outcome.Err()
	case OutcomeSuccess:
		svg, err := p.read(outcome.ImagePath)
		if err != nil {
			host.AppendText("Error loading SVG file: " + err.Error())
			return fmt.Errorf("%w: %w", ErrReadImage, err)
		}
		host.AppendObject(SVGDataURI(svg), SVGMimeType)
		return nil
	default:
		err := fmt.Errorf("%w: unknown outcome %s", ErrProcess, outcome.Kind)
		host.AppendText("Error: " + err.Error())
		return err
	}
}

// Load reads the rendered image of a successful outcome and applies the
// theme. Errors wrap ErrReadImage.
func (p *Presenter) Load(outcome Outcome) (string, error) {
	if outcome.Kind != OutcomeSuccess {
		return "", outcome.Err()
	}
	svg, err := p.read(outcome.ImagePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadImage, err)
	}
	return svg, nil
}

// read loads and themes the image at path.
func (p *Presenter) read(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the renderer's own output
	if err != nil {
		p.logger.Error("reading rendered image", "path", path, "error", err)
		return "", err
	}
	return p.theme.Apply(string(data)), nil
}
