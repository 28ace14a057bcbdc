package syntree

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-syntree/internal/colorutil"
)

// Default dark palette.
const (
	DefaultBackground = "#262626"
	DefaultForeground = "#c7c7c7"
)

// whiteToken matches "white" and "white-space" so the replacer can leave the
// latter untouched. RE2 has no lookahead.
var whiteToken = regexp.MustCompile(`white(-space)?`)

const svgOpenTag = "<svg "

// Theme remaps the renderer's light palette onto a dark one.
// The zero Theme leaves images unchanged.
type Theme struct {
	Background string // replaces "white" and fills the root element
	Foreground string // replaces "black"
}

// DarkTheme returns the default dark palette.
func DarkTheme() Theme {
	return Theme{Background: DefaultBackground, Foreground: DefaultForeground}
}

// NewTheme validates both colors as hex and returns them normalized to
// lowercase six-digit form. Three-digit shorthand is accepted.
func NewTheme(background, foreground string) (Theme, error) {
	bg, err := colorutil.NormalizeHex(background)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: background %q", ErrInvalidThemeColor, background)
	}
	fg, err := colorutil.NormalizeHex(foreground)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: foreground %q", ErrInvalidThemeColor, foreground)
	}
	return Theme{Background: bg, Foreground: fg}, nil
}

// IsZero reports whether the theme is a no-op.
func (t Theme) IsZero() bool {
	return t.Background == "" && t.Foreground == ""
}

// Apply returns svg with the palette remapped:
//   - every "white" not part of "white-space" becomes Background
//   - every "black" becomes Foreground
//   - the first "<svg " gains a background-color style
//
// Applying the same theme twice gives the same result as applying it once.
func (t Theme) Apply(svg string) string {
	if t.Background != "" {
		svg = whiteToken.ReplaceAllStringFunc(svg, func(m string) string {
			if m != "white" {
				return m
			}
			return t.Background
		})
	}
	if t.Foreground != "" {
		svg = strings.ReplaceAll(svg, "black", t.Foreground)
	}
	if t.Background != "" {
		svg = injectRootStyle(svg, t.Background)
	}
	return svg
}

// injectRootStyle adds the background style to the first <svg> tag unless
// an identical style is already present.
func injectRootStyle(svg, background string) string {
	style := rootStyle(background)
	if strings.Contains(svg, svgOpenTag+style) {
		return svg
	}
	return strings.Replace(svg, svgOpenTag, svgOpenTag+style, 1)
}

func rootStyle(background string) string {
	return `style="background-color: ` + background + `;" `
}
