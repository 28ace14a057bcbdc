package syntree

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-syntree/internal/assets"
	"github.com/alnah/go-syntree/internal/dom"
	"github.com/alnah/go-syntree/internal/fileutil"
	"github.com/alnah/go-syntree/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ TextInjectable                = (*dom.Element)(nil)
)

// DefaultStyle is the embedded stylesheet used when WithStyle is not given.
const DefaultStyle = "dark"

// defaultTitle is used when Input.Title is empty.
const defaultTitle = "Syntax Trees"

// Input is one Markdown document to convert.
type Input struct {
	Markdown  string
	CSS       string // appended after the converter style
	Title     string // document <title>; defaults to "Syntax Trees"
	SourceDir string // resolves relative links; empty disables rewriting
	PDF       bool   // also print the HTML to PDF
}

// ConvertResult is a converted document.
type ConvertResult struct {
	HTML   []byte
	PDF    []byte // nil unless Input.PDF
	Blocks int    // syntax tree fences found
	Failed int    // fences whose render showed an error
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

type converterConfig struct {
	workers    int
	style      string
	pdfTimeout time.Duration
	languages  []string
}

// WithRenderer sets the Renderer used for syntax tree fences.
func WithRenderer(r *Renderer) ConverterOption {
	return func(c *Converter) {
		c.renderer = r
	}
}

// WithWorkers bounds how many fences render at once. n <= 0 picks a
// value from GOMAXPROCS.
func WithWorkers(n int) ConverterOption {
	return func(c *Converter) {
		c.cfg.workers = n
	}
}

// WithStyle selects an embedded style by name or a CSS file by path.
// An empty string disables the base style.
func WithStyle(nameOrPath string) ConverterOption {
	return func(c *Converter) {
		c.cfg.style = nameOrPath
	}
}

// WithPDFTimeout bounds page load when printing to PDF.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithPDFTimeout(d time.Duration) ConverterOption {
	if d <= 0 {
		panic("syntree: WithPDFTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.pdfTimeout = d
	}
}

// WithLanguages replaces the fence info strings treated as syntax trees.
func WithLanguages(langs ...string) ConverterOption {
	return func(c *Converter) {
		c.cfg.languages = langs
	}
}

// WithConverterLogger sets the logger for conversion progress.
func WithConverterLogger(logger *slog.Logger) ConverterOption {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// withPDFConverter injects a PDF backend (tests).
func withPDFConverter(p pdfConverter) ConverterOption {
	return func(c *Converter) {
		c.pdfConverter = p
	}
}

// Converter turns Markdown with syntax tree fences into a standalone HTML
// document, and optionally a PDF. Create with NewConverter, call Close
// when done. Safe for concurrent Convert calls.
type Converter struct {
	cfg          converterConfig
	renderer     *Renderer
	assetLoader  assets.AssetLoader
	preprocessor pipeline.MarkdownPreprocessor
	markdown     *pipeline.GoldmarkConverter
	cssInjector  pipeline.CSSInjector
	wrapper      *pipeline.DocumentWrapper
	baseCSS      string
	pdfConverter pdfConverter
	logger       *slog.Logger
}

// NewConverter creates a Converter with the dark style and a default
// Renderer. Returns an error if the style or template cannot be loaded.
func NewConverter(opts ...ConverterOption) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			style:      DefaultStyle,
			pdfTimeout: defaultPDFTimeout,
		},
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
		logger:       discardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.renderer == nil {
		c.renderer = NewRenderer(WithLogger(c.logger))
	}
	c.cfg.workers = ResolvePoolSize(c.cfg.workers)
	c.markdown = pipeline.NewGoldmarkConverter(c.cfg.languages...)

	tmpl, err := c.assetLoader.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	if c.wrapper, err = pipeline.NewDocumentWrapper(tmpl); err != nil {
		return nil, err
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.pdfTimeout)
	}

	return c, nil
}

// Convert runs the full pipeline. Fences that fail to render show their
// error inline and are counted in Failed; they do not fail the document.
func (c *Converter) Convert(ctx context.Context, input Input) (*ConvertResult, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := c.markdown.Parse(md)
	failed, err := c.renderBlocks(ctx, doc)
	if err != nil {
		return nil, err
	}

	body, err := c.markdown.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = defaultTitle
	}
	htmlContent, err := c.wrapper.Wrap(title, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	css := c.baseCSS
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, css)

	if input.SourceDir != "" {
		htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	res := &ConvertResult{
		HTML:   []byte(htmlContent),
		Blocks: len(doc.Blocks),
		Failed: failed,
	}
	c.logger.Debug("converted document", "blocks", res.Blocks, "failed", res.Failed)

	if !input.PDF {
		return res, nil
	}
	pdf, err := c.pdfConverter.ToPDF(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

// Close releases the headless browser, if one was started.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// renderBlocks renders every fence into its own element, at most
// cfg.workers at a time, and returns how many showed an error.
func (c *Converter) renderBlocks(ctx context.Context, doc *pipeline.Document) (int, error) {
	var failed atomic.Int32
	var g errgroup.Group
	g.SetLimit(c.cfg.workers)

	for _, block := range doc.Blocks {
		src := doc.BlockSource(block)
		g.Go(func() error {
			el := dom.NewElement()
			if err := c.renderer.Render(ctx, src, el); err != nil {
				failed.Add(1)
				c.logger.Warn("syntax tree failed", "error", err)
			}
			inner, err := el.InnerHTML()
			if err != nil {
				return err
			}
			block.Rendered = []byte(inner)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int(failed.Load()), nil
}

// resolveStyle loads the base CSS: an embedded style name or a file path.
func (c *Converter) resolveStyle() error {
	var css string
	switch style := c.cfg.style; {
	case style == "":
	case fileutil.IsFilePath(style):
		content, err := os.ReadFile(style) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrStyleNotFound, style, err)
		}
		css = string(content)
	default:
		content, err := c.assetLoader.LoadStyle(style)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStyleNotFound, err)
		}
		css = content
	}

	highlight, err := pipeline.HighlightCSS()
	if err != nil {
		return err
	}
	c.baseCSS = css + "\n" + highlight
	return nil
}
