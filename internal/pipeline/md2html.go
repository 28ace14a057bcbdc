package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HighlightStyle is the chroma style used for ordinary code fences.
const HighlightStyle = "monokai"

// Document is a parsed Markdown source. Blocks lists the syntax tree
// fences in document order; fill their Rendered field before Render.
type Document struct {
	root   ast.Node
	source []byte
	Blocks []*SyntaxBlock
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
// Safe for concurrent use.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// chroma highlighting and the syntax tree fence.
// languages overrides DefaultLanguages when non-empty.
func NewGoldmarkConverter(languages ...string) *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes; stylesheet comes from HighlightCSS
				),
			),
			&FenceExtension{Languages: languages},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// Parse builds the AST and collects syntax tree fences.
func (c *GoldmarkConverter) Parse(content string) *Document {
	src := []byte(content)
	root := c.md.Parser().Parse(text.NewReader(src))

	doc := &Document{root: root, source: src}
	// The walker never returns an error.
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if b, ok := n.(*SyntaxBlock); ok {
			doc.Blocks = append(doc.Blocks, b)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return doc
}

// BlockSource returns the body of block as written in doc.
func (d *Document) BlockSource(block *SyntaxBlock) string {
	return block.Source(d.source)
}

// Render writes doc as an HTML fragment.
func (c *GoldmarkConverter) Render(ctx context.Context, doc *Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, doc.source, doc.root); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// ToHTML parses and renders content in one step, leaving syntax trees as
// escaped source.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	return c.Render(ctx, c.Parse(content))
}
