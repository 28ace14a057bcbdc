package pipeline

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// SyntaxTreeClass is the class of the <div> wrapping each rendered tree.
const SyntaxTreeClass = "syntree"

// DefaultLanguages are the fence info strings treated as syntax trees.
var DefaultLanguages = []string{"syntax", "syntree"}

// KindSyntaxBlock is the AST kind of a syntax tree fence.
var KindSyntaxBlock = ast.NewNodeKind("SyntaxBlock")

// SyntaxBlock is a fenced code block holding a syntax tree description.
// Rendered is filled in between parsing and rendering; when it is nil the
// raw source is shown in a <pre>.
type SyntaxBlock struct {
	ast.FencedCodeBlock

	// Rendered is trusted HTML placed inside the wrapper div.
	Rendered []byte
}

func (b *SyntaxBlock) IsRaw() bool        { return true }
func (b *SyntaxBlock) Kind() ast.NodeKind { return KindSyntaxBlock }

// Source returns the block body exactly as written.
func (b *SyntaxBlock) Source(src []byte) string {
	lines := b.Lines()
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}

// Dump implements ast.Node.
func (b *SyntaxBlock) Dump(src []byte, level int) {
	ast.DumpHelper(b, src, level, map[string]string{
		"Rendered": boolString(b.Rendered != nil),
	}, nil)
}

// FenceExtension lifts fenced blocks whose language is one of Languages
// into SyntaxBlock nodes and renders them inside <div class="syntree">.
type FenceExtension struct {
	Languages []string
}

// Extend implements goldmark.Extender.
func (e *FenceExtension) Extend(md goldmark.Markdown) {
	md.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&fenceTransformer{langs: e.languageSet()}, 100),
		),
	)
	md.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&fenceRenderer{}, 100),
		),
	)
}

func (e *FenceExtension) languageSet() map[string]bool {
	langs := e.Languages
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	set := make(map[string]bool, len(langs))
	for _, l := range langs {
		set[l] = true
	}
	return set
}

// fenceTransformer replaces matching fenced code blocks with SyntaxBlock.
type fenceTransformer struct {
	langs map[string]bool
}

func (t *fenceTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	var matches []*ast.FencedCodeBlock

	// The walker never returns an error.
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fb, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if t.langs[string(fb.Language(reader.Source()))] {
			matches = append(matches, fb)
		}
		return ast.WalkSkipChildren, nil
	})

	for _, fb := range matches {
		// Build a detached node; copying fb would copy its sibling links.
		block := &SyntaxBlock{FencedCodeBlock: *ast.NewFencedCodeBlock(fb.Info)}
		block.SetLines(fb.Lines())
		block.SetBlankPreviousLines(fb.HasBlankPreviousLines())
		parent := fb.Parent()
		parent.ReplaceChild(parent, fb, block)
	}
}

// fenceRenderer writes SyntaxBlock nodes.
type fenceRenderer struct{}

func (r *fenceRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSyntaxBlock, r.render)
}

func (r *fenceRenderer) render(w util.BufWriter, src []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	b := node.(*SyntaxBlock)

	_, _ = w.WriteString(`<div class="` + SyntaxTreeClass + `">`)
	if b.Rendered != nil {
		_, _ = w.Write(b.Rendered)
	} else {
		_, _ = w.WriteString("<pre>" + html.EscapeString(b.Source(src)) + "</pre>")
	}
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
