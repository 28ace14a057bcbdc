package syntree

import (
	"regexp"
	"strings"
)

// BlockLanguage is the fenced-code info string that marks a syntax tree.
const BlockLanguage = "syntax"

// BlockTemplate is the empty fenced block inserted by InsertBlockTemplate.
const BlockTemplate = "```" + BlockLanguage + "\n\n```"

var blankLine = regexp.MustCompile(`^\s*$`)

// InsertBlockTemplate inserts an empty syntax block at the cursor and puts
// the cursor on the block's empty body line.
// A whitespace-only cursor line is replaced by the block; otherwise the
// block goes on a new line below it.
func InsertBlockTemplate(ed CursorEditable) {
	line := ed.Cursor().Line
	if blankLine.MatchString(ed.Line(line)) {
		ed.SetLine(line, "")
		ed.ReplaceRange(BlockTemplate, Position{Line: line})
		ed.SetCursor(Position{Line: line + 1})
		return
	}
	ed.SetLine(line, ed.Line(line)+"\n")
	ed.ReplaceRange(BlockTemplate, Position{Line: line + 1})
	ed.SetCursor(Position{Line: line + 2})
}

// LineBuffer is an in-memory CursorEditable over a slice of lines.
// Not safe for concurrent use.
type LineBuffer struct {
	lines  []string
	cursor Position
}

// Compile-time interface check.
var _ CursorEditable = (*LineBuffer)(nil)

// NewLineBuffer splits text on "\n" into a buffer with the cursor at (0, 0).
func NewLineBuffer(text string) *LineBuffer {
	return &LineBuffer{lines: strings.Split(text, "\n")}
}

// String joins the lines back with "\n".
func (b *LineBuffer) String() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines.
func (b *LineBuffer) LineCount() int {
	return len(b.lines)
}

// Cursor returns the current cursor position.
func (b *LineBuffer) Cursor() Position {
	return b.cursor
}

// SetCursor moves the cursor, clamping it into the buffer.
func (b *LineBuffer) SetCursor(pos Position) {
	pos.Line = clamp(pos.Line, 0, len(b.lines)-1)
	pos.Ch = clamp(pos.Ch, 0, len(b.lines[pos.Line]))
	b.cursor = pos
}

// Line returns line n, or "" when n is out of range.
func (b *LineBuffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// SetLine replaces line n. Newlines in text split it into several lines.
// n == LineCount appends.
func (b *LineBuffer) SetLine(n int, text string) {
	n = b.ensureLine(n)
	b.splice(n, n+1, strings.Split(text, "\n"))
}

// ReplaceRange inserts text at the given position.
func (b *LineBuffer) ReplaceRange(text string, at Position) {
	n := b.ensureLine(at.Line)
	cur := b.lines[n]
	ch := clamp(at.Ch, 0, len(cur))
	b.splice(n, n+1, strings.Split(cur[:ch]+text+cur[ch:], "\n"))
}

// ensureLine pads the buffer so line n exists and returns the clamped n.
func (b *LineBuffer) ensureLine(n int) int {
	if n < 0 {
		n = 0
	}
	for len(b.lines) <= n {
		b.lines = append(b.lines, "")
	}
	return n
}

func (b *LineBuffer) splice(from, to int, repl []string) {
	out := make([]string, 0, len(b.lines)-(to-from)+len(repl))
	out = append(out, b.lines[:from]...)
	out = append(out, repl...)
	out = append(out, b.lines[to:]...)
	b.lines = out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
