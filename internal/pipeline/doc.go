// Package pipeline implements the Markdown-to-HTML stages of document
// conversion:
//   - Markdown preprocessing (line ending normalization)
//   - Markdown to HTML conversion via Goldmark, with syntax tree fences
//     lifted into their own AST node
//   - Document wrapping, CSS injection and relative path rewriting
//
// Rendering the syntax trees themselves is left to the caller: the
// converter exposes the collected SyntaxBlock nodes between parsing and
// rendering so each block can be filled in, possibly concurrently.
package pipeline
