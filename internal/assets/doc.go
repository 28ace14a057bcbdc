// Package assets provides the CSS styles and the HTML document template
// used when converting Markdown with syntax tree blocks to HTML.
//
// Styles and templates are embedded at compile time:
//
//	styles/
//	├── dark.css      # Default, matches the dark SVG palette
//	└── plain.css     # Light page, for --no-theme output
//	templates/
//	└── document.html # HTML5 shell wrapping the converted body
//
// Asset names are validated to prevent path traversal.
package assets
