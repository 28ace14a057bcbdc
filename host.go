package syntree

// TextInjectable is a document element the Presenter can append to.
// Implementations must escape text; it is never interpreted as markup.
type TextInjectable interface {
	AppendText(text string)
	AppendObject(data, mimeType string)
}

// Position is a zero-based line/column cursor location.
type Position struct {
	Line int
	Ch   int
}

// CursorEditable is the minimal editor surface used to insert block templates.
type CursorEditable interface {
	Cursor() Position
	SetCursor(pos Position)
	Line(n int) string
	SetLine(n int, text string)
	ReplaceRange(text string, at Position)
}
