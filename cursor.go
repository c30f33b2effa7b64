package vtcore

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
	CursorStyleHollowBlock
)

// Cursor tracks the cursor's position, pending-wrap state, and rendering
// style (0-based coordinates).
type Cursor struct {
	Point Point
	Style CursorStyle

	Visible bool

	// pendingWrap is set when the cursor sits at the right margin with
	// auto-wrap enabled and the wrap itself is deferred until the next
	// printable character arrives, matching real terminal auto-wrap
	// idempotency: a line that exactly fills the width does not
	// spuriously wrap if nothing more is printed.
	pendingWrap bool
}

// NewCursor returns a cursor at (0, 0), visible, blinking block style.
func NewCursor() *Cursor {
	return &Cursor{Style: CursorStyleBlinkingBlock, Visible: true}
}

// SavedCursor stores cursor position, template attributes, origin mode, and
// charset designations for DECSC/DECRC and the alternate-screen swap.
type SavedCursor struct {
	Point        Point
	Template     CellTemplate
	OriginMode   bool
	ActiveCharset int
	Charsets    [4]Charset
}

// CellTemplate is the cursor's current attribute set: the fg/bg/flags that
// SGR mutates and that every new cell written by put_char copies. DECSC
// saves it, DECRC restores it — a single template rather than a stack,
// matching how real terminals implement SGR.
type CellTemplate struct {
	Cell
}

// NewCellTemplate returns a template with default colours and no flags.
func NewCellTemplate() CellTemplate {
	return CellTemplate{Cell: NewCell()}
}
