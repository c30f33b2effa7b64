package vtcore

// Grid is one screen buffer (primary or alternate): a viewport of rows,
// scrollback, the cursor, the active attribute template, tab stops, the
// scroll region, and dirty tracking. Rows carry stable indices so content
// written before a scrollback eviction stays addressable.
type Grid struct {
	rows []Row
	cols int

	tabStop []bool

	cursor      Cursor
	savedCursor *SavedCursor
	template    CellTemplate

	topMargin    int
	bottomMargin int // exclusive

	scrollback    ScrollbackProvider
	displayOffset int // rows scrolled back into history, 0 == live viewport

	dirty *DirtyTracker

	nextStable StableRowIndex
}

// NewGrid returns a grid of the given viewport size backed by scrollback.
// Pass [NoopScrollback]{} for a grid with no history (the alternate
// screen).
func NewGrid(rows, cols int, scrollback ScrollbackProvider) *Grid {
	g := &Grid{
		cols:         cols,
		tabStop:      make([]bool, cols),
		template:     NewCellTemplate(),
		bottomMargin: rows,
		scrollback:   scrollback,
		dirty:        NewDirtyTracker(rows),
	}
	g.rows = make([]Row, rows)
	for i := range g.rows {
		g.rows[i] = NewRow(cols, g.nextStable)
		g.nextStable++
	}
	g.cursor = *NewCursor()
	for i := 0; i < cols; i += 8 {
		g.tabStop[i] = true
	}
	return g
}

// Rows returns the viewport height.
func (g *Grid) Rows() int { return len(g.rows) }

// Cols returns the viewport width.
func (g *Grid) Cols() int { return g.cols }

// Row returns a pointer to viewport row r, or nil if out of range.
func (g *Grid) Row(r int) *Row {
	if r < 0 || r >= len(g.rows) {
		return nil
	}
	return &g.rows[r]
}

// Cell returns a pointer to the cell at p, or nil if out of range.
func (g *Grid) Cell(p Point) *Cell {
	row := g.Row(int(p.Line))
	if row == nil {
		return nil
	}
	return row.Cell(int(p.Column))
}

// Cursor returns the grid's cursor.
func (g *Grid) Cursor() *Cursor { return &g.cursor }

// Template returns the grid's current attribute template.
func (g *Grid) Template() *CellTemplate { return &g.template }

// DirtyTracker returns the grid's dirty tracker.
func (g *Grid) DirtyTracker() *DirtyTracker { return g.dirty }

// ScrollRegion returns the current scroll region as [top, bottom).
func (g *Grid) ScrollRegion() (top, bottom int) {
	return g.topMargin, g.bottomMargin
}

// SetScrollRegion sets the scroll region to [top, bottom), per DECSTBM.
// Invalid regions (top >= bottom, out of range) are clamped to the full
// viewport rather than rejected, matching the convention that malformed
// input never leaves the grid in an inconsistent state.
func (g *Grid) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom > len(g.rows) {
		bottom = len(g.rows)
	}
	if top >= bottom {
		top, bottom = 0, len(g.rows)
	}
	g.topMargin = top
	g.bottomMargin = bottom
}

// DisplayOffset returns how many rows back into scrollback the viewport is
// currently scrolled; 0 means the live viewport is showing.
func (g *Grid) DisplayOffset() int { return g.displayOffset }

// SetDisplayOffset clamps and sets the display offset.
func (g *Grid) SetDisplayOffset(n int) {
	if n < 0 {
		n = 0
	}
	if max := g.scrollback.Len(); n > max {
		n = max
	}
	g.displayOffset = n
}

// --- Tab stops ---

func (g *Grid) SetTabStop(col int) {
	if col >= 0 && col < g.cols {
		g.tabStop[col] = true
	}
}

func (g *Grid) ClearTabStop(col int) {
	if col >= 0 && col < g.cols {
		g.tabStop[col] = false
	}
}

func (g *Grid) ClearAllTabStops() {
	for i := range g.tabStop {
		g.tabStop[i] = false
	}
}

// NextTabStop returns the next enabled tab stop strictly after col, or the
// rightmost column if none remain.
func (g *Grid) NextTabStop(col int) int {
	for c := col + 1; c < g.cols; c++ {
		if g.tabStop[c] {
			return c
		}
	}
	return g.cols - 1
}

// PrevTabStop returns the previous enabled tab stop strictly before col, or
// column 0 if none precede it.
func (g *Grid) PrevTabStop(col int) int {
	for c := col - 1; c >= 0; c-- {
		if g.tabStop[c] {
			return c
		}
	}
	return 0
}

// --- Cell editing ---

// PutChar writes r at the cursor, handling auto-wrap deferral, wide-char
// pairing, and zero-width combining characters, then advances the cursor.
// autoWrap selects whether DECAWM is in effect.
func (g *Grid) PutChar(r rune, width int, autoWrap bool) {
	if width == 0 {
		g.appendZerowidth(r)
		return
	}

	if g.cursor.pendingWrap {
		if autoWrap {
			g.wrapLine()
		}
		g.cursor.pendingWrap = false
	}

	col := int(g.cursor.Point.Column)
	row := int(g.cursor.Point.Line)

	if width == 2 && col == g.cols-1 {
		// A wide character that wouldn't fit in the last column: pad with a
		// spacer and wrap to the next line first.
		g.writeSpacer(row, col, true)
		if autoWrap {
			g.wrapLine()
		}
		col = int(g.cursor.Point.Column)
		row = int(g.cursor.Point.Line)
	}

	cell := g.template.Cell.Copy()
	cell.Char = r
	if width == 2 {
		cell.SetFlag(CellFlagWideChar)
	}
	g.setCell(row, col, cell)

	if width == 2 && col+1 < g.cols {
		g.writeSpacer(row, col+1, false)
	}

	next := col + width
	if next >= g.cols {
		g.cursor.Point.Column = Column(g.cols - 1)
		if autoWrap {
			g.cursor.pendingWrap = true
		}
	} else {
		g.cursor.Point.Column = Column(next)
	}
}

// appendZerowidth attaches r as a combining mark to the cell the cursor
// last wrote (the cell one column left of the cursor, or under it if a wrap
// is pending).
func (g *Grid) appendZerowidth(r rune) {
	col := int(g.cursor.Point.Column)
	if !g.cursor.pendingWrap {
		col--
	}
	if col < 0 {
		return
	}
	if c := g.Cell(Point{Line: g.cursor.Point.Line, Column: Column(col)}); c != nil {
		c.AppendZerowidth(r)
	}
}

func (g *Grid) writeSpacer(row, col int, leading bool) {
	cell := g.template.Cell.Copy()
	cell.Char = ' '
	cell.SetFlag(CellFlagWideCharSpacer)
	if leading {
		cell.SetFlag(CellFlagLeadingWideCharSpacer)
	}
	g.setCell(row, col, cell)
}

func (g *Grid) setCell(row, col int, cell Cell) {
	r := g.Row(row)
	if r == nil {
		return
	}
	if c := r.Cell(col); c != nil {
		*c = cell
	}
	if !cell.IsEmpty() {
		r.touch(col)
	}
	g.dirty.MarkRow(row)
}

// wrapLine marks the current row as soft-wrapped and moves the cursor to
// the start of the next row, scrolling the region if already at the
// bottom margin.
func (g *Grid) wrapLine() {
	row := int(g.cursor.Point.Line)
	if c := g.Cell(Point{Line: Line(row), Column: Column(g.cols - 1)}); c != nil {
		c.SetFlag(CellFlagWrap)
	}
	if r := g.Row(row); r != nil {
		r.SetWrapped(true)
	}
	g.cursor.Point.Column = 0
	if row+1 >= g.bottomMargin {
		g.ScrollUp(1)
	} else {
		g.cursor.Point.Line = Line(row + 1)
	}
}

// InsertBlank inserts n blank cells at the cursor row starting at col,
// shifting existing cells right and discarding overflow.
func (g *Grid) InsertBlank(row, col, n int) {
	r := g.Row(row)
	if r == nil || n <= 0 || col < 0 || col >= g.cols {
		return
	}
	cells := r.Cells()
	for c := g.cols - 1; c >= col+n; c-- {
		cells[c] = cells[c-n]
	}
	for c := col; c < col+n && c < g.cols; c++ {
		cells[c] = g.template.Cell
		cells[c].Char = ' '
		cells[c].Flags = 0
		cells[c].Extra = nil
	}
	r.recomputeOccupied()
	g.dirty.MarkRow(row)
}

// DeleteChars removes n cells at (row, col), shifting the remainder left
// and filling the vacated tail with the current template.
func (g *Grid) DeleteChars(row, col, n int) {
	r := g.Row(row)
	if r == nil || n <= 0 || col < 0 || col >= g.cols {
		return
	}
	cells := r.Cells()
	for c := col; c < g.cols-n; c++ {
		cells[c] = cells[c+n]
	}
	for c := g.cols - n; c < g.cols; c++ {
		if c < 0 {
			continue
		}
		cells[c] = g.template.Cell
		cells[c].Char = ' '
		cells[c].Flags = 0
		cells[c].Extra = nil
	}
	r.recomputeOccupied()
	g.dirty.MarkRow(row)
}

// EraseDisplayMode selects what erase_display clears.
type EraseDisplayMode int

const (
	EraseBelow EraseDisplayMode = iota
	EraseAbove
	EraseAll
	EraseScrollback
)

// EraseDisplay clears some or all of the viewport (and optionally
// scrollback) relative to the cursor.
func (g *Grid) EraseDisplay(mode EraseDisplayMode) {
	cursorRow := int(g.cursor.Point.Line)
	switch mode {
	case EraseBelow:
		g.eraseRowRange(cursorRow, int(g.cursor.Point.Column), g.cols)
		for r := cursorRow + 1; r < len(g.rows); r++ {
			g.rows[r].Clear()
			g.dirty.MarkRow(r)
		}
	case EraseAbove:
		g.eraseRowRange(cursorRow, 0, int(g.cursor.Point.Column)+1)
		for r := 0; r < cursorRow; r++ {
			g.rows[r].Clear()
			g.dirty.MarkRow(r)
		}
	case EraseAll:
		for r := range g.rows {
			g.rows[r].Clear()
		}
		g.dirty.MarkAll()
	case EraseScrollback:
		g.scrollback.Clear()
	}
}

func (g *Grid) eraseRowRange(row, from, to int) {
	r := g.Row(row)
	if r == nil {
		return
	}
	r.ClearRange(from, to)
	g.dirty.MarkRow(row)
}

// EraseLine clears within a single row: 0=to end, 1=from start, 2=whole row.
func (g *Grid) EraseLine(row, mode int) {
	switch mode {
	case 0:
		g.eraseRowRange(row, int(g.cursor.Point.Column), g.cols)
	case 1:
		g.eraseRowRange(row, 0, int(g.cursor.Point.Column)+1)
	case 2:
		g.eraseRowRange(row, 0, g.cols)
	}
}

// EraseChars clears n cells starting at (row, col) without shifting
// anything, per ECH.
func (g *Grid) EraseChars(row, col, n int) {
	if n <= 0 {
		return
	}
	g.eraseRowRange(row, col, col+n)
}

// FillWithE overwrites every cell with 'E', used by DECALN.
func (g *Grid) FillWithE() {
	for r := range g.rows {
		cells := g.rows[r].Cells()
		for c := range cells {
			cells[c].Reset()
			cells[c].Char = 'E'
		}
		g.rows[r].recomputeOccupied()
	}
	g.dirty.MarkAll()
}

// --- Scrolling ---

// ScrollUp shifts the scroll region up by n rows, pushing evicted rows to
// scrollback only when the region's top coincides with row 0 (real
// terminals never grow scrollback from a mid-screen scroll region).
func (g *Grid) ScrollUp(n int) {
	top, bottom := g.topMargin, g.bottomMargin
	if n <= 0 || top >= bottom {
		return
	}
	if n > bottom-top {
		n = bottom - top
	}

	if top == 0 {
		for i := 0; i < n; i++ {
			g.scrollback.Push(g.rows[i])
		}
	}

	for row := top; row < bottom-n; row++ {
		g.rows[row] = g.rows[row+n]
	}
	for row := bottom - n; row < bottom; row++ {
		g.rows[row] = NewRow(g.cols, g.nextStable)
		g.nextStable++
	}
	g.dirty.MarkAll()
}

// ScrollDown shifts the scroll region down by n rows, discarding rows
// pushed off the bottom margin.
func (g *Grid) ScrollDown(n int) {
	top, bottom := g.topMargin, g.bottomMargin
	if n <= 0 || top >= bottom {
		return
	}
	if n > bottom-top {
		n = bottom - top
	}

	for row := bottom - 1; row >= top+n; row-- {
		g.rows[row] = g.rows[row-n]
	}
	for row := top; row < top+n; row++ {
		g.rows[row] = NewRow(g.cols, g.nextStable)
		g.nextStable++
	}
	g.dirty.MarkAll()
}

// InsertLines inserts n blank lines at row (cursor-region bounded by
// bottom), per IL.
func (g *Grid) InsertLines(row, n int) {
	saved := g.topMargin
	g.topMargin = row
	g.ScrollDown(n)
	g.topMargin = saved
}

// DeleteLines removes n lines at row (cursor-region bounded by bottom),
// per DL.
func (g *Grid) DeleteLines(row, n int) {
	saved := g.topMargin
	g.topMargin = row
	g.ScrollUp(n)
	g.topMargin = saved
}

// --- Cursor navigation ---

func (g *Grid) clampColumn(col int) Column {
	if col < 0 {
		return 0
	}
	if col >= g.cols {
		return Column(g.cols - 1)
	}
	return Column(col)
}

func (g *Grid) clampLine(line int) Line {
	if line < 0 {
		return 0
	}
	if line >= len(g.rows) {
		return Line(len(g.rows) - 1)
	}
	return Line(line)
}

// MoveTo sets the cursor to (line, col), clamped to the viewport. If
// originMode is set, coordinates are relative to the scroll region (DECOM).
func (g *Grid) MoveTo(line, col int, originMode bool) {
	if originMode {
		line += g.topMargin
	}
	g.cursor.Point = Point{Line: g.clampLine(line), Column: g.clampColumn(col)}
	g.cursor.pendingWrap = false
}

func (g *Grid) MoveUp(n int) {
	g.cursor.Point.Line = g.clampLine(int(g.cursor.Point.Line) - n)
	g.cursor.pendingWrap = false
}

func (g *Grid) MoveDown(n int) {
	g.cursor.Point.Line = g.clampLine(int(g.cursor.Point.Line) + n)
	g.cursor.pendingWrap = false
}

func (g *Grid) MoveForward(n int) {
	g.cursor.Point.Column = g.clampColumn(int(g.cursor.Point.Column) + n)
	g.cursor.pendingWrap = false
}

func (g *Grid) MoveBackward(n int) {
	g.cursor.Point.Column = g.clampColumn(int(g.cursor.Point.Column) - n)
	g.cursor.pendingWrap = false
}

// CarriageReturn moves the cursor to column 0 of the current line.
func (g *Grid) CarriageReturn() {
	g.cursor.Point.Column = 0
	g.cursor.pendingWrap = false
}

// LineFeed moves the cursor down one line, scrolling the region if already
// at the bottom margin.
func (g *Grid) LineFeed() {
	row := int(g.cursor.Point.Line)
	if row+1 >= g.bottomMargin {
		g.ScrollUp(1)
	} else {
		g.cursor.Point.Line = Line(row + 1)
	}
	g.cursor.pendingWrap = false
}

// ReverseIndex moves the cursor up one line, scrolling the region down if
// already at the top margin.
func (g *Grid) ReverseIndex() {
	row := int(g.cursor.Point.Line)
	if row <= g.topMargin {
		g.ScrollDown(1)
	} else {
		g.cursor.Point.Line = Line(row - 1)
	}
	g.cursor.pendingWrap = false
}

// NextLine performs CR followed by LF (NEL).
func (g *Grid) NextLine() {
	g.CarriageReturn()
	g.LineFeed()
}

// HorizontalTab advances the cursor to the next tab stop.
func (g *Grid) HorizontalTab() {
	g.cursor.Point.Column = Column(g.NextTabStop(int(g.cursor.Point.Column)))
	g.cursor.pendingWrap = false
}

// BackTab moves the cursor to the previous tab stop.
func (g *Grid) BackTab() {
	g.cursor.Point.Column = Column(g.PrevTabStop(int(g.cursor.Point.Column)))
	g.cursor.pendingWrap = false
}

// SaveCursor stashes the cursor position, attribute template, origin mode,
// and charset state for DECSC.
func (g *Grid) SaveCursor(originMode bool, activeCharset int, charsets [4]Charset) {
	g.savedCursor = &SavedCursor{
		Point:         g.cursor.Point,
		Template:      g.template,
		OriginMode:    originMode,
		ActiveCharset: activeCharset,
		Charsets:      charsets,
	}
}

// RestoreCursor restores a previously saved cursor, or resets to the
// default position if nothing was saved, per DECRC.
func (g *Grid) RestoreCursor() *SavedCursor {
	if g.savedCursor == nil {
		g.cursor.Point = Point{}
		g.cursor.pendingWrap = false
		return nil
	}
	g.cursor.Point = g.savedCursor.Point
	g.template = g.savedCursor.Template
	g.cursor.pendingWrap = false
	return g.savedCursor
}

// Resize changes the grid's viewport dimensions, reflowing content per the
// grow-columns/shrink-columns rules in reflow.go, and resets the scroll
// region to the full new viewport. Zero or negative dimensions are a no-op.
func (g *Grid) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	if rows == len(g.rows) && cols == g.cols {
		return
	}
	reflowGrid(g, rows, cols)
	g.topMargin, g.bottomMargin = 0, rows
	g.dirty.Resize(rows)
	g.dirty.MarkAll()
}
