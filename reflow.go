package vtcore

// reflowGrid resizes g to newRows x newCols, rewrapping content rather than
// naively truncating or padding. Growing columns reflows first and then
// settles the viewport height; shrinking columns resizes height first and
// then reflows, since a narrower grid can only gain rows of scrollback,
// never lose them, while a shorter grid must evict into scrollback before
// the rewrap runs over a stable row count.
func reflowGrid(g *Grid, newRows, newCols int) {
	if newCols > g.cols {
		reflowCells(g, newCols)
		settleRows(g, newRows)
	} else {
		settleRows(g, newRows)
		reflowCells(g, newCols)
	}
}

// flatCell is one cell from the unified scrollback+viewport sequence walked
// by reflowCells, tagged with the source coordinate it came from so the
// cursor can be relocated to wherever its source cell ends up.
type flatCell struct {
	cell       Cell
	srcLine    int // viewport row; left 0 when srcIsBack
	srcCol     int
	srcIsBack  bool
	backIdx    int // index into scrollback, oldest-first, when srcIsBack
}

// reflowCells rewraps every logical line (a maximal run of WRAP-connected
// rows) across scrollback and the viewport into newCols-wide rows, then
// replaces both stores with the rewrapped content. The cursor's source
// cell is tracked through the walk and its destination coordinate is
// written back onto g.cursor.
func reflowCells(g *Grid, newCols int) {
	if newCols == g.cols {
		return
	}

	cursorSrc := g.cursor.Point
	var cursorDst Point
	foundCursor := false

	backLen := g.scrollback.Len()
	totalRows := backLen + len(g.rows)

	// logical lines: each is a flat sequence of source cells spanning one
	// or more WRAP-connected rows, oldest first.
	var lines [][]flatCell
	var current []flatCell

	flushLine := func() {
		if current != nil {
			lines = append(lines, current)
			current = nil
		}
	}

	rowAt := func(i int) (Row, bool) {
		if i < backLen {
			// scrollback is indexed newest-first; we want oldest-first here.
			return g.scrollback.Index(backLen - 1 - i)
		}
		return g.rows[i-backLen], true
	}

	for i := 0; i < totalRows; i++ {
		row, ok := rowAt(i)
		if !ok {
			continue
		}
		cells := row.Cells()
		limit := row.Occupied()
		if limit == 0 && row.IsWrapped() {
			limit = len(cells)
		}
		// Walk the cursor's row at least up to the cursor, so a cursor on a
		// blank cell past the occupied length is still found and tracked.
		if i >= backLen && i-backLen == int(cursorSrc.Line) && limit <= int(cursorSrc.Column) {
			limit = int(cursorSrc.Column) + 1
		}
		for c := 0; c < limit; c++ {
			fc := flatCell{cell: cells[c], srcCol: c}
			if i < backLen {
				fc.srcIsBack = true
				fc.backIdx = i
			} else {
				fc.srcLine = i - backLen
				if fc.srcLine == int(cursorSrc.Line) && c == int(cursorSrc.Column) {
					foundCursor = true
				}
			}
			current = append(current, fc)
		}
		if !row.IsWrapped() {
			flushLine()
		}
	}
	flushLine()

	// Rewrap each logical line into newCols-wide rows.
	var outRows []Row
	cursorRowOut, cursorColOut := -1, -1

	for _, line := range lines {
		col := 0
		rowCells := make([]Cell, newCols)
		for i := range rowCells {
			rowCells[i] = NewCell()
		}
		startRowIdx := len(outRows)

		emitRow := func(wrapped bool) {
			r := Row{cells: rowCells}
			r.SetWrapped(wrapped)
			r.recomputeOccupied()
			outRows = append(outRows, r)
		}

		for _, fc := range line {
			width := 1
			if fc.cell.IsWide() {
				width = 2
			}
			if fc.cell.IsWideSpacer() {
				continue
			}
			if col+width > newCols {
				if col < newCols {
					rowCells[col] = NewCell()
					rowCells[col].SetFlag(CellFlagWideCharSpacer)
					rowCells[col].SetFlag(CellFlagLeadingWideCharSpacer)
				}
				emitRow(true)
				rowCells = make([]Cell, newCols)
				for i := range rowCells {
					rowCells[i] = NewCell()
				}
				col = 0
			}
			rowCells[col] = fc.cell
			if foundCursor && !fc.srcIsBack && fc.srcLine == int(cursorSrc.Line) && fc.srcCol == int(cursorSrc.Column) {
				cursorRowOut = len(outRows)
				cursorColOut = col
			}
			col += width
			if width == 2 && col-1 < newCols {
				rowCells[col-1] = NewCell()
				rowCells[col-1].SetFlag(CellFlagWideCharSpacer)
			}
		}
		emitRow(false)
		_ = startRowIdx
	}

	if len(outRows) == 0 {
		outRows = []Row{NewRow(newCols, g.nextStable)}
		g.nextStable++
	}

	// Split outRows: everything except the last len(g.rows) rows becomes
	// scrollback, oldest first; the tail becomes the live viewport.
	viewportHeight := len(g.rows)
	g.scrollback.Clear()

	splitAt := len(outRows) - viewportHeight
	if splitAt < 0 {
		splitAt = 0
	}
	for i := 0; i < splitAt; i++ {
		r := outRows[i]
		r.stableIndex = g.nextStable
		g.nextStable++
		g.scrollback.Push(r)
	}

	// The tail fills the viewport from the top down: when there's more
	// scrollback than the viewport can hold, tail is exactly viewportHeight
	// rows and every one of them is real content. When there's too little
	// content to fill the viewport (no scrollback was pushed, splitAt == 0,
	// len(tail) < viewportHeight), the shortfall is blank rows *below* the
	// content, matching what a real terminal shows after a handful of
	// prints: text anchored at row 0, blank screen beneath it - not text
	// pinned to the bottom with blank rows floating above it.
	tail := outRows[splitAt:]
	newViewport := make([]Row, viewportHeight)
	for i := range newViewport {
		if i < len(tail) {
			newViewport[i] = tail[i]
			newViewport[i].stableIndex = g.nextStable
			g.nextStable++
			continue
		}
		newViewport[i] = NewRow(newCols, g.nextStable)
		g.nextStable++
	}
	g.rows = newViewport
	g.cols = newCols

	if cursorRowOut >= 0 {
		destRow := cursorRowOut - splitAt
		if destRow < 0 {
			destRow = 0
		}
		if destRow >= viewportHeight {
			destRow = viewportHeight - 1
		}
		cursorDst = Point{Line: Line(destRow), Column: Column(cursorColOut)}
	} else {
		cursorDst = Point{Line: Line(viewportHeight - 1), Column: 0}
	}
	g.cursor.Point = g.clampPoint(cursorDst)
	g.cursor.pendingWrap = false

	newTabStop := make([]bool, newCols)
	for i := 0; i < newCols; i += 8 {
		newTabStop[i] = true
	}
	g.tabStop = newTabStop
}

func (g *Grid) clampPoint(p Point) Point {
	return Point{Line: g.clampLine(int(p.Line)), Column: g.clampColumn(int(p.Column))}
}

// settleRows adjusts the viewport row count to newRows without touching
// column width: shrinking first drops trailing blank rows below the cursor
// (they are discarded, not kept in scrollback), then pushes the topmost
// rows into scrollback for whatever height is still in excess, so the
// cursor stays onscreen. Growing with the cursor on the bottom row pulls
// the newest rows back out of scrollback above the existing rows, filling
// any shortfall with blank rows there so the cursor stays on the bottom
// row; otherwise blank rows are appended below the existing rows.
func settleRows(g *Grid, newRows int) {
	old := len(g.rows)
	if newRows == old {
		return
	}

	if newRows < old {
		excess := old - newRows
		cursorRow := int(g.cursor.Point.Line)

		trimBottom := 0
		for i := old - 1; i >= 0 && trimBottom < excess; i-- {
			if g.rows[i].Occupied() == 0 && i > cursorRow {
				trimBottom++
			} else {
				break
			}
		}
		pushFromTop := excess - trimBottom

		for i := 0; i < pushFromTop; i++ {
			g.scrollback.Push(g.rows[i])
		}
		g.rows = append([]Row(nil), g.rows[pushFromTop:old-trimBottom]...)
		g.cursor.Point.Line = g.clampLine(cursorRow - pushFromTop)
	} else {
		grow := newRows - old
		cursorAtBottom := int(g.cursor.Point.Line) == old-1

		pulled := make([]Row, 0, grow)
		if cursorAtBottom {
			for i := 0; i < grow && g.scrollback.Len() > 0; i++ {
				row, ok := g.scrollback.Index(0)
				if !ok {
					break
				}
				pulled = append([]Row{row}, pulled...)
				popNewestScrollback(g.scrollback)
			}
		}
		need := grow - len(pulled)
		blanks := make([]Row, need)
		for i := range blanks {
			blanks[i] = NewRow(g.cols, g.nextStable)
			g.nextStable++
		}
		newRowsSlice := make([]Row, 0, newRows)
		if cursorAtBottom {
			newRowsSlice = append(newRowsSlice, pulled...)
			newRowsSlice = append(newRowsSlice, blanks...)
			newRowsSlice = append(newRowsSlice, g.rows...)
			g.cursor.Point.Line += Line(len(pulled) + need)
		} else {
			newRowsSlice = append(newRowsSlice, g.rows...)
			newRowsSlice = append(newRowsSlice, blanks...)
		}
		g.rows = newRowsSlice
	}
}

// popNewestScrollback removes the single newest entry (Index(0)) from a
// scrollback provider; used only by the grow-rows path, which has just
// copied that row back into the viewport. Providers other than
// [MemoryScrollback] are left unchanged.
func popNewestScrollback(s ScrollbackProvider) {
	mem, ok := s.(*MemoryScrollback)
	if !ok {
		return
	}
	if mem.n == 0 {
		return
	}
	mem.n--
}
