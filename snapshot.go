package vtcore

// RenderableContent is a self-contained, palette-resolved snapshot of
// everything a renderer needs for one frame: no pointer in it aliases live
// terminal state, so the renderer thread can read it at leisure without
// holding the terminal's [FairMutex].
type RenderableContent struct {
	Rows   [][]ResolvedCell
	Cursor CursorSnapshot

	// Selection is nil when nothing is selected. Endpoints are expressed in
	// stable-row coordinates so a snapshot taken just before a scroll
	// remains meaningful against a grid taken just after.
	Selection *SelectionSnapshot

	DisplayOffset int
	Mode          TerminalMode

	// DamagedRows lists rows that changed since the previous snapshot. If
	// AllDirty is true the list is empty and every row should be treated as
	// damaged.
	DamagedRows []int
	AllDirty    bool
}

// ResolvedCell is a [Cell] with its colours resolved to concrete RGB
// against the palette in effect at snapshot time.
type ResolvedCell struct {
	Char  rune
	Fg    RGB
	Bg    RGB
	Flags CellFlags

	UnderlineColor RGB
	HasUnderline   bool
	Hyperlink      *Hyperlink
	Zerowidth      []rune
}

// CursorSnapshot is the cursor's renderable state.
type CursorSnapshot struct {
	Point   Point
	Style   CursorStyle
	Visible bool
}

// SelectionSnapshot is a selection's extent expressed in stable-row
// coordinates, so it survives being compared against a grid snapshot taken
// after scrollback eviction shifted row identities.
type SelectionSnapshot struct {
	StartRow StableRowIndex
	StartCol int
	EndRow   StableRowIndex
	EndCol   int
	Mode     SelectionMode
}

// Snapshot extracts a RenderableContent for the given grid against palette,
// resolving colours and draining the dirty tracker. mode is the terminal's
// current mode bitset and sel the active selection, if any; stableOf maps a
// viewport row index to its stable identity for selection encoding.
func Snapshot(g *Grid, palette *Palette, mode TerminalMode, sel *Selection, stableOf func(line Line) StableRowIndex) RenderableContent {
	rows := make([][]ResolvedCell, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		row := g.Row(r)
		cells := row.Cells()
		out := make([]ResolvedCell, len(cells))
		for c, cell := range cells {
			rc := ResolvedCell{
				Char:  cell.Char,
				Fg:    palette.Resolve(cell.Fg, true),
				Bg:    palette.Resolve(cell.Bg, false),
				Flags: cell.Flags,
			}
			if cell.Extra != nil {
				if cell.Extra.HasUnderline {
					rc.HasUnderline = true
					rc.UnderlineColor = palette.Resolve(cell.Extra.UnderlineColor, true)
				}
				rc.Hyperlink = cell.Extra.Hyperlink
				if len(cell.Extra.Zerowidth) > 0 {
					rc.Zerowidth = append([]rune(nil), cell.Extra.Zerowidth...)
				}
			}
			out[c] = rc
		}
		rows[r] = out
	}

	damaged, allDirty := g.DirtyTracker().Drain()

	content := RenderableContent{
		Rows: rows,
		Cursor: CursorSnapshot{
			Point:   g.Cursor().Point,
			Style:   g.Cursor().Style,
			Visible: g.Cursor().Visible,
		},
		DisplayOffset: g.DisplayOffset(),
		Mode:          mode,
		DamagedRows:   damaged,
		AllDirty:      allDirty,
	}

	if sel != nil && !sel.IsEmpty() {
		start, end := sel.ordered()
		content.Selection = &SelectionSnapshot{
			StartRow: stableOf(start.Line),
			StartCol: int(start.Column),
			EndRow:   stableOf(end.Line),
			EndCol:   int(end.Column),
			Mode:     sel.Mode,
		}
	}

	return content
}
