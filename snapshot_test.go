package vtcore

import "testing"

func TestSnapshotText(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("Hello")
	term.WriteString("\x1b[2;1H")
	term.WriteString("World")

	snap := term.Snapshot()

	if len(snap.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(snap.Rows))
	}
	if len(snap.Rows[0]) != 10 {
		t.Fatalf("len(Rows[0]) = %d, want 10", len(snap.Rows[0]))
	}
	if snap.Rows[0][0].Char != 'H' || snap.Rows[0][1].Char != 'e' {
		t.Errorf("unexpected first row: %q%q", snap.Rows[0][0].Char, snap.Rows[0][1].Char)
	}
	if snap.Rows[1][0].Char != 'W' {
		t.Errorf("Rows[1][0].Char = %q, want 'W'", snap.Rows[1][0].Char)
	}
}

func TestSnapshotCursor(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("ABC")

	snap := term.Snapshot()

	if snap.Cursor.Point.Line != 0 || snap.Cursor.Point.Column != 3 {
		t.Errorf("cursor point = %+v, want (0,3)", snap.Cursor.Point)
	}
	if !snap.Cursor.Visible {
		t.Error("expected cursor visible")
	}
	if snap.Cursor.Style != CursorStyleBlinkingBlock {
		t.Errorf("expected default blinking block style, got %v", snap.Cursor.Style)
	}
}

func TestSnapshotColorResolution(t *testing.T) {
	term := New(WithSize(3, 20))
	term.WriteString("\x1b[31mRed\x1b[0m")

	snap := term.Snapshot()

	want := term.Palette().Get(1) // ANSI red
	got := snap.Rows[0][0].Fg
	if got != want {
		t.Errorf("Fg = %+v, want %+v", got, want)
	}
	// SGR 0 reset should fall back to default foreground on later cells.
	if snap.Rows[0][3].Fg != term.Palette().Get(SlotDefaultForeground) {
		t.Errorf("expected reset cell to use default foreground, got %+v", snap.Rows[0][3].Fg)
	}
}

func TestSnapshotBoldAttribute(t *testing.T) {
	term := New(WithSize(3, 20))
	term.WriteString("\x1b[1mBold\x1b[0m")

	snap := term.Snapshot()

	for i := 0; i < 4; i++ {
		if !snap.Rows[0][i].Flags.has(CellFlagBold) {
			t.Errorf("cell %d should be bold", i)
		}
	}
}

func TestSnapshotUnderlineStyles(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		flag     CellFlags
	}{
		{"single", "\x1b[4mText\x1b[0m", CellFlagUnderline},
		{"double", "\x1b[21mText\x1b[0m", CellFlagUnderlineDouble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := New(WithSize(3, 20))
			term.WriteString(tt.sequence)

			snap := term.Snapshot()
			if !snap.Rows[0][0].Flags.has(tt.flag) {
				t.Errorf("expected flag %v set, flags = %v", tt.flag, snap.Rows[0][0].Flags)
			}
		})
	}
}

func TestSnapshotUnderlineColor(t *testing.T) {
	term := New(WithSize(3, 20))
	term.WriteString("\x1b[4m\x1b[58;2;255;0;0mText\x1b[0m")

	snap := term.Snapshot()

	cell := snap.Rows[0][0]
	if !cell.HasUnderline {
		t.Fatal("expected HasUnderline")
	}
	if cell.UnderlineColor != (RGB{255, 0, 0}) {
		t.Errorf("UnderlineColor = %+v, want {255 0 0}", cell.UnderlineColor)
	}
}

func TestSnapshotHyperlink(t *testing.T) {
	term := New(WithSize(3, 40))
	term.WriteString("\x1b]8;id=test;https://example.com\x07Link\x1b]8;;\x07")

	snap := term.Snapshot()

	for i := 0; i < 4; i++ {
		link := snap.Rows[0][i].Hyperlink
		if link == nil {
			t.Errorf("cell %d should have hyperlink", i)
			continue
		}
		if link.URI != "https://example.com" {
			t.Errorf("cell %d hyperlink URI = %q", i, link.URI)
		}
	}
}

func TestSnapshotWideChar(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("中")

	snap := term.Snapshot()

	if !snap.Rows[0][0].Flags.has(CellFlagWideChar) {
		t.Error("cell 0 should be wide")
	}
	if !snap.Rows[0][1].Flags.has(CellFlagWideCharSpacer) {
		t.Error("cell 1 should be a wide spacer")
	}
}

func TestSnapshotDirtyTracking(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("Hi")

	first := term.Snapshot()
	if !first.AllDirty {
		t.Error("expected first snapshot to report AllDirty")
	}

	second := term.Snapshot()
	if second.AllDirty || len(second.DamagedRows) != 0 {
		t.Errorf("expected no damage since last drain, got AllDirty=%v DamagedRows=%v", second.AllDirty, second.DamagedRows)
	}

	term.WriteString("\x1b[2;1HAgain")
	third := term.Snapshot()
	if third.AllDirty {
		t.Fatal("expected targeted damage, not AllDirty")
	}
	if len(third.DamagedRows) != 1 || third.DamagedRows[0] != 1 {
		t.Errorf("DamagedRows = %v, want [1]", third.DamagedRows)
	}
}

func TestSnapshotSelection(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("Hello")
	term.SetSelection(Selection{
		Active: true,
		Mode:   SelectionChar,
		Anchor: Point{Line: 0, Column: 0},
		End:    Point{Line: 0, Column: 2},
	})

	snap := term.Snapshot()
	if snap.Selection == nil {
		t.Fatal("expected a selection snapshot")
	}
	if snap.Selection.StartCol != 0 || snap.Selection.EndCol != 2 {
		t.Errorf("selection cols = %d..%d, want 0..2", snap.Selection.StartCol, snap.Selection.EndCol)
	}
}

// has is a small test helper so flag assertions read naturally; CellFlags
// itself has no boolean helper since Cell.HasFlag needs a pointer receiver.
func (f CellFlags) has(flag CellFlags) bool {
	return f&flag != 0
}
