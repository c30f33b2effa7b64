package vtcore

import "testing"

func TestNewCell(t *testing.T) {
	cell := NewCell()

	if cell.Char != ' ' {
		t.Errorf("expected space, got %q", cell.Char)
	}
	if cell.Fg != DefaultColor {
		t.Error("expected default foreground")
	}
	if cell.Bg != DefaultColor {
		t.Error("expected default background")
	}
	if cell.Flags != 0 {
		t.Error("expected no flags")
	}
}

func TestCellReset(t *testing.T) {
	cell := NewCell()
	cell.Char = 'A'
	cell.SetFlag(CellFlagBold)
	cell.AppendZerowidth('́')

	cell.Reset()

	if cell.Char != ' ' {
		t.Errorf("expected space after reset, got %q", cell.Char)
	}
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected no flags after reset")
	}
	if cell.Extra != nil {
		t.Error("expected extras cleared after reset")
	}
}

func TestCellFlags(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagBold)
	if !cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag")
	}

	cell.SetFlag(CellFlagItalic)
	if !cell.HasFlag(CellFlagBold) || !cell.HasFlag(CellFlagItalic) {
		t.Error("expected both flags")
	}

	cell.ClearFlag(CellFlagBold)
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag to be cleared")
	}
	if !cell.HasFlag(CellFlagItalic) {
		t.Error("expected italic flag to remain")
	}
}

func TestCellWide(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagWideChar)
	if !cell.IsWide() {
		t.Error("expected cell to be wide")
	}

	spacer := NewCell()
	spacer.SetFlag(CellFlagWideCharSpacer)
	if !spacer.IsWideSpacer() {
		t.Error("expected cell to be spacer")
	}
}

func TestCellCopyIndependentExtra(t *testing.T) {
	cell := NewCell()
	cell.Char = 'X'
	cell.SetFlag(CellFlagBold | CellFlagItalic)
	cell.AppendZerowidth('́')

	copied := cell.Copy()

	if copied.Char != 'X' {
		t.Errorf("expected 'X', got %q", copied.Char)
	}
	if !copied.HasFlag(CellFlagBold) || !copied.HasFlag(CellFlagItalic) {
		t.Error("expected flags to be copied")
	}

	// Mutating the copy's extras must not leak back into the original -
	// this is the aliasing bug Copy() exists to prevent.
	copied.AppendZerowidth('̂')
	if len(cell.Extra.Zerowidth) != 1 {
		t.Errorf("original cell's extras were mutated via the copy: %v", cell.Extra.Zerowidth)
	}
	if len(copied.Extra.Zerowidth) != 2 {
		t.Errorf("expected 2 zero-width runes on the copy, got %d", len(copied.Extra.Zerowidth))
	}
}

func TestCellHyperlinkAndUnderlineColor(t *testing.T) {
	cell := NewCell()

	cell.SetHyperlink(&Hyperlink{ID: "1", URI: "https://example.com"})
	link := cell.HyperlinkRef()
	if link == nil || link.URI != "https://example.com" {
		t.Fatalf("expected hyperlink to be set, got %v", link)
	}

	cell.SetUnderlineColor(NewIndexedColor(5))
	ref, ok := cell.UnderlineColor()
	if !ok || ref.Index() != 5 {
		t.Errorf("expected underline color index 5, got %v ok=%v", ref, ok)
	}

	cell.ClearUnderlineColor()
	if _, ok := cell.UnderlineColor(); ok {
		t.Error("expected underline color cleared")
	}

	cell.SetHyperlink(nil)
	if cell.HyperlinkRef() != nil {
		t.Error("expected hyperlink cleared")
	}
}

func TestColorRefRoundTrip(t *testing.T) {
	named := NewNamedColor(SlotDefaultForeground)
	if named.Kind() != ColorNamed || named.NamedIndex() != SlotDefaultForeground {
		t.Errorf("named color round-trip failed: %+v", named)
	}

	indexed := NewIndexedColor(200)
	if indexed.Kind() != ColorIndexed || indexed.Index() != 200 {
		t.Errorf("indexed color round-trip failed: %+v", indexed)
	}

	spec := NewSpecColor(10, 20, 30)
	r, g, b := spec.RGB()
	if spec.Kind() != ColorSpec || r != 10 || g != 20 || b != 30 {
		t.Errorf("spec color round-trip failed: %+v", spec)
	}

	if DefaultColor.Kind() != ColorDefault {
		t.Error("expected DefaultColor to report ColorDefault")
	}
}
