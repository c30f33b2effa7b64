package vtcore

import (
	"testing"
)

func TestNewTerminal(t *testing.T) {
	term := New()

	if term.Rows() != DefaultRows {
		t.Errorf("expected %d rows, got %d", DefaultRows, term.Rows())
	}
	if term.Cols() != DefaultCols {
		t.Errorf("expected %d cols, got %d", DefaultCols, term.Cols())
	}
}

func TestTerminalWithSize(t *testing.T) {
	term := New(WithSize(40, 120))

	if term.Rows() != 40 {
		t.Errorf("expected 40 rows, got %d", term.Rows())
	}
	if term.Cols() != 120 {
		t.Errorf("expected 120 cols, got %d", term.Cols())
	}
}

// TestPlainHello matches spec §8.4 scenario 1.
func TestPlainHello(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("hello\r\n")

	if got := term.LineContent(0); got != "hello" {
		t.Errorf("LineContent(0) = %q, want %q", got, "hello")
	}
	if row, col := term.CursorPos(); row != 1 || col != 0 {
		t.Errorf("cursor = (%d,%d), want (1,0)", row, col)
	}
}

// TestSGRBoldRed matches spec §8.4 scenario 2.
func TestSGRBoldRed(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b[1;31mA\x1b[0mB")

	snap := term.Snapshot()
	a := snap.Rows[0][0]
	if a.Flags&CellFlagBold == 0 {
		t.Error("expected cell 0 to be bold")
	}
	want := term.Palette().Get(1) // ANSI red
	if a.Fg != want {
		t.Errorf("cell 0 fg = %+v, want %+v", a.Fg, want)
	}

	b := snap.Rows[0][1]
	if b.Flags&CellFlagBold != 0 {
		t.Error("expected cell 1 to have no bold flag after reset")
	}
}

// TestAltScreenSave matches spec §8.4 scenario 3.
func TestAltScreenSave(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("PRIMARY")

	term.WriteString("\x1b[?1049h")
	if !term.IsAlternateScreen() {
		t.Fatal("expected alternate screen active")
	}
	if got := term.LineContent(0); got != "" {
		t.Errorf("alt screen not blank: %q", got)
	}
	if row, col := term.CursorPos(); row != 0 || col != 0 {
		t.Errorf("alt screen cursor = (%d,%d), want (0,0)", row, col)
	}

	term.WriteString("ALT")
	if got := term.LineContent(0); got != "ALT" {
		t.Errorf("LineContent(0) = %q, want %q", got, "ALT")
	}

	term.WriteString("\x1b[?1049l")
	if term.IsAlternateScreen() {
		t.Fatal("expected primary screen restored")
	}
	if got := term.LineContent(0); got != "PRIMARY" {
		t.Errorf("LineContent(0) = %q, want %q", got, "PRIMARY")
	}
}

// TestCJKWrap matches spec §8.4 scenario 4.
func TestCJKWrap(t *testing.T) {
	term := New(WithSize(24, 3))
	term.WriteString("好好好好")

	snap := term.Snapshot()
	if snap.Rows[0][0].Flags&CellFlagWideChar == 0 {
		t.Error("row 0 col 0 should be a wide char base")
	}
	if snap.Rows[0][1].Flags&CellFlagWideCharSpacer == 0 {
		t.Error("row 0 col 1 should be a wide char spacer")
	}
}

// TestBellEvent matches spec §8.4 scenario 6.
func TestBellEvent(t *testing.T) {
	listener := &countingListener{}
	term := New(WithSize(24, 80), WithListener(listener))

	term.WriteString("\x07")

	if listener.bells != 1 {
		t.Errorf("expected exactly one Bell, got %d", listener.bells)
	}
}

// TestOSC7WorkingDirectory matches spec §8.4 scenario 7.
func TestOSC7WorkingDirectory(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b]7;file://host/home/x\x07")

	if got, want := term.WorkingDirectoryPath(), "/home/x"; got != want {
		t.Errorf("WorkingDirectoryPath() = %q, want %q", got, want)
	}
}

// TestReflowPreservesCursor matches spec §8.4 scenario 8.
func TestReflowPreservesCursor(t *testing.T) {
	term := New(WithSize(24, 10))
	term.WriteString("abcdefghij")
	term.WriteString("\x1b[1;6H") // cursor on the 'f' (column 5)

	term.Resize(24, 5)

	if got := term.LineContent(0); got != "abcde" {
		t.Errorf("LineContent(0) = %q, want %q", got, "abcde")
	}
	if got := term.LineContent(1); got != "fghij" {
		t.Errorf("LineContent(1) = %q, want %q", got, "fghij")
	}
	row, col := term.CursorPos()
	if row != 1 || col != 0 {
		t.Errorf("cursor after reflow = (%d,%d), want (1,0) [on the 'f']", row, col)
	}
}

func TestDECSCRestoresCursorAndOriginMode(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b[?6h")    // origin mode on (homes the cursor)
	term.WriteString("\x1b[10;20H") // move cursor
	term.WriteString("\x1b7")       // DECSC
	term.WriteString("\x1b[1;1H")   // move elsewhere
	term.WriteString("\x1b[?6l")    // origin mode off
	term.WriteString("\x1b8")       // DECRC

	row, col := term.CursorPos()
	if row != 9 || col != 19 {
		t.Errorf("cursor after DECRC = (%d,%d), want (9,19)", row, col)
	}
	if !term.HasMode(ModeOrigin) {
		t.Error("expected origin mode restored by DECRC")
	}
}

func TestScrollRegionSet(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("\x1b[2;4r") // scroll region rows 2-4, 1-based

	top, bottom := term.ScrollRegion()
	if top != 1 || bottom != 4 {
		t.Errorf("ScrollRegion() = (%d,%d), want (1,4)", top, bottom)
	}
}

func TestEraseDisplayAll(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("hello")

	term.WriteString("\x1b[2J")

	if got := term.LineContent(0); got != "" {
		t.Errorf("LineContent(0) after ED(2) = %q, want empty", got)
	}
}

func TestCursorUpClampsToTop(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b[6;1H") // row 5, 0-based
	term.WriteString("\x1b[100A")

	row, _ := term.CursorPos()
	if row != 0 {
		t.Errorf("CUU(100) from row 5 = %d, want clamped to 0", row)
	}
}

func TestModeCacheReflectsAutoWrapToggle(t *testing.T) {
	term := New(WithSize(24, 80))
	if !term.HasMode(ModeAutoWrap) {
		t.Fatal("expected DECAWM set by default")
	}

	term.WriteString("\x1b[?7l")
	if term.HasMode(ModeAutoWrap) {
		t.Error("expected DECAWM cleared after DECRST 7")
	}

	term.WriteString("\x1b[?7h")
	if !term.HasMode(ModeAutoWrap) {
		t.Error("expected DECAWM set after DECSET 7")
	}
}

// TestSaveRestoreModeNests matches spec §4.7's XTSAVE/XTRESTORE
// requirement: saved state for a mode number is per-mode and stacked, so
// nested save/restore pairs unwind independently instead of one pair
// clobbering another mode's saved value.
func TestSaveRestoreModeNests(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b[?7h") // DECAWM on
	term.SaveMode([]int{7})
	term.WriteString("\x1b[?7l") // DECAWM off
	term.SaveMode([]int{7})
	term.WriteString("\x1b[?7h") // DECAWM on again

	term.RestoreMode([]int{7})
	if term.HasMode(ModeAutoWrap) {
		t.Error("expected DECAWM off after first restore (innermost save)")
	}
	term.RestoreMode([]int{7})
	if !term.HasMode(ModeAutoWrap) {
		t.Error("expected DECAWM on after second restore (outermost save)")
	}

	// A mode with nothing saved is left untouched.
	term.WriteString("\x1b[?1000h")
	term.RestoreMode([]int{1000})
	if !term.HasMode(ModeMouseClick) {
		t.Error("restore of an unsaved mode must not change it")
	}
}

func TestTitleSetAndPushPop(t *testing.T) {
	listener := &countingListener{}
	term := New(WithSize(24, 80), WithListener(listener))

	term.WriteString("\x1b]0;first\x07")
	if term.Title() != "first" {
		t.Errorf("Title() = %q, want %q", term.Title(), "first")
	}
	if listener.lastTitle != "first" {
		t.Errorf("listener saw title %q, want %q", listener.lastTitle, "first")
	}

	term.PushTitle() // as dispatched by XTWINOPS CSI 22t
	term.WriteString("\x1b]0;second\x07")
	term.PopTitle() // as dispatched by XTWINOPS CSI 23t

	if term.Title() != "first" {
		t.Errorf("Title() after pop = %q, want %q", term.Title(), "first")
	}
}

func TestDECSTBMInvalidRegionIgnored(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b[10;5r") // top >= bottom is invalid, ignored

	top, bottom := term.ScrollRegion()
	if top != 0 || bottom != 24 {
		t.Errorf("ScrollRegion() after invalid DECSTBM = (%d,%d), want (0,24) unchanged", top, bottom)
	}
}

func TestResizeZeroDimensionIsNoop(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("hello")

	term.Resize(0, 80)
	term.Resize(24, 0)

	if term.Rows() != 24 || term.Cols() != 80 {
		t.Errorf("zero-dimension resize changed size to %dx%d", term.Rows(), term.Cols())
	}
	if got := term.LineContent(0); got != "hello" {
		t.Errorf("zero-dimension resize lost content: %q", got)
	}
}

func TestDeviceStatusReportsCursorPosition(t *testing.T) {
	listener := &countingListener{}
	term := New(WithSize(24, 80), WithListener(listener))

	term.WriteString("\x1b[5;10H")
	term.DeviceStatus(6) // DSR cursor position report

	want := "\x1b[5;10R"
	if listener.lastPtyWrite != want {
		t.Errorf("DSR(6) reply = %q, want %q", listener.lastPtyWrite, want)
	}
}

func TestPrimaryDeviceAttributes(t *testing.T) {
	listener := &countingListener{}
	term := New(WithSize(24, 80), WithListener(listener))

	term.IdentifyTerminal(0)
	if listener.lastPtyWrite != "\x1b[?1;2c" {
		t.Errorf("DA reply = %q, want %q", listener.lastPtyWrite, "\x1b[?1;2c")
	}
}

func TestOSC52ClipboardStore(t *testing.T) {
	listener := &countingListener{}
	term := New(WithSize(24, 80), WithListener(listener))

	term.ClipboardStore('c', []byte("hi"))

	if listener.lastClipboard != "hi" {
		t.Errorf("clipboard store = %q, want %q", listener.lastClipboard, "hi")
	}
}

func TestDecalnFillsScreenWithE(t *testing.T) {
	term := New(WithSize(3, 5))
	term.WriteString("\x1b#8")

	for r := 0; r < 3; r++ {
		if got := term.LineContent(r); got != "EEEEE" {
			t.Errorf("LineContent(%d) = %q, want %q", r, got, "EEEEE")
		}
	}
}

func TestSearchFindsAcrossScrollback(t *testing.T) {
	term := New(WithSize(5, 20))
	for i := 0; i < 30; i++ {
		term.WriteString("line content\r\n")
	}

	term.Find("content", true, false)
	matches := term.SearchMatches()
	if len(matches) == 0 {
		t.Fatal("expected at least one match across scrollback + viewport")
	}
}

// countingListener is a test-only EventListener that records what it was
// told, embedding NoopListener so only the methods under test need bodies.
type countingListener struct {
	NoopListener
	bells         int
	lastTitle     string
	lastPtyWrite  string
	lastClipboard string
}

func (l *countingListener) Bell() { l.bells++ }

func (l *countingListener) Title(title string) { l.lastTitle = title }

func (l *countingListener) PtyWrite(data []byte) { l.lastPtyWrite = string(data) }

func (l *countingListener) ClipboardStore(selection string, data []byte) {
	l.lastClipboard = string(data)
}
