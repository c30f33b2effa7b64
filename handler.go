package vtcore

import (
	"fmt"
	"image/color"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/danielgatis/go-ansicode"
)

// This file implements ansicode.Handler: every method the ANSI/VTE parser
// in terminal.go's decoder dispatches to while Write holds fairMu. None of
// these methods take the lock themselves - Write already holds it for the
// whole parse chunk, and none of them block, so listener callbacks (Bell,
// Title, PtyWrite, ...) run synchronously from here.

// ApplicationCommandReceived forwards an APC sequence to the configured
// provider. Kitty graphics placement (APC sequences starting with 'G') is
// out of scope - this terminal models character cells, not a pixel canvas -
// so those sequences reach the provider like any other APC payload rather
// than being special-cased.
func (t *Terminal) ApplicationCommandReceived(data []byte) {
	t.apcProvider.Receive(data)
}

// Backspace moves the cursor one column left, stopping at column 0.
func (t *Terminal) Backspace() {
	t.activeGrid().MoveBackward(1)
	t.markWakeup()
}

// Bell notifies the listener of BEL (0x07).
func (t *Terminal) Bell() {
	t.listener.Bell()
}

// CarriageReturn moves the cursor to column 0 of the current line.
func (t *Terminal) CarriageReturn() {
	t.activeGrid().CarriageReturn()
	t.markWakeup()
}

// ClearLine clears part or all of the cursor's row.
func (t *Terminal) ClearLine(mode ansicode.LineClearMode) {
	g := t.activeGrid()
	row := int(g.Cursor().Point.Line)
	switch mode {
	case ansicode.LineClearModeRight:
		g.EraseLine(row, 0)
	case ansicode.LineClearModeLeft:
		g.EraseLine(row, 1)
	case ansicode.LineClearModeAll:
		g.EraseLine(row, 2)
	}
	t.markWakeup()
}

// ClearScreen clears screen regions relative to the cursor, or the whole
// viewport, or scrollback.
func (t *Terminal) ClearScreen(mode ansicode.ClearMode) {
	g := t.activeGrid()
	switch mode {
	case ansicode.ClearModeBelow:
		g.EraseDisplay(EraseBelow)
	case ansicode.ClearModeAbove:
		g.EraseDisplay(EraseAbove)
	case ansicode.ClearModeAll:
		g.EraseDisplay(EraseAll)
	case ansicode.ClearModeSaved:
		g.EraseDisplay(EraseScrollback)
	}
	t.markWakeup()
}

// ClearTabs removes the tab stop at the cursor column, or every tab stop.
func (t *Terminal) ClearTabs(mode ansicode.TabulationClearMode) {
	g := t.activeGrid()
	switch mode {
	case ansicode.TabulationClearModeCurrent:
		g.ClearTabStop(int(g.Cursor().Point.Column))
	case ansicode.TabulationClearModeAll:
		g.ClearAllTabStops()
	}
}

// ClipboardLoad answers an OSC 52 read by asking the listener for the
// clipboard contents and, if it responds, replying with the encoded OSC 52
// sequence built by go-osc52.
func (t *Terminal) ClipboardLoad(clipboard byte, terminator string) {
	selection := string(clipboard)
	t.listener.ClipboardLoad(selection, func(data []byte) {
		seq := osc52.New(string(data)).Clipboard(osc52.Clipboard(clipboard))
		t.listener.PtyWrite(seq.Bytes())
	})
}

// ClipboardStore delivers an OSC 52 write to the listener.
func (t *Terminal) ClipboardStore(clipboard byte, data []byte) {
	t.listener.ClipboardStore(string(clipboard), data)
}

// ConfigureCharset designates charset for one of the four G0-G3 slots.
func (t *Terminal) ConfigureCharset(index ansicode.CharsetIndex, charset ansicode.Charset) {
	idx := CharsetIndex(index)
	if idx >= CharsetIndexG0 && idx <= CharsetIndexG3 {
		t.charsets[idx] = Charset(charset)
	}
}

// Decaln fills the screen with 'E' (DEC screen alignment test).
func (t *Terminal) Decaln() {
	t.activeGrid().FillWithE()
	t.markWakeup()
}

// DeleteChars removes n cells at the cursor, shifting the row tail left.
func (t *Terminal) DeleteChars(n int) {
	g := t.activeGrid()
	g.DeleteChars(int(g.Cursor().Point.Line), int(g.Cursor().Point.Column), n)
	t.markWakeup()
}

// DeleteLines removes n lines at the cursor within the scroll region.
func (t *Terminal) DeleteLines(n int) {
	g := t.activeGrid()
	row := int(g.Cursor().Point.Line)
	top, bottom := g.ScrollRegion()
	if row >= top && row < bottom {
		g.DeleteLines(row, n)
		t.markWakeup()
	}
}

// DeviceStatus answers a DSR query: ready (n=5) or cursor position (n=6).
func (t *Terminal) DeviceStatus(n int) {
	g := t.activeGrid()
	switch n {
	case 5:
		t.listener.PtyWrite([]byte("\x1b[0n"))
	case 6:
		p := g.Cursor().Point
		t.listener.PtyWrite([]byte(fmt.Sprintf("\x1b[%d;%dR", int(p.Line)+1, int(p.Column)+1)))
	}
}

// EraseChars clears n cells at the cursor without shifting, per ECH.
func (t *Terminal) EraseChars(n int) {
	g := t.activeGrid()
	p := g.Cursor().Point
	g.EraseChars(int(p.Line), int(p.Column), n)
	t.markWakeup()
}

// Goto moves the cursor to (row, col), honouring origin mode.
func (t *Terminal) Goto(row, col int) {
	t.activeGrid().MoveTo(row, col, t.mode.Has(ModeOrigin))
	t.markWakeup()
}

// GotoCol moves the cursor to col, keeping the current row.
func (t *Terminal) GotoCol(col int) {
	g := t.activeGrid()
	g.MoveTo(int(g.Cursor().Point.Line), col, false)
	t.markWakeup()
}

// GotoLine moves the cursor to row, honouring origin mode.
func (t *Terminal) GotoLine(row int) {
	g := t.activeGrid()
	g.MoveTo(row, int(g.Cursor().Point.Column), t.mode.Has(ModeOrigin))
	t.markWakeup()
}

// HorizontalTabSet sets a tab stop at the cursor column.
func (t *Terminal) HorizontalTabSet() {
	g := t.activeGrid()
	g.SetTabStop(int(g.Cursor().Point.Column))
}

// IdentifyTerminal answers a DA (primary) or DA2 (secondary) query.
func (t *Terminal) IdentifyTerminal(b byte) {
	if b == '>' {
		t.listener.PtyWrite([]byte("\x1b[>0;1;0c"))
		return
	}
	t.listener.PtyWrite([]byte("\x1b[?1;2c"))
}

// Input writes r at the cursor: charset translation, width computation,
// insert-mode shifting, auto-resize growth, and wrapping all happen here
// before the actual cell write is delegated to Grid.PutChar.
func (t *Terminal) Input(r rune) {
	g := t.activeGrid()

	if t.activeCharset >= int(CharsetIndexG0) && t.activeCharset <= int(CharsetIndexG3) {
		r = translateCharset(t.charsets[t.activeCharset], r)
	}

	width := runeWidth(r)
	if width == 2 && g.Cols() < 2 {
		width = 1
	}

	if width == 0 {
		if !isCombiningMark(r) {
			return
		}
		g.PutChar(r, 0, true)
		t.markWakeup()
		return
	}

	col := int(g.Cursor().Point.Column)
	if t.autoResize && !g.Cursor().pendingWrap && col+width > g.Cols() {
		// Write already holds fairMu, so resize the grids directly rather
		// than through Terminal.Resize, which takes the lock itself.
		rows, cols := g.Rows(), col+width
		t.primary.Resize(rows, cols)
		resizeWithoutReflow(t.alternate, rows, cols)
		g = t.activeGrid()
	}

	if t.mode.Has(ModeInsert) {
		p := g.Cursor().Point
		g.InsertBlank(int(p.Line), int(p.Column), width)
	}

	g.PutChar(r, width, t.mode.Has(ModeAutoWrap))
	t.markWakeup()
}

// InsertBlank inserts n blank cells at the cursor, shifting the row right.
func (t *Terminal) InsertBlank(n int) {
	g := t.activeGrid()
	p := g.Cursor().Point
	g.InsertBlank(int(p.Line), int(p.Column), n)
	t.markWakeup()
}

// InsertBlankLines inserts n blank lines at the cursor within the scroll
// region, shifting the remainder down.
func (t *Terminal) InsertBlankLines(n int) {
	g := t.activeGrid()
	row := int(g.Cursor().Point.Line)
	top, bottom := g.ScrollRegion()
	if row >= top && row < bottom {
		g.InsertLines(row, n)
		t.markWakeup()
	}
}

// LineFeed moves the cursor down one row, applying LNM's carriage-return
// side effect if set, and scrolling the region when already at the bottom.
func (t *Terminal) LineFeed() {
	g := t.activeGrid()
	if t.mode.Has(ModeLineFeedNewLine) {
		g.CarriageReturn()
	}
	g.LineFeed()
	t.markWakeup()
}

// MoveBackward moves the cursor left n columns.
func (t *Terminal) MoveBackward(n int) {
	t.activeGrid().MoveBackward(n)
	t.markWakeup()
}

// MoveBackwardTabs moves the cursor left across n tab stops.
func (t *Terminal) MoveBackwardTabs(n int) {
	g := t.activeGrid()
	for i := 0; i < n; i++ {
		g.BackTab()
	}
	t.markWakeup()
}

// MoveDown moves the cursor down n rows, clamped to the viewport.
func (t *Terminal) MoveDown(n int) {
	t.activeGrid().MoveDown(n)
	t.markWakeup()
}

// MoveDownCr moves the cursor down n rows and to column 0.
func (t *Terminal) MoveDownCr(n int) {
	g := t.activeGrid()
	g.MoveDown(n)
	g.CarriageReturn()
	t.markWakeup()
}

// MoveForward moves the cursor right n columns.
func (t *Terminal) MoveForward(n int) {
	t.activeGrid().MoveForward(n)
	t.markWakeup()
}

// MoveForwardTabs moves the cursor right across n tab stops.
func (t *Terminal) MoveForwardTabs(n int) {
	g := t.activeGrid()
	for i := 0; i < n; i++ {
		g.HorizontalTab()
	}
	t.markWakeup()
}

// MoveUp moves the cursor up n rows, clamped to the viewport.
func (t *Terminal) MoveUp(n int) {
	t.activeGrid().MoveUp(n)
	t.markWakeup()
}

// MoveUpCr moves the cursor up n rows and to column 0.
func (t *Terminal) MoveUpCr(n int) {
	g := t.activeGrid()
	g.MoveUp(n)
	g.CarriageReturn()
	t.markWakeup()
}

// PopKeyboardMode removes n entries from the active keyboard-mode stack.
func (t *Terminal) PopKeyboardMode(n int) {
	stack := t.activeKeyboardModes()
	for i := 0; i < n && len(*stack) > 0; i++ {
		*stack = (*stack)[:len(*stack)-1]
	}
}

// PopTitle restores the previously pushed title, or resets it if the stack
// is empty.
func (t *Terminal) PopTitle() {
	if len(t.titleStack) > 0 {
		t.title = t.titleStack[len(t.titleStack)-1]
		t.titleStack = t.titleStack[:len(t.titleStack)-1]
		t.listener.Title(t.title)
	} else {
		t.title = ""
		t.listener.ResetTitle()
	}
}

// PrivacyMessageReceived forwards a PM sequence to the configured provider.
func (t *Terminal) PrivacyMessageReceived(data []byte) {
	t.pmProvider.Receive(data)
}

// PushKeyboardMode pushes mode onto the active keyboard-mode stack.
func (t *Terminal) PushKeyboardMode(mode ansicode.KeyboardMode) {
	stack := t.activeKeyboardModes()
	*stack = append(*stack, mode)
}

// PushTitle saves the current title onto the title stack.
func (t *Terminal) PushTitle() {
	t.titleStack = append(t.titleStack, t.title)
}

// ReportKeyboardMode replies with the top of the active keyboard-mode stack.
func (t *Terminal) ReportKeyboardMode() {
	stack := *t.activeKeyboardModes()
	var mode ansicode.KeyboardMode
	if len(stack) > 0 {
		mode = stack[len(stack)-1]
	}
	t.listener.PtyWrite([]byte(fmt.Sprintf("\x1b[?%du", mode)))
}

// ReportModifyOtherKeys replies with the current modifyOtherKeys setting.
func (t *Terminal) ReportModifyOtherKeys() {
	t.listener.PtyWrite([]byte(fmt.Sprintf("\x1b[>4;%dm", t.modifyOtherKeys)))
}

// ResetColor restores palette slot i to its startup default (OSC 104/110/
// 111/112 with an index).
func (t *Terminal) ResetColor(i int) {
	t.palette.ResetSlot(i)
	t.markWakeup()
}

// ResetState implements RIS: clears both grids, resets cursor, attributes,
// modes, charsets, and keyboard mode stacks to their startup defaults.
func (t *Terminal) ResetState() {
	t.primary.EraseDisplay(EraseAll)
	t.alternate.EraseDisplay(EraseAll)

	for _, g := range []*Grid{t.primary, t.alternate} {
		*g.Cursor() = *NewCursor()
		g.template = NewCellTemplate()
		g.SetScrollRegion(0, g.Rows())
		g.savedCursor = nil
	}

	t.mode = ModeAutoWrap | ModeShowCursor
	t.cache.store(t.mode)
	t.charsets = [4]Charset{}
	t.activeCharset = 0
	t.keyboardModes = nil
	t.altKeyboardModes = nil
	t.title = ""
	t.titleStack = nil
	t.activeIsAlt = false
	t.markWakeup()
}

// RestoreCursorPosition implements DECRC: restores the cursor, attribute
// template, origin mode, and charset state saved by DECSC.
func (t *Terminal) RestoreCursorPosition() {
	g := t.activeGrid()
	if saved := g.RestoreCursor(); saved != nil {
		t.setMode(ModeOrigin, saved.OriginMode)
		t.activeCharset = saved.ActiveCharset
		t.charsets = saved.Charsets
	}
	t.markWakeup()
}

// ReverseIndex moves the cursor up one line, scrolling the region down if
// already at the top margin.
func (t *Terminal) ReverseIndex() {
	t.activeGrid().ReverseIndex()
	t.markWakeup()
}

// SaveCursorPosition implements DECSC: stashes the cursor, attribute
// template, origin mode, and charset state for a later DECRC.
func (t *Terminal) SaveCursorPosition() {
	t.activeGrid().SaveCursor(t.mode.Has(ModeOrigin), t.activeCharset, t.charsets)
}

// ScrollDown shifts the scroll region down by n rows.
func (t *Terminal) ScrollDown(n int) {
	t.activeGrid().ScrollDown(n)
	t.markWakeup()
}

// ScrollUp shifts the scroll region up by n rows.
func (t *Terminal) ScrollUp(n int) {
	t.activeGrid().ScrollUp(n)
	t.markWakeup()
}

// SetActiveCharset selects which of G0-G3 is active (invoked for SI/SO and
// single shifts already resolved by the parser).
func (t *Terminal) SetActiveCharset(n int) {
	if n >= int(CharsetIndexG0) && n <= int(CharsetIndexG3) {
		t.activeCharset = n
	}
}

// SetColor assigns an explicit RGB colour to a palette slot (OSC 4, and OSC
// 10/11/12 where the library maps their semantic targets onto the same
// 256/257/258 slot numbers this terminal's [Palette] already reserves).
func (t *Terminal) SetColor(index int, c color.Color) {
	t.palette.Set(index, toRGB(c))
	t.markWakeup()
}

// SetCursorStyle changes the cursor's rendering style.
func (t *Terminal) SetCursorStyle(style ansicode.CursorStyle) {
	g := t.activeGrid()
	newStyle := CursorStyle(style)
	oldBlinking := isBlinkingStyle(g.Cursor().Style)
	g.Cursor().Style = newStyle
	if blinking := isBlinkingStyle(newStyle); blinking != oldBlinking {
		t.listener.CursorBlinkingChange(blinking)
	}
	t.markWakeup()
}

func isBlinkingStyle(s CursorStyle) bool {
	switch s {
	case CursorStyleBlinkingBlock, CursorStyleBlinkingUnderline, CursorStyleBlinkingBar:
		return true
	default:
		return false
	}
}

// SetDynamicColor answers an OSC 10/11/12 colour query with the palette's
// current value for the corresponding slot.
func (t *Terminal) SetDynamicColor(prefix string, index int, terminator string) {
	rgb := t.palette.Get(index)
	response := fmt.Sprintf("\x1b]%s;rgb:%02x/%02x/%02x%s", prefix, rgb.R, rgb.G, rgb.B, terminator)
	t.listener.PtyWrite([]byte(response))
}

// SetHyperlink attaches hyperlink to the attribute template so subsequent
// put_char calls inherit it through the cell's extras; pass nil to clear it.
func (t *Terminal) SetHyperlink(hyperlink *ansicode.Hyperlink) {
	tmpl := t.activeGrid().Template()
	if hyperlink == nil {
		tmpl.SetHyperlink(nil)
		return
	}
	tmpl.SetHyperlink(&Hyperlink{ID: hyperlink.ID, URI: hyperlink.URI})
}

// SetKeyboardMode modifies the top of the active keyboard-mode stack per
// the Kitty keyboard protocol's replace/union/difference semantics.
func (t *Terminal) SetKeyboardMode(mode ansicode.KeyboardMode, behavior ansicode.KeyboardModeBehavior) {
	stack := t.activeKeyboardModes()
	current := ansicode.KeyboardModeNoMode
	if len(*stack) > 0 {
		current = (*stack)[len(*stack)-1]
	}

	var next ansicode.KeyboardMode
	switch behavior {
	case ansicode.KeyboardModeBehaviorReplace:
		next = mode
	case ansicode.KeyboardModeBehaviorUnion:
		next = current | mode
	case ansicode.KeyboardModeBehaviorDifference:
		next = current &^ mode
	}

	if len(*stack) > 0 {
		(*stack)[len(*stack)-1] = next
	} else {
		*stack = append(*stack, next)
	}
}

// SetKeypadApplicationMode enables DECPAM application keypad mode.
func (t *Terminal) SetKeypadApplicationMode() {
	t.setMode(ModeKeypadApplication, true)
}

// activeKeyboardModes returns a pointer to whichever keyboard-mode stack
// belongs to the currently active screen, so the Kitty protocol stack
// swaps along with the alternate-screen swap like the rest of cursor state.
func (t *Terminal) activeKeyboardModes() *[]ansicode.KeyboardMode {
	if t.activeIsAlt {
		return &t.altKeyboardModes
	}
	return &t.keyboardModes
}

// setMode sets or clears bits in the terminal's mode bitset.
func (t *Terminal) setMode(bits TerminalMode, set bool) {
	if set {
		t.mode = t.mode.Set(bits)
	} else {
		t.mode = t.mode.Clear(bits)
	}
}

// SetMode enables a DEC private or ANSI mode, applying any side effects
// (origin-mode cursor homing, cursor visibility, the alternate-screen
// swap). Mode numbers this library's ansicode.TerminalMode enum doesn't
// name are dropped upstream in the parser and never reach this method;
// enum values setModeFromWire has no case for are logged at Debug and
// otherwise ignored, so malformed or unsupported input never panics or
// corrupts state.
func (t *Terminal) SetMode(mode ansicode.TerminalMode) {
	t.setModeFromWire(mode, true)
}

// UnsetMode disables a DEC private or ANSI mode, reversing SetMode's side
// effects where applicable (restoring the primary screen on 1049 reset).
func (t *Terminal) UnsetMode(mode ansicode.TerminalMode) {
	t.setModeFromWire(mode, false)
}

func (t *Terminal) setModeFromWire(mode ansicode.TerminalMode, set bool) {
	g := t.activeGrid()

	switch mode {
	case ansicode.TerminalModeCursorKeys:
		t.setMode(ModeCursorKeys, set)
	case ansicode.TerminalModeColumnMode:
		t.setMode(ModeColumn132, set)
	case ansicode.TerminalModeInsert:
		t.setMode(ModeInsert, set)
	case ansicode.TerminalModeOrigin:
		t.setMode(ModeOrigin, set)
		if set {
			top, _ := g.ScrollRegion()
			g.MoveTo(top, 0, false)
		}
	case ansicode.TerminalModeLineWrap:
		t.setMode(ModeAutoWrap, set)
	case ansicode.TerminalModeBlinkingCursor:
		t.setMode(ModeBlinkingCursor, set)
	case ansicode.TerminalModeLineFeedNewLine:
		t.setMode(ModeLineFeedNewLine, set)
	case ansicode.TerminalModeShowCursor:
		t.setMode(ModeShowCursor, set)
		g.Cursor().Visible = set
	case ansicode.TerminalModeReportMouseClicks:
		t.setMode(ModeMouseClick, set)
		t.listener.MouseCursorDirty()
	case ansicode.TerminalModeReportCellMouseMotion:
		t.setMode(ModeMouseDrag, set)
		t.listener.MouseCursorDirty()
	case ansicode.TerminalModeReportAllMouseMotion:
		t.setMode(ModeMouseMotion, set)
		t.listener.MouseCursorDirty()
	case ansicode.TerminalModeReportFocusInOut:
		t.setMode(ModeFocusEvents, set)
	case ansicode.TerminalModeUTF8Mouse:
		t.setMode(ModeMouseUTF8, set)
	case ansicode.TerminalModeSGRMouse:
		t.setMode(ModeMouseSGR, set)
	case ansicode.TerminalModeAlternateScroll:
		t.setMode(ModeAlternateScroll, set)
	case ansicode.TerminalModeUrgencyHints:
		t.setMode(ModeUrgencyHints, set)
	case ansicode.TerminalModeSwapScreenAndSetRestoreCursor:
		t.swapAlternateScreen(set)
	case ansicode.TerminalModeBracketedPaste:
		t.setMode(ModeBracketedPaste, set)
	default:
		t.logger.Debug("vtcore: ignoring unrecognised terminal mode")
	}

	t.cache.store(t.mode)
	t.markWakeup()
}

// SaveMode implements CSI ? Pm s (XTSAVE): push the current set/unset state
// of each mode number in nums onto that mode's own stack in t.xtSave. go-
// ansicode's Handler interface has no dedicated hook for this sequence - its
// TerminalMode enum only carries the modes it dispatches through SetMode/
// UnsetMode, and 's'/'r' aren't SM/RM final bytes it recognises at all - so
// this is reachable only as a direct API call rather than from Write's
// decode loop. Mode numbers this package doesn't track (see
// [modeNumberBits]) are ignored.
func (t *Terminal) SaveMode(nums []int) {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	for _, n := range nums {
		if bit, ok := modeNumberBits[n]; ok {
			t.xtSave.save(n, t.mode.Has(bit))
		}
	}
}

// RestoreMode implements CSI ? Pm r (XTRESTORE): pop each mode number in
// nums from its xtSave stack and apply the saved set/unset state. A mode
// number with nothing saved, or one this package doesn't track, is left
// untouched. See [Terminal.SaveMode] for why this isn't wired to the
// decoder.
func (t *Terminal) RestoreMode(nums []int) {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	for _, n := range nums {
		bit, known := modeNumberBits[n]
		if !known {
			continue
		}
		set, ok := t.xtSave.restore(n)
		if !ok {
			continue
		}
		t.setMode(bit, set)
	}
	t.cache.store(t.mode)
	t.markWakeup()
}

// swapAlternateScreen implements CSI ? 1049 h/l: save the cursor and switch
// to the alternate grid (clearing it), or restore the primary grid and its
// saved cursor. The Kitty keyboard-mode stack swaps along with the screen,
// matching real terminals that scope progressive enhancement to the screen
// it was pushed on.
func (t *Terminal) swapAlternateScreen(enter bool) {
	if enter == t.activeIsAlt {
		return
	}

	if enter {
		t.primary.SaveCursor(t.mode.Has(ModeOrigin), t.activeCharset, t.charsets)
		t.activeIsAlt = true
		t.alternate.EraseDisplay(EraseAll)
		t.alternate.Cursor().Visible = t.mode.Has(ModeShowCursor)
	} else {
		t.activeIsAlt = false
		if saved := t.primary.RestoreCursor(); saved != nil {
			t.activeCharset = saved.ActiveCharset
			t.charsets = saved.Charsets
		}
		t.primary.Cursor().Visible = t.mode.Has(ModeShowCursor)
	}
	t.setMode(ModeAltScreen1049, enter)
	t.listener.MouseCursorDirty()
}

// SetModifyOtherKeys sets how modifier keys are reported for otherwise
// unmodified key input (xterm's modifyOtherKeys resource).
func (t *Terminal) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys) {
	t.modifyOtherKeys = modify
}

// SetScrollingRegion sets the scroll region (1-based inclusive on the wire,
// converted to 0-based exclusive internally) and homes the cursor.
func (t *Terminal) SetScrollingRegion(top, bottom int) {
	g := t.activeGrid()
	g.SetScrollRegion(top-1, bottom)
	if t.mode.Has(ModeOrigin) {
		newTop, _ := g.ScrollRegion()
		g.MoveTo(newTop, 0, false)
	} else {
		g.MoveTo(0, 0, false)
	}
	t.markWakeup()
}

// StartOfStringReceived forwards an SOS sequence to the configured provider.
func (t *Terminal) StartOfStringReceived(data []byte) {
	t.sosProvider.Receive(data)
}

// SetTerminalCharAttribute applies one SGR parameter to the attribute
// template; subsequent put_char calls copy the template into new cells.
func (t *Terminal) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	tmpl := t.activeGrid().Template()

	switch attr.Attr {
	case ansicode.CharAttributeReset:
		*tmpl = NewCellTemplate()

	case ansicode.CharAttributeBold:
		tmpl.SetFlag(CellFlagBold)
	case ansicode.CharAttributeDim:
		tmpl.SetFlag(CellFlagDim)
	case ansicode.CharAttributeItalic:
		tmpl.SetFlag(CellFlagItalic)

	case ansicode.CharAttributeUnderline:
		tmpl.ClearFlag(underlineStyleMask)
		tmpl.SetFlag(CellFlagUnderline)
	case ansicode.CharAttributeDoubleUnderline:
		tmpl.ClearFlag(underlineStyleMask)
		tmpl.SetFlag(CellFlagUnderlineDouble)
	case ansicode.CharAttributeCurlyUnderline:
		tmpl.ClearFlag(underlineStyleMask)
		tmpl.SetFlag(CellFlagUnderlineCurly)
	case ansicode.CharAttributeDottedUnderline:
		tmpl.ClearFlag(underlineStyleMask)
		tmpl.SetFlag(CellFlagUnderlineDotted)
	case ansicode.CharAttributeDashedUnderline:
		tmpl.ClearFlag(underlineStyleMask)
		tmpl.SetFlag(CellFlagUnderlineDashed)

	case ansicode.CharAttributeBlinkSlow, ansicode.CharAttributeBlinkFast:
		tmpl.SetFlag(CellFlagBlink)
	case ansicode.CharAttributeReverse:
		tmpl.SetFlag(CellFlagInverse)
	case ansicode.CharAttributeHidden:
		tmpl.SetFlag(CellFlagHidden)
	case ansicode.CharAttributeStrike:
		tmpl.SetFlag(CellFlagStrikethrough)

	case ansicode.CharAttributeCancelBold:
		tmpl.ClearFlag(CellFlagBold)
	case ansicode.CharAttributeCancelBoldDim:
		tmpl.ClearFlag(CellFlagBold | CellFlagDim)
	case ansicode.CharAttributeCancelItalic:
		tmpl.ClearFlag(CellFlagItalic)
	case ansicode.CharAttributeCancelUnderline:
		tmpl.ClearFlag(underlineStyleMask)
	case ansicode.CharAttributeCancelBlink:
		tmpl.ClearFlag(CellFlagBlink)
	case ansicode.CharAttributeCancelReverse:
		tmpl.ClearFlag(CellFlagInverse)
	case ansicode.CharAttributeCancelHidden:
		tmpl.ClearFlag(CellFlagHidden)
	case ansicode.CharAttributeCancelStrike:
		tmpl.ClearFlag(CellFlagStrikethrough)

	case ansicode.CharAttributeForeground:
		tmpl.Fg = t.resolveColorRef(attr)
	case ansicode.CharAttributeBackground:
		tmpl.Bg = t.resolveColorRef(attr)

	case ansicode.CharAttributeUnderlineColor:
		if attr.RGBColor == nil && attr.IndexedColor == nil && attr.NamedColor == nil {
			tmpl.ClearUnderlineColor()
		} else {
			tmpl.SetUnderlineColor(t.resolveColorRef(attr))
		}
	}
}

// resolveColorRef converts an ansicode colour attribute into an unresolved
// ColorRef, defaulting to ColorDefault when none of the three colour
// variants is present (SGR 39/49 "reset to default").
func (t *Terminal) resolveColorRef(attr ansicode.TerminalCharAttribute) ColorRef {
	switch {
	case attr.RGBColor != nil:
		return NewSpecColor(attr.RGBColor.R, attr.RGBColor.G, attr.RGBColor.B)
	case attr.IndexedColor != nil:
		return NewIndexedColor(uint8(attr.IndexedColor.Index))
	case attr.NamedColor != nil:
		return NewNamedColor(uint16(*attr.NamedColor))
	default:
		return DefaultColor
	}
}

// toRGB extracts an 8-bit-per-channel RGB triple from a standard library
// color.Color, discarding alpha - every palette slot is fully opaque.
func toRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// SetTitle updates the window title and notifies the listener.
func (t *Terminal) SetTitle(title string) {
	t.title = title
	t.listener.Title(title)
}

// Substitute replaces the cell at the cursor with '?', per SUB.
func (t *Terminal) Substitute() {
	g := t.activeGrid()
	if c := g.Cell(g.Cursor().Point); c != nil {
		c.Char = '?'
	}
	t.markWakeup()
}

// Tab advances the cursor across n tab stops.
func (t *Terminal) Tab(n int) {
	g := t.activeGrid()
	for i := 0; i < n; i++ {
		g.HorizontalTab()
	}
	t.markWakeup()
}

// TextAreaSizeChars answers a window-manipulation query for the terminal's
// size in character cells (CSI 18 t).
func (t *Terminal) TextAreaSizeChars() {
	g := t.activeGrid()
	t.listener.PtyWrite([]byte(fmt.Sprintf("\x1b[8;%d;%dt", g.Rows(), g.Cols())))
}

// TextAreaSizePixels answers a window-manipulation query for the terminal's
// size in pixels (CSI 14 t), assuming a 10x20 pixel cell - actual glyph
// metrics are the font-shaping collaborator's responsibility, not this
// core's.
func (t *Terminal) TextAreaSizePixels() {
	g := t.activeGrid()
	t.listener.PtyWrite([]byte(fmt.Sprintf("\x1b[4;%d;%dt", g.Rows()*20, g.Cols()*10)))
}

// UnsetKeypadApplicationMode disables DECPAM, returning to numeric keypad
// mode.
func (t *Terminal) UnsetKeypadApplicationMode() {
	t.setMode(ModeKeypadApplication, false)
}

// SetWorkingDirectory records the shell's reported working directory (OSC
// 7); shell integration scripts and prompt markers that produce this
// sequence are an external collaborator's concern, not this core's.
func (t *Terminal) SetWorkingDirectory(uri string) {
	t.workingDir = uri
}

// CellSizePixels answers a window-manipulation query for the cell size in
// pixels (CSI 16 t), using the same placeholder metrics as
// TextAreaSizePixels.
func (t *Terminal) CellSizePixels() {
	t.listener.PtyWrite([]byte("\x1b[6;20;10t"))
}

// SixelReceived is a required ansicode.Handler method; Sixel graphics are
// an explicit non-goal (this core models character cells, not a pixel
// canvas), so incoming Sixel data is simply discarded.
func (t *Terminal) SixelReceived(params [][]uint16, data []byte) {}
