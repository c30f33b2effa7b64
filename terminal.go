package vtcore

import (
	"strings"

	"github.com/danielgatis/go-ansicode"
	"go.uber.org/zap"
)

// Ensure Terminal implements ansicode.Handler.
var _ ansicode.Handler = (*Terminal)(nil)

const (
	// DefaultRows is the default terminal height.
	DefaultRows = 24
	// DefaultCols is the default terminal width.
	DefaultCols = 80
	// defaultScrollbackCapacity is the scrollback ring size used when no
	// explicit [ScrollbackProvider] is supplied via [WithScrollback].
	defaultScrollbackCapacity = 10000
)

// Terminal emulates a VT220/xterm-compatible terminal core: two grids
// (primary with scrollback, alternate without), cursor and attribute
// state, palette, modes, selection, and search - all mutated exclusively
// from PTY-reader-thread calls into [Terminal.Write], and readable from any
// thread via [Terminal.Snapshot] or the locking primitives in
// fairmutex.go. All fields below are guarded by fairMu except where noted.
type Terminal struct {
	fairMu FairMutex

	primary     *Grid
	alternate   *Grid
	activeIsAlt bool

	palette *Palette

	charsets      [4]Charset
	activeCharset int

	mode      TerminalMode
	cache     modeCache
	xtSave    *xtSaveTable

	title      string
	titleStack []string

	workingDir string

	keyboardModes        []ansicode.KeyboardMode
	altKeyboardModes      []ansicode.KeyboardMode
	modifyOtherKeys       ansicode.ModifyOtherKeys

	selection Selection
	search    *SearchState

	scrollbackStorage ScrollbackProvider
	autoResize        bool

	recordingProvider RecordingProvider
	apcProvider       APCProvider
	pmProvider        PMProvider
	sosProvider       SOSProvider

	listener EventListener
	logger   *zap.Logger

	decoder *ansicode.Decoder

	// wakeupPending coalesces Wakeup notifications: at most one is
	// delivered per parse chunk regardless of how many cells changed.
	wakeupPending bool
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions. Values <= 0 fall back to the
// defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return func(t *Terminal) {
		t.primary = NewGrid(rows, cols, t.scrollbackStorage)
		t.alternate = NewGrid(rows, cols, NoopScrollback{})
	}
}

// WithListener sets the [EventListener] notified of bell, title, clipboard,
// and other externally visible events. Defaults to [NoopListener].
func WithListener(l EventListener) Option {
	return func(t *Terminal) {
		if l != nil {
			t.listener = l
		}
	}
}

// WithScrollback sets the storage for scrollback lines. Defaults to a
// [MemoryScrollback] sized to defaultScrollbackCapacity.
func WithScrollback(storage ScrollbackProvider) Option {
	return func(t *Terminal) {
		t.scrollbackStorage = storage
	}
}

// WithAPC sets the handler for Application Program Command sequences.
func WithAPC(p APCProvider) Option {
	return func(t *Terminal) { t.apcProvider = p }
}

// WithPM sets the handler for Privacy Message sequences.
func WithPM(p PMProvider) Option {
	return func(t *Terminal) { t.pmProvider = p }
}

// WithSOS sets the handler for Start of String sequences.
func WithSOS(p SOSProvider) Option {
	return func(t *Terminal) { t.sosProvider = p }
}

// WithAutoResize enables growth mode: when a character printed at the
// cursor would extend past the right margin, both grids are widened to fit
// it instead of the character being wrapped. Growth applies only when no
// wrap is pending, so it is triggered by a double-width character in the
// last column; text that fills a row up to the right margin still wraps.
// Rows are never added: a line feed at the bottom margin still scrolls.
func WithAutoResize() Option {
	return func(t *Terminal) { t.autoResize = true }
}

// WithRecording sets the handler for capturing raw input bytes before ANSI
// parsing, for replay or debugging.
func WithRecording(p RecordingProvider) Option {
	return func(t *Terminal) { t.recordingProvider = p }
}

// New creates a terminal with the given options, defaulting to 24x80 with
// auto-wrap and a visible cursor.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		keyboardModes:     make([]ansicode.KeyboardMode, 0),
		apcProvider:       NoopAPC{},
		pmProvider:        NoopPM{},
		sosProvider:       NoopSOS{},
		recordingProvider: NoopRecording{},
		listener:          NoopListener{},
		logger:            defaultLogger,
		palette:           NewPalette(),
		search:            NewSearchState(),
		xtSave:            newXTSaveTable(),
		mode:              ModeAutoWrap | ModeShowCursor,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.scrollbackStorage == nil {
		t.scrollbackStorage = NewMemoryScrollback(defaultScrollbackCapacity)
	}
	if t.primary == nil {
		t.primary = NewGrid(DefaultRows, DefaultCols, t.scrollbackStorage)
		t.alternate = NewGrid(DefaultRows, DefaultCols, NoopScrollback{})
	}

	t.cache.store(t.mode)
	t.decoder = ansicode.NewDecoder(t)
	return t
}

func (t *Terminal) activeGrid() *Grid {
	if t.activeIsAlt {
		return t.alternate
	}
	return t.primary
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.activeGrid().Rows()
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.activeGrid().Cols()
}

// Cell returns the cell at p in the active grid, or nil if out of range.
func (t *Terminal) Cell(p Point) *Cell {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.activeGrid().Cell(p)
}

// CursorPos returns the cursor's current row and column (0-based).
func (t *Terminal) CursorPos() (row, col int) {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	p := t.activeGrid().Cursor().Point
	return int(p.Line), int(p.Column)
}

// CursorVisible reports whether the cursor is currently visible.
func (t *Terminal) CursorVisible() bool {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.activeGrid().Cursor().Visible
}

// CursorStyle returns the cursor's current rendering style.
func (t *Terminal) CursorStyle() CursorStyle {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.activeGrid().Cursor().Style
}

// Title returns the current window title.
func (t *Terminal) Title() string {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.title
}

// WorkingDirectory returns the current working directory last reported via
// OSC 7, or "" if none has been reported.
func (t *Terminal) WorkingDirectory() string {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.workingDir
}

// WorkingDirectoryPath extracts the filesystem path from the OSC 7 URI,
// discarding the "file://" scheme and hostname component.
func (t *Terminal) WorkingDirectoryPath() string {
	t.fairMu.Lock()
	uri := t.workingDir
	t.fairMu.Unlock()

	const prefix = "file://"
	if len(uri) <= len(prefix) || uri[:len(prefix)] != prefix {
		return ""
	}
	rest := uri[len(prefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:]
	}
	return ""
}

// HasMode reports whether every bit in mode is currently set. Safe to call
// from any thread without blocking on the fair mutex: it reads the atomic
// mode cache rather than locking.
func (t *Terminal) HasMode(mode TerminalMode) bool {
	return t.cache.load().Has(mode)
}

// IsAlternateScreen reports whether the alternate grid is currently active.
func (t *Terminal) IsAlternateScreen() bool {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.activeIsAlt
}

// ScrollRegion returns the active grid's current scroll region.
func (t *Terminal) ScrollRegion() (top, bottom int) {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.activeGrid().ScrollRegion()
}

// Resize changes both grids' dimensions, reflowing the primary grid's
// content (and the alternate grid's, without reflow - full-screen
// applications redraw on SIGWINCH anyway, so preserving its layout isn't
// meaningful). Invalid dimensions are ignored.
func (t *Terminal) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	t.fairMu.Lock()
	defer t.fairMu.Unlock()

	t.primary.Resize(rows, cols)
	resizeWithoutReflow(t.alternate, rows, cols)
}

// resizeWithoutReflow resizes g's viewport in place, truncating or padding
// rows directly, without the scrollback-aware rewrap reflowGrid performs -
// the alt screen has no scrollback and its occupant repaints on resize
// rather than relying on preserved layout.
func resizeWithoutReflow(g *Grid, rows, cols int) {
	newRows := make([]Row, rows)
	for i := range newRows {
		if i < len(g.rows) {
			newRows[i] = g.rows[i]
			newRows[i].Resize(cols)
		} else {
			newRows[i] = NewRow(cols, g.nextStable)
			g.nextStable++
		}
	}
	g.rows = newRows
	g.cols = cols
	g.bottomMargin = rows
	g.topMargin = 0
	g.cursor.Point = g.clampPoint(g.cursor.Point)
	g.dirty.Resize(rows)
	g.dirty.MarkAll()

	newTabStop := make([]bool, cols)
	for i := 0; i < cols; i += 8 {
		newTabStop[i] = true
	}
	g.tabStop = newTabStop
}

// Write parses raw PTY output, applying escape sequences to terminal
// state. Implements io.Writer. Safe to call only from the single
// PTY-reader thread - concurrent calls to Write are not supported.
func (t *Terminal) Write(data []byte) (int, error) {
	t.recordingProvider.Record(data)

	t.fairMu.LockUnfair()
	n, err := t.decoder.Write(data)
	t.cache.store(t.mode)
	shouldWake := t.wakeupPending
	t.wakeupPending = false
	t.fairMu.Unlock()

	if shouldWake {
		t.listener.Wakeup()
	}
	return n, err
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

func (t *Terminal) markWakeup() {
	t.wakeupPending = true
}

// --- Selection ---

// SetSelection replaces the active selection.
func (t *Terminal) SetSelection(sel Selection) {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	t.selection = sel
}

// ClearSelection deactivates the current selection.
func (t *Terminal) ClearSelection() {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	t.selection.Active = false
}

// GetSelection returns a copy of the current selection state.
func (t *Terminal) GetSelection() Selection {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.selection
}

// SelectedText extracts the text under the active selection, joining rows
// with newlines.
func (t *Terminal) SelectedText() string {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()

	if !t.selection.Active || t.selection.IsEmpty() {
		return ""
	}
	start, end := t.selection.ordered()
	grid := t.activeGrid()

	var out []rune
	for line := start.Line; line <= end.Line; line++ {
		row := grid.Row(int(line))
		if row == nil {
			continue
		}
		startCol, endCol := 0, row.Cols()
		if t.selection.Mode == SelectionChar || t.selection.Mode == SelectionWord {
			if line == start.Line {
				startCol = int(start.Column)
			}
			if line == end.Line {
				endCol = int(end.Column) + 1
			}
		} else if t.selection.Mode == SelectionBlock {
			startCol, endCol = int(start.Column), int(end.Column)+1
		}
		cells := row.Cells()
		for c := startCol; c < endCol && c < len(cells); c++ {
			if cells[c].IsWideSpacer() {
				continue
			}
			out = append(out, cells[c].Char)
		}
		if line < end.Line {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// --- Search ---

// allRows implements rowSource over both the scrollback ring and the
// active viewport, oldest first, for [SearchState.Run].
type allRows struct {
	grid *Grid
}

func (a allRows) ForEachRow(fn func(stable StableRowIndex, text string)) {
	n := a.grid.scrollback.Len()
	for i := n - 1; i >= 0; i-- {
		row, ok := a.grid.scrollback.Index(i)
		if !ok {
			continue
		}
		fn(row.StableIndex(), row.String())
	}
	for i := range a.grid.rows {
		fn(a.grid.rows[i].StableIndex(), a.grid.rows[i].String())
	}
}

// Find runs a search query against the active grid's scrollback and
// viewport.
func (t *Terminal) Find(query string, caseSensitive, regex bool) {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	t.search.Query = query
	t.search.CaseSensitive = caseSensitive
	t.search.Regex = regex
	t.search.Run(allRows{grid: t.activeGrid()})
}

// SearchMatches returns the current search's sorted match list.
func (t *Terminal) SearchMatches() []SearchMatch {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.search.Matches()
}

// --- Convenience ---

// LineContent returns row's text content, trimmed of trailing blanks.
func (t *Terminal) LineContent(row int) string {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	r := t.activeGrid().Row(row)
	if r == nil {
		return ""
	}
	return r.String()
}

// String returns the visible screen content as a newline-joined string,
// with trailing empty lines omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()

	grid := t.activeGrid()
	lines := make([]string, grid.Rows())
	lastNonEmpty := -1
	for i := range lines {
		lines[i] = grid.rows[i].String()
		if lines[i] != "" {
			lastNonEmpty = i
		}
	}
	if lastNonEmpty < 0 {
		return ""
	}
	out := lines[0]
	for i := 1; i <= lastNonEmpty; i++ {
		out += "\n" + lines[i]
	}
	return out
}

// Snapshot extracts a [RenderableContent] for the active grid. Safe to call
// from any thread; takes the fair mutex only long enough to copy state, not
// for the duration of rendering.
func (t *Terminal) Snapshot() RenderableContent {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()

	grid := t.activeGrid()
	var sel *Selection
	if t.selection.Active {
		sel = &t.selection
	}
	return Snapshot(grid, t.palette, t.mode, sel, func(line Line) StableRowIndex {
		if r := grid.Row(int(line)); r != nil {
			return r.StableIndex()
		}
		return 0
	})
}

// Palette returns the terminal's colour palette.
func (t *Terminal) Palette() *Palette {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.palette
}

// AutoResize reports whether growth mode is enabled.
func (t *Terminal) AutoResize() bool {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.autoResize
}

// RecordedData returns all raw input bytes captured since the last
// ClearRecording call.
func (t *Terminal) RecordedData() []byte {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.recordingProvider.Data()
}

// ClearRecording discards all captured input data.
func (t *Terminal) ClearRecording() {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	t.recordingProvider.Clear()
}

// ScrollbackLen returns the number of rows stored in the primary grid's
// scrollback.
func (t *Terminal) ScrollbackLen() int {
	t.fairMu.Lock()
	defer t.fairMu.Unlock()
	return t.primary.scrollback.Len()
}
