package vtcore

import "sync/atomic"

// TerminalMode is a bitset of the DEC private and ANSI modes the terminal
// tracks. Bit positions are our own layout, not wire values — SetMode/
// UnsetMode translate CSI mode numbers into these bits at the handler
// layer.
type TerminalMode uint64

const (
	ModeCursorKeys TerminalMode = 1 << iota // DECCKM (1)
	ModeColumn132                           // DECCOLM (3) - tracked, not acted on
	ModeOrigin                              // DECOM (6)
	ModeAutoWrap                            // DECAWM (7)
	ModeAutoRepeat                          // DECARM (8), informational
	ModeInterlace                           // DECINLM (9) - legacy, informational
	ModeShowCursor                          // DECTCEM (25)
	ModeReverseVideo                        // DECSCNM (5)
	ModeAltScreen47                         // 47 - alt screen, no cursor save
	ModeAltScreen1047                       // 1047 - alt screen, clear on leave
	ModeAltScreen1049                       // 1049 - alt screen with cursor save
	ModeMouseX10                            // 9
	ModeMouseClick                          // 1000
	ModeMouseDrag                           // 1002
	ModeMouseMotion                         // 1003
	ModeFocusEvents                         // 1004
	ModeMouseUTF8                           // 1005
	ModeMouseSGR                            // 1006
	ModeMouseURXVT                          // 1015
	ModeAlternateScroll                     // 1007
	ModeSaveRestoreCursorAlt                // 1048
	ModeBracketedPaste                      // 2004
	ModeSyncUpdate                          // 2026
	ModeKeypadApplication
	ModeInsert             // IRM (4), ANSI (no ? prefix)
	ModeLineFeedNewLine    // LNM (20), ANSI (no ? prefix)
	ModeUrgencyHints       // 1042 - informational, no windowing system to notify
	ModeBlinkingCursor     // 12 - cursor blink enabled
)

// modeNumberBits maps a DEC private or ANSI mode's wire number (the
// parameter a CSI ? Pm h/l or CSI Pm h/l carries) to the internal bit this
// package tracks it under. It exists for XTSAVE/XTRESTORE (CSI ? Pm s / r),
// which address modes by raw number rather than through go-ansicode's
// TerminalMode enum - see [Terminal.SaveMode]/[Terminal.RestoreMode].
var modeNumberBits = map[int]TerminalMode{
	1:    ModeCursorKeys,
	3:    ModeColumn132,
	4:    ModeInsert,
	5:    ModeReverseVideo,
	6:    ModeOrigin,
	7:    ModeAutoWrap,
	8:    ModeAutoRepeat,
	9:    ModeMouseX10,
	12:   ModeBlinkingCursor,
	20:   ModeLineFeedNewLine,
	25:   ModeShowCursor,
	47:   ModeAltScreen47,
	1000: ModeMouseClick,
	1002: ModeMouseDrag,
	1003: ModeMouseMotion,
	1004: ModeFocusEvents,
	1005: ModeMouseUTF8,
	1006: ModeMouseSGR,
	1007: ModeAlternateScroll,
	1015: ModeMouseURXVT,
	1042: ModeUrgencyHints,
	1047: ModeAltScreen1047,
	1048: ModeSaveRestoreCursorAlt,
	1049: ModeAltScreen1049,
	2004: ModeBracketedPaste,
	2026: ModeSyncUpdate,
}

// mutuallyExclusive lists mode groups where setting one clears the others
// in the same group, matching real terminal mouse-reporting and
// mouse-encoding semantics: 1000/1002/1003 are mutually exclusive, as are
// 1005/1006/1015.
var mutuallyExclusive = []TerminalMode{
	ModeMouseClick | ModeMouseDrag | ModeMouseMotion,
	ModeMouseUTF8 | ModeMouseSGR | ModeMouseURXVT,
}

// Set enables every bit in bits, clearing any other bit in the same
// mutually-exclusive group.
func (m TerminalMode) Set(bits TerminalMode) TerminalMode {
	m |= bits
	for _, group := range mutuallyExclusive {
		if bits&group != 0 {
			m &^= group &^ bits
		}
	}
	return m
}

// Clear disables every bit in bits.
func (m TerminalMode) Clear(bits TerminalMode) TerminalMode {
	return m &^ bits
}

// Has reports whether every bit in bits is set.
func (m TerminalMode) Has(bits TerminalMode) bool {
	return m&bits == bits
}

// modeCache publishes the terminal's mode bitset for lock-free reads from
// the renderer thread (e.g. deciding whether to forward a mouse event)
// without contending with the PTY-reader thread's FairMutex. Updated
// atomically at the end of each parse chunk.
type modeCache struct {
	bits atomic.Uint64
}

func (c *modeCache) store(m TerminalMode) {
	c.bits.Store(uint64(m))
}

func (c *modeCache) load() TerminalMode {
	return TerminalMode(c.bits.Load())
}

// xtSaveTable holds per-mode XTSAVE/XTRESTORE state, keyed by the DEC
// private mode's public CSI number. Each mode gets its own stack so nested
// save/restore pairs (an application pushing a mode, calling into a
// sub-routine that pushes it again, then two matching restores) unwind in
// the right order rather than clobbering a single saved value.
type xtSaveTable struct {
	slots map[int][]bool
}

func newXTSaveTable() *xtSaveTable {
	return &xtSaveTable{slots: make(map[int][]bool)}
}

// save pushes set onto modeNum's stack, per CSI ? Pm s.
func (t *xtSaveTable) save(modeNum int, set bool) {
	t.slots[modeNum] = append(t.slots[modeNum], set)
}

// restore pops and returns the most recently saved value for modeNum, per
// CSI ? Pm r. ok is false if nothing was ever saved for modeNum.
func (t *xtSaveTable) restore(modeNum int) (set bool, ok bool) {
	stack := t.slots[modeNum]
	if len(stack) == 0 {
		return false, false
	}
	set = stack[len(stack)-1]
	t.slots[modeNum] = stack[:len(stack)-1]
	return set, true
}
