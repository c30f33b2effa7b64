package vtcore

// EventListener is the terminal's single observation point: every
// externally visible side effect - damage notification, bell, title
// changes, clipboard access, and so on - flows through one interface.
// Embed [NoopListener] to implement only the methods a caller cares about.
type EventListener interface {
	// Wakeup is called whenever the terminal's renderable content has
	// changed and a redraw should be scheduled. Called at most once per
	// parse chunk even if many cells changed - see wakeup coalescing in
	// terminal.go.
	Wakeup()

	// Bell is called on BEL (0x07).
	Bell()

	// Title is called when the window title changes (OSC 0/1/2).
	Title(title string)
	// ResetTitle is called when the title is popped back to empty or
	// explicitly reset.
	ResetTitle()

	// ClipboardStore is called on OSC 52 clipboard writes, selection
	// naming one of "c" (clipboard), "p" (primary), or a custom name.
	ClipboardStore(selection string, data []byte)
	// ClipboardLoad is called on OSC 52 clipboard reads; the listener
	// should call the supplied callback with the clipboard contents (or
	// not call it at all if the read should be ignored).
	ClipboardLoad(selection string, respond func(data []byte))

	// ColorRequest is part of the listener surface, but Terminal does not
	// call it: the colour queries Terminal handles (SetDynamicColor) are
	// answered from its own palette and the reply is sent through PtyWrite.
	ColorRequest(query string, respond func(reply string))

	// PtyWrite is called when the terminal itself needs to write a
	// response back to the PTY (DA, DSR, XTVERSION and similar replies).
	PtyWrite(data []byte)

	// CursorBlinkingChange is called when DECSCUSR toggles the cursor
	// between a blinking and steady style.
	CursorBlinkingChange(blinking bool)

	// MouseCursorDirty is called when a mode change means the mouse
	// pointer shape should be reconsidered (entering/leaving a
	// mouse-reporting mode).
	MouseCursorDirty()

	// ChildExit is called once the PTY's child process has exited,
	// signalling the reader thread should stop. Delivered at most once.
	ChildExit()
}

// NoopListener implements [EventListener] with every method a no-op.
// Embed it in a partial listener to avoid hand-writing stub methods for
// events the caller doesn't care about.
type NoopListener struct{}

func (NoopListener) Wakeup()                                        {}
func (NoopListener) Bell()                                          {}
func (NoopListener) Title(string)                                   {}
func (NoopListener) ResetTitle()                                    {}
func (NoopListener) ClipboardStore(string, []byte)                  {}
func (NoopListener) ClipboardLoad(string, func(data []byte))        {}
func (NoopListener) ColorRequest(string, func(reply string))        {}
func (NoopListener) PtyWrite([]byte)                                {}
func (NoopListener) CursorBlinkingChange(bool)                      {}
func (NoopListener) MouseCursorDirty()                              {}
func (NoopListener) ChildExit()                                     {}

var _ EventListener = NoopListener{}
