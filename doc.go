// Package vtcore provides the core engine of a terminal emulator: a grid of
// cells, a VT/ANSI state machine, and the concurrency fabric that lets a
// parser and a renderer share terminal state without stalling each other.
//
// The package renders nothing and owns no PTY. It consumes a byte stream
// through the [Terminal] type (which implements [ansicode.Handler]) and
// exposes everything a renderer needs through [Terminal.Snapshot], which
// returns a [RenderableContent].
//
// # Quick Start
//
//	term := vtcore.New(vtcore.WithSize(24, 80))
//	term.WriteString("\x1b[1;31mHello\x1b[0m, world!\r\n")
//	content := term.Snapshot()
//	fmt.Println(len(content.Rows))   // 24
//	fmt.Println(term.LineContent(0)) // Hello, world!
//
// # Architecture
//
//   - [Grid]: 2D cell storage, cursor, tab stops, scroll region, scrollback.
//   - [Cell]: one character position, with colour references and flags.
//   - [Terminal]: owns the primary and alternate [Grid], mode bitset,
//     palette, charset state, keyboard mode stack, and implements the VTE
//     handler interface that drives everything above.
//   - [FairMutex]: the two-lock fairness primitive described below.
//   - [RenderableContent]: the owned, lock-free snapshot a renderer reads.
//
// # Dual Grids
//
// Terminal maintains two grids:
//
//   - Primary grid: normal mode, backed by a bounded [MemoryScrollback] ring.
//   - Alternate grid: used by full-screen applications (vim, less, htop);
//     never has scrollback and is always resized without reflow.
//
// Applications switch grids via CSI ?1049h/l. [Terminal.IsAlternateScreen]
// reports which is active.
//
// # Colours
//
// Colours are stored unresolved — a [ColorRef] of kind [ColorNamed],
// [ColorIndexed], or [ColorSpec] (a direct RGB value) — so that a palette change recolours existing content
// without rewriting any cell. Resolution happens once, at snapshot time, via
// the terminal's [Palette].
//
// # Concurrency
//
// A [FairMutex] guards all terminal state. The PTY reader thread holds it
// only while advancing the parser over one bounded chunk of bytes; the
// renderer thread takes it only long enough to call
// [Terminal.Snapshot]. Neither side may hold the lock across I/O.
// [Terminal.HasMode] reads the lock-free atomic mode cache for
// hot-path decisions (mouse encoding, key encoding) that would otherwise
// need the lock.
//
// # Events
//
// Outward-facing notifications (bell, title change, clipboard, PTY writes,
// child exit) are delivered through the [EventListener] interface, supplied
// via [WithListener]. [NoopListener] discards everything and is the default.
//
// # Thread Safety
//
// The accessor and control methods of [Terminal] ([Terminal.Write],
// [Terminal.Snapshot], [Terminal.Resize], [Terminal.LineContent] and the
// like) take the internal [FairMutex] themselves; [Terminal.HasMode] reads
// the atomic mode cache without it. The ansicode.Handler methods (Input,
// SetMode and the rest) take no lock: Write's decoder calls them while
// Write holds it, and calling them directly is not synchronised.
// [Terminal.Write] serves one PTY-reader goroutine at a time. Snapshots
// returned by [Terminal.Snapshot] are independent copies — mutating the
// terminal afterward never changes a previously returned snapshot.
package vtcore
