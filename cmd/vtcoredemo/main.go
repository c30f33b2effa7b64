// Command vtcoredemo drives a vtcore.Terminal the way a real emulator
// frontend would: one goroutine feeding PTY-shaped bytes into the parser
// under the fair mutex's unfair fast path, and a second polling snapshots
// through the fair path without ever touching parser state. It exists to
// exercise the locking discipline spec §5 describes end to end; it is not
// part of the library's public contract.
package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vtcoreio/vtcore"
)

// demoListener prints title changes and counts bells, standing in for a
// frontend's title bar and bell; every other event falls through to the
// embedded NoopListener.
type demoListener struct {
	vtcore.NoopListener
	bells int
}

func (d *demoListener) Bell() { d.bells++ }

func (d *demoListener) Title(title string) {
	fmt.Printf("[title] %s\n", title)
}

func main() {
	listener := &demoListener{}
	term := vtcore.New(
		vtcore.WithSize(vtcore.DefaultRows, vtcore.DefaultCols),
		vtcore.WithListener(listener),
	)

	// A stand-in for bytes arriving from a PTY in bounded chunks, per the
	// ~64 KiB bound spec §5 describes for a single parser.advance call.
	chunks := [][]byte{
		[]byte("\x1b]0;vtcoredemo\x07"),
		[]byte("\x1b[1;32mhello\x1b[0m, world\r\n"),
		[]byte("\x07"),
		[]byte("some more output\r\n"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	// PTY-reader goroutine: owns Write, the only caller allowed to mutate
	// terminal state. Uses LockUnfair internally (see Terminal.Write) so a
	// steady stream of small writes doesn't queue behind the renderer.
	g.Go(func() error {
		defer cancel()
		for _, chunk := range chunks {
			if _, err := term.Write(chunk); err != nil {
				return err
			}
		}
		return nil
	})

	// Renderer goroutine: takes the fair lock only long enough to extract
	// a RenderableContent, then does all "GPU work" (here, a println)
	// without holding it. HasMode is read lock-free via the atomic mode
	// cache, so a hot-path mouse/key decision never blocks on the reader.
	g.Go(func() error {
		ticker := time.NewTicker(5 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				snap := term.Snapshot()
				printFrame(snap)
				return nil
			case <-ticker.C:
				if term.HasMode(vtcore.ModeShowCursor) {
					_ = term.Snapshot()
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		fmt.Println("demo error:", err)
		return
	}

	fmt.Printf("\nbells rung: %d\n", listener.bells)
}

func printFrame(snap vtcore.RenderableContent) {
	fmt.Println("=== frame ===")
	for _, row := range snap.Rows {
		line := make([]rune, 0, len(row))
		for _, cell := range row {
			if cell.Char == 0 {
				line = append(line, ' ')
				continue
			}
			line = append(line, cell.Char)
		}
		fmt.Println(string(line))
	}
	fmt.Printf("cursor: %+v\n", snap.Cursor)
}
