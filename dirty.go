package vtcore

// DirtyTracker records which viewport rows have changed since the last
// drain, used by the renderer to redraw only what moved. An allDirty
// shortcut avoids allocating or scanning a full bit per row on operations
// that touch the whole viewport (resize, erase_display All, alt-screen
// swap) — every renderable row is treated as dirty until the next drain
// regardless of the per-row bits.
type DirtyTracker struct {
	rows      []bool
	allDirty  bool
}

// NewDirtyTracker returns a tracker for a viewport of the given row count,
// initially fully dirty (a fresh grid has nothing rendered yet).
func NewDirtyTracker(rows int) *DirtyTracker {
	return &DirtyTracker{rows: make([]bool, rows), allDirty: true}
}

// MarkRow marks row dirty. Out-of-range rows are ignored.
func (d *DirtyTracker) MarkRow(row int) {
	if row < 0 || row >= len(d.rows) {
		return
	}
	d.rows[row] = true
}

// MarkAll marks every row dirty via the allDirty shortcut, without touching
// the per-row slice.
func (d *DirtyTracker) MarkAll() {
	d.allDirty = true
}

// IsDirty reports whether row has changed since the last drain.
func (d *DirtyTracker) IsDirty(row int) bool {
	if d.allDirty {
		return true
	}
	if row < 0 || row >= len(d.rows) {
		return false
	}
	return d.rows[row]
}

// Resize adjusts the tracker to a new row count, preserving per-row state
// for rows that still exist and marking the whole tracker dirty (a resize
// always requires a full redraw).
func (d *DirtyTracker) Resize(rows int) {
	fresh := make([]bool, rows)
	copy(fresh, d.rows)
	d.rows = fresh
	d.allDirty = true
}

// Drain returns the sorted list of dirty row indices and an allDirty flag,
// then clears all tracked state. If allDirty is true the returned row list
// is empty and the caller should treat every row as damaged instead of
// relying on the list.
func (d *DirtyTracker) Drain() (damagedRows []int, allDirty bool) {
	allDirty = d.allDirty
	if !allDirty {
		for i, dirty := range d.rows {
			if dirty {
				damagedRows = append(damagedRows, i)
			}
		}
	}
	for i := range d.rows {
		d.rows[i] = false
	}
	d.allDirty = false
	return damagedRows, allDirty
}
