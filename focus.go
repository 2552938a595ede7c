package xlgrid

// Focus tracks the active cell and its coordinate.
//
// The active cell and coordinate are set together, but the layout underneath
// can change afterwards. StateStale reports when they no longer agree.
type Focus struct {
	data *Data
	opts *Options

	activeCell   Cell
	activeCoords RowCol
}

// NewFocus creates a Focus over data. A nil opts uses the defaults.
func NewFocus(data *Data, opts *Options) *Focus {
	if opts == nil {
		opts = defaultOptions()
	}
	return &Focus{data: data, opts: opts, activeCoords: NoCoords}
}

// ActiveCell returns the active cell, or nil.
func (f *Focus) ActiveCell() Cell {
	return f.activeCell
}

// ActiveCoords returns the active coordinate, or NoCoords.
func (f *Focus) ActiveCoords() RowCol {
	return f.activeCoords
}

// GridDisabled reports whether the grid is explicitly disabled, empty, or has
// only disabled cells.
func (f *Focus) GridDisabled() bool {
	if f.opts.disabled {
		return true
	}
	enabled, total := 0, 0
	f.data.Each(func(c Cell) bool {
		total++
		if !c.Disabled() {
			enabled++
			return false
		}
		return true
	})
	return total == 0 || enabled == 0
}

// GridTabIndex is the tab index for the grid container.
func (f *Focus) GridTabIndex() int {
	if f.GridDisabled() || f.opts.focusMode == FocusActiveDescendant {
		return 0
	}
	return -1
}

// CellTabIndex is the tab index for one cell.
func (f *Focus) CellTabIndex(cell Cell) int {
	if f.opts.focusMode != FocusRoving || f.GridDisabled() {
		return -1
	}
	if cell != nil && cell == f.activeCell {
		return 0
	}
	return -1
}

// IsFocusable reports whether cell may become active.
func (f *Focus) IsFocusable(cell Cell) bool {
	return !cell.Disabled() || f.opts.softDisabled
}

// ActiveDescendant returns the active cell's id under activedescendant mode.
func (f *Focus) ActiveDescendant() (string, bool) {
	if f.opts.focusMode != FocusActiveDescendant || f.GridDisabled() || f.activeCell == nil {
		return "", false
	}
	return f.activeCell.ID(), true
}

// StateEmpty reports whether nothing is active.
func (f *Focus) StateEmpty() bool {
	return f.activeCell == nil || f.activeCoords.IsNone()
}

// StateStale reports whether the active cell and coordinate no longer agree
// with the current layout. An empty state counts as stale.
func (f *Focus) StateStale() bool {
	if f.StateEmpty() {
		return true
	}
	if _, ok := f.data.Coords(f.activeCell); !ok {
		return true
	}
	// activeCoords may be any coordinate of a span, not only the primary one.
	return f.data.Cell(f.activeCoords) != f.activeCell
}

// FocusCell makes cell active at its primary coordinate.
func (f *Focus) FocusCell(cell Cell) bool {
	if cell == nil || f.GridDisabled() || !f.IsFocusable(cell) {
		return false
	}
	rc, ok := f.data.Coords(cell)
	if !ok {
		return false
	}
	f.activeCell = cell
	f.activeCoords = rc
	return true
}

// FocusCoords makes the cell covering rc active, remembering rc itself.
func (f *Focus) FocusCoords(rc RowCol) bool {
	if f.GridDisabled() {
		return false
	}
	cell := f.data.Cell(rc)
	if cell == nil || !f.IsFocusable(cell) {
		return false
	}
	if _, ok := f.data.Coords(cell); !ok {
		return false
	}
	f.activeCell = cell
	f.activeCoords = rc
	return true
}

// Clear forgets the active cell.
func (f *Focus) Clear() {
	f.activeCell = nil
	f.activeCoords = NoCoords
}
