// Package xlgrid implements keyboard navigation, focus and selection for
// two-dimensional grids whose cells may span several rows and columns.
//
// A Grid is built over a caller-owned [][]Cell. Rows may differ in length and
// cells may declare row and column spans, as merged ranges do in a
// spreadsheet. The grid never renders anything; it answers which cell is
// active, what tab index each cell should carry, and which cells are
// selected, and it writes selection back through Cell.SetSelected.
//
// Basic usage:
//
//	g := xlgrid.New(rows, xlgrid.WithWrap(xlgrid.WrapContinuous))
//	g.ResetState()         // focus the first focusable cell
//	g.Right()              // move
//	g.RangeSelectDown()    // extend a selection from the active cell
//	g.Undo()               // revert the last selection change
package xlgrid

import "log/slog"

// Grid composes Data, Focus, Navigation and Selection over one cell array.
type Grid struct {
	opts *Options

	data  *Data
	focus *Focus
	nav   *Navigation
	sel   *Selection

	anchor RowCol
}

// New creates a Grid over rows.
func New(rows [][]Cell, opts ...Option) *Grid {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	data := NewData(rows)
	focus := NewFocus(data, o)
	return &Grid{
		opts:   o,
		data:   data,
		focus:  focus,
		nav:    NewNavigation(data, focus, o),
		sel:    NewSelection(data),
		anchor: NoCoords,
	}
}

// Data returns the coordinate layer.
func (g *Grid) Data() *Data { return g.data }

// Focus returns the focus layer.
func (g *Grid) Focus() *Focus { return g.focus }

// Navigation returns the navigation layer.
func (g *Grid) Navigation() *Navigation { return g.nav }

// Selection returns the selection layer.
func (g *Grid) Selection() *Selection { return g.sel }

// SetCells replaces the cell array. Focus is kept as is and may become stale;
// call ResetState to recover.
func (g *Grid) SetCells(rows [][]Cell) {
	g.data.SetCells(rows)
}

// Configure applies options to a live grid.
func (g *Grid) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(g.opts)
	}
}

// FocusMode returns the configured focus mode.
func (g *Grid) FocusMode() FocusMode { return g.opts.focusMode }

// Wraps returns the row and column wrap strategies.
func (g *Grid) Wraps() (row, col Wrap) { return g.opts.rowWrap, g.opts.colWrap }

// ActiveCell returns the active cell, or nil.
func (g *Grid) ActiveCell() Cell { return g.focus.ActiveCell() }

// ActiveCoords returns the active coordinate, or NoCoords.
func (g *Grid) ActiveCoords() RowCol { return g.focus.ActiveCoords() }

// RowIndex is the 1-based row of the active coordinate, 0 when nothing is active.
func (g *Grid) RowIndex() int { return g.focus.ActiveCoords().Row + 1 }

// ColIndex is the 1-based column of the active coordinate, 0 when nothing is active.
func (g *Grid) ColIndex() int { return g.focus.ActiveCoords().Col + 1 }

// SelectionAnchor is the far corner used when extending a range.
func (g *Grid) SelectionAnchor() RowCol { return g.anchor }

// Up moves focus up.
func (g *Grid) Up() bool { return g.moved(g.nav.Advance(Up)) }

// Down moves focus down.
func (g *Grid) Down() bool { return g.moved(g.nav.Advance(Down)) }

// Left moves focus left.
func (g *Grid) Left() bool { return g.moved(g.nav.Advance(Left)) }

// Right moves focus right.
func (g *Grid) Right() bool { return g.moved(g.nav.Advance(Right)) }

// First focuses the first focusable cell in reading order.
func (g *Grid) First() bool { return g.moved(g.nav.First()) }

// Last focuses the last focusable cell in reading order.
func (g *Grid) Last() bool { return g.moved(g.nav.Last()) }

// FirstInRow focuses the first focusable cell of the active row.
func (g *Grid) FirstInRow() bool {
	return g.moved(g.nav.FirstInRow(g.focus.ActiveCoords().Row))
}

// LastInRow focuses the last focusable cell of the active row.
func (g *Grid) LastInRow() bool {
	return g.moved(g.nav.LastInRow(g.focus.ActiveCoords().Row))
}

// GotoCell focuses cell.
func (g *Grid) GotoCell(cell Cell) bool { return g.moved(g.nav.GotoCell(cell)) }

// GotoCoords focuses the cell at rc.
func (g *Grid) GotoCoords(rc RowCol) bool { return g.moved(g.nav.GotoCoords(rc)) }

// moved resets the anchor after a successful focus change.
func (g *Grid) moved(ok bool) bool {
	if ok {
		g.anchor = g.focus.ActiveCoords()
	}
	return ok
}

// SelectRow selects every valid cell in the active row.
func (g *Grid) SelectRow() bool {
	if g.focus.StateEmpty() {
		return false
	}
	row := g.focus.ActiveCoords().Row
	g.sel.Select(RowCol{Row: row, Col: 0}, RowCol{Row: row, Col: g.data.ColCount() - 1})
	return true
}

// SelectCol selects every valid cell in the active column.
func (g *Grid) SelectCol() bool {
	if g.focus.StateEmpty() {
		return false
	}
	col := g.focus.ActiveCoords().Col
	g.sel.Select(RowCol{Row: 0, Col: col}, RowCol{Row: g.data.RowCount() - 1, Col: col})
	return true
}

// SelectAll selects every valid cell.
func (g *Grid) SelectAll() { g.sel.SelectAll() }

// DeselectAll deselects every valid cell.
func (g *Grid) DeselectAll() { g.sel.DeselectAll() }

// ToggleSelect toggles cell's selection.
func (g *Grid) ToggleSelect(cell Cell) bool {
	rc, ok := g.data.Coords(cell)
	if !ok {
		return false
	}
	g.sel.Toggle(rc)
	return true
}

// Undo reverts the last selection change.
func (g *Grid) Undo() bool { return g.sel.Undo() }

// RangeSelect selects the rectangle covering the active cell and cell,
// replacing any previous selection, and moves the anchor to cell.
func (g *Grid) RangeSelect(cell Cell) bool {
	rc, ok := g.data.Coords(cell)
	if !ok {
		return false
	}
	return g.rangeSelectCoords(rc)
}

// RangeSelectUp extends the range one step up from the anchor.
func (g *Grid) RangeSelectUp() bool { return g.rangeSelectStep(Up) }

// RangeSelectDown extends the range one step down from the anchor.
func (g *Grid) RangeSelectDown() bool { return g.rangeSelectStep(Down) }

// RangeSelectLeft extends the range one step left from the anchor.
func (g *Grid) RangeSelectLeft() bool { return g.rangeSelectStep(Left) }

// RangeSelectRight extends the range one step right from the anchor.
func (g *Grid) RangeSelectRight() bool { return g.rangeSelectStep(Right) }

func (g *Grid) rangeSelectStep(d Direction) bool {
	from := g.anchor
	if from.IsNone() {
		from = g.focus.ActiveCoords()
	}
	next, ok := g.nav.Peek(d, from, PeekWrap(WrapNone))
	if !ok {
		return false
	}
	return g.rangeSelectCoords(next)
}

func (g *Grid) rangeSelectCoords(rc RowCol) bool {
	active := g.focus.ActiveCell()
	target := g.data.Cell(rc)
	if active == nil || target == nil {
		return false
	}
	activeCoords, ok := g.data.AllCoords(active)
	if !ok {
		return false
	}
	targetCoords, _ := g.data.AllCoords(target)
	box, _ := BoundsOf(append(activeCoords, targetCoords...)...)

	// Deselect and select count as one change for Undo.
	var before []undoEntry
	for cell := range g.sel.cellsIn(RowCol{}, g.sel.lastCoords(), true) {
		before = append(before, undoEntry{cell: cell, selected: cell.Selected()})
	}
	g.sel.DeselectAll()
	g.sel.Select(box.From, box.To)
	g.sel.undoLog = before

	g.anchor = rc
	return true
}

// ResetState brings focus back to a valid cell after the cell array changed.
// It keeps a still-valid focus, then tries the same cell, then the same
// coordinate, then the first focusable cell. It returns false only when no
// cell can take focus.
func (g *Grid) ResetState() bool {
	log := g.opts.logger
	if g.focus.StateEmpty() {
		ok := g.First()
		log.Debug("reset empty focus", slog.Bool("focused", ok))
		return ok
	}
	if !g.focus.StateStale() {
		return true
	}

	cell, coords := g.focus.ActiveCell(), g.focus.ActiveCoords()
	if g.GotoCell(cell) {
		log.Debug("reset stale focus to same cell", slog.String("coords", g.focus.ActiveCoords().String()))
		return true
	}
	if g.GotoCoords(coords) {
		log.Debug("reset stale focus to same coords", slog.String("coords", coords.String()))
		return true
	}
	if g.First() {
		log.Debug("reset stale focus to first cell", slog.String("coords", g.focus.ActiveCoords().String()))
		return true
	}
	g.focus.Clear()
	g.anchor = NoCoords
	log.Debug("reset found no focusable cell")
	return false
}
