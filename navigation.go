package xlgrid

// Navigation moves focus across the grid in a direction.
type Navigation struct {
	data  *Data
	focus *Focus
	opts  *Options
}

// NewNavigation creates a Navigation over data and focus. A nil opts uses the defaults.
func NewNavigation(data *Data, focus *Focus, opts *Options) *Navigation {
	if opts == nil {
		opts = defaultOptions()
	}
	return &Navigation{data: data, focus: focus, opts: opts}
}

// PeekOption overrides the search rules of one Peek call.
type PeekOption func(*peekConfig)

type peekConfig struct {
	wrap          Wrap
	allowDisabled bool
}

// PeekWrap overrides the configured wrap strategy for the axis being searched.
func PeekWrap(w Wrap) PeekOption {
	return func(c *peekConfig) { c.wrap = w }
}

// PeekAllowDisabled lets the search land on cells that are not focusable.
func PeekAllowDisabled() PeekOption {
	return func(c *peekConfig) { c.allowDisabled = true }
}

// GotoCell focuses cell.
func (n *Navigation) GotoCell(cell Cell) bool {
	return n.focus.FocusCell(cell)
}

// GotoCoords focuses the cell at rc.
func (n *Navigation) GotoCoords(rc RowCol) bool {
	return n.focus.FocusCoords(rc)
}

// Peek returns the next coordinate in direction d from from without moving focus.
func (n *Navigation) Peek(d Direction, from RowCol, opts ...PeekOption) (RowCol, bool) {
	cfg := peekConfig{wrap: n.opts.wrapFor(d)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return n.peekDirectional(d, from, cfg.wrap, cfg.allowDisabled)
}

// Advance moves focus one step in direction d from the active coordinate.
func (n *Navigation) Advance(d Direction) bool {
	next, ok := n.Peek(d, n.focus.ActiveCoords())
	if !ok {
		return false
	}
	return n.GotoCoords(next)
}

// PeekFirst returns the first focusable coordinate in reading order.
func (n *Navigation) PeekFirst() (RowCol, bool) {
	return n.peekDirectional(Right, RowCol{Row: 0, Col: -1}, WrapContinuous, false)
}

// PeekLast returns the last focusable coordinate in reading order.
func (n *Navigation) PeekLast() (RowCol, bool) {
	from := RowCol{Row: n.data.RowCount() - 1, Col: n.data.ColCount()}
	return n.peekDirectional(Left, from, WrapContinuous, false)
}

// PeekFirstInRow returns the first focusable coordinate of row.
func (n *Navigation) PeekFirstInRow(row int) (RowCol, bool) {
	return n.peekDirectional(Right, RowCol{Row: row, Col: -1}, WrapNone, false)
}

// PeekLastInRow returns the last focusable coordinate of row.
func (n *Navigation) PeekLastInRow(row int) (RowCol, bool) {
	return n.peekDirectional(Left, RowCol{Row: row, Col: n.data.ColCount()}, WrapNone, false)
}

// First focuses the first focusable cell of the grid.
func (n *Navigation) First() bool {
	return n.gotoPeeked(n.PeekFirst())
}

// Last focuses the last focusable cell of the grid.
func (n *Navigation) Last() bool {
	return n.gotoPeeked(n.PeekLast())
}

// FirstInRow focuses the first focusable cell of row.
func (n *Navigation) FirstInRow(row int) bool {
	return n.gotoPeeked(n.PeekFirstInRow(row))
}

// LastInRow focuses the last focusable cell of row.
func (n *Navigation) LastInRow(row int) bool {
	return n.gotoPeeked(n.PeekLastInRow(row))
}

func (n *Navigation) gotoPeeked(rc RowCol, ok bool) bool {
	return ok && n.GotoCoords(rc)
}

// peekDirectional walks from from in direction d until it reaches a coordinate
// holding a different, acceptable cell. It gives up when the walk leaves the
// grid under WrapNone, comes back to from, or has taken rows*cols steps.
func (n *Navigation) peekDirectional(d Direction, from RowCol, wrap Wrap, allowDisabled bool) (RowCol, bool) {
	rows, cols := n.data.RowCount(), n.data.ColCount()
	fromCell := n.data.Cell(from)
	next := from

	for step := 0; step < rows*cols; step++ {
		var ok bool
		next, ok = stepCoords(next, d, wrap, rows, cols)
		if !ok {
			return NoCoords, false
		}
		if next == from {
			return NoCoords, false
		}

		cell := n.data.Cell(next)
		if cell == nil || cell == fromCell {
			continue
		}
		if allowDisabled || n.focus.IsFocusable(cell) {
			return next, true
		}
	}
	return NoCoords, false
}

// stepCoords applies one step of d to rc under wrap for a rows x cols grid.
func stepCoords(rc RowCol, d Direction, wrap Wrap, rows, cols int) (RowCol, bool) {
	next := rc.Add(d)
	switch wrap {
	case WrapLoop:
		next.Row = mod(next.Row, rows)
		next.Col = mod(next.Col, cols)
	case WrapContinuous:
		if d.Vertical() {
			if next.Row < 0 || next.Row >= rows {
				next.Col += d.Row
			}
		} else if next.Col < 0 || next.Col >= cols {
			next.Row += d.Col
		}
		next.Row = mod(next.Row, rows)
		next.Col = mod(next.Col, cols)
	default:
		if next.Row < 0 || next.Row >= rows || next.Col < 0 || next.Col >= cols {
			return NoCoords, false
		}
	}
	return next, true
}

func mod(a, n int) int {
	if n <= 0 {
		return a
	}
	return ((a % n) + n) % n
}
