package xlgrid

// Cell is a caller-owned grid cell. The grid reads spans and state through these
// accessors on every operation and writes only through SetSelected.
//
// Cells are compared by identity, so implementations should be pointer types.
type Cell interface {
	RowSpan() int
	ColSpan() int
	ID() string
	Disabled() bool
	Selectable() bool
	Selected() bool
	SetSelected(selected bool)
}

// BasicCell is a plain Cell implementation for callers that do not need their
// own cell type.
type BasicCell struct {
	Name      string
	Rows      int // row span, treated as 1 when < 1
	Cols      int // column span, treated as 1 when < 1
	IsOff     bool
	Locked    bool // not selectable
	IsChecked bool
	Element   any // opaque reference to whatever renders this cell
}

// NewCell returns a selectable 1x1 cell with the given id.
func NewCell(id string) *BasicCell {
	return &BasicCell{Name: id, Rows: 1, Cols: 1}
}

// Span sets the row and column span and returns the cell.
func (c *BasicCell) Span(rows, cols int) *BasicCell {
	c.Rows = rows
	c.Cols = cols
	return c
}

func (c *BasicCell) RowSpan() int             { return atLeastOne(c.Rows) }
func (c *BasicCell) ColSpan() int             { return atLeastOne(c.Cols) }
func (c *BasicCell) ID() string               { return c.Name }
func (c *BasicCell) Disabled() bool           { return c.IsOff }
func (c *BasicCell) Selectable() bool         { return !c.Locked }
func (c *BasicCell) Selected() bool           { return c.IsChecked }
func (c *BasicCell) SetSelected(selected bool) { c.IsChecked = selected }

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// spanOf returns the cell's spans clamped to at least one.
func spanOf(c Cell) (rows, cols int) {
	return atLeastOne(c.RowSpan()), atLeastOne(c.ColSpan())
}
