package xlgrid

// Data maps a jagged 2D array of cells onto span-expanded coordinates.
//
// Cells are placed row by row. Each cell takes the first coordinate in its
// row that no earlier span has claimed and then claims a RowSpan x ColSpan
// rectangle starting there. The derived maps are rebuilt in full on the first
// read after SetCells.
type Data struct {
	rows    [][]Cell
	version uint64

	snap      *layout
	snapBuilt uint64
}

// layout is one computed snapshot of the coordinate maps.
type layout struct {
	cellAt     map[RowCol]Cell
	spans      map[Cell]*cellSpan
	rowCount   int
	colCount   int
	colsPerRow map[int]int // row → highest col + 1
	rowsPerCol map[int]int // col → highest row + 1
}

type cellSpan struct {
	primary RowCol
	coords  []RowCol
}

// NewData creates a Data over rows.
func NewData(rows [][]Cell) *Data {
	d := &Data{}
	d.SetCells(rows)
	return d
}

// SetCells replaces the source array. The next read recomputes the layout.
func (d *Data) SetCells(rows [][]Cell) {
	d.rows = rows
	d.version++
}

// Cells returns the source array as last given to SetCells.
func (d *Data) Cells() [][]Cell {
	return d.rows
}

// Version increments on every SetCells.
func (d *Data) Version() uint64 {
	return d.version
}

// RowCount is the number of coordinate rows, including rows reached only by row spans.
func (d *Data) RowCount() int {
	return d.layout().rowCount
}

// ColCount is the number of coordinate columns across all rows.
func (d *Data) ColCount() int {
	return d.layout().colCount
}

// Cell returns the cell covering rc, or nil.
func (d *Data) Cell(rc RowCol) Cell {
	return d.layout().cellAt[rc]
}

// Coords returns the primary (top-left) coordinate of cell.
func (d *Data) Coords(cell Cell) (RowCol, bool) {
	if cell == nil {
		return NoCoords, false
	}
	s, ok := d.layout().spans[cell]
	if !ok {
		return NoCoords, false
	}
	return s.primary, true
}

// AllCoords returns every coordinate the cell's span covers, in row-major order.
func (d *Data) AllCoords(cell Cell) ([]RowCol, bool) {
	if cell == nil {
		return nil, false
	}
	s, ok := d.layout().spans[cell]
	if !ok {
		return nil, false
	}
	out := make([]RowCol, len(s.coords))
	copy(out, s.coords)
	return out, true
}

// RowCountAt returns the number of rows reached in column col.
func (d *Data) RowCountAt(col int) (int, bool) {
	n, ok := d.layout().rowsPerCol[col]
	return n, ok
}

// ColCountAt returns the number of columns reached in row row.
func (d *Data) ColCountAt(row int) (int, bool) {
	n, ok := d.layout().colsPerRow[row]
	return n, ok
}

// Len returns the number of distinct cells placed.
func (d *Data) Len() int {
	return len(d.layout().spans)
}

// Each calls fn for every placed cell in source order, stopping early if fn returns false.
func (d *Data) Each(fn func(cell Cell) bool) {
	l := d.layout()
	for _, row := range d.rows {
		for _, cell := range row {
			if _, ok := l.spans[cell]; !ok {
				continue
			}
			if !fn(cell) {
				return
			}
		}
	}
}

func (d *Data) layout() *layout {
	if d.snap != nil && d.snapBuilt == d.version {
		return d.snap
	}
	d.snap = buildLayout(d.rows)
	d.snapBuilt = d.version
	return d.snap
}

func buildLayout(rows [][]Cell) *layout {
	l := &layout{
		cellAt:     make(map[RowCol]Cell),
		spans:      make(map[Cell]*cellSpan),
		colsPerRow: make(map[int]int),
		rowsPerCol: make(map[int]int),
	}

	for rowIdx, row := range rows {
		col := 0
		for _, cell := range row {
			if cell == nil {
				continue
			}
			if _, dup := l.spans[cell]; dup {
				// The same cell twice would claim two disjoint areas.
				continue
			}
			for {
				if _, claimed := l.cellAt[RowCol{Row: rowIdx, Col: col}]; !claimed {
					break
				}
				col++
			}

			rowSpan, colSpan := spanOf(cell)
			s := &cellSpan{
				primary: RowCol{Row: rowIdx, Col: col},
				coords:  make([]RowCol, 0, rowSpan*colSpan),
			}
			for r := rowIdx; r < rowIdx+rowSpan; r++ {
				for c := col; c < col+colSpan; c++ {
					rc := RowCol{Row: r, Col: c}
					l.cellAt[rc] = cell
					s.coords = append(s.coords, rc)
					l.colsPerRow[r] = max(l.colsPerRow[r], c+1)
					l.rowsPerCol[c] = max(l.rowsPerCol[c], r+1)
					l.rowCount = max(l.rowCount, r+1)
					l.colCount = max(l.colCount, c+1)
				}
			}
			l.spans[cell] = s
			col += colSpan
		}
	}
	return l
}
