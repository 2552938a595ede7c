package xlgrid

import "iter"

// Selection selects, deselects and toggles rectangles of cells.
//
// Every mutating call records the previous value of each cell it touched,
// replacing whatever the last call recorded. Undo restores that one record.
type Selection struct {
	data *Data

	undoLog []undoEntry
}

type undoEntry struct {
	cell     Cell
	selected bool
}

// NewSelection creates a Selection over data.
func NewSelection(data *Data) *Selection {
	return &Selection{data: data}
}

// IsValid reports whether cell can take part in selection.
func (s *Selection) IsValid(cell Cell) bool {
	return cell != nil && cell.Selectable() && !cell.Disabled()
}

// Select selects every valid cell in the rectangle from..to. to defaults to from.
func (s *Selection) Select(from RowCol, to ...RowCol) {
	s.apply(from, to, func(bool) bool { return true })
}

// Deselect deselects every valid cell in the rectangle from..to.
func (s *Selection) Deselect(from RowCol, to ...RowCol) {
	s.apply(from, to, func(bool) bool { return false })
}

// Toggle flips every valid cell in the rectangle from..to.
func (s *Selection) Toggle(from RowCol, to ...RowCol) {
	s.apply(from, to, func(prev bool) bool { return !prev })
}

// SelectAll selects every valid cell in the grid.
func (s *Selection) SelectAll() {
	s.Select(RowCol{}, s.lastCoords())
}

// DeselectAll deselects every valid cell in the grid.
func (s *Selection) DeselectAll() {
	s.Deselect(RowCol{}, s.lastCoords())
}

// Undo restores the cells changed by the last mutating call. It reports
// whether there was anything to restore.
func (s *Selection) Undo() bool {
	if s.undoLog == nil {
		return false
	}
	for _, e := range s.undoLog {
		e.cell.SetSelected(e.selected)
	}
	s.undoLog = nil
	return true
}

// CanUndo reports whether Undo would restore anything.
func (s *Selection) CanUndo() bool {
	return s.undoLog != nil
}

// Selected returns the selected cells in row-major order of their primary coordinate.
func (s *Selection) Selected() []Cell {
	var out []Cell
	for cell := range s.cellsIn(RowCol{}, s.lastCoords(), false) {
		if cell.Selected() {
			out = append(out, cell)
		}
	}
	return out
}

// ValidCells yields each distinct valid cell covering a coordinate of the
// rectangle from..to, in row-major order of first appearance.
func (s *Selection) ValidCells(from, to RowCol) iter.Seq[Cell] {
	return s.cellsIn(from, to, true)
}

func (s *Selection) cellsIn(from, to RowCol, validOnly bool) iter.Seq[Cell] {
	r := RectOf(from, to)
	return func(yield func(Cell) bool) {
		seen := make(map[Cell]struct{})
		for row := r.From.Row; row <= r.To.Row; row++ {
			for col := r.From.Col; col <= r.To.Col; col++ {
				cell := s.data.Cell(RowCol{Row: row, Col: col})
				if cell == nil {
					continue
				}
				if _, ok := seen[cell]; ok {
					continue
				}
				seen[cell] = struct{}{}
				if validOnly && !s.IsValid(cell) {
					continue
				}
				if !yield(cell) {
					return
				}
			}
		}
	}
}

func (s *Selection) apply(from RowCol, to []RowCol, next func(prev bool) bool) {
	end := from
	if len(to) > 0 {
		end = to[0]
	}
	log := []undoEntry{}
	for cell := range s.ValidCells(from, end) {
		prev := cell.Selected()
		log = append(log, undoEntry{cell: cell, selected: prev})
		cell.SetSelected(next(prev))
	}
	s.undoLog = log
}

func (s *Selection) lastCoords() RowCol {
	return RowCol{Row: s.data.RowCount() - 1, Col: s.data.ColCount() - 1}
}
