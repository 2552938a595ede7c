package xlgrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// uniformGrid returns rows x cols 1x1 cells named "r,c".
func uniformGrid(rows, cols int) [][]*BasicCell {
	out := make([][]*BasicCell, rows)
	for r := range out {
		out[r] = make([]*BasicCell, cols)
		for c := range out[r] {
			out[r][c] = NewCell(fmt.Sprintf("%d,%d", r, c))
		}
	}
	return out
}

// asCells widens a typed grid to [][]Cell.
func asCells(rows [][]*BasicCell) [][]Cell {
	out := make([][]Cell, len(rows))
	for r, row := range rows {
		out[r] = make([]Cell, len(row))
		for c, cell := range row {
			out[r][c] = cell
		}
	}
	return out
}

// spanGridB has four rows where row 1 merges two columns.
// Layout:
//
//	A1 B1 C1
//	A2:B2 C2
//	A3 B3 C3
//	A4 B4 C4
func spanGridB() [][]*BasicCell {
	return [][]*BasicCell{
		{NewCell("a1"), NewCell("b1"), NewCell("c1")},
		{NewCell("a2").Span(1, 2), NewCell("c2")},
		{NewCell("a3"), NewCell("b3"), NewCell("c3")},
		{NewCell("a4"), NewCell("b4"), NewCell("c4")},
	}
}

// spanGridC mixes row and column spans.
// Layout:
//
//	A1:A2 B1:C1 D1
//	      B2    C2:D3
//	A3    B3
func spanGridC() [][]*BasicCell {
	return [][]*BasicCell{
		{NewCell("a1").Span(2, 1), NewCell("b1").Span(1, 2), NewCell("d1")},
		{NewCell("b2"), NewCell("c2").Span(2, 2)},
		{NewCell("a3"), NewCell("b3")},
	}
}

func disableAll(rows [][]*BasicCell) {
	for _, row := range rows {
		for _, c := range row {
			c.IsOff = true
		}
	}
}

func selectedIDs(t *testing.T, rows [][]*BasicCell) []string {
	t.Helper()
	var ids []string
	for _, row := range rows {
		for _, c := range row {
			if c.Selected() {
				ids = append(ids, c.ID())
			}
		}
	}
	return ids
}

func mustCoords(t *testing.T, d *Data, cell Cell) RowCol {
	t.Helper()
	rc, ok := d.Coords(cell)
	require.True(t, ok, "cell %s has no coordinates", cell.ID())
	return rc
}
