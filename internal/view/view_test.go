package view

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/xlgrid"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// line returns the text of screen row y.
func line(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func styleAt(s tcell.Screen, x, y int) tcell.Style {
	_, _, style, _ := s.GetContent(x, y)
	return style
}

func namedGrid(rows, cols int) (*xlgrid.Grid, [][]*xlgrid.BasicCell) {
	cells := make([][]*xlgrid.BasicCell, rows)
	out := make([][]xlgrid.Cell, rows)
	for r := range cells {
		for c := 0; c < cols; c++ {
			cell := xlgrid.NewCell(xlgrid.At(r, c).String())
			cells[r] = append(cells[r], cell)
			out[r] = append(out[r], cell)
		}
	}
	return xlgrid.New(out), cells
}

func TestView_DrawsHeadersCellsAndStatus(t *testing.T) {
	s := newScreen(t, 40, 6)
	g, cells := namedGrid(3, 3)
	require.True(t, g.ResetState())
	cells[1][1].IsChecked = true
	cells[2][2].IsOff = true

	v := New(s, g, WithColumnWidth(8))
	v.SetStatus("ready")
	v.Draw()

	assert.True(t, strings.HasPrefix(line(s, 0), "     A       B       C"))
	assert.True(t, strings.HasPrefix(line(s, 1), "1     A1      B1      C1"))
	assert.True(t, strings.HasPrefix(line(s, 3), "3     A3      B3      C3"))
	assert.True(t, strings.HasPrefix(line(s, 5), " A1 A1 | 1 selected | ready"))

	assert.Equal(t, activeStyle, styleAt(s, 6, 1))
	assert.Equal(t, selectedStyle, styleAt(s, 14, 2))
	assert.Equal(t, disabledStyle, styleAt(s, 22, 3))
	assert.Equal(t, cellStyle, styleAt(s, 14, 1))
	assert.Equal(t, activeHeader, styleAt(s, 5, 0))
	assert.Equal(t, headerStyle, styleAt(s, 13, 0))
}

func TestView_ScrollsToActive(t *testing.T) {
	s := newScreen(t, 37, 6)
	g, _ := namedGrid(10, 10)
	require.True(t, g.GotoCoords(xlgrid.At(9, 9)))

	v := New(s, g, WithColumnWidth(8))
	v.Draw()

	// Four rows and four columns fit.
	assert.Equal(t, xlgrid.At(6, 6), v.Offset())
	assert.Contains(t, line(s, 0), "J")
	assert.True(t, strings.HasPrefix(line(s, 4), "10"))
	assert.Contains(t, line(s, 4), "J10")

	require.True(t, g.First())
	v.Draw()
	assert.Equal(t, xlgrid.At(0, 0), v.Offset())
}

func TestView_SpanLabelAndOrigin(t *testing.T) {
	s := newScreen(t, 40, 6)
	title := xlgrid.NewCell("title").Span(1, 2)
	a, b, c := xlgrid.NewCell("a"), xlgrid.NewCell("b"), xlgrid.NewCell("c")
	g := xlgrid.New([][]xlgrid.Cell{{title, c}, {a, b}})

	labels := map[xlgrid.Cell]string{title: "Quarterly report", a: "North", b: "10", c: "x"}
	v := New(s, g,
		WithColumnWidth(8),
		WithOrigin(xlgrid.At(4, 1)),
		WithLabel(func(cell xlgrid.Cell) string { return labels[cell] }),
	)
	v.Draw()

	assert.True(t, strings.HasPrefix(line(s, 0), "     B       C       D"))
	assert.True(t, strings.HasPrefix(line(s, 1), "5     Quarterly rep… "))
	assert.Contains(t, line(s, 2), " North ")
	assert.Contains(t, line(s, 5), " - | 0 selected")
}

func TestView_EmptyGrid(t *testing.T) {
	s := newScreen(t, 20, 4)
	g := xlgrid.New(nil)
	v := New(s, g)
	v.Draw()

	assert.Equal(t, xlgrid.At(0, 0), v.Offset())
	assert.True(t, strings.HasPrefix(line(s, 3), " - | 0 selected"))
}
