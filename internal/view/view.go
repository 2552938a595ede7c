// Package view draws an xlgrid.Grid on a terminal screen.
package view

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/javajack/xlgrid"
)

const (
	gutter      = 5
	statusLines = 1
)

var (
	headerStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	activeHeader  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	cellStyle     = tcell.StyleDefault
	disabledStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightYellow)
	activeStyle   = tcell.StyleDefault.Reverse(true)
	statusStyle   = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
)

// Option configures a View.
type Option func(*View)

// WithLabel sets the text shown for a cell. The default shows its ID.
func WithLabel(fn func(xlgrid.Cell) string) Option {
	return func(v *View) { v.label = fn }
}

// WithColumnWidth sets the width of one grid column in screen cells.
func WithColumnWidth(n int) Option {
	return func(v *View) {
		if n > 1 {
			v.colWidth = n
		}
	}
}

// WithOrigin labels headers as if grid A1 sat at origin on a worksheet.
func WithOrigin(origin xlgrid.RowCol) Option {
	return func(v *View) { v.origin = origin }
}

// View renders a grid with column headers, row numbers and a status line,
// scrolling to keep the active coordinate visible.
type View struct {
	screen   tcell.Screen
	grid     *xlgrid.Grid
	label    func(xlgrid.Cell) string
	colWidth int
	origin   xlgrid.RowCol
	top      int
	left     int
	status   string
}

// New creates a View drawing g on screen.
func New(screen tcell.Screen, g *xlgrid.Grid, opts ...Option) *View {
	v := &View{
		screen:   screen,
		grid:     g,
		label:    func(c xlgrid.Cell) string { return c.ID() },
		colWidth: 12,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetStatus sets the message shown in the status line.
func (v *View) SetStatus(msg string) {
	v.status = msg
}

// Offset returns the first visible row and column.
func (v *View) Offset() xlgrid.RowCol {
	return xlgrid.At(v.top, v.left)
}

// visible returns how many grid rows and columns fit on screen.
func (v *View) visible() (rows, cols int) {
	w, h := v.screen.Size()
	rows = max(1, h-1-statusLines)
	cols = max(1, (w-gutter)/v.colWidth)
	return rows, cols
}

// Scroll moves the viewport so the active coordinate is on screen.
func (v *View) Scroll() {
	rc := v.grid.ActiveCoords()
	if rc.IsNone() {
		return
	}
	rows, cols := v.visible()
	if rc.Row < v.top {
		v.top = rc.Row
	} else if rc.Row >= v.top+rows {
		v.top = rc.Row - rows + 1
	}
	if rc.Col < v.left {
		v.left = rc.Col
	} else if rc.Col >= v.left+cols {
		v.left = rc.Col - cols + 1
	}
}

// Draw clears the screen and paints the grid.
func (v *View) Draw() {
	s := v.screen
	s.Clear()
	v.Scroll()

	d := v.grid.Data()
	active := v.grid.ActiveCoords()
	rows, cols := v.visible()
	lastRow := min(d.RowCount(), v.top+rows)
	lastCol := min(d.ColCount(), v.left+cols)

	for c := v.left; c < lastCol; c++ {
		style := headerStyle
		if c == active.Col {
			style = activeHeader
		}
		name := xlgrid.ColToName(c + v.origin.Col)
		v.print(gutter+(c-v.left)*v.colWidth, 0, name, style, v.colWidth)
	}

	for r := v.top; r < lastRow; r++ {
		y := 1 + r - v.top
		style := headerStyle
		if r == active.Row {
			style = activeHeader
		}
		v.print(0, y, strconv.Itoa(r+1+v.origin.Row), style, gutter-1)

		for c := v.left; c < lastCol; c++ {
			rc := xlgrid.At(r, c)
			cell := d.Cell(rc)
			x := gutter + (c-v.left)*v.colWidth
			if cell == nil {
				continue
			}
			style := v.styleFor(cell)
			if !v.startsHere(rc, cell) {
				v.print(x, y, "", style, v.colWidth)
				continue
			}
			// Labels run across the visible part of a column span.
			span := 1
			for c+span < lastCol && d.Cell(xlgrid.At(r, c+span)) == cell {
				span++
			}
			v.print(x, y, " "+v.label(cell), style, span*v.colWidth-1)
			v.print(x+span*v.colWidth-1, y, "", cellStyle, 1)
			c += span - 1
		}
	}

	v.drawStatus()
	s.Show()
}

// startsHere reports whether rc is the top-left visible coordinate of cell.
func (v *View) startsHere(rc xlgrid.RowCol, cell xlgrid.Cell) bool {
	d := v.grid.Data()
	if rc.Col > v.left && d.Cell(xlgrid.At(rc.Row, rc.Col-1)) == cell {
		return false
	}
	if rc.Row > v.top && d.Cell(xlgrid.At(rc.Row-1, rc.Col)) == cell {
		return false
	}
	return true
}

func (v *View) styleFor(cell xlgrid.Cell) tcell.Style {
	switch {
	case cell == v.grid.ActiveCell() && !v.grid.Focus().StateStale():
		return activeStyle
	case cell.Selected():
		return selectedStyle
	case cell.Disabled():
		return disabledStyle
	}
	return cellStyle
}

func (v *View) drawStatus() {
	w, h := v.screen.Size()
	y := h - statusLines
	where := "-"
	if cell := v.grid.ActiveCell(); cell != nil {
		where = fmt.Sprintf("%s %s", v.grid.ActiveCoords(), cell.ID())
	}
	line := fmt.Sprintf(" %s | %d selected", where, len(v.grid.Selection().Selected()))
	if v.status != "" {
		line += " | " + v.status
	}
	v.print(0, y, line, statusStyle, w)
}

// print writes str at x,y clipped to width screen cells and pads the rest.
func (v *View) print(x, y int, str string, style tcell.Style, width int) {
	if width <= 0 {
		return
	}
	str = runewidth.Truncate(str, width, "…")
	col := 0
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		v.screen.SetContent(x+col, y, r, nil, style)
		col += rw
	}
	for ; col < width; col++ {
		v.screen.SetContent(x+col, y, ' ', nil, style)
	}
}
