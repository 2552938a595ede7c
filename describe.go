package xlgrid

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable picture of the grid: its configuration,
// the coordinate map with each cell's id, and one line per spanning,
// disabled or selected cell. Useful for debugging layouts during development.
func Describe(g *Grid) string {
	var b strings.Builder
	d := g.data
	rowWrap, colWrap := g.Wraps()

	fmt.Fprintf(&b, "Grid %s, %d cells, focus=%s wrap=%s/%s\n",
		Size{Width: d.ColCount(), Height: d.RowCount()}, d.Len(), g.FocusMode(), rowWrap, colWrap)
	if g.focus.StateEmpty() {
		b.WriteString("Active: none\n")
	} else {
		stale := ""
		if g.focus.StateStale() {
			stale = " (stale)"
		}
		fmt.Fprintf(&b, "Active: %s %s%s\n", g.focus.ActiveCoords(), g.focus.ActiveCell().ID(), stale)
	}
	if d.Len() == 0 {
		return b.String()
	}

	describeMap(&b, g)

	var notes []string
	d.Each(func(c Cell) bool {
		if line := describeCell(g, c); line != "" {
			notes = append(notes, line)
		}
		return true
	})
	if len(notes) > 0 {
		b.WriteString("Cells:\n")
		for _, n := range notes {
			b.WriteString("  ")
			b.WriteString(n)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// describeMap writes the coordinate map. Coordinates covered by a span but
// not its primary coordinate print as "<" (same cell as the left) or "^"
// (same cell as above).
func describeMap(b *strings.Builder, g *Grid) {
	d := g.data
	width := 2
	d.Each(func(c Cell) bool {
		width = max(width, len(c.ID()))
		return true
	})

	fmt.Fprintf(b, "%4s", "")
	for col := 0; col < d.ColCount(); col++ {
		fmt.Fprintf(b, " %-*s", width, ColToName(col))
	}
	b.WriteByte('\n')

	for row := 0; row < d.RowCount(); row++ {
		fmt.Fprintf(b, "%4d", row+1)
		for col := 0; col < d.ColCount(); col++ {
			rc := RowCol{Row: row, Col: col}
			label := "."
			if cell := d.Cell(rc); cell != nil {
				label = cell.ID()
				if primary, _ := d.Coords(cell); primary != rc {
					label = "^"
					if col > 0 && d.Cell(RowCol{Row: row, Col: col - 1}) == cell {
						label = "<"
					}
				}
				if rc == g.focus.ActiveCoords() {
					label = "*" + label
				}
			}
			fmt.Fprintf(b, " %-*s", width, label)
		}
		b.WriteByte('\n')
	}
}

// describeCell returns a note for cells worth calling out, or "".
func describeCell(g *Grid, c Cell) string {
	var flags []string
	rows, cols := spanOf(c)
	if c.Disabled() {
		flags = append(flags, "disabled")
	}
	if !c.Selectable() {
		flags = append(flags, "unselectable")
	}
	if c.Selected() {
		flags = append(flags, "selected")
	}
	if rows == 1 && cols == 1 && len(flags) == 0 {
		return ""
	}

	all, _ := g.data.AllCoords(c)
	area, _ := BoundsOf(all...)
	ref := area.From.String()
	if rows > 1 || cols > 1 {
		ref = area.String()
	}
	line := fmt.Sprintf("%s %s span %s", ref, c.ID(), Size{Width: cols, Height: rows})
	if len(flags) > 0 {
		line += " [" + strings.Join(flags, " ") + "]"
	}
	return line
}
