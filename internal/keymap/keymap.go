// Package keymap maps terminal key events to grid operations.
package keymap

import (
	"github.com/gdamore/tcell/v2"

	"github.com/javajack/xlgrid"
)

// Action is a viewer command bound to a key.
type Action int

const (
	None Action = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	ExtendUp
	ExtendDown
	ExtendLeft
	ExtendRight
	RowStart
	RowEnd
	GridStart
	GridEnd
	Toggle
	SelectAll
	SelectRow
	SelectCol
	Undo
	Save
	Quit
)

var actionNames = [...]string{
	None:        "none",
	MoveUp:      "up",
	MoveDown:    "down",
	MoveLeft:    "left",
	MoveRight:   "right",
	ExtendUp:    "extend-up",
	ExtendDown:  "extend-down",
	ExtendLeft:  "extend-left",
	ExtendRight: "extend-right",
	RowStart:    "row-start",
	RowEnd:      "row-end",
	GridStart:   "grid-start",
	GridEnd:     "grid-end",
	Toggle:      "toggle",
	SelectAll:   "select-all",
	SelectRow:   "select-row",
	SelectCol:   "select-col",
	Undo:        "undo",
	Save:        "save",
	Quit:        "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Binding documents one key for the help line.
type Binding struct {
	Keys string
	Help string
}

// Bindings lists the keys shown in the viewer's status line.
var Bindings = []Binding{
	{"arrows", "move"},
	{"S-arrows", "extend"},
	{"space", "toggle"},
	{"^A", "all"},
	{"^R", "row"},
	{"^L", "col"},
	{"^Z", "undo"},
	{"^S", "save"},
	{"q", "quit"},
}

// Lookup returns the action bound to ev, or None.
func Lookup(ev *tcell.EventKey) Action {
	mod := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyUp:
		return arrow(mod, MoveUp, ExtendUp)
	case tcell.KeyDown:
		return arrow(mod, MoveDown, ExtendDown)
	case tcell.KeyLeft:
		return arrow(mod, MoveLeft, ExtendLeft)
	case tcell.KeyRight:
		return arrow(mod, MoveRight, ExtendRight)
	case tcell.KeyHome:
		if mod&tcell.ModCtrl != 0 {
			return GridStart
		}
		return RowStart
	case tcell.KeyEnd:
		if mod&tcell.ModCtrl != 0 {
			return GridEnd
		}
		return RowEnd
	case tcell.KeyCtrlA:
		return SelectAll
	case tcell.KeyCtrlR:
		return SelectRow
	case tcell.KeyCtrlL:
		return SelectCol
	case tcell.KeyCtrlZ:
		return Undo
	case tcell.KeyCtrlS:
		return Save
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return Toggle
		case 'q', 'Q':
			return Quit
		}
	}
	return None
}

func arrow(mod tcell.ModMask, move, extend Action) Action {
	if mod&tcell.ModShift != 0 {
		return extend
	}
	return move
}

// Apply runs a grid action and reports whether it took effect. Save, Quit and
// None are handled by the caller and always report false here.
func Apply(g *xlgrid.Grid, a Action) bool {
	switch a {
	case MoveUp:
		return g.Up()
	case MoveDown:
		return g.Down()
	case MoveLeft:
		return g.Left()
	case MoveRight:
		return g.Right()
	case ExtendUp:
		return g.RangeSelectUp()
	case ExtendDown:
		return g.RangeSelectDown()
	case ExtendLeft:
		return g.RangeSelectLeft()
	case ExtendRight:
		return g.RangeSelectRight()
	case RowStart:
		return g.FirstInRow()
	case RowEnd:
		return g.LastInRow()
	case GridStart:
		return g.First()
	case GridEnd:
		return g.Last()
	case Toggle:
		if g.ActiveCell() == nil {
			return false
		}
		return g.ToggleSelect(g.ActiveCell())
	case SelectAll:
		g.SelectAll()
		return true
	case SelectRow:
		return g.SelectRow()
	case SelectCol:
		return g.SelectCol()
	case Undo:
		return g.Undo()
	}
	return false
}
