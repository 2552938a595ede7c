package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFocus(rows [][]*BasicCell, opts ...Option) (*Focus, *Data) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	d := NewData(asCells(rows))
	return NewFocus(d, o), d
}

func TestFocus_InitiallyEmpty(t *testing.T) {
	f, _ := newTestFocus(uniformGrid(2, 2))

	assert.Nil(t, f.ActiveCell())
	assert.Equal(t, NoCoords, f.ActiveCoords())
	assert.True(t, f.StateEmpty())
	assert.True(t, f.StateStale())
}

func TestFocus_FocusCell(t *testing.T) {
	rows := spanGridB()
	f, _ := newTestFocus(rows)

	require.True(t, f.FocusCell(rows[1][1]))
	assert.Same(t, rows[1][1], f.ActiveCell())
	assert.Equal(t, At(1, 2), f.ActiveCoords())
	assert.False(t, f.StateEmpty())
	assert.False(t, f.StateStale())
}

func TestFocus_FocusCoordsInsideSpan(t *testing.T) {
	rows := spanGridB()
	f, _ := newTestFocus(rows)

	require.True(t, f.FocusCoords(At(1, 1)))
	assert.Same(t, rows[1][0], f.ActiveCell())
	assert.Equal(t, At(1, 1), f.ActiveCoords())
	assert.False(t, f.StateStale())
}

func TestFocus_Rejections(t *testing.T) {
	rows := uniformGrid(2, 2)
	rows[0][1].IsOff = true

	t.Run("disabled cell without soft disable", func(t *testing.T) {
		f, _ := newTestFocus(rows, WithSoftDisabled(false))
		assert.False(t, f.FocusCell(rows[0][1]))
		assert.False(t, f.FocusCoords(At(0, 1)))
		assert.True(t, f.StateEmpty())
	})

	t.Run("disabled cell with soft disable", func(t *testing.T) {
		f, _ := newTestFocus(rows, WithSoftDisabled(true))
		assert.True(t, f.FocusCell(rows[0][1]))
	})

	t.Run("grid disabled", func(t *testing.T) {
		f, _ := newTestFocus(rows, WithDisabled(true))
		assert.False(t, f.FocusCell(rows[0][0]))
		assert.False(t, f.FocusCoords(At(0, 0)))
	})

	t.Run("unknown cell and coords", func(t *testing.T) {
		f, _ := newTestFocus(rows)
		assert.False(t, f.FocusCell(NewCell("stranger")))
		assert.False(t, f.FocusCell(nil))
		assert.False(t, f.FocusCoords(At(5, 5)))
		assert.True(t, f.StateEmpty())
	})
}

func TestFocus_GridDisabled(t *testing.T) {
	f, _ := newTestFocus(nil)
	assert.True(t, f.GridDisabled(), "empty grid")

	rows := uniformGrid(2, 2)
	f, _ = newTestFocus(rows)
	assert.False(t, f.GridDisabled())

	disableAll(rows)
	assert.True(t, f.GridDisabled(), "every cell disabled")

	rows[1][1].IsOff = false
	assert.False(t, f.GridDisabled())

	f, _ = newTestFocus(rows, WithDisabled(true))
	assert.True(t, f.GridDisabled(), "explicit flag")
}

func TestFocus_TabIndexRoving(t *testing.T) {
	rows := uniformGrid(2, 2)
	f, _ := newTestFocus(rows, WithFocusMode(FocusRoving))
	require.True(t, f.FocusCell(rows[1][0]))

	assert.Equal(t, -1, f.GridTabIndex())
	assert.Equal(t, 0, f.CellTabIndex(rows[1][0]))
	assert.Equal(t, -1, f.CellTabIndex(rows[0][0]))
	_, ok := f.ActiveDescendant()
	assert.False(t, ok)
}

func TestFocus_TabIndexActiveDescendant(t *testing.T) {
	rows := uniformGrid(2, 2)
	f, _ := newTestFocus(rows, WithFocusMode(FocusActiveDescendant))
	require.True(t, f.FocusCell(rows[1][0]))

	assert.Equal(t, 0, f.GridTabIndex())
	assert.Equal(t, -1, f.CellTabIndex(rows[1][0]))
	id, ok := f.ActiveDescendant()
	require.True(t, ok)
	assert.Equal(t, "1,0", id)
}

func TestFocus_TabIndexDisabledGrid(t *testing.T) {
	rows := uniformGrid(2, 2)
	o := defaultOptions()
	f := NewFocus(NewData(asCells(rows)), o)
	require.True(t, f.FocusCell(rows[0][0]))

	o.disabled = true
	assert.Equal(t, 0, f.GridTabIndex())
	assert.Equal(t, -1, f.CellTabIndex(rows[0][0]))

	o.focusMode = FocusActiveDescendant
	_, ok := f.ActiveDescendant()
	assert.False(t, ok)
}

func TestFocus_StaleAfterReplace(t *testing.T) {
	rows := uniformGrid(2, 2)
	f, d := newTestFocus(rows)
	require.True(t, f.FocusCell(rows[1][1]))

	// Same cells, reordered: the active cell moved.
	d.SetCells([][]Cell{{rows[1][1], rows[0][1]}, {rows[1][0], rows[0][0]}})
	assert.True(t, f.StateStale())
	assert.False(t, f.StateEmpty())

	// Cell removed entirely.
	d.SetCells(asCells(uniformGrid(2, 2)))
	assert.True(t, f.StateStale())
}

func TestFocus_NotStaleWhenLayoutUnchanged(t *testing.T) {
	rows := uniformGrid(2, 2)
	f, d := newTestFocus(rows)
	require.True(t, f.FocusCell(rows[0][1]))

	d.SetCells(asCells(rows))
	assert.False(t, f.StateStale())
}

func TestFocus_Clear(t *testing.T) {
	rows := uniformGrid(1, 1)
	f, _ := newTestFocus(rows)
	require.True(t, f.FocusCell(rows[0][0]))

	f.Clear()
	assert.True(t, f.StateEmpty())
	assert.Equal(t, NoCoords, f.ActiveCoords())
}
