package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/javajack/xlgrid"
)

func writeBook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "Team")
	require.NoError(t, f.MergeCell(sheet, "A1", "B1"))
	f.SetCellValue(sheet, "A2", "Ann")
	f.SetCellValue(sheet, "B2", 3)
	f.SetCellValue(sheet, "A3", "Bo")
	f.SetCellValue(sheet, "B3", 5)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func TestParseArgs(t *testing.T) {
	var stderr bytes.Buffer
	a, err := parseArgs([]string{"-sheet", "Data", "-log", "x.log", "book.xlsx"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, args{sheet: "Data", logPath: "x.log", book: "book.xlsx"}, a)

	_, err = parseArgs(nil, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "usage: xlgrid")

	_, err = parseArgs([]string{"-h"}, &stderr)
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestSetup_ConfigAndLog(t *testing.T) {
	book := writeBook(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "xlgrid.yaml")
	logPath := filepath.Join(dir, "xlgrid.log")
	require.NoError(t, os.WriteFile(cfgPath, []byte("col_wrap: nowrap\nlog:\n  level: debug\n"), 0o644))

	a, err := setup([]string{"-config", cfgPath, "-log", logPath, book}, os.Stderr)
	require.NoError(t, err)
	defer a.close()

	_, col := a.grid.Wraps()
	assert.Equal(t, xlgrid.WrapNone, col)
	assert.Equal(t, xlgrid.At(0, 0), a.grid.ActiveCoords())
	assert.Equal(t, 3, a.grid.Data().RowCount())

	assert.False(t, a.handle(nil, key(tcell.KeyLeft, tcell.ModNone)))
	assert.Equal(t, xlgrid.At(0, 0), a.grid.ActiveCoords())

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), `"component":"xlgrid"`)
	assert.Contains(t, string(logged), `"msg":"workbook loaded"`)
	assert.Contains(t, string(logged), `"action":"left"`)
}

func TestSetup_Errors(t *testing.T) {
	_, err := setup([]string{filepath.Join(t.TempDir(), "missing.xlsx")}, os.Stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open workbook")

	book := writeBook(t)
	_, err = setup([]string{"-sheet", "Nope", book}, os.Stderr)
	assert.ErrorIs(t, err, xlgrid.ErrNoSheet)
}

func TestApp_SelectAndSave(t *testing.T) {
	book := writeBook(t)
	a, err := setup([]string{book}, os.Stderr)
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 8)
	defer screen.Fini()

	// Down, then extend down and right: A2:B3.
	assert.False(t, a.handle(screen, key(tcell.KeyDown, tcell.ModNone)))
	assert.False(t, a.handle(screen, key(tcell.KeyDown, tcell.ModShift)))
	assert.False(t, a.handle(screen, key(tcell.KeyRight, tcell.ModShift)))
	assert.Len(t, a.sheet.Selected(), 4)
	assert.False(t, a.handle(screen, key(tcell.KeyCtrlS, tcell.ModCtrl)))
	assert.True(t, a.handle(screen, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	a.close()

	reloaded, err := xlgrid.LoadSheet(book, "", xlgrid.WithSelectionFill(xlgrid.DefaultSelectionFill))
	require.NoError(t, err)
	defer reloaded.Close()
	var refs []string
	for _, c := range reloaded.Selected() {
		refs = append(refs, c.Ref.String())
	}
	assert.Equal(t, []string{"A2", "B2", "A3", "B3"}, refs)
}

func TestApp_RunQuits(t *testing.T) {
	book := writeBook(t)
	a, err := setup([]string{book}, os.Stderr)
	require.NoError(t, err)
	defer a.close()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 8)
	defer screen.Fini()

	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	a.run(screen)

	// A1:B1 is the only cell in its row, so a looping move right stays put.
	assert.Equal(t, xlgrid.At(0, 0), a.grid.ActiveCoords())
	assert.Len(t, a.sheet.Selected(), 1)
}

func TestHelpLine(t *testing.T) {
	assert.Contains(t, helpLine(), "^S save")
	assert.Contains(t, helpLine(), "q quit")
}
