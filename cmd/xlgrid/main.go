// Command xlgrid browses a worksheet as a keyboard-driven grid and saves the
// selection back to the workbook as a cell fill.
//
//	xlgrid [-config file.yaml] [-sheet name] [-log file] book.xlsx
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/internal/config"
	"github.com/javajack/xlgrid/internal/keymap"
	"github.com/javajack/xlgrid/internal/view"
)

func main() {
	a, err := setup(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	a.run(screen)
	screen.Fini()
}

type args struct {
	configPath string
	sheet      string
	logPath    string
	book       string
}

func parseArgs(argv []string, stderr io.Writer) (args, error) {
	var a args
	fs := flag.NewFlagSet("xlgrid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&a.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&a.sheet, "sheet", "", "worksheet to open (default: first sheet)")
	fs.StringVar(&a.logPath, "log", "", "write JSON logs to this file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: xlgrid [-config file.yaml] [-sheet name] [-log file] book.xlsx")
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv); err != nil {
		return a, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return a, errors.New("expected exactly one workbook")
	}
	a.book = fs.Arg(0)
	return a, nil
}

// app holds one open worksheet and the grid over it.
type app struct {
	book    string
	sheet   *xlgrid.Sheet
	grid    *xlgrid.Grid
	view    *view.View
	log     *slog.Logger
	logFile *os.File
}

func setup(argv []string, stderr io.Writer) (_ *app, err error) {
	a, err := parseArgs(argv, stderr)
	if err != nil {
		return nil, err
	}

	cfg := config.Default()
	if a.configPath != "" {
		if cfg, err = config.Load(a.configPath); err != nil {
			return nil, err
		}
	}
	if a.sheet != "" {
		cfg.Sheet = a.sheet
	}
	if a.logPath != "" {
		cfg.Log.Path = a.logPath
	}

	logger, logFile, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil && logFile != nil {
			logFile.Close()
		}
	}()

	sheetOpts, err := cfg.SheetOptions()
	if err != nil {
		return nil, err
	}
	gridOpts, err := cfg.GridOptions()
	if err != nil {
		return nil, err
	}
	sheet, err := xlgrid.LoadSheet(a.book, cfg.Sheet, sheetOpts...)
	if err != nil {
		return nil, err
	}

	rows := sheet.Cells()
	for _, issue := range xlgrid.Validate(rows) {
		logger.Warn("layout issue", slog.String("issue", issue.String()))
	}

	g := xlgrid.New(rows, append(gridOpts, xlgrid.WithLogger(logger))...)
	g.ResetState()

	logger.Info("workbook loaded",
		slog.String("book", a.book),
		slog.String("sheet", sheet.Name),
		slog.Int("rows", g.Data().RowCount()),
		slog.Int("cols", g.Data().ColCount()),
		slog.Int("cells", g.Data().Len()))

	return &app{book: a.book, sheet: sheet, grid: g, log: logger, logFile: logFile}, nil
}

// newLogger writes JSON records to the configured file, or discards them.
func newLogger(cfg *config.Config) (*slog.Logger, *os.File, error) {
	if cfg.Log.Path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("component", "xlgrid")), f, nil
}

func cellLabel(c xlgrid.Cell) string {
	if sc, ok := c.(*xlgrid.SheetCell); ok {
		return sc.Value
	}
	return c.ID()
}

// run draws and handles events until the user quits.
func (a *app) run(screen tcell.Screen) {
	a.view = view.New(screen, a.grid,
		view.WithLabel(cellLabel),
		view.WithOrigin(a.sheet.Origin))
	a.view.SetStatus(helpLine())
	a.view.Draw()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if a.handle(screen, ev) {
			return
		}
		a.view.Draw()
	}
}

// handle applies one event and reports whether the viewer should exit.
func (a *app) handle(screen tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()
	case *tcell.EventKey:
		action := keymap.Lookup(ev)
		switch action {
		case keymap.None:
		case keymap.Quit:
			return true
		case keymap.Save:
			a.save()
		default:
			ok := keymap.Apply(a.grid, action)
			a.log.Debug("key",
				slog.String("action", action.String()),
				slog.Bool("ok", ok),
				slog.String("active", a.grid.ActiveCoords().String()))
			if a.view != nil {
				a.view.SetStatus(helpLine())
			}
		}
	}
	return false
}

func (a *app) save() {
	msg := fmt.Sprintf("saved %d selected to %s", len(a.sheet.Selected()), a.book)
	err := a.sheet.SaveSelection()
	if err == nil {
		err = a.sheet.SaveAs(a.book)
	}
	if err != nil {
		a.log.Error("save failed", slog.String("book", a.book), slog.Any("error", err))
		msg = "save failed: " + err.Error()
	} else {
		a.log.Info("selection saved", slog.String("book", a.book), slog.Int("selected", len(a.sheet.Selected())))
	}
	if a.view != nil {
		a.view.SetStatus(msg)
	}
}

func (a *app) close() {
	if err := a.sheet.Close(); err != nil {
		a.log.Warn("close workbook", slog.Any("error", err))
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func helpLine() string {
	parts := make([]string, 0, len(keymap.Bindings))
	for _, b := range keymap.Bindings {
		parts = append(parts, b.Keys+" "+b.Help)
	}
	return strings.Join(parts, "  ")
}
