package xlgrid

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheet is returned when the requested worksheet does not exist.
var ErrNoSheet = errors.New("worksheet not found")

// SheetCell is a worksheet cell or merged range placed in a grid.
type SheetCell struct {
	BasicCell
	Sheet string
	Ref   RowCol // top-left position on the worksheet
	Value string

	styleID int
}

// Area returns the worksheet range the cell covers.
func (c *SheetCell) Area() Rect {
	return Rect{From: c.Ref, To: RowCol{Row: c.Ref.Row + c.RowSpan() - 1, Col: c.Ref.Col + c.ColSpan() - 1}}
}

// Env is the variable set rule expressions see for this cell.
func (c *SheetCell) Env() map[string]any {
	return map[string]any{
		"value":   c.Value,
		"empty":   strings.TrimSpace(c.Value) == "",
		"row":     c.Ref.Row + 1,
		"col":     c.Ref.Col + 1,
		"column":  ColToName(c.Ref.Col),
		"ref":     c.Ref.String(),
		"sheet":   c.Sheet,
		"merged":  c.RowSpan() > 1 || c.ColSpan() > 1,
		"rowSpan": c.RowSpan(),
		"colSpan": c.ColSpan(),
	}
}

// Sheet is a worksheet loaded as grid rows.
type Sheet struct {
	Name   string
	Rows   [][]*SheetCell
	Origin RowCol // worksheet position of grid coordinate A1

	file   *excelize.File
	opts   *sheetOptions
	byRef  map[RowCol]*SheetCell
	closer bool // file was opened here and is closed by Close
}

type sheetOptions struct {
	area          *Rect
	rules         Rules
	evaluator     RuleEvaluator
	selectionFill string
}

// SheetOption configures sheet loading.
type SheetOption func(*sheetOptions)

// WithArea restricts the grid to a worksheet range such as "A1:F20".
func WithArea(r Rect) SheetOption {
	return func(o *sheetOptions) { o.area = &r }
}

// WithRules derives disabled and selectable state from expressions.
func WithRules(r Rules) SheetOption {
	return func(o *sheetOptions) { o.rules = r }
}

// WithRuleEvaluator replaces the expr-lang evaluator used by WithRules.
func WithRuleEvaluator(ev RuleEvaluator) SheetOption {
	return func(o *sheetOptions) { o.evaluator = ev }
}

// WithSelectionFill sets the fill color ("FFEB9C") that marks selected cells.
// Cells already carrying it are loaded as selected; SaveSelection writes it.
func WithSelectionFill(color string) SheetOption {
	return func(o *sheetOptions) { o.selectionFill = color }
}

// DefaultSelectionFill is the fill SaveSelection uses when none is configured.
const DefaultSelectionFill = "FFEB9C"

// LoadSheet opens an xlsx file and loads one worksheet. An empty name picks
// the first sheet.
func LoadSheet(path, sheet string, opts ...SheetOption) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	s, err := FromFile(f, sheet, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = true
	return s, nil
}

// ReadSheet loads one worksheet from an xlsx stream.
func ReadSheet(r io.Reader, sheet string, opts ...SheetOption) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	s, err := FromFile(f, sheet, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = true
	return s, nil
}

// FromFile loads one worksheet of an open workbook. The caller keeps ownership of f.
func FromFile(f *excelize.File, sheet string, opts ...SheetOption) (*Sheet, error) {
	o := &sheetOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.evaluator == nil {
		o.evaluator = NewRuleEvaluator()
	}

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, ErrNoSheet
		}
		sheet = list[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSheet, sheet)
	}

	s := &Sheet{Name: sheet, file: f, opts: o, byRef: make(map[RowCol]*SheetCell)}
	if err := s.read(); err != nil {
		return nil, err
	}

	var flat []*SheetCell
	for _, row := range s.Rows {
		flat = append(flat, row...)
	}
	if err := applyRules(o.evaluator, o.rules, flat); err != nil {
		return nil, fmt.Errorf("apply rules: %w", err)
	}
	return s, nil
}

// read builds Rows from values and merged ranges. Coordinates covered by a
// merge other than its top-left are left out so span placement lands every
// cell back on its worksheet position.
func (s *Sheet) read() error {
	values, err := s.file.GetRows(s.Name)
	if err != nil {
		return fmt.Errorf("read rows from sheet %q: %w", s.Name, err)
	}
	merges, err := s.file.GetMergeCells(s.Name)
	if err != nil {
		return fmt.Errorf("read merged cells from sheet %q: %w", s.Name, err)
	}

	bounds := Rect{From: RowCol{}, To: RowCol{Row: len(values) - 1, Col: -1}}
	for _, row := range values {
		bounds.To.Col = max(bounds.To.Col, len(row)-1)
	}
	areas := make([]Rect, 0, len(merges))
	mergeValues := make(map[Rect]string, len(merges))
	for _, m := range merges {
		area, err := ParseRect(m.GetStartAxis() + ":" + m.GetEndAxis())
		if err != nil {
			return fmt.Errorf("merged range %s:%s: %w", m.GetStartAxis(), m.GetEndAxis(), err)
		}
		bounds.To.Row = max(bounds.To.Row, area.To.Row)
		bounds.To.Col = max(bounds.To.Col, area.To.Col)
		areas = append(areas, area)
		mergeValues[area] = m.GetCellValue()
	}
	if s.opts.area != nil {
		bounds = *s.opts.area
	}
	s.Origin = bounds.From

	// Merges are clipped to bounds; a merge cut by the edge keeps its value.
	spans := make(map[RowCol]Rect)
	spanValues := make(map[RowCol]string)
	covered := make(map[RowCol]bool)
	for _, area := range areas {
		clipped, ok := intersect(area, bounds)
		if !ok {
			continue
		}
		spans[clipped.From] = clipped
		spanValues[clipped.From] = mergeValues[area]
		for r := clipped.From.Row; r <= clipped.To.Row; r++ {
			for c := clipped.From.Col; c <= clipped.To.Col; c++ {
				if rc := (RowCol{Row: r, Col: c}); rc != clipped.From {
					covered[rc] = true
				}
			}
		}
	}

	for r := bounds.From.Row; r <= bounds.To.Row; r++ {
		var row []*SheetCell
		for c := bounds.From.Col; c <= bounds.To.Col; c++ {
			ref := RowCol{Row: r, Col: c}
			if covered[ref] {
				continue
			}
			area := Rect{From: ref, To: ref}
			value := cellValue(values, ref)
			if m, ok := spans[ref]; ok {
				area = m
				value = spanValues[ref]
			}
			row = append(row, s.newCell(area, value))
		}
		s.Rows = append(s.Rows, row)
	}
	return nil
}

// intersect returns the overlap of a and b.
func intersect(a, b Rect) (Rect, bool) {
	r := Rect{
		From: RowCol{Row: max(a.From.Row, b.From.Row), Col: max(a.From.Col, b.From.Col)},
		To:   RowCol{Row: min(a.To.Row, b.To.Row), Col: min(a.To.Col, b.To.Col)},
	}
	if r.From.Row > r.To.Row || r.From.Col > r.To.Col {
		return Rect{}, false
	}
	return r, true
}

func cellValue(values [][]string, ref RowCol) string {
	if ref.Row < len(values) && ref.Col < len(values[ref.Row]) {
		return values[ref.Row][ref.Col]
	}
	return ""
}

func (s *Sheet) newCell(area Rect, value string) *SheetCell {
	ref := area.From
	c := &SheetCell{Sheet: s.Name, Ref: ref, Value: value}
	c.Name = s.Name + "!" + ref.String()
	c.Rows = area.To.Row - area.From.Row + 1
	c.Cols = area.To.Col - area.From.Col + 1
	if id, err := s.file.GetCellStyle(s.Name, ref.String()); err == nil {
		c.styleID = id
		if s.opts.selectionFill != "" && s.hasFill(id, s.opts.selectionFill) {
			c.IsChecked = true
		}
	}
	s.byRef[ref] = c
	return c
}

func (s *Sheet) hasFill(styleID int, color string) bool {
	style, err := s.file.GetStyle(styleID)
	if err != nil || style == nil || len(style.Fill.Color) == 0 {
		return false
	}
	return sameColor(style.Fill.Color[0], color)
}

// sameColor compares hex colors ignoring "#", case and any alpha prefix.
func sameColor(a, b string) bool {
	norm := func(s string) string {
		s = strings.ToUpper(strings.TrimPrefix(s, "#"))
		if len(s) > 6 {
			s = s[len(s)-6:]
		}
		return s
	}
	return norm(a) != "" && norm(a) == norm(b)
}

// Cells returns the rows widened to [][]Cell for New.
func (s *Sheet) Cells() [][]Cell {
	out := make([][]Cell, len(s.Rows))
	for r, row := range s.Rows {
		out[r] = make([]Cell, len(row))
		for c, cell := range row {
			out[r][c] = cell
		}
	}
	return out
}

// CellAt returns the cell whose top-left worksheet position is ref.
func (s *Sheet) CellAt(ref RowCol) *SheetCell {
	return s.byRef[ref]
}

// Selected returns the selected cells in worksheet order.
func (s *Sheet) Selected() []*SheetCell {
	var out []*SheetCell
	for _, row := range s.Rows {
		for _, c := range row {
			if c.Selected() {
				out = append(out, c)
			}
		}
	}
	return out
}

// SaveSelection paints selected cells with the selection fill and removes it
// from unselected cells. Call Write or SaveAs to persist.
func (s *Sheet) SaveSelection() error {
	color := s.opts.selectionFill
	if color == "" {
		color = DefaultSelectionFill
	}
	for _, row := range s.Rows {
		for _, c := range row {
			marked := s.hasFill(c.styleID, color)
			if c.Selected() == marked {
				continue
			}
			style, err := s.file.GetStyle(c.styleID)
			if err != nil || style == nil {
				style = &excelize.Style{}
			}
			if c.Selected() {
				style.Fill = excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
			} else {
				style.Fill = excelize.Fill{}
			}
			id, err := s.file.NewStyle(style)
			if err != nil {
				return fmt.Errorf("style for %s: %w", c.Ref, err)
			}
			area := c.Area()
			if err := s.file.SetCellStyle(s.Name, area.From.String(), area.To.String(), id); err != nil {
				return fmt.Errorf("set style on %s: %w", area, err)
			}
			c.styleID = id
		}
	}
	return nil
}

// Write writes the workbook to w.
func (s *Sheet) Write(w io.Writer) error {
	return s.file.Write(w)
}

// SaveAs writes the workbook to path.
func (s *Sheet) SaveAs(path string) error {
	if err := s.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

// Close releases the workbook if LoadSheet or ReadSheet opened it.
func (s *Sheet) Close() error {
	if !s.closer {
		return nil
	}
	return s.file.Close()
}
