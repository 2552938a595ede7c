package xlgrid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRef is returned when a cell or range name cannot be parsed.
var ErrInvalidRef = errors.New("invalid cell reference")

// RowCol is a zero-based coordinate in the span-expanded grid.
type RowCol struct {
	Row int
	Col int
}

// NoCoords is the sentinel for "no active coordinate".
var NoCoords = RowCol{Row: -1, Col: -1}

// At is shorthand for RowCol{Row: row, Col: col}.
func At(row, col int) RowCol {
	return RowCol{Row: row, Col: col}
}

// Add returns the coordinate shifted by d.
func (rc RowCol) Add(d Direction) RowCol {
	return RowCol{Row: rc.Row + d.Row, Col: rc.Col + d.Col}
}

// IsNone reports whether rc is the NoCoords sentinel.
func (rc RowCol) IsNone() bool {
	return rc == NoCoords
}

// String formats the coordinate as a spreadsheet name like "B3".
// Negative coordinates fall back to "(row,col)".
func (rc RowCol) String() string {
	if rc.Row < 0 || rc.Col < 0 {
		return fmt.Sprintf("(%d,%d)", rc.Row, rc.Col)
	}
	return ColToName(rc.Col) + strconv.Itoa(rc.Row+1)
}

// ParseRowCol parses a reference such as "A1", "$B$5" or "Sheet1!C2".
// Any sheet prefix is ignored.
func ParseRowCol(s string) (RowCol, error) {
	s = strings.TrimSpace(s)
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.ReplaceAll(s, "$", "")
	if s == "" {
		return NoCoords, fmt.Errorf("%w: empty", ErrInvalidRef)
	}

	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return NoCoords, fmt.Errorf("%w: %q", ErrInvalidRef, s)
	}

	col, err := NameToCol(s[:i])
	if err != nil {
		return NoCoords, err
	}
	row, err := strconv.Atoi(s[i:])
	if err != nil || row < 1 {
		return NoCoords, fmt.Errorf("%w: bad row in %q", ErrInvalidRef, s)
	}
	return RowCol{Row: row - 1, Col: col}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA"
func ColToName(col int) string {
	result := ""
	col++
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("%w: empty column name", ErrInvalidRef)
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: column %q", ErrInvalidRef, name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}

// Rect is an inclusive rectangle of coordinates with From <= To on both axes.
type Rect struct {
	From RowCol
	To   RowCol
}

// RectOf returns the normalized rectangle spanned by two corners.
func RectOf(a, b RowCol) Rect {
	return Rect{
		From: RowCol{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)},
		To:   RowCol{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)},
	}
}

// BoundsOf returns the smallest rectangle covering every coordinate given.
// ok is false when coords is empty.
func BoundsOf(coords ...RowCol) (r Rect, ok bool) {
	if len(coords) == 0 {
		return Rect{}, false
	}
	r = Rect{From: coords[0], To: coords[0]}
	for _, rc := range coords[1:] {
		r.From.Row = min(r.From.Row, rc.Row)
		r.From.Col = min(r.From.Col, rc.Col)
		r.To.Row = max(r.To.Row, rc.Row)
		r.To.Col = max(r.To.Col, rc.Col)
	}
	return r, true
}

// ParseRect parses a range like "A1:C5". A single cell name yields a 1x1 rect.
func ParseRect(s string) (Rect, error) {
	first, last, found := strings.Cut(strings.TrimSpace(s), ":")
	a, err := ParseRowCol(first)
	if err != nil {
		return Rect{}, err
	}
	if !found {
		return Rect{From: a, To: a}, nil
	}
	b, err := ParseRowCol(last)
	if err != nil {
		return Rect{}, err
	}
	return RectOf(a, b), nil
}

// Contains reports whether rc lies inside the rectangle.
func (r Rect) Contains(rc RowCol) bool {
	return rc.Row >= r.From.Row && rc.Row <= r.To.Row &&
		rc.Col >= r.From.Col && rc.Col <= r.To.Col
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.To.Col - r.From.Col + 1, Height: r.To.Row - r.From.Row + 1}
}

// String formats the rectangle as "A1:C5".
func (r Rect) String() string {
	return r.From.String() + ":" + r.To.String()
}

// Size represents width (columns) and height (rows).
type Size struct {
	Width  int
	Height int
}

// String formats the Size as "(WxH)".
func (s Size) String() string {
	return fmt.Sprintf("(%dx%d)", s.Width, s.Height)
}

// Direction is a unit step on exactly one axis.
type Direction struct {
	Row int
	Col int
}

var (
	Up    = Direction{Row: -1}
	Down  = Direction{Row: 1}
	Left  = Direction{Col: -1}
	Right = Direction{Col: 1}
)

// Vertical reports whether the direction moves between rows.
func (d Direction) Vertical() bool {
	return d.Row != 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.Row, d.Col)
}
