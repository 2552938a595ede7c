package xlgrid

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Layout will not behave as written
	SeverityWarning                 // Layout may produce unexpected results
)

// ValidationIssue represents a single problem found in a cell layout.
type ValidationIssue struct {
	Severity Severity
	At       RowCol
	Message  string
}

// String formats the issue as "[ERROR] B2: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.At, v.Message)
}

// Validate checks a cell layout for problems the placement scan resolves
// silently: spans below one, cells listed twice, nil entries and spans that
// collide with coordinates claimed by an earlier span.
func Validate(rows [][]Cell) []ValidationIssue {
	var issues []ValidationIssue
	owner := make(map[RowCol]Cell)
	placed := make(map[Cell]bool)

	for rowIdx, row := range rows {
		col := 0
		for i, cell := range row {
			if cell == nil {
				issues = append(issues, ValidationIssue{
					Severity: SeverityWarning,
					At:       RowCol{Row: rowIdx, Col: col},
					Message:  fmt.Sprintf("nil cell at row %d index %d is skipped", rowIdx+1, i),
				})
				continue
			}
			if placed[cell] {
				issues = append(issues, ValidationIssue{
					Severity: SeverityError,
					At:       RowCol{Row: rowIdx, Col: col},
					Message:  fmt.Sprintf("cell %q appears more than once; later entries are skipped", cell.ID()),
				})
				continue
			}
			placed[cell] = true

			for owner[RowCol{Row: rowIdx, Col: col}] != nil {
				col++
			}
			start := RowCol{Row: rowIdx, Col: col}
			if cell.RowSpan() < 1 || cell.ColSpan() < 1 {
				issues = append(issues, ValidationIssue{
					Severity: SeverityWarning,
					At:       start,
					Message:  fmt.Sprintf("cell %q has span %dx%d; treated as at least 1", cell.ID(), cell.ColSpan(), cell.RowSpan()),
				})
			}

			rowSpan, colSpan := spanOf(cell)
			for r := rowIdx; r < rowIdx+rowSpan; r++ {
				for c := col; c < col+colSpan; c++ {
					rc := RowCol{Row: r, Col: c}
					if prev := owner[rc]; prev != nil {
						issues = append(issues, ValidationIssue{
							Severity: SeverityError,
							At:       rc,
							Message:  fmt.Sprintf("cell %q overlaps cell %q", cell.ID(), prev.ID()),
						})
					}
					owner[rc] = cell
				}
			}
			col += colSpan
		}
	}
	return issues
}

// ValidateRules compiles each non-empty rule expression and reports syntax errors.
func ValidateRules(r Rules) []ValidationIssue {
	var issues []ValidationIssue
	for _, rule := range []struct{ name, src string }{
		{"disabled", r.Disabled},
		{"selectable", r.Selectable},
	} {
		if rule.src == "" {
			continue
		}
		if _, err := expr.Compile(rule.src, expr.AllowUndefinedVariables(), expr.AsBool()); err != nil {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				At:       NoCoords,
				Message:  fmt.Sprintf("invalid %s rule %q: %v", rule.name, rule.src, err),
			})
		}
	}
	return issues
}
