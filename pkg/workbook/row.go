package workbook

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// The sheet has a fixed 13-column layout. Column A holds the numeric code,
// B-E hold derived formulas, F the title, and G-M free-form fields. Column J
// is date-typed.
const columnCount = 13

const (
	colCode  = 1
	colTitle = 6
	colDate  = 10
)

// formulaColumns are refreshed on every row write.
var formulaColumns = []int{2, 3, 4, 5}

// fieldColumns maps API field names to 1-based column indices.
var fieldColumns = map[string]int{
	"code":  colCode,
	"title": colTitle,
	"col_g": 7,
	"col_h": 8,
	"col_i": 9,
	"col_j": colDate,
	"col_k": 11,
	"col_l": 12,
	"col_m": 13,
}

// columnFields is the reverse of fieldColumns.
var columnFields = func() map[int]string {
	m := make(map[int]string, len(fieldColumns))
	for name, col := range fieldColumns {
		m[col] = name
	}
	return m
}()

// RowFields carries the editable columns of one row. A nil pointer means the
// field was absent from the request and its cell is left untouched.
type RowFields struct {
	Code  *string
	Title *string
	ColG  *string
	ColH  *string
	ColI  *string
	ColJ  *string
	ColK  *string
	ColL  *string
	ColM  *string
}

func (rf RowFields) byName() map[string]*string {
	return map[string]*string{
		"code":  rf.Code,
		"title": rf.Title,
		"col_g": rf.ColG,
		"col_h": rf.ColH,
		"col_i": rf.ColI,
		"col_j": rf.ColJ,
		"col_k": rf.ColK,
		"col_l": rf.ColL,
		"col_m": rf.ColM,
	}
}

// Validate enforces the required-field and numeric-code rules. Code and
// title may be absent from a partial edit, but neither can be cleared, and a
// supplied code must parse as a number.
func (rf RowFields) Validate() error {
	if (rf.Code != nil && *rf.Code == "") || (rf.Title != nil && *rf.Title == "") {
		return ErrMissingRequiredField
	}
	if rf.Code != nil {
		if _, err := strconv.ParseFloat(*rf.Code, 64); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidNumericCode, *rf.Code)
		}
	}
	return nil
}

// applyRowFields validates fields and writes them into the given row, then
// refreshes the derived formulas in columns B-E by self-relocating them.
// Only the row's own cells are touched.
func applyRowFields(f *excelize.File, sheet string, row int, fields RowFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	for name, value := range fields.byName() {
		if value == nil {
			continue
		}
		col := fieldColumns[name]
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		switch col {
		case colDate:
			if *value == "" {
				if err := f.SetCellValue(sheet, cell, nil); err != nil {
					return err
				}
				continue
			}
			parsed, ok := ParseDate(*value)
			if !ok {
				return fmt.Errorf("%w: %q", ErrInvalidDate, *value)
			}
			if err := setDateCell(f, sheet, cell, parsed); err != nil {
				return err
			}
		case colCode:
			// Validate already proved this parses.
			code, _ := strconv.ParseFloat(*value, 64)
			if err := f.SetCellValue(sheet, cell, code); err != nil {
				return err
			}
		default:
			if err := f.SetCellValue(sheet, cell, *value); err != nil {
				return err
			}
		}
	}

	return refreshFormulas(f, sheet, row)
}

// refreshFormulas rewrites the formulas in columns B-E with source and
// target both set to the row itself, a forced recompute-on-save rather than
// an actual move.
func refreshFormulas(f *excelize.File, sheet string, row int) error {
	for _, col := range formulaColumns {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		formula, err := f.GetCellFormula(sheet, cell)
		if err != nil {
			return err
		}
		if formula == "" {
			continue
		}
		updated := RelocateFormula(formula, row, row)
		if err := f.SetCellFormula(sheet, cell, updated); err != nil {
			return err
		}
	}
	return nil
}
