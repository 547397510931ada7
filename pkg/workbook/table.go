package workbook

import (
	"fmt"
	"strings"
)

// TableRef tracks the rectangular reference of a worksheet's named table.
// The first row of the reference is the header; data rows follow it.
type TableRef struct {
	Name  string
	Start Coordinate
	End   Coordinate
	Style string
}

// ParseTableRef parses a table reference such as "A1:M5".
func ParseTableRef(name, ref, style string) (TableRef, error) {
	parts := strings.SplitN(ref, ":", 2)
	if len(parts) != 2 {
		return TableRef{}, fmt.Errorf("%w: table ref %q", ErrInvalidCoordinate, ref)
	}
	start, err := ParseCoordinate(parts[0])
	if err != nil {
		return TableRef{}, err
	}
	end, err := ParseCoordinate(parts[1])
	if err != nil {
		return TableRef{}, err
	}
	return TableRef{Name: name, Start: start, End: end, Style: style}, nil
}

// Ref returns the reference in A1:B2 notation.
func (t TableRef) Ref() string {
	return t.Start.Cell() + ":" + t.End.Cell()
}

// DataRowBounds returns the first and last data row numbers. The header row
// itself is excluded.
func (t TableRef) DataRowBounds() (first, last int) {
	return t.Start.Row + 1, t.End.Row
}

// AfterInsert returns the reference after a row was written at newRow,
// extending the end row when the insert landed past it.
func (t TableRef) AfterInsert(newRow int) TableRef {
	out := t
	if newRow > out.End.Row {
		out.End.Row = newRow
	}
	return out
}

// AfterDelete returns the reference after removing the given row. Deleting a
// row at or above the header, or past the end, fails with
// ErrRowOutOfTableRange. When the last remaining data row is removed the
// table is gone entirely (ok=false) rather than left with a zero-row body.
func (t TableRef) AfterDelete(row int) (TableRef, bool, error) {
	if row <= t.Start.Row || row > t.End.Row {
		return TableRef{}, false, fmt.Errorf("%w: row %d", ErrRowOutOfTableRange, row)
	}
	if t.End.Row-t.Start.Row <= 1 {
		return TableRef{}, false, nil
	}
	out := t
	out.End.Row--
	return out, true, nil
}
