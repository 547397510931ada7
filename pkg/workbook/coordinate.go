package workbook

import (
	"fmt"
	"strconv"
	"unicode"
)

// Coordinate is a cell location: column letters plus a 1-based row number.
type Coordinate struct {
	Column string
	Row    int
}

// Cell returns the coordinate in A1 notation.
func (c Coordinate) Cell() string {
	return c.Column + strconv.Itoa(c.Row)
}

// ParseCoordinate parses a cell reference such as "A10" into its column
// letters and row number. Letters are folded to upper case. Unlike
// excelize.CellNameToCoordinates it tolerates any interleaving of letters
// and digits, which is how stray references in older workbooks show up.
func ParseCoordinate(text string) (Coordinate, error) {
	var col, rowStr string
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			col += string(unicode.ToUpper(r))
		case unicode.IsDigit(r):
			rowStr += string(r)
		}
	}
	if col == "" || rowStr == "" {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, text)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, text)
	}
	return Coordinate{Column: col, Row: row}, nil
}
