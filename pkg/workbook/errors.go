package workbook

import "errors"

// ErrInvalidCoordinate indicates a cell reference that has no column letters
// or no row digits.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ErrMissingRequiredField indicates a missing or empty code/title field.
var ErrMissingRequiredField = errors.New("code and title are required")

// ErrInvalidNumericCode indicates a code field that is not a valid number.
var ErrInvalidNumericCode = errors.New("code must be a valid number")

// ErrInvalidDate indicates a date field matching none of the accepted formats.
var ErrInvalidDate = errors.New("invalid date format")

// ErrRowOutOfRange indicates a row index outside the sheet's occupied rows.
var ErrRowOutOfRange = errors.New("row is out of range")

// ErrRowOutOfTableRange indicates a row outside the table's data rows,
// including the header row itself.
var ErrRowOutOfTableRange = errors.New("row is outside the data range or is a header row")

// ErrStorageUnavailable indicates the workbook file could not be opened.
var ErrStorageUnavailable = errors.New("workbook unavailable")

// IsValidationError reports whether err is a caller mistake rather than a
// storage failure, so the HTTP layer can answer 400 instead of 500.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidCoordinate,
		ErrMissingRequiredField,
		ErrInvalidNumericCode,
		ErrInvalidDate,
		ErrRowOutOfRange,
		ErrRowOutOfTableRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
