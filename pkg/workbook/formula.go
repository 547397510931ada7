package workbook

import (
	"strconv"
	"strings"
)

// relocatedColumns are the only column letters rewritten when a formula
// moves between rows. The derived formulas in columns B-E reference only
// these two.
var relocatedColumns = []string{"A", "B"}

// RelocateFormula rewrites row-relative references when a formula is copied
// from sourceRow to targetRow, replacing every occurrence of A<sourceRow> and
// B<sourceRow> (either case) with the target row. This is literal substring
// substitution, not formula parsing: a matching reference inside a string
// literal would be rewritten too. Callers must restrict it to the known
// formula shapes in columns B-E.
func RelocateFormula(formula string, sourceRow, targetRow int) string {
	src := strconv.Itoa(sourceRow)
	dst := strconv.Itoa(targetRow)
	out := formula
	for _, col := range relocatedColumns {
		out = strings.ReplaceAll(out, col+src, col+dst)
		out = strings.ReplaceAll(out, strings.ToLower(col)+src, strings.ToLower(col)+dst)
	}
	return out
}
