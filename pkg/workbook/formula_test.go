package workbook

import "testing"

func TestRelocateFormula(t *testing.T) {
	tests := []struct {
		formula string
		src     int
		dst     int
		want    string
	}{
		{`IF(A5="","",B5*2)`, 5, 9, `IF(A9="","",B9*2)`},
		{`a5+b5`, 5, 6, `a6+b6`},
		{`SUM(C5:D5)`, 5, 9, `SUM(C5:D5)`},
		{`A5+A50`, 5, 9, `A9+A90`},
	}
	for _, tt := range tests {
		got := RelocateFormula(tt.formula, tt.src, tt.dst)
		if got != tt.want {
			t.Errorf("RelocateFormula(%q, %d, %d) = %q, want %q", tt.formula, tt.src, tt.dst, got, tt.want)
		}
	}
}

// Self-relocation is a forced refresh and must leave the text unchanged.
func TestRelocateFormulaSameRow(t *testing.T) {
	formula := `IF(A2="","",CONCAT(A2,B2))`
	if got := RelocateFormula(formula, 2, 2); got != formula {
		t.Errorf("self-relocation changed %q to %q", formula, got)
	}
}
