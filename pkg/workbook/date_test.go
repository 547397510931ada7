package workbook

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	tests := []string{
		"15-Jan-2024",
		"01/15/2024",
		"01/15/24",
		"2024-01-15",
	}
	for _, in := range tests {
		got, ok := ParseDate(in)
		if !ok {
			t.Errorf("ParseDate(%q) failed", in)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

// Ambiguous day/month inputs resolve by format order: month/day wins.
func TestParseDateFormatOrder(t *testing.T) {
	got, ok := ParseDate("03/04/2024")
	if !ok {
		t.Fatal("ParseDate(03/04/2024) failed")
	}
	if got.Month() != time.March || got.Day() != 4 {
		t.Errorf("ParseDate(03/04/2024) = %v, want March 4", got)
	}
	// Day-first formats still catch inputs month-first cannot parse.
	got, ok = ParseDate("25/12/2024")
	if !ok {
		t.Fatal("ParseDate(25/12/2024) failed")
	}
	if got.Month() != time.December || got.Day() != 25 {
		t.Errorf("ParseDate(25/12/2024) = %v, want December 25", got)
	}
}

func TestParseDateIdempotent(t *testing.T) {
	first, ok := ParseDate("2024-01-15")
	if !ok {
		t.Fatal("ParseDate failed")
	}
	second, ok := ParseDate(FormatDate(first))
	if !ok {
		t.Fatal("re-parsing normalized output failed")
	}
	if !second.Equal(first) {
		t.Errorf("normalized re-parse produced %v, want %v", second, first)
	}
}

func TestParseDateNone(t *testing.T) {
	for _, in := range []string{"", "notadate", "31/02/2024", "2024-13-01"} {
		if _, ok := ParseDate(in); ok {
			t.Errorf("ParseDate(%q) should have returned none", in)
		}
	}
}
