package workbook

import (
	"errors"
	"testing"
)

func mustTableRef(t *testing.T, ref string) TableRef {
	t.Helper()
	parsed, err := ParseTableRef("Table1", ref, "")
	if err != nil {
		t.Fatalf("ParseTableRef(%q) returned error: %v", ref, err)
	}
	return parsed
}

func TestParseTableRef(t *testing.T) {
	ref := mustTableRef(t, "A1:M5")
	if ref.Start.Cell() != "A1" || ref.End.Cell() != "M5" {
		t.Errorf("parsed ref = %s:%s, want A1:M5", ref.Start.Cell(), ref.End.Cell())
	}
	if ref.Ref() != "A1:M5" {
		t.Errorf("Ref() = %q, want A1:M5", ref.Ref())
	}
	if _, err := ParseTableRef("Table1", "A1", ""); err == nil {
		t.Error("single-cell ref should have failed")
	}
}

func TestDataRowBounds(t *testing.T) {
	first, last := mustTableRef(t, "A1:M5").DataRowBounds()
	if first != 2 || last != 5 {
		t.Errorf("DataRowBounds() = (%d, %d), want (2, 5)", first, last)
	}
}

func TestAfterInsert(t *testing.T) {
	ref := mustTableRef(t, "A1:M5").AfterInsert(6)
	if ref.Ref() != "A1:M6" {
		t.Errorf("AfterInsert(6) = %q, want A1:M6", ref.Ref())
	}
	// An insert inside the existing range leaves the bounds alone.
	ref = mustTableRef(t, "A1:M5").AfterInsert(3)
	if ref.Ref() != "A1:M5" {
		t.Errorf("AfterInsert(3) = %q, want A1:M5", ref.Ref())
	}
}

func TestAfterDelete(t *testing.T) {
	ref, keep, err := mustTableRef(t, "A1:M5").AfterDelete(3)
	if err != nil {
		t.Fatalf("AfterDelete(3) returned error: %v", err)
	}
	if !keep || ref.Ref() != "A1:M4" {
		t.Errorf("AfterDelete(3) = (%q, %v), want (A1:M4, true)", ref.Ref(), keep)
	}
}

func TestAfterDeleteLastDataRowRemovesTable(t *testing.T) {
	_, keep, err := mustTableRef(t, "A1:M2").AfterDelete(2)
	if err != nil {
		t.Fatalf("AfterDelete(2) returned error: %v", err)
	}
	if keep {
		t.Error("deleting the only data row should remove the table")
	}
}

func TestAfterDeleteRejectsHeaderAndOutOfRange(t *testing.T) {
	for _, row := range []int{1, 0, 6} {
		_, _, err := mustTableRef(t, "A1:M5").AfterDelete(row)
		if !errors.Is(err, ErrRowOutOfTableRange) {
			t.Errorf("AfterDelete(%d) error = %v, want ErrRowOutOfTableRange", row, err)
		}
	}
}
