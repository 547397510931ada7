// Package workbook owns the single xlsx worksheet behind the CRUD API: its
// fixed 13-column row layout, the named table's reference range, and the
// per-row formulas and formats that must stay consistent across row edits.
package workbook

import (
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Store is the persistence boundary for the worksheet file. Every operation
// loads the workbook fresh, mutates it and saves before returning; nothing
// is cached between calls. There is no locking: two overlapping mutations
// race at the file with last-write-wins, an accepted limitation of the
// single-user deployment this serves.
type Store struct {
	path    string
	backups bool
}

// NewStore returns a store over the workbook at path. When backups is set, a
// best-effort timestamped copy is made before every mutation.
func NewStore(path string, backups bool) *Store {
	return &Store{path: path, backups: backups}
}

// Record is one data row projected into API field names, plus row_index.
// Columns without a field name (the formula columns B-E) use their column
// letter as the key.
type Record map[string]interface{}

// InsertRow carries the nine editable values of a new row in column order.
type InsertRow struct {
	Code  float64
	Title string
	ColG  string
	ColH  string
	ColI  string
	Date  *time.Time
	ColK  string
	ColL  string
	ColM  string
}

func (s *Store) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		log.Errorf("Failed to open workbook %s: %v", s.path, err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return f, nil
}

func activeSheet(f *excelize.File) string {
	return f.GetSheetName(f.GetActiveSheetIndex())
}

// tableRef returns the worksheet's table reference, if any. The model
// assumes at most one table per worksheet; extras are ignored.
func tableRef(f *excelize.File, sheet string) (TableRef, bool, error) {
	tables, err := f.GetTables(sheet)
	if err != nil || len(tables) == 0 {
		return TableRef{}, false, err
	}
	ref, err := ParseTableRef(tables[0].Name, tables[0].Range, tables[0].StyleName)
	if err != nil {
		return TableRef{}, false, err
	}
	return ref, true, nil
}

// rewriteTable replaces the sheet's table object with the given reference.
func rewriteTable(f *excelize.File, sheet string, ref TableRef) error {
	if err := f.DeleteTable(ref.Name); err != nil {
		return err
	}
	return f.AddTable(sheet, &excelize.Table{
		Range:     ref.Ref(),
		Name:      ref.Name,
		StyleName: ref.Style,
	})
}

func maxRow(f *excelize.File, sheet string) (int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *Store) backup() {
	if !s.backups {
		return
	}
	if _, err := backupWorkbook(s.path); err != nil {
		log.Warnf("Backup warning: %v", err)
	}
}

// Read projects every data row of the tracked table into a Record. A sheet
// with no table yields no rows.
func (s *Store) Read() ([]Record, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := activeSheet(f)
	ref, ok, err := tableRef(f, sheet)
	if err != nil {
		return nil, err
	}

	records := []Record{}
	if !ok {
		return records, nil
	}

	first, last := ref.DataRowBounds()
	for row := first; row <= last; row++ {
		record := Record{"row_index": row}
		for col := 1; col <= columnCount; col++ {
			value, err := readCell(f, sheet, col, row)
			if err != nil {
				return nil, err
			}
			name, ok := columnFields[col]
			if !ok {
				name, _ = excelize.ColumnNumberToName(col)
			}
			record[name] = value
		}
		records = append(records, record)
	}
	return records, nil
}

// readCell projects one cell for Read. Date-typed cells come back as
// dd-mmm-yyyy in the date column and as RFC 3339 timestamps elsewhere;
// numbers are typed, everything else is the displayed string.
func readCell(f *excelize.File, sheet string, col, row int) (interface{}, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}

	ct, _ := f.GetCellType(sheet, cell)
	if ct == excelize.CellTypeDate {
		raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		if serial, perr := strconv.ParseFloat(raw, 64); perr == nil {
			t, cerr := excelize.ExcelDateToTime(serial, false)
			if cerr == nil {
				if col == colDate {
					return FormatDate(t), nil
				}
				return t.Format(time.RFC3339), nil
			}
		}
	}

	value, err := f.GetCellValue(sheet, cell)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	return parseValue(value), nil
}

// parseValue types a displayed cell string: int64, then float64, then the
// string itself.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Update applies a partial field edit to one row and saves.
func (s *Store) Update(rowIndex int, fields RowFields) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := activeSheet(f)
	max, err := maxRow(f, sheet)
	if err != nil {
		return err
	}
	if rowIndex < 1 || rowIndex > max {
		return fmt.Errorf("%w: row %d (max: %d)", ErrRowOutOfRange, rowIndex, max)
	}

	s.backup()
	if err := applyRowFields(f, sheet, rowIndex, fields); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		log.Errorf("Failed to save workbook after update: %v", err)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	log.Infof("Row %d updated", rowIndex)
	return nil
}

// Delete removes one row. When a table is tracked the row must fall inside
// its data range, and the table reference shrinks with it; removing the last
// data row drops the table object entirely. Bare sheets delete any occupied
// row.
func (s *Store) Delete(rowIndex int) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := activeSheet(f)
	max, err := maxRow(f, sheet)
	if err != nil {
		return err
	}
	if rowIndex < 1 || rowIndex > max {
		return fmt.Errorf("%w: row %d (max: %d)", ErrRowOutOfRange, rowIndex, max)
	}

	ref, hasTable, err := tableRef(f, sheet)
	if err != nil {
		return err
	}

	s.backup()
	if hasTable {
		newRef, keep, err := ref.AfterDelete(rowIndex)
		if err != nil {
			return err
		}
		if err := f.RemoveRow(sheet, rowIndex); err != nil {
			return err
		}
		// RemoveRow may already have shrunk or dropped the table object.
		_ = f.DeleteTable(ref.Name)
		if keep {
			if err := f.AddTable(sheet, &excelize.Table{
				Range:     newRef.Ref(),
				Name:      newRef.Name,
				StyleName: newRef.Style,
			}); err != nil {
				return err
			}
		}
	} else {
		if err := f.RemoveRow(sheet, rowIndex); err != nil {
			return err
		}
	}

	if err := f.Save(); err != nil {
		log.Errorf("Failed to save workbook after delete: %v", err)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	log.Infof("Row %d deleted", rowIndex)
	return nil
}

// Insert appends a new row after the current data, using the last existing
// data row as a formatting and formula template, and extends the table
// reference to cover it. A sheet without a table is treated as a single
// implicit region: the row lands after the last occupied row and no table is
// created. Returns the new row number.
func (s *Store) Insert(row InsertRow) (int, error) {
	f, err := s.open()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sheet := activeSheet(f)
	ref, hasTable, err := tableRef(f, sheet)
	if err != nil {
		return 0, err
	}

	startRow := 1
	lastRow, err := maxRow(f, sheet)
	if err != nil {
		return 0, err
	}
	if hasTable {
		startRow = ref.Start.Row
		lastRow = ref.End.Row
	}
	if lastRow < 1 {
		lastRow = 1
	}

	newRow := lastRow + 1
	templateRow := startRow
	if lastRow > startRow {
		templateRow = lastRow
	}

	s.backup()
	if err := copyRowStyles(f, sheet, templateRow, newRow); err != nil {
		return 0, err
	}
	if templateRow > startRow {
		if err := copyRowFormulas(f, sheet, templateRow, newRow); err != nil {
			return 0, err
		}
	}
	if err := writeInsertValues(f, sheet, newRow, row); err != nil {
		return 0, err
	}

	if hasTable {
		if err := rewriteTable(f, sheet, ref.AfterInsert(newRow)); err != nil {
			return 0, err
		}
	}

	if err := f.Save(); err != nil {
		log.Errorf("Failed to save workbook after insert: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	log.Infof("Row %d added", newRow)
	return newRow, nil
}

// copyRowStyles clones cell styles from the template row across all 13
// columns. The date column's number format is overridden later when a date
// value is written.
func copyRowStyles(f *excelize.File, sheet string, sourceRow, targetRow int) error {
	for col := 1; col <= columnCount; col++ {
		src, err := excelize.CoordinatesToCellName(col, sourceRow)
		if err != nil {
			return err
		}
		dst, err := excelize.CoordinatesToCellName(col, targetRow)
		if err != nil {
			return err
		}
		styleID, err := f.GetCellStyle(sheet, src)
		if err != nil || styleID == 0 {
			continue
		}
		if err := f.SetCellStyle(sheet, dst, dst, styleID); err != nil {
			return err
		}
	}
	return nil
}

// copyRowFormulas copies columns B-E from the template row, relocating row
// references; non-formula template cells copy their value instead.
func copyRowFormulas(f *excelize.File, sheet string, sourceRow, targetRow int) error {
	for _, col := range formulaColumns {
		src, err := excelize.CoordinatesToCellName(col, sourceRow)
		if err != nil {
			return err
		}
		dst, err := excelize.CoordinatesToCellName(col, targetRow)
		if err != nil {
			return err
		}
		formula, err := f.GetCellFormula(sheet, src)
		if err == nil && formula != "" {
			if err := f.SetCellFormula(sheet, dst, RelocateFormula(formula, sourceRow, targetRow)); err != nil {
				return err
			}
			continue
		}
		value, err := f.GetCellValue(sheet, src)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, dst, value); err != nil {
			return err
		}
	}
	return nil
}

func writeInsertValues(f *excelize.File, sheet string, row int, values InsertRow) error {
	set := func(col int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	if err := set(fieldColumns["code"], values.Code); err != nil {
		return err
	}
	if err := set(fieldColumns["title"], values.Title); err != nil {
		return err
	}
	if err := set(fieldColumns["col_g"], values.ColG); err != nil {
		return err
	}
	if err := set(fieldColumns["col_h"], values.ColH); err != nil {
		return err
	}
	if err := set(fieldColumns["col_i"], values.ColI); err != nil {
		return err
	}
	if values.Date != nil {
		cell, err := excelize.CoordinatesToCellName(colDate, row)
		if err != nil {
			return err
		}
		if err := setDateCell(f, sheet, cell, *values.Date); err != nil {
			return err
		}
	}
	if err := set(fieldColumns["col_k"], values.ColK); err != nil {
		return err
	}
	if err := set(fieldColumns["col_l"], values.ColL); err != nil {
		return err
	}
	return set(fieldColumns["col_m"], values.ColM)
}

// setDateCell writes a date value and forces the dd-mmm-yyyy display format,
// keeping the cell's other style attributes.
func setDateCell(f *excelize.File, sheet, cell string, t time.Time) error {
	if err := f.SetCellValue(sheet, cell, t); err != nil {
		return err
	}
	styleID, _ := f.GetCellStyle(sheet, cell)
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		style = &excelize.Style{}
	}
	numFmt := DateDisplayFormat
	style.CustomNumFmt = &numFmt
	newID, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, newID)
}
