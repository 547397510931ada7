package api

import "moviesheet/pkg/workbook"

type updateCall struct {
	RowIndex int
	Fields   workbook.RowFields
}

type mockStore struct {
	Records []workbook.Record
	ReadErr error

	UpdateCalls []updateCall
	UpdateErr   error

	DeleteCalls []int
	DeleteErr   error

	InsertCalls    []workbook.InsertRow
	InsertRowIndex int
	InsertErr      error
}

func (m *mockStore) Read() ([]workbook.Record, error) {
	return m.Records, m.ReadErr
}

func (m *mockStore) Update(rowIndex int, fields workbook.RowFields) error {
	m.UpdateCalls = append(m.UpdateCalls, updateCall{RowIndex: rowIndex, Fields: fields})
	return m.UpdateErr
}

func (m *mockStore) Delete(rowIndex int) error {
	m.DeleteCalls = append(m.DeleteCalls, rowIndex)
	return m.DeleteErr
}

func (m *mockStore) Insert(row workbook.InsertRow) (int, error) {
	m.InsertCalls = append(m.InsertCalls, row)
	return m.InsertRowIndex, m.InsertErr
}
