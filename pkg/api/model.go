package api

import (
	"strings"

	"moviesheet/pkg/workbook"
)

// WorkbookStore is the persistence boundary the handlers talk to.
type WorkbookStore interface {
	Read() ([]workbook.Record, error)
	Update(rowIndex int, fields workbook.RowFields) error
	Delete(rowIndex int) error
	Insert(row workbook.InsertRow) (int, error)
}

// response is the envelope every endpoint answers with.
type response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// addRequest carries the nine editable fields of a new row.
type addRequest struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	ColG  string `json:"col_g"`
	ColH  string `json:"col_h"`
	ColI  string `json:"col_i"`
	ColJ  string `json:"col_j"`
	ColK  string `json:"col_k"`
	ColL  string `json:"col_l"`
	ColM  string `json:"col_m"`
}

func (r *addRequest) trim() {
	r.Code = strings.TrimSpace(r.Code)
	r.Title = strings.TrimSpace(r.Title)
	r.ColG = strings.TrimSpace(r.ColG)
	r.ColH = strings.TrimSpace(r.ColH)
	r.ColI = strings.TrimSpace(r.ColI)
	r.ColJ = strings.TrimSpace(r.ColJ)
	r.ColK = strings.TrimSpace(r.ColK)
	r.ColL = strings.TrimSpace(r.ColL)
	r.ColM = strings.TrimSpace(r.ColM)
}

// updateRequest carries a row index plus an optional subset of fields.
// Absent fields stay nil and leave their cells untouched.
type updateRequest struct {
	RowIndex int     `json:"row_index"`
	Code     *string `json:"code"`
	Title    *string `json:"title"`
	ColG     *string `json:"col_g"`
	ColH     *string `json:"col_h"`
	ColI     *string `json:"col_i"`
	ColJ     *string `json:"col_j"`
	ColK     *string `json:"col_k"`
	ColL     *string `json:"col_l"`
	ColM     *string `json:"col_m"`
}

func (r updateRequest) fields() workbook.RowFields {
	return workbook.RowFields{
		Code:  r.Code,
		Title: r.Title,
		ColG:  r.ColG,
		ColH:  r.ColH,
		ColI:  r.ColI,
		ColJ:  r.ColJ,
		ColK:  r.ColK,
		ColL:  r.ColL,
		ColM:  r.ColM,
	}
}

// deleteRequest carries the row to remove.
type deleteRequest struct {
	RowIndex int `json:"row_index"`
}
