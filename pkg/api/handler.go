package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"moviesheet/pkg/workbook"
)

type handler struct {
	store WorkbookStore
}

func (h *handler) getData(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Read()
	if err != nil {
		log.Errorf("Failed to read workbook: %v", err)
		sendError(w, http.StatusInternalServerError, "Error reading data")
		return
	}
	sendSuccess(w, records)
}

func (h *handler) postAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.trim()

	fields := workbook.RowFields{Code: &req.Code, Title: &req.Title}
	if err := fields.Validate(); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	row, err := buildInsertRow(req)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	rowIndex, err := h.store.Insert(row)
	if err != nil {
		log.Errorf("Failed to insert row: %v", err)
		sendStoreError(w, err)
		return
	}
	log.Infof("Data added: %s", req.Title)
	sendSuccess(w, map[string]int{"row_index": rowIndex})
}

func (h *handler) postUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RowIndex == 0 {
		sendError(w, http.StatusBadRequest, "Row index is required for update")
		return
	}

	if err := h.store.Update(req.RowIndex, req.fields()); err != nil {
		log.Errorf("Failed to update row %d: %v", req.RowIndex, err)
		sendStoreError(w, err)
		return
	}
	log.Infof("Row %d updated.", req.RowIndex)
	sendSuccess(w, nil)
}

func (h *handler) postDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RowIndex == 0 {
		sendError(w, http.StatusBadRequest, "Row index is required for delete")
		return
	}

	if err := h.store.Delete(req.RowIndex); err != nil {
		log.Errorf("Failed to delete row %d: %v", req.RowIndex, err)
		sendStoreError(w, err)
		return
	}
	log.Infof("Row %d deleted.", req.RowIndex)
	sendSuccess(w, nil)
}

func (h *handler) getHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// buildInsertRow maps the validated add request onto the nine editable
// columns, applying the original frontend's default for col_i.
func buildInsertRow(req addRequest) (workbook.InsertRow, error) {
	row := workbook.InsertRow{
		Title: req.Title,
		ColG:  req.ColG,
		ColH:  req.ColH,
		ColI:  req.ColI,
		ColK:  req.ColK,
		ColL:  req.ColL,
		ColM:  req.ColM,
	}
	// Validate already proved the code parses.
	row.Code, _ = strconv.ParseFloat(req.Code, 64)
	if row.ColI == "" {
		row.ColI = "Download"
	}
	if req.ColJ != "" {
		date, ok := workbook.ParseDate(req.ColJ)
		if !ok {
			return workbook.InsertRow{}, fmt.Errorf("%w: %q", workbook.ErrInvalidDate, req.ColJ)
		}
		row.Date = &date
	}
	return row, nil
}

// sendStoreError maps store failures onto the response envelope: validation
// errors surface their message with a 400, anything else is a generic 500.
func sendStoreError(w http.ResponseWriter, err error) {
	if workbook.IsValidationError(err) {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	sendError(w, http.StatusInternalServerError, "Server error")
}

func sendSuccess(w http.ResponseWriter, data interface{}) {
	sendJSON(w, http.StatusOK, response{Status: "success", Data: data})
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, response{Status: "error", Message: message})
}

func sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
