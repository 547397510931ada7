package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"moviesheet/pkg/workbook"
)

func doRequest(store *mockStore, method, path, body string) *httptest.ResponseRecorder {
	router := GetRouter(store)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestGetData(t *testing.T) {
	store := &mockStore{Records: []workbook.Record{
		{"row_index": 2, "code": int64(100), "title": "Film"},
	}}
	rec := doRequest(store, http.MethodGet, "/data", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "success", resp.Status)
	rows, ok := resp.Data.([]interface{})
	assert.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestGetDataStorageError(t *testing.T) {
	store := &mockStore{ReadErr: workbook.ErrStorageUnavailable}
	rec := doRequest(store, http.MethodGet, "/data", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "error", resp.Status)
	// Storage detail stays in the logs, not the envelope.
	assert.Equal(t, "Error reading data", resp.Message)
}

func TestPostAdd(t *testing.T) {
	store := &mockStore{InsertRowIndex: 2}
	body := `{"code":"100","title":"Film","col_g":"g","col_h":"h","col_j":"15-Jan-2024","col_k":"k","col_l":"l","col_m":"m"}`
	rec := doRequest(store, http.MethodPost, "/add", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "success", resp.Status)

	if assert.Len(t, store.InsertCalls, 1) {
		row := store.InsertCalls[0]
		assert.Equal(t, float64(100), row.Code)
		assert.Equal(t, "Film", row.Title)
		assert.Equal(t, "Download", row.ColI, "col_i should default when absent")
		if assert.NotNil(t, row.Date) {
			assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), *row.Date)
		}
	}

	data, ok := resp.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(2), data["row_index"])
}

func TestPostAddValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing code", `{"title":"Film"}`},
		{"missing title", `{"code":"100"}`},
		{"non-numeric code", `{"code":"abc","title":"Film"}`},
		{"bad date", `{"code":"100","title":"Film","col_j":"31/02/2024"}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			rec := doRequest(store, http.MethodPost, "/add", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, store.InsertCalls)
		})
	}
}

func TestPostUpdate(t *testing.T) {
	store := &mockStore{}
	rec := doRequest(store, http.MethodPost, "/update", `{"row_index":2,"title":"Renamed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.Len(t, store.UpdateCalls, 1) {
		call := store.UpdateCalls[0]
		assert.Equal(t, 2, call.RowIndex)
		if assert.NotNil(t, call.Fields.Title) {
			assert.Equal(t, "Renamed", *call.Fields.Title)
		}
		assert.Nil(t, call.Fields.Code, "absent fields must stay nil")
		assert.Nil(t, call.Fields.ColJ)
	}
}

func TestPostUpdateMissingRowIndex(t *testing.T) {
	store := &mockStore{}
	rec := doRequest(store, http.MethodPost, "/update", `{"title":"Renamed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.UpdateCalls)
}

func TestPostUpdateValidationError(t *testing.T) {
	store := &mockStore{UpdateErr: workbook.ErrMissingRequiredField}
	rec := doRequest(store, http.MethodPost, "/update", `{"row_index":2,"code":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Message, "required")
}

func TestPostDelete(t *testing.T) {
	store := &mockStore{}
	rec := doRequest(store, http.MethodPost, "/delete", `{"row_index":3}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{3}, store.DeleteCalls)
}

func TestPostDeleteOutOfTableRange(t *testing.T) {
	store := &mockStore{DeleteErr: workbook.ErrRowOutOfTableRange}
	rec := doRequest(store, http.MethodPost, "/delete", `{"row_index":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostDeleteStorageError(t *testing.T) {
	store := &mockStore{DeleteErr: workbook.ErrStorageUnavailable}
	rec := doRequest(store, http.MethodPost, "/delete", `{"row_index":2}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Server error", resp.Message)
}

func TestHealth(t *testing.T) {
	rec := doRequest(&mockStore{}, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	rec := doRequest(&mockStore{}, http.MethodGet, "/data", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = doRequest(&mockStore{}, http.MethodOptions, "/add", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
