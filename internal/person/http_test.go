package person_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/personapi/internal/person"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	service, _ := newTestService(t)

	router := chi.NewRouter()
	router.Mount("/persons", person.NewHandler(service).Routes())
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeData(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

/*
TestHandler_CreateThenView posts a person and reads it back.
*/
func TestHandler_CreateThenView(t *testing.T) {
	router := newTestRouter(t)

	created := doRequest(t, router, http.MethodPost, "/persons", `{"name":"John Smith","description":"Person created"}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	data := decodeData(t, created)
	id, ok := data["id"].(float64)
	require.True(t, ok)
	assert.Positive(t, id)
	assert.Equal(t, "John Smith", data["name"])
	assert.Equal(t, "Person created", data["description"])
	assert.Equal(t, "/persons/1", created.Header().Get("Location"))

	viewed := doRequest(t, router, http.MethodGet, "/persons/1", "")
	require.Equal(t, http.StatusOK, viewed.Code)
	assert.Equal(t, data, decodeData(t, viewed))
}

func TestHandler_CreateValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"short name", `{"name":"Jo","description":"Person created"}`},
		{"missing description", `{"name":"John Smith"}`},
		{"malformed json", `{"name":`},
		{"number for name", `{"name":123,"description":"Person created"}`},
		{"trailing data", `{"name":"John Smith","description":"Person created"} {}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := doRequest(t, router, http.MethodPost, "/persons", tc.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
		})
	}

	list := doRequest(t, router, http.MethodGet, "/persons", "")
	assert.Contains(t, list.Body.String(), `"total":0`)
}

/*
TestHandler_WrongFieldType reports a mistyped field against its name
instead of as a bare JSON error.
*/
func TestHandler_WrongFieldType(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/persons", `{"name":123,"description":"Person created"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Code    string `json:"code"`
		Details []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "name", body.Details[0].Field)
	assert.Equal(t, "format", body.Details[0].Rule)
}

func TestHandler_List(t *testing.T) {
	router := newTestRouter(t)

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		recorder := doRequest(t, router, http.MethodPost, "/persons", `{"name":"`+name+`","description":"Listed person"}`)
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := doRequest(t, router, http.MethodGet, "/persons?page=2&limit=2", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []map[string]any `json:"data"`
		Meta struct {
			Page       int `json:"page"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Carol", envelope.Data[0]["name"])
	assert.NotContains(t, envelope.Data[0], "description")
	assert.Equal(t, 2, envelope.Meta.Page)
	assert.Equal(t, 3, envelope.Meta.Total)
	assert.Equal(t, 2, envelope.Meta.TotalPages)
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	router := newTestRouter(t)

	created := doRequest(t, router, http.MethodPost, "/persons", `{"name":"John Smith","description":"Person created"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	updated := doRequest(t, router, http.MethodPut, "/persons/1", `{"name":"Jane Smith","description":"Person updated"}`)
	require.Equal(t, http.StatusOK, updated.Code, updated.Body.String())
	assert.Equal(t, "Jane Smith", decodeData(t, updated)["name"])

	mismatch := doRequest(t, router, http.MethodPut, "/persons/1", `{"id":2,"name":"Jane Smith","description":"Person updated"}`)
	assert.Equal(t, http.StatusBadRequest, mismatch.Code)

	missing := doRequest(t, router, http.MethodPut, "/persons/9", `{"name":"Jane Smith","description":"Person updated"}`)
	assert.Equal(t, http.StatusNotFound, missing.Code)

	deleted := doRequest(t, router, http.MethodDelete, "/persons/1", "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	gone := doRequest(t, router, http.MethodGet, "/persons/1", "")
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestHandler_BadID(t *testing.T) {
	router := newTestRouter(t)

	for _, target := range []string{"/persons/abc", "/persons/0", "/persons/-3"} {
		recorder := doRequest(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
	}
}
