package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, http.StatusTeapot, map[string]string{"hello": "world"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "world", body["hello"])
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, http.StatusBadGateway, errors.New("upstream broke"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "upstream broke", body["error"])
}

func TestWriteStatusHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
	}{
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "nope") }, http.StatusBadRequest},
		{"not found", func(w http.ResponseWriter) { WriteNotFound(w, "missing") }, http.StatusNotFound},
		{"conflict", func(w http.ResponseWriter) { WriteConflict(w, "taken") }, http.StatusConflict},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w, errors.New("boom")) }, http.StatusInternalServerError},
		{"success", func(w http.ResponseWriter) { WriteSuccess(w, "ok") }, http.StatusOK},
		{"created", func(w http.ResponseWriter) { WriteCreated(w, "ok") }, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestWriteText(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteText(rec, http.StatusOK, "digraph dependencies {\n}\n")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "digraph dependencies {\n}\n", rec.Body.String())
}
