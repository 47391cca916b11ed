package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
)

func TestWriteJSON_SetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, http.StatusOK, ApiResponse{Success: true, Message: "ok"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, "ok", response.Message)
}

func TestErrorResponse_Shape(t *testing.T) {
	rec := httptest.NewRecorder()

	err := ErrorResponse(rec, http.StatusNotFound, "not_found", "Document not found")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "not_found", errResp["error"])
	assert.Equal(t, "Document not found", errResp["message"])
}

func TestWriteServiceError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.NotFoundEntity("document", "abc"), http.StatusNotFound, "not_found"},
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest, "validation_failed"},
		{"transition", &apperrors.StatusTransitionError{Current: "draft", Requested: "publish"}, http.StatusBadRequest, "validation_failed"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "do_thing_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteServiceError(rec, zap.NewNop(), tt.err, "do_thing_failed")

			assert.Equal(t, tt.wantStatus, rec.Code)

			var errResp map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
			assert.Equal(t, tt.wantCode, errResp["error"])
		})
	}
}
