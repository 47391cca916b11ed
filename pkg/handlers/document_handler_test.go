package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/objectstore"
)

// ============================================================================
// Create Handler Tests
// ============================================================================

func TestDocumentHandler_Create(t *testing.T) {
	doc := &models.Document{ID: uuid.New(), Type: models.DocumentTypeGeneral, Status: models.DocumentStatusDraft, Title: "Intro", Lang: "en"}
	mockService := &mockDocumentServiceForHandler{doc: doc}
	handler := NewDocumentHandler(mockService, zap.NewNop())

	body, _ := json.Marshal(CreateDocumentRequest{
		Type:    models.DocumentTypeGeneral,
		Title:   "Intro",
		Lang:    "en",
		Content: []byte("# Intro\n"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/teams/"+uuid.NewString()+"/documents", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)

	require.NotNil(t, mockService.lastInput)
	assert.Equal(t, "Intro", mockService.lastInput.Title)
	// Content type defaults when the request omits it.
	assert.Equal(t, "text/markdown", mockService.lastInput.ContentType)
}

func TestDocumentHandler_Create_InvalidBody(t *testing.T) {
	handler := NewDocumentHandler(&mockDocumentServiceForHandler{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/teams/"+uuid.NewString()+"/documents", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "invalid_request", errResp["error"])
}

func TestDocumentHandler_Create_ValidationError(t *testing.T) {
	mockService := &mockDocumentServiceForHandler{err: apperrors.Validation("document title must not be empty")}
	handler := NewDocumentHandler(mockService, zap.NewNop())

	body, _ := json.Marshal(CreateDocumentRequest{Type: models.DocumentTypeGeneral, Lang: "en"})
	req := httptest.NewRequest(http.MethodPost, "/api/teams/"+uuid.NewString()+"/documents", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "validation_failed", errResp["error"])
}

// ============================================================================
// Get Handler Tests
// ============================================================================

func TestDocumentHandler_Get(t *testing.T) {
	doc := &models.Document{ID: uuid.New(), Type: models.DocumentTypeGeneral, Status: models.DocumentStatusDraft, Title: "Intro", Lang: "en"}
	mockService := &mockDocumentServiceForHandler{
		doc:  doc,
		body: &objectstore.Object{Data: []byte("# Intro\n"), ContentType: "text/markdown"},
	}
	handler := NewDocumentHandler(mockService, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/teams/"+uuid.NewString()+"/documents/"+doc.ID.String(), nil)
	req.SetPathValue("did", doc.ID.String())
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)

	dataBytes, err := json.Marshal(response.Data)
	require.NoError(t, err)

	var docResponse DocumentResponse
	require.NoError(t, json.Unmarshal(dataBytes, &docResponse))
	assert.Equal(t, doc.ID, docResponse.ID)
	assert.Equal(t, []byte("# Intro\n"), docResponse.Content)
	assert.Equal(t, "text/markdown", docResponse.ContentType)
}

func TestDocumentHandler_Get_NotFound(t *testing.T) {
	handler := NewDocumentHandler(&mockDocumentServiceForHandler{}, zap.NewNop())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/teams/"+uuid.NewString()+"/documents/"+id.String(), nil)
	req.SetPathValue("did", id.String())
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "not_found", errResp["error"])
}

func TestDocumentHandler_Get_InvalidID(t *testing.T) {
	handler := NewDocumentHandler(&mockDocumentServiceForHandler{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/teams/"+uuid.NewString()+"/documents/not-a-uuid", nil)
	req.SetPathValue("did", "not-a-uuid")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Transition Handler Tests
// ============================================================================

func TestDocumentHandler_Transition(t *testing.T) {
	doc := &models.Document{ID: uuid.New(), Status: models.DocumentStatusInReview}
	mockService := &mockDocumentServiceForHandler{doc: doc}
	handler := NewDocumentHandler(mockService, zap.NewNop())

	body, _ := json.Marshal(TransitionDocumentRequest{Status: models.DocumentStatusInReview})
	req := httptest.NewRequest(http.MethodPost, "/api/teams/"+uuid.NewString()+"/documents/"+doc.ID.String()+"/transition", bytes.NewReader(body))
	req.SetPathValue("did", doc.ID.String())
	rec := httptest.NewRecorder()

	handler.Transition(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DocumentStatusInReview, mockService.lastStatus)
}

func TestDocumentHandler_Transition_Rejected(t *testing.T) {
	mockService := &mockDocumentServiceForHandler{
		err: &apperrors.StatusTransitionError{Current: models.DocumentStatusDraft, Requested: models.DocumentStatusPublish},
	}
	handler := NewDocumentHandler(mockService, zap.NewNop())

	id := uuid.New()
	body, _ := json.Marshal(TransitionDocumentRequest{Status: models.DocumentStatusPublish})
	req := httptest.NewRequest(http.MethodPost, "/api/teams/"+uuid.NewString()+"/documents/"+id.String()+"/transition", bytes.NewReader(body))
	req.SetPathValue("did", id.String())
	rec := httptest.NewRecorder()

	handler.Transition(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "validation_failed", errResp["error"])
	assert.Contains(t, errResp["message"], models.DocumentStatusDraft)
}

// ============================================================================
// Conflict Mapping Tests
// ============================================================================

func TestDocumentHandler_Update_Conflict(t *testing.T) {
	mockService := &mockDocumentServiceForHandler{err: apperrors.ErrConflict}
	handler := NewDocumentHandler(mockService, zap.NewNop())

	id := uuid.New()
	body, _ := json.Marshal(UpdateDocumentRequest{})
	req := httptest.NewRequest(http.MethodPut, "/api/teams/"+uuid.NewString()+"/documents/"+id.String(), bytes.NewReader(body))
	req.SetPathValue("did", id.String())
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "conflict", errResp["error"])
}
