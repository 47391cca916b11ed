package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// CreateDocumentRequest for POST /documents
type CreateDocumentRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Lang        string `json:"lang"`
	Summary     string `json:"summary,omitempty"`
	Content     []byte `json:"content"`
	ContentType string `json:"content_type,omitempty"`
}

// UpdateDocumentRequest for PUT /documents/{did}
type UpdateDocumentRequest struct {
	Title   *string `json:"title,omitempty"`
	Lang    *string `json:"lang,omitempty"`
	Summary *string `json:"summary,omitempty"`
}

// TransitionDocumentRequest for POST /documents/{did}/transition
type TransitionDocumentRequest struct {
	Status string `json:"status"`
}

// DocumentResponse is a document with its body content.
type DocumentResponse struct {
	*models.Document
	Content     []byte `json:"content"`
	ContentType string `json:"content_type"`
}

// DocumentListResponse for GET /documents
type DocumentListResponse struct {
	Documents []*models.Document `json:"documents"`
	Total     int                `json:"total"`
}

// ============================================================================
// Handler
// ============================================================================

// DocumentHandler handles document HTTP requests.
type DocumentHandler struct {
	documentService services.DocumentService
	logger          *zap.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documentService services.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// RegisterRoutes registers the document handler's routes on the given mux.
func (h *DocumentHandler) RegisterRoutes(mux *http.ServeMux, teamMiddleware TeamMiddleware) {
	base := "/api/teams/{tid}/documents"

	mux.HandleFunc("POST "+base, teamMiddleware(h.Create))
	mux.HandleFunc("GET "+base, teamMiddleware(h.List))
	mux.HandleFunc("GET "+base+"/{did}", teamMiddleware(h.Get))
	mux.HandleFunc("PUT "+base+"/{did}", teamMiddleware(h.Update))
	mux.HandleFunc("DELETE "+base+"/{did}", teamMiddleware(h.Delete))
	mux.HandleFunc("POST "+base+"/{did}/transition", teamMiddleware(h.Transition))
	mux.HandleFunc("POST "+base+"/{did}/working-copy", teamMiddleware(h.CreateWorkingCopy))
}

// Create handles POST /api/teams/{tid}/documents
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "text/markdown"
	}

	doc, err := h.documentService.Create(r.Context(), services.CreateDocumentInput{
		Type:        req.Type,
		Title:       req.Title,
		Lang:        req.Lang,
		Summary:     req.Summary,
		Body:        req.Content,
		ContentType: contentType,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "create_document_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: doc}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/teams/{tid}/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := map[string]any{}
	for _, key := range []string{"type", "status", "lang"} {
		if v := r.URL.Query().Get(key); v != "" {
			filter[key] = v
		}
	}
	limit, offset := parsePagination(r, 50)

	docs, total, err := h.documentService.List(r.Context(), filter, limit, offset)
	if err != nil {
		WriteServiceError(w, h.logger, err, "list_documents_failed")
		return
	}

	response := DocumentListResponse{Documents: docs, Total: total}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/teams/{tid}/documents/{did}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	documentID, ok := ParseDocumentID(w, r, h.logger)
	if !ok {
		return
	}

	doc, body, err := h.documentService.Get(r.Context(), documentID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "get_document_failed")
		return
	}
	if doc == nil {
		if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Document not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := DocumentResponse{
		Document:    doc,
		Content:     body.Data,
		ContentType: body.ContentType,
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/teams/{tid}/documents/{did}
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	documentID, ok := ParseDocumentID(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	doc, err := h.documentService.Update(r.Context(), documentID, services.UpdateDocumentInput{
		Title:   req.Title,
		Lang:    req.Lang,
		Summary: req.Summary,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "update_document_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: doc}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/teams/{tid}/documents/{did}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	documentID, ok := ParseDocumentID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.documentService.Delete(r.Context(), documentID); err != nil {
		WriteServiceError(w, h.logger, err, "delete_document_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Document deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Transition handles POST /api/teams/{tid}/documents/{did}/transition
func (h *DocumentHandler) Transition(w http.ResponseWriter, r *http.Request) {
	documentID, ok := ParseDocumentID(w, r, h.logger)
	if !ok {
		return
	}

	var req TransitionDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	doc, err := h.documentService.ApplyTransition(r.Context(), documentID, req.Status)
	if err != nil {
		WriteServiceError(w, h.logger, err, "transition_document_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: doc}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateWorkingCopy handles POST /api/teams/{tid}/documents/{did}/working-copy
func (h *DocumentHandler) CreateWorkingCopy(w http.ResponseWriter, r *http.Request) {
	documentID, ok := ParseDocumentID(w, r, h.logger)
	if !ok {
		return
	}

	doc, err := h.documentService.CreateWorkingCopy(r.Context(), documentID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "create_working_copy_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: doc}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
