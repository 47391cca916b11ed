package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// CreatePageRequest for POST /pages
type CreatePageRequest struct {
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Order      int        `json:"order"`
	Visible    bool       `json:"visible"`
	VersionID  uuid.UUID  `json:"version_id"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
}

// UpdatePageRequest for PUT /pages/{pgid}. A set parent_id or document_id
// moves the edge; detaching has its own endpoints. Absent fields are left
// untouched.
type UpdatePageRequest struct {
	Slug       *string    `json:"slug,omitempty"`
	Title      *string    `json:"title,omitempty"`
	Order      *int       `json:"order,omitempty"`
	Visible    *bool      `json:"visible,omitempty"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
}

// PageListResponse for GET /versions/{vid}/pages
type PageListResponse struct {
	Pages []*models.Page `json:"pages"`
	Total int            `json:"total"`
}

// ============================================================================
// Handler
// ============================================================================

// PageHandler handles page and navigation HTTP requests.
type PageHandler struct {
	pageService       services.PageService
	navigationService services.NavigationService
	logger            *zap.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(pageService services.PageService, navigationService services.NavigationService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		pageService:       pageService,
		navigationService: navigationService,
		logger:            logger,
	}
}

// RegisterRoutes registers the page handler's routes on the given mux.
func (h *PageHandler) RegisterRoutes(mux *http.ServeMux, teamMiddleware TeamMiddleware) {
	base := "/api/teams/{tid}/pages"

	mux.HandleFunc("POST "+base, teamMiddleware(h.Create))
	mux.HandleFunc("GET "+base+"/{pgid}", teamMiddleware(h.Get))
	mux.HandleFunc("PUT "+base+"/{pgid}", teamMiddleware(h.Update))
	mux.HandleFunc("DELETE "+base+"/{pgid}", teamMiddleware(h.Delete))
	mux.HandleFunc("DELETE "+base+"/{pgid}/parent", teamMiddleware(h.DetachParent))
	mux.HandleFunc("DELETE "+base+"/{pgid}/document", teamMiddleware(h.DetachDocument))

	mux.HandleFunc("GET /api/teams/{tid}/versions/{vid}/pages", teamMiddleware(h.ListByVersion))
	mux.HandleFunc("GET /api/teams/{tid}/versions/{vid}/navigation", teamMiddleware(h.GetNavigation))
}

// Create handles POST /api/teams/{tid}/pages
func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	page, err := h.pageService.Create(r.Context(), services.CreatePageInput{
		Slug:       req.Slug,
		Title:      req.Title,
		Order:      req.Order,
		Visible:    req.Visible,
		VersionID:  req.VersionID,
		ParentID:   req.ParentID,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "create_page_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: page}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/teams/{tid}/pages/{pgid}
func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	pageID, ok := ParsePageID(w, r, h.logger)
	if !ok {
		return
	}

	page, err := h.pageService.Get(r.Context(), pageID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "get_page_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: page}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/teams/{tid}/pages/{pgid}
func (h *PageHandler) Update(w http.ResponseWriter, r *http.Request) {
	pageID, ok := ParsePageID(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	page, err := h.pageService.Update(r.Context(), pageID, services.UpdatePageInput{
		Slug:       req.Slug,
		Title:      req.Title,
		Order:      req.Order,
		Visible:    req.Visible,
		ParentID:   req.ParentID,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "update_page_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: page}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/teams/{tid}/pages/{pgid}
func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pageID, ok := ParsePageID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.pageService.Delete(r.Context(), pageID); err != nil {
		WriteServiceError(w, h.logger, err, "delete_page_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Page deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DetachParent handles DELETE /api/teams/{tid}/pages/{pgid}/parent
func (h *PageHandler) DetachParent(w http.ResponseWriter, r *http.Request) {
	pageID, ok := ParsePageID(w, r, h.logger)
	if !ok {
		return
	}

	page, err := h.pageService.DetachParent(r.Context(), pageID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "detach_parent_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: page}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DetachDocument handles DELETE /api/teams/{tid}/pages/{pgid}/document
func (h *PageHandler) DetachDocument(w http.ResponseWriter, r *http.Request) {
	pageID, ok := ParsePageID(w, r, h.logger)
	if !ok {
		return
	}

	page, err := h.pageService.DetachDocument(r.Context(), pageID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "detach_document_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: page}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByVersion handles GET /api/teams/{tid}/versions/{vid}/pages
func (h *PageHandler) ListByVersion(w http.ResponseWriter, r *http.Request) {
	versionID, ok := ParseVersionID(w, r, h.logger)
	if !ok {
		return
	}

	pages, err := h.pageService.ListByVersion(r.Context(), versionID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "list_pages_failed")
		return
	}

	response := PageListResponse{Pages: pages, Total: len(pages)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetNavigation handles GET /api/teams/{tid}/versions/{vid}/navigation
func (h *PageHandler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	versionID, ok := ParseVersionID(w, r, h.logger)
	if !ok {
		return
	}

	tree, err := h.navigationService.BuildNavigation(r.Context(), versionID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "build_navigation_failed")
		return
	}
	if tree == nil {
		if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Version not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: tree}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
