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

// CreateTagRequest for POST /tags
type CreateTagRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateTagRequest for PUT /tags/{tagid}
type UpdateTagRequest struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TagListResponse for GET /tags and GET /entities/{eid}/tags
type TagListResponse struct {
	Tags  []*models.Tag `json:"tags"`
	Total int           `json:"total"`
}

// ============================================================================
// Handler
// ============================================================================

// TagHandler handles tag HTTP requests.
type TagHandler struct {
	tagService services.TagService
	logger     *zap.Logger
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService services.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// RegisterRoutes registers the tag handler's routes on the given mux.
func (h *TagHandler) RegisterRoutes(mux *http.ServeMux, teamMiddleware TeamMiddleware) {
	base := "/api/teams/{tid}/tags"

	mux.HandleFunc("POST "+base, teamMiddleware(h.Create))
	mux.HandleFunc("GET "+base, teamMiddleware(h.List))
	mux.HandleFunc("GET "+base+"/{tagid}", teamMiddleware(h.Get))
	mux.HandleFunc("PUT "+base+"/{tagid}", teamMiddleware(h.Update))
	mux.HandleFunc("DELETE "+base+"/{tagid}", teamMiddleware(h.Delete))

	mux.HandleFunc("GET /api/teams/{tid}/entities/{eid}/tags", teamMiddleware(h.ListForEntity))
	mux.HandleFunc("POST /api/teams/{tid}/entities/{eid}/tags/{tagid}", teamMiddleware(h.Attach))
	mux.HandleFunc("DELETE /api/teams/{tid}/entities/{eid}/tags/{tagid}", teamMiddleware(h.Detach))
}

// Create handles POST /api/teams/{tid}/tags
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	tag, err := h.tagService.Create(r.Context(), services.CreateTagInput{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "create_tag_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: tag}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/teams/{tid}/tags
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50)

	tags, total, err := h.tagService.List(r.Context(), limit, offset)
	if err != nil {
		WriteServiceError(w, h.logger, err, "list_tags_failed")
		return
	}

	response := TagListResponse{Tags: tags, Total: total}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/teams/{tid}/tags/{tagid}
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	tagID, ok := ParseTagID(w, r, h.logger)
	if !ok {
		return
	}

	tag, err := h.tagService.Get(r.Context(), tagID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "get_tag_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: tag}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/teams/{tid}/tags/{tagid}
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	tagID, ok := ParseTagID(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	tag, err := h.tagService.Update(r.Context(), tagID, services.UpdateTagInput{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "update_tag_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: tag}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/teams/{tid}/tags/{tagid}
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tagID, ok := ParseTagID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.tagService.Delete(r.Context(), tagID); err != nil {
		WriteServiceError(w, h.logger, err, "delete_tag_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Tag deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListForEntity handles GET /api/teams/{tid}/entities/{eid}/tags
func (h *TagHandler) ListForEntity(w http.ResponseWriter, r *http.Request) {
	entityID, ok := ParseEntityID(w, r, h.logger)
	if !ok {
		return
	}

	tags, err := h.tagService.ListForEntity(r.Context(), entityID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "list_entity_tags_failed")
		return
	}

	response := TagListResponse{Tags: tags, Total: len(tags)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Attach handles POST /api/teams/{tid}/entities/{eid}/tags/{tagid}
func (h *TagHandler) Attach(w http.ResponseWriter, r *http.Request) {
	entityID, ok := ParseEntityID(w, r, h.logger)
	if !ok {
		return
	}
	tagID, ok := ParseTagID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.tagService.Attach(r.Context(), entityID, tagID); err != nil {
		WriteServiceError(w, h.logger, err, "attach_tag_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Tag attached"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Detach handles DELETE /api/teams/{tid}/entities/{eid}/tags/{tagid}
func (h *TagHandler) Detach(w http.ResponseWriter, r *http.Request) {
	entityID, ok := ParseEntityID(w, r, h.logger)
	if !ok {
		return
	}
	tagID, ok := ParseTagID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.tagService.Detach(r.Context(), entityID, tagID); err != nil {
		WriteServiceError(w, h.logger, err, "detach_tag_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Tag detached"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
