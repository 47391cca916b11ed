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

// CreateVersionRequest for POST /versions
type CreateVersionRequest struct {
	Version     string `json:"version"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
}

// UpdateVersionRequest for PUT /versions/{vid}
type UpdateVersionRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// VersionListResponse for GET /versions
type VersionListResponse struct {
	Versions []*models.Version `json:"versions"`
	Total    int               `json:"total"`
}

// ============================================================================
// Handler
// ============================================================================

// VersionHandler handles documentation version HTTP requests.
type VersionHandler struct {
	versionService services.VersionService
	logger         *zap.Logger
}

// NewVersionHandler creates a new version handler.
func NewVersionHandler(versionService services.VersionService, logger *zap.Logger) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		logger:         logger,
	}
}

// RegisterRoutes registers the version handler's routes on the given mux.
func (h *VersionHandler) RegisterRoutes(mux *http.ServeMux, teamMiddleware TeamMiddleware) {
	base := "/api/teams/{tid}/versions"

	mux.HandleFunc("POST "+base, teamMiddleware(h.Create))
	mux.HandleFunc("GET "+base, teamMiddleware(h.List))
	mux.HandleFunc("GET "+base+"/{vid}", teamMiddleware(h.Get))
	mux.HandleFunc("PUT "+base+"/{vid}", teamMiddleware(h.Update))
	mux.HandleFunc("DELETE "+base+"/{vid}", teamMiddleware(h.Delete))
	mux.HandleFunc("POST "+base+"/{vid}/main", teamMiddleware(h.SetMain))
}

// Create handles POST /api/teams/{tid}/versions
func (h *VersionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	version, err := h.versionService.Create(r.Context(), services.CreateVersionInput{
		Version:     req.Version,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "create_version_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: version}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/teams/{tid}/versions
func (h *VersionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50)

	versions, total, err := h.versionService.List(r.Context(), limit, offset)
	if err != nil {
		WriteServiceError(w, h.logger, err, "list_versions_failed")
		return
	}

	response := VersionListResponse{Versions: versions, Total: total}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/teams/{tid}/versions/{vid}
func (h *VersionHandler) Get(w http.ResponseWriter, r *http.Request) {
	versionID, ok := ParseVersionID(w, r, h.logger)
	if !ok {
		return
	}

	version, err := h.versionService.Get(r.Context(), versionID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "get_version_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: version}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/teams/{tid}/versions/{vid}
func (h *VersionHandler) Update(w http.ResponseWriter, r *http.Request) {
	versionID, ok := ParseVersionID(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	version, err := h.versionService.Update(r.Context(), versionID, services.UpdateVersionInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "update_version_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: version}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/teams/{tid}/versions/{vid}
func (h *VersionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	versionID, ok := ParseVersionID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.versionService.Delete(r.Context(), versionID); err != nil {
		WriteServiceError(w, h.logger, err, "delete_version_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Version deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SetMain handles POST /api/teams/{tid}/versions/{vid}/main
func (h *VersionHandler) SetMain(w http.ResponseWriter, r *http.Request) {
	versionID, ok := ParseVersionID(w, r, h.logger)
	if !ok {
		return
	}

	version, err := h.versionService.SetMain(r.Context(), versionID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "set_main_version_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: version}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
