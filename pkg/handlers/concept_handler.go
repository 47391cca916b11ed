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

// CreateConceptRequest for POST /concepts
type CreateConceptRequest struct {
	Term        string `json:"term"`
	Description string `json:"description,omitempty"`
	Lang        string `json:"lang"`
}

// UpdateConceptRequest for PUT /concepts/{cid}
type UpdateConceptRequest struct {
	Term        *string `json:"term,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ConceptListResponse for GET /concepts
type ConceptListResponse struct {
	Concepts []*models.Concept `json:"concepts"`
	Total    int               `json:"total"`
}

// ============================================================================
// Handler
// ============================================================================

// ConceptHandler handles glossary concept HTTP requests, including impact
// analysis and document usage edges.
type ConceptHandler struct {
	conceptService services.ConceptService
	impactService  services.ImpactService
	logger         *zap.Logger
}

// NewConceptHandler creates a new concept handler.
func NewConceptHandler(conceptService services.ConceptService, impactService services.ImpactService, logger *zap.Logger) *ConceptHandler {
	return &ConceptHandler{
		conceptService: conceptService,
		impactService:  impactService,
		logger:         logger,
	}
}

// RegisterRoutes registers the concept handler's routes on the given mux.
func (h *ConceptHandler) RegisterRoutes(mux *http.ServeMux, teamMiddleware TeamMiddleware) {
	base := "/api/teams/{tid}/concepts"

	mux.HandleFunc("POST "+base, teamMiddleware(h.Create))
	mux.HandleFunc("GET "+base, teamMiddleware(h.List))
	mux.HandleFunc("GET "+base+"/{cid}", teamMiddleware(h.Get))
	mux.HandleFunc("PUT "+base+"/{cid}", teamMiddleware(h.Update))
	mux.HandleFunc("DELETE "+base+"/{cid}", teamMiddleware(h.Delete))
	mux.HandleFunc("GET "+base+"/{cid}/impact", teamMiddleware(h.GetImpact))

	mux.HandleFunc("POST /api/teams/{tid}/documents/{did}/concepts/{cid}", teamMiddleware(h.LinkUsage))
	mux.HandleFunc("DELETE /api/teams/{tid}/documents/{did}/concepts/{cid}", teamMiddleware(h.UnlinkUsage))
}

// Create handles POST /api/teams/{tid}/concepts
func (h *ConceptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateConceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	concept, err := h.conceptService.Create(r.Context(), services.CreateConceptInput{
		Term:        req.Term,
		Description: req.Description,
		Lang:        req.Lang,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "create_concept_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: concept}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/teams/{tid}/concepts
func (h *ConceptHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := map[string]any{}
	if lang := r.URL.Query().Get("lang"); lang != "" {
		filter["lang"] = lang
	}
	limit, offset := parsePagination(r, 50)

	concepts, total, err := h.conceptService.List(r.Context(), filter, limit, offset)
	if err != nil {
		WriteServiceError(w, h.logger, err, "list_concepts_failed")
		return
	}

	response := ConceptListResponse{Concepts: concepts, Total: total}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/teams/{tid}/concepts/{cid}
func (h *ConceptHandler) Get(w http.ResponseWriter, r *http.Request) {
	conceptID, ok := ParseConceptID(w, r, h.logger)
	if !ok {
		return
	}

	concept, err := h.conceptService.Get(r.Context(), conceptID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "get_concept_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: concept}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/teams/{tid}/concepts/{cid}
func (h *ConceptHandler) Update(w http.ResponseWriter, r *http.Request) {
	conceptID, ok := ParseConceptID(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdateConceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	concept, err := h.conceptService.Update(r.Context(), conceptID, services.UpdateConceptInput{
		Term:        req.Term,
		Description: req.Description,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err, "update_concept_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: concept}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/teams/{tid}/concepts/{cid}
func (h *ConceptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	conceptID, ok := ParseConceptID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.conceptService.Delete(r.Context(), conceptID); err != nil {
		WriteServiceError(w, h.logger, err, "delete_concept_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Concept deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetImpact handles GET /api/teams/{tid}/concepts/{cid}/impact
func (h *ConceptHandler) GetImpact(w http.ResponseWriter, r *http.Request) {
	conceptID, ok := ParseConceptID(w, r, h.logger)
	if !ok {
		return
	}

	impact, err := h.impactService.GetImpact(r.Context(), conceptID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "get_impact_failed")
		return
	}
	if impact == nil {
		if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Concept not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: impact}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// LinkUsage handles POST /api/teams/{tid}/documents/{did}/concepts/{cid}
func (h *ConceptHandler) LinkUsage(w http.ResponseWriter, r *http.Request) {
	documentID, ok := ParseDocumentID(w, r, h.logger)
	if !ok {
		return
	}
	conceptID, ok := ParseConceptID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.impactService.LinkUsage(r.Context(), documentID, conceptID); err != nil {
		WriteServiceError(w, h.logger, err, "link_usage_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Usage linked"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UnlinkUsage handles DELETE /api/teams/{tid}/documents/{did}/concepts/{cid}
func (h *ConceptHandler) UnlinkUsage(w http.ResponseWriter, r *http.Request) {
	documentID, ok := ParseDocumentID(w, r, h.logger)
	if !ok {
		return
	}
	conceptID, ok := ParseConceptID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.impactService.UnlinkUsage(r.Context(), documentID, conceptID); err != nil {
		WriteServiceError(w, h.logger, err, "unlink_usage_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Usage unlinked"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
