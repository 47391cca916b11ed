package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/jsonutil"
	"github.com/docforge/docforge-engine/pkg/services"
)

// SearchRequest for POST /search. Tags accepts a single string or a list.
type SearchRequest struct {
	Query     string              `json:"query"`
	VersionID *uuid.UUID          `json:"version_id,omitempty"`
	Tags      jsonutil.StringList `json:"tags,omitempty"`
	Limit     int                 `json:"limit,omitempty"`
	Offset    int                 `json:"offset,omitempty"`
}

// SearchHandler handles search HTTP requests.
type SearchHandler struct {
	searchService services.SearchService
	logger        *zap.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searchService services.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// RegisterRoutes registers the search handler's routes on the given mux.
func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux, teamMiddleware TeamMiddleware) {
	mux.HandleFunc("POST /api/teams/{tid}/search", teamMiddleware(h.Search))
}

// Search handles POST /api/teams/{tid}/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response, err := h.searchService.Search(r.Context(), req.Query, req.VersionID, req.Tags.Strings(), req.Limit, req.Offset)
	if err != nil {
		WriteServiceError(w, h.logger, err, "search_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
