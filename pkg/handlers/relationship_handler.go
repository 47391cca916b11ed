package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/services"
)

// RelatedConceptsResponse for relationship list endpoints.
type RelatedConceptsResponse struct {
	Concepts []*models.Concept `json:"concepts"`
	Total    int               `json:"total"`
}

// RelationshipHandler handles the concept relationship HTTP requests. The
// edge endpoints address the related concept in the path: {cid} is always
// the subject (child, part, or synonym side a), {ocid} the object.
type RelationshipHandler struct {
	relationshipService services.RelationshipService
	logger              *zap.Logger
}

// NewRelationshipHandler creates a new relationship handler.
func NewRelationshipHandler(relationshipService services.RelationshipService, logger *zap.Logger) *RelationshipHandler {
	return &RelationshipHandler{
		relationshipService: relationshipService,
		logger:              logger,
	}
}

// RegisterRoutes registers the relationship handler's routes on the given mux.
func (h *RelationshipHandler) RegisterRoutes(mux *http.ServeMux, teamMiddleware TeamMiddleware) {
	base := "/api/teams/{tid}/concepts/{cid}"

	mux.HandleFunc("GET "+base+"/supertypes", teamMiddleware(h.GetSupertypes))
	mux.HandleFunc("GET "+base+"/subtypes", teamMiddleware(h.GetSubtypes))
	mux.HandleFunc("POST "+base+"/supertypes/{ocid}", teamMiddleware(h.LinkSubtypeOf))
	mux.HandleFunc("DELETE "+base+"/supertypes/{ocid}", teamMiddleware(h.UnlinkSubtypeOf))

	mux.HandleFunc("GET "+base+"/wholes", teamMiddleware(h.GetWholeOf))
	mux.HandleFunc("GET "+base+"/parts", teamMiddleware(h.GetParts))
	mux.HandleFunc("POST "+base+"/wholes/{ocid}", teamMiddleware(h.LinkPartOf))
	mux.HandleFunc("DELETE "+base+"/wholes/{ocid}", teamMiddleware(h.UnlinkPartOf))

	mux.HandleFunc("GET "+base+"/synonyms", teamMiddleware(h.GetSynonyms))
	mux.HandleFunc("POST "+base+"/synonyms/{ocid}", teamMiddleware(h.LinkSynonymOf))
	mux.HandleFunc("DELETE "+base+"/synonyms/{ocid}", teamMiddleware(h.UnlinkSynonymOf))
}

func (h *RelationshipHandler) GetSupertypes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.relationshipService.GetSupertypes, "get_supertypes_failed")
}

func (h *RelationshipHandler) GetSubtypes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.relationshipService.GetSubtypes, "get_subtypes_failed")
}

func (h *RelationshipHandler) LinkSubtypeOf(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.relationshipService.LinkSubtypeOf, "link_subtype_failed", "Subtype linked")
}

func (h *RelationshipHandler) UnlinkSubtypeOf(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.relationshipService.UnlinkSubtypeOf, "unlink_subtype_failed", "Subtype unlinked")
}

func (h *RelationshipHandler) GetWholeOf(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.relationshipService.GetWholeOf, "get_wholes_failed")
}

func (h *RelationshipHandler) GetParts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.relationshipService.GetParts, "get_parts_failed")
}

func (h *RelationshipHandler) LinkPartOf(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.relationshipService.LinkPartOf, "link_part_failed", "Part linked")
}

func (h *RelationshipHandler) UnlinkPartOf(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.relationshipService.UnlinkPartOf, "unlink_part_failed", "Part unlinked")
}

func (h *RelationshipHandler) GetSynonyms(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.relationshipService.GetSynonyms, "get_synonyms_failed")
}

func (h *RelationshipHandler) LinkSynonymOf(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.relationshipService.LinkSynonymOf, "link_synonym_failed", "Synonym linked")
}

func (h *RelationshipHandler) UnlinkSynonymOf(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.relationshipService.UnlinkSynonymOf, "unlink_synonym_failed", "Synonym unlinked")
}

// link is the shared shape of the edge write endpoints.
func (h *RelationshipHandler) link(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID, uuid.UUID) error, errorCode, message string) {
	conceptID, ok := ParseConceptID(w, r, h.logger)
	if !ok {
		return
	}
	otherID, ok := parseUUID(w, r, "ocid", "invalid_concept_id", "Invalid concept ID format", h.logger)
	if !ok {
		return
	}

	if err := op(r.Context(), conceptID, otherID); err != nil {
		WriteServiceError(w, h.logger, err, errorCode)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: message}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// list is the shared shape of the traversal endpoints.
func (h *RelationshipHandler) list(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) ([]*models.Concept, error), errorCode string) {
	conceptID, ok := ParseConceptID(w, r, h.logger)
	if !ok {
		return
	}

	concepts, err := op(r.Context(), conceptID)
	if err != nil {
		WriteServiceError(w, h.logger, err, errorCode)
		return
	}

	response := RelatedConceptsResponse{Concepts: concepts, Total: len(concepts)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
