package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/repositories"
)

// ImpactService answers "which documents use this concept" by reverse
// traversal of USES_CONCEPT edges. Results carry document metadata only;
// bodies are never fetched here.
type ImpactService interface {
	// GetImpact returns the documents linked to the concept, or (nil, nil)
	// when the concept does not exist.
	GetImpact(ctx context.Context, conceptID uuid.UUID) (*models.ConceptImpact, error)

	LinkUsage(ctx context.Context, documentID, conceptID uuid.UUID) error
	UnlinkUsage(ctx context.Context, documentID, conceptID uuid.UUID) error
}

type impactService struct {
	store     graph.Store
	concepts  repositories.ConceptRepository
	documents repositories.DocumentRepository
	logger    *zap.Logger
}

// NewImpactService creates a new ImpactService.
func NewImpactService(store graph.Store, concepts repositories.ConceptRepository, documents repositories.DocumentRepository, logger *zap.Logger) ImpactService {
	return &impactService{
		store:     store,
		concepts:  concepts,
		documents: documents,
		logger:    logger.Named("impact-service"),
	}
}

var _ ImpactService = (*impactService)(nil)

func (s *impactService) GetImpact(ctx context.Context, conceptID uuid.UUID) (*models.ConceptImpact, error) {
	concept, err := s.concepts.GetByID(ctx, conceptID)
	if err != nil {
		return nil, err
	}
	if concept == nil {
		return nil, nil // Unknown concept is a not-found signal, not an error
	}

	nodes, err := s.store.Traverse(ctx, graph.EdgeUsesConcept, conceptID, graph.DirectionIn)
	if err != nil {
		return nil, fmt.Errorf("failed to traverse concept usages: %w", err)
	}

	items := make([]models.DocumentSummary, 0, len(nodes))
	for _, node := range nodes {
		items = append(items, repositories.DocumentFromNode(node).Summarize())
	}
	return &models.ConceptImpact{Items: items, Total: len(items)}, nil
}

func (s *impactService) LinkUsage(ctx context.Context, documentID, conceptID uuid.UUID) error {
	document, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if document == nil {
		return apperrors.NotFoundEntity("document", documentID.String())
	}
	concept, err := s.concepts.GetByID(ctx, conceptID)
	if err != nil {
		return err
	}
	if concept == nil {
		return apperrors.NotFoundEntity("concept", conceptID.String())
	}

	// Idempotent per (document, concept) pair at the store level.
	return s.store.CreateEdge(ctx, graph.EdgeUsesConcept, documentID, conceptID, nil)
}

func (s *impactService) UnlinkUsage(ctx context.Context, documentID, conceptID uuid.UUID) error {
	return s.store.DeleteEdge(ctx, graph.EdgeUsesConcept, documentID, conceptID)
}
