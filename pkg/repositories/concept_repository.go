package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
)

// ConceptRepository provides data access for glossary concept nodes.
// Relationship edges between concepts are owned by the relationship service.
type ConceptRepository interface {
	Create(ctx context.Context, concept *models.Concept) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Concept, error)
	Update(ctx context.Context, concept *models.Concept) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter map[string]any, limit, offset int) ([]*models.Concept, int, error)
}

type conceptRepository struct {
	store graph.Store
}

// NewConceptRepository creates a new ConceptRepository.
func NewConceptRepository(store graph.Store) ConceptRepository {
	return &conceptRepository{store: store}
}

var _ ConceptRepository = (*conceptRepository)(nil)

func (r *conceptRepository) Create(ctx context.Context, concept *models.Concept) error {
	node, err := r.store.CreateNode(ctx, graph.LabelConcept, conceptProps(concept))
	if err != nil {
		return fmt.Errorf("failed to create concept: %w", err)
	}

	concept.ID = node.ID
	concept.Revision = node.Revision
	concept.CreatedAt = node.CreatedAt
	concept.UpdatedAt = node.UpdatedAt
	return nil
}

func (r *conceptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Concept, error) {
	node, err := r.store.GetNode(ctx, graph.LabelConcept, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get concept: %w", err)
	}
	if node == nil {
		return nil, nil // Concept not found
	}
	return ConceptFromNode(node), nil
}

func (r *conceptRepository) Update(ctx context.Context, concept *models.Concept) error {
	node, err := r.store.UpdateNode(ctx, graph.LabelConcept, concept.ID, conceptProps(concept), concept.Revision)
	if err != nil {
		return err
	}

	concept.Revision = node.Revision
	concept.UpdatedAt = node.UpdatedAt
	return nil
}

func (r *conceptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteNode(ctx, graph.LabelConcept, id)
}

func (r *conceptRepository) List(ctx context.Context, filter map[string]any, limit, offset int) ([]*models.Concept, int, error) {
	result, err := r.store.ListNodes(ctx, graph.LabelConcept, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list concepts: %w", err)
	}

	concepts := make([]*models.Concept, 0, len(result.Items))
	for _, node := range result.Items {
		concepts = append(concepts, ConceptFromNode(node))
	}
	return concepts, result.Total, nil
}

func conceptProps(concept *models.Concept) map[string]any {
	return map[string]any{
		"term":        concept.Term,
		"description": concept.Description,
		"lang":        concept.Lang,
	}
}

// ConceptFromNode maps a graph node onto a Concept. Exported because the
// relationship service materializes traversal results itself.
func ConceptFromNode(node *graph.Node) *models.Concept {
	return &models.Concept{
		ID:          node.ID,
		Term:        propString(node.Props, "term"),
		Description: propString(node.Props, "description"),
		Lang:        propString(node.Props, "lang"),
		Revision:    node.Revision,
		CreatedAt:   node.CreatedAt,
		UpdatedAt:   node.UpdatedAt,
	}
}
