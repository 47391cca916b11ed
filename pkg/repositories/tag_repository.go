package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
)

// TagRepository provides data access for tag nodes. Tag names are unique per
// team; the store surfaces duplicate names as apperrors.ErrConflict.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Tag, int, error)

	Attach(ctx context.Context, entityID, tagID uuid.UUID) error
	Detach(ctx context.Context, entityID, tagID uuid.UUID) error
	ListForEntity(ctx context.Context, entityID uuid.UUID) ([]*models.Tag, error)
}

type tagRepository struct {
	store graph.Store
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(store graph.Store) TagRepository {
	return &tagRepository{store: store}
}

var _ TagRepository = (*tagRepository)(nil)

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	node, err := r.store.CreateNode(ctx, graph.LabelTag, tagProps(tag))
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	tag.ID = node.ID
	tag.Revision = node.Revision
	tag.CreatedAt = node.CreatedAt
	tag.UpdatedAt = node.UpdatedAt
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	node, err := r.store.GetNode(ctx, graph.LabelTag, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	if node == nil {
		return nil, nil // Tag not found
	}
	return tagFromNode(node), nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	result, err := r.store.ListNodes(ctx, graph.LabelTag, map[string]any{"name": name}, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag by name: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}
	return tagFromNode(result.Items[0]), nil
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	node, err := r.store.UpdateNode(ctx, graph.LabelTag, tag.ID, tagProps(tag), tag.Revision)
	if err != nil {
		return err
	}

	tag.Revision = node.Revision
	tag.UpdatedAt = node.UpdatedAt
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteNode(ctx, graph.LabelTag, id)
}

func (r *tagRepository) List(ctx context.Context, limit, offset int) ([]*models.Tag, int, error) {
	result, err := r.store.ListNodes(ctx, graph.LabelTag, nil, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]*models.Tag, 0, len(result.Items))
	for _, node := range result.Items {
		tags = append(tags, tagFromNode(node))
	}
	return tags, result.Total, nil
}

func (r *tagRepository) Attach(ctx context.Context, entityID, tagID uuid.UUID) error {
	return r.store.CreateEdge(ctx, graph.EdgeHasTag, entityID, tagID, nil)
}

func (r *tagRepository) Detach(ctx context.Context, entityID, tagID uuid.UUID) error {
	return r.store.DeleteEdge(ctx, graph.EdgeHasTag, entityID, tagID)
}

func (r *tagRepository) ListForEntity(ctx context.Context, entityID uuid.UUID) ([]*models.Tag, error) {
	nodes, err := r.store.Traverse(ctx, graph.EdgeHasTag, entityID, graph.DirectionOut)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for entity: %w", err)
	}

	tags := make([]*models.Tag, 0, len(nodes))
	for _, node := range nodes {
		tags = append(tags, tagFromNode(node))
	}
	return tags, nil
}

func tagProps(tag *models.Tag) map[string]any {
	return map[string]any{
		"name":        tag.Name,
		"color":       tag.Color,
		"description": tag.Description,
	}
}

func tagFromNode(node *graph.Node) *models.Tag {
	return &models.Tag{
		ID:          node.ID,
		Name:        propString(node.Props, "name"),
		Color:       propString(node.Props, "color"),
		Description: propString(node.Props, "description"),
		Revision:    node.Revision,
		CreatedAt:   node.CreatedAt,
		UpdatedAt:   node.UpdatedAt,
	}
}
