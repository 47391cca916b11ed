package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
)

// VersionRepository provides data access for documentation version nodes.
type VersionRepository interface {
	Create(ctx context.Context, version *models.Version) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Version, error)
	// GetMain returns the version flagged as main for the team, or (nil, nil)
	// when none is flagged.
	GetMain(ctx context.Context) (*models.Version, error)
	Update(ctx context.Context, version *models.Version) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Version, int, error)
}

type versionRepository struct {
	store graph.Store
}

// NewVersionRepository creates a new VersionRepository.
func NewVersionRepository(store graph.Store) VersionRepository {
	return &versionRepository{store: store}
}

var _ VersionRepository = (*versionRepository)(nil)

func (r *versionRepository) Create(ctx context.Context, version *models.Version) error {
	node, err := r.store.CreateNode(ctx, graph.LabelVersion, versionProps(version))
	if err != nil {
		return fmt.Errorf("failed to create version: %w", err)
	}

	version.ID = node.ID
	version.Revision = node.Revision
	version.CreatedAt = node.CreatedAt
	version.UpdatedAt = node.UpdatedAt
	return nil
}

func (r *versionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Version, error) {
	node, err := r.store.GetNode(ctx, graph.LabelVersion, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	if node == nil {
		return nil, nil // Version not found
	}
	return versionFromNode(node), nil
}

func (r *versionRepository) GetMain(ctx context.Context) (*models.Version, error) {
	result, err := r.store.ListNodes(ctx, graph.LabelVersion, map[string]any{"is_main": true}, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get main version: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}
	return versionFromNode(result.Items[0]), nil
}

func (r *versionRepository) Update(ctx context.Context, version *models.Version) error {
	node, err := r.store.UpdateNode(ctx, graph.LabelVersion, version.ID, versionProps(version), version.Revision)
	if err != nil {
		return err
	}

	version.Revision = node.Revision
	version.UpdatedAt = node.UpdatedAt
	return nil
}

func (r *versionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteNode(ctx, graph.LabelVersion, id)
}

func (r *versionRepository) List(ctx context.Context, limit, offset int) ([]*models.Version, int, error) {
	result, err := r.store.ListNodes(ctx, graph.LabelVersion, nil, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list versions: %w", err)
	}

	versions := make([]*models.Version, 0, len(result.Items))
	for _, node := range result.Items {
		versions = append(versions, versionFromNode(node))
	}
	return versions, result.Total, nil
}

func versionProps(version *models.Version) map[string]any {
	return map[string]any{
		"version":     version.Version,
		"name":        version.Name,
		"description": version.Description,
		"is_public":   version.IsPublic,
		"is_main":     version.IsMain,
	}
}

func versionFromNode(node *graph.Node) *models.Version {
	return &models.Version{
		ID:          node.ID,
		Version:     propString(node.Props, "version"),
		Name:        propString(node.Props, "name"),
		Description: propString(node.Props, "description"),
		IsPublic:    propBool(node.Props, "is_public"),
		IsMain:      propBool(node.Props, "is_main"),
		Revision:    node.Revision,
		CreatedAt:   node.CreatedAt,
		UpdatedAt:   node.UpdatedAt,
	}
}
