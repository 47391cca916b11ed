package graph

import (
	"context"

	"github.com/google/uuid"
)

// Store executes parametrized read/write graph queries. All operations are
// scoped to the team on the connection carried in ctx (database.TeamScope);
// calling without a scope is a programming error and fails immediately.
type Store interface {
	// CreateNode inserts a node with a generated id and creation timestamp.
	CreateNode(ctx context.Context, label string, props map[string]any) (*Node, error)

	// GetNode returns the node, or (nil, nil) when it does not exist.
	GetNode(ctx context.Context, label string, id uuid.UUID) (*Node, error)

	// UpdateNode replaces props and bumps revision and updated_at. The write
	// is a compare-and-swap on expectedRevision: apperrors.ErrConflict when
	// the stored revision differs, apperrors.ErrNotFound when the node does
	// not exist.
	UpdateNode(ctx context.Context, label string, id uuid.UUID, props map[string]any, expectedRevision int64) (*Node, error)

	// DeleteNode removes the node and all edges touching it.
	// apperrors.ErrNotFound when the node does not exist.
	DeleteNode(ctx context.Context, label string, id uuid.UUID) error

	// ListNodes returns one page of nodes of the label whose props contain
	// the filter (nil filter matches all), newest first, plus the total
	// match count.
	ListNodes(ctx context.Context, label string, filter map[string]any, limit, offset int) (*ListResult, error)

	// CreateEdge inserts a typed edge. Idempotent per (type, from, to):
	// recreating an existing edge is a no-op.
	CreateEdge(ctx context.Context, edgeType string, fromID, toID uuid.UUID, props map[string]any) error

	// DeleteEdge removes the edge. apperrors.ErrNotFound when it is absent -
	// absence is reported, not silently accepted.
	DeleteEdge(ctx context.Context, edgeType string, fromID, toID uuid.UUID) error

	// EdgeExists reports whether the edge is present.
	EdgeExists(ctx context.Context, edgeType string, fromID, toID uuid.UUID) (bool, error)

	// Traverse returns the nodes one hop from fromID along edges of the
	// given type, in edge creation order.
	Traverse(ctx context.Context, edgeType string, fromID uuid.UUID, dir Direction) ([]*Node, error)

	// Neighbors is Traverse without materializing nodes: ids only.
	Neighbors(ctx context.Context, edgeType string, fromID uuid.UUID, dir Direction) ([]uuid.UUID, error)
}
