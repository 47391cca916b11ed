package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/database"
)

type postgresStore struct{}

// NewPostgresStore creates a Store backed by the engine_nodes and
// engine_edges tables.
func NewPostgresStore() Store {
	return &postgresStore{}
}

var _ Store = (*postgresStore)(nil)

const teamExpr = "current_setting('app.current_team_id')::uuid"

// ============================================================================
// Node Operations
// ============================================================================

func (s *postgresStore) CreateNode(ctx context.Context, label string, props map[string]any) (*Node, error) {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no team scope in context")
	}

	propsJSON, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal node props: %w", err)
	}

	node := &Node{
		ID:    uuid.New(),
		Label: label,
		Props: props,
	}

	query := `
		INSERT INTO engine_nodes (id, team_id, label, props)
		VALUES ($1, ` + teamExpr + `, $2, $3)
		RETURNING revision, created_at, updated_at`

	err = scope.Conn.QueryRow(ctx, query, node.ID, label, propsJSON).
		Scan(&node.Revision, &node.CreatedAt, &node.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("failed to create %s node: %w", label, err)
	}

	return node, nil
}

func (s *postgresStore) GetNode(ctx context.Context, label string, id uuid.UUID) (*Node, error) {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no team scope in context")
	}

	query := `
		SELECT id, label, props, revision, created_at, updated_at
		FROM engine_nodes
		WHERE team_id = ` + teamExpr + ` AND label = $1 AND id = $2`

	row := scope.Conn.QueryRow(ctx, query, label, id)
	node, err := scanNode(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Node not found
		}
		return nil, err
	}

	return node, nil
}

func (s *postgresStore) UpdateNode(ctx context.Context, label string, id uuid.UUID, props map[string]any, expectedRevision int64) (*Node, error) {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no team scope in context")
	}

	propsJSON, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal node props: %w", err)
	}

	query := `
		UPDATE engine_nodes
		SET props = $3, revision = revision + 1, updated_at = now()
		WHERE team_id = ` + teamExpr + ` AND label = $1 AND id = $2 AND revision = $4
		RETURNING id, label, props, revision, created_at, updated_at`

	row := scope.Conn.QueryRow(ctx, query, label, id, propsJSON, expectedRevision)
	node, err := scanNode(row)
	if err == nil {
		return node, nil
	}
	if isUniqueViolation(err) {
		return nil, apperrors.ErrConflict
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No row matched: distinguish a missing node from a revision mismatch.
	var exists bool
	checkQuery := `
		SELECT EXISTS (
			SELECT 1 FROM engine_nodes
			WHERE team_id = ` + teamExpr + ` AND label = $1 AND id = $2
		)`
	if err := scope.Conn.QueryRow(ctx, checkQuery, label, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check %s node existence: %w", label, err)
	}
	if exists {
		return nil, apperrors.ErrConflict
	}
	return nil, apperrors.ErrNotFound
}

func (s *postgresStore) DeleteNode(ctx context.Context, label string, id uuid.UUID) error {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return fmt.Errorf("no team scope in context")
	}

	// Edges are removed by the ON DELETE CASCADE constraints on engine_edges.
	query := `DELETE FROM engine_nodes WHERE team_id = ` + teamExpr + ` AND label = $1 AND id = $2`

	result, err := scope.Conn.Exec(ctx, query, label, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s node: %w", label, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (s *postgresStore) ListNodes(ctx context.Context, label string, filter map[string]any, limit, offset int) (*ListResult, error) {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no team scope in context")
	}

	filterJSON := []byte("{}")
	if len(filter) > 0 {
		var err error
		filterJSON, err = json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal node filter: %w", err)
		}
	}

	countQuery := `
		SELECT count(*)
		FROM engine_nodes
		WHERE team_id = ` + teamExpr + ` AND label = $1 AND props @> $2`

	var total int
	if err := scope.Conn.QueryRow(ctx, countQuery, label, filterJSON).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count %s nodes: %w", label, err)
	}

	query := `
		SELECT id, label, props, revision, created_at, updated_at
		FROM engine_nodes
		WHERE team_id = ` + teamExpr + ` AND label = $1 AND props @> $2
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`

	rows, err := scope.Conn.Query(ctx, query, label, filterJSON, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s nodes: %w", label, err)
	}
	defer rows.Close()

	items, err := collectNodes(rows)
	if err != nil {
		return nil, err
	}

	return &ListResult{Items: items, Total: total}, nil
}

// ============================================================================
// Edge Operations
// ============================================================================

func (s *postgresStore) CreateEdge(ctx context.Context, edgeType string, fromID, toID uuid.UUID, props map[string]any) error {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return fmt.Errorf("no team scope in context")
	}

	propsJSON, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("failed to marshal edge props: %w", err)
	}

	query := `
		INSERT INTO engine_edges (team_id, edge_type, from_id, to_id, props)
		VALUES (` + teamExpr + `, $1, $2, $3, $4)
		ON CONFLICT (team_id, edge_type, from_id, to_id) DO NOTHING`

	if _, err := scope.Conn.Exec(ctx, query, edgeType, fromID, toID, propsJSON); err != nil {
		return fmt.Errorf("failed to create %s edge: %w", edgeType, err)
	}

	return nil
}

func (s *postgresStore) DeleteEdge(ctx context.Context, edgeType string, fromID, toID uuid.UUID) error {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return fmt.Errorf("no team scope in context")
	}

	query := `
		DELETE FROM engine_edges
		WHERE team_id = ` + teamExpr + ` AND edge_type = $1 AND from_id = $2 AND to_id = $3`

	result, err := scope.Conn.Exec(ctx, query, edgeType, fromID, toID)
	if err != nil {
		return fmt.Errorf("failed to delete %s edge: %w", edgeType, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (s *postgresStore) EdgeExists(ctx context.Context, edgeType string, fromID, toID uuid.UUID) (bool, error) {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return false, fmt.Errorf("no team scope in context")
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM engine_edges
			WHERE team_id = ` + teamExpr + ` AND edge_type = $1 AND from_id = $2 AND to_id = $3
		)`

	var exists bool
	if err := scope.Conn.QueryRow(ctx, query, edgeType, fromID, toID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s edge: %w", edgeType, err)
	}

	return exists, nil
}

func (s *postgresStore) Traverse(ctx context.Context, edgeType string, fromID uuid.UUID, dir Direction) ([]*Node, error) {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no team scope in context")
	}

	join, start := traversalColumns(dir)

	query := fmt.Sprintf(`
		SELECT n.id, n.label, n.props, n.revision, n.created_at, n.updated_at
		FROM engine_edges e
		JOIN engine_nodes n ON n.id = e.%s AND n.team_id = e.team_id
		WHERE e.team_id = %s AND e.edge_type = $1 AND e.%s = $2
		ORDER BY e.created_at, n.id`, join, teamExpr, start)

	rows, err := scope.Conn.Query(ctx, query, edgeType, fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to traverse %s edges: %w", edgeType, err)
	}
	defer rows.Close()

	return collectNodes(rows)
}

func (s *postgresStore) Neighbors(ctx context.Context, edgeType string, fromID uuid.UUID, dir Direction) ([]uuid.UUID, error) {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no team scope in context")
	}

	join, start := traversalColumns(dir)

	query := fmt.Sprintf(`
		SELECT e.%s
		FROM engine_edges e
		WHERE e.team_id = %s AND e.edge_type = $1 AND e.%s = $2
		ORDER BY e.created_at`, join, teamExpr, start)

	rows, err := scope.Conn.Query(ctx, query, edgeType, fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s neighbors: %w", edgeType, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan neighbor id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating neighbors: %w", err)
	}

	return ids, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

// traversalColumns maps a direction onto the edge columns: the column the
// result node joins on, and the column the start node matches.
func traversalColumns(dir Direction) (join, start string) {
	if dir == DirectionIn {
		return "from_id", "to_id"
	}
	return "to_id", "from_id"
}

func scanNode(row pgx.Row) (*Node, error) {
	var n Node
	var propsJSON []byte

	err := row.Scan(&n.ID, &n.Label, &propsJSON, &n.Revision, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan node: %w", err)
	}

	if err := json.Unmarshal(propsJSON, &n.Props); err != nil {
		return nil, fmt.Errorf("failed to unmarshal node props: %w", err)
	}

	return &n, nil
}

func collectNodes(rows pgx.Rows) ([]*Node, error) {
	var nodes []*Node
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nodes: %w", err)
	}

	return nodes, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (the partial unique index on tag names).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
