package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/docforge/docforge-engine/pkg/database"
	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
)

type postgresProvider struct{}

// NewPostgresProvider creates a Provider ranking document and page nodes
// with PostgreSQL full-text search over their title and summary.
func NewPostgresProvider() Provider {
	return &postgresProvider{}
}

var _ Provider = (*postgresProvider)(nil)

const teamExpr = "current_setting('app.current_team_id')::uuid"

// searchVector must stay in sync with the expression index in the
// migrations, or the planner falls back to a sequential scan.
const searchVector = `to_tsvector('simple', coalesce(n.props->>'title', '') || ' ' || coalesce(n.props->>'summary', ''))`

func (p *postgresProvider) Search(ctx context.Context, req Request) (*Result, error) {
	scope, ok := database.GetTeamScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no team scope in context")
	}

	args := []any{req.Query}
	var filters []string

	if req.VersionID != nil {
		args = append(args, *req.VersionID)
		ref := "$" + strconv.Itoa(len(args))
		// A page matches when it belongs to the version; a document matches
		// when some page in the version displays it.
		filters = append(filters, `
			AND (CASE WHEN n.label = 'Page' THEN EXISTS (
				SELECT 1 FROM engine_edges v
				WHERE v.team_id = n.team_id AND v.edge_type = 'IN_VERSION'
				  AND v.from_id = n.id AND v.to_id = `+ref+`
			) ELSE EXISTS (
				SELECT 1
				FROM engine_edges d
				JOIN engine_edges v ON v.team_id = d.team_id
				 AND v.edge_type = 'IN_VERSION' AND v.from_id = d.from_id
				WHERE d.team_id = n.team_id AND d.edge_type = 'DISPLAYS'
				  AND d.to_id = n.id AND v.to_id = `+ref+`
			) END)`)
	}

	if len(req.Tags) > 0 {
		args = append(args, req.Tags)
		ref := "$" + strconv.Itoa(len(args))
		filters = append(filters, `
			AND EXISTS (
				SELECT 1
				FROM engine_edges h
				JOIN engine_nodes t ON t.id = h.to_id AND t.team_id = h.team_id
				WHERE h.team_id = n.team_id AND h.edge_type = 'HAS_TAG'
				  AND h.from_id = n.id AND t.label = 'Tag'
				  AND t.props->>'name' = ANY(`+ref+`)
			)`)
	}

	args = append(args, req.Limit)
	limitRef := "$" + strconv.Itoa(len(args))
	args = append(args, req.Offset)
	offsetRef := "$" + strconv.Itoa(len(args))

	query := `
		SELECT n.id, n.label, n.props->>'title', n.props->>'summary',
		       ts_rank(` + searchVector + `, plainto_tsquery('simple', $1)),
		       to_tsvector('simple', coalesce(n.props->>'title', '')) @@ plainto_tsquery('simple', $1),
		       to_tsvector('simple', coalesce(n.props->>'summary', '')) @@ plainto_tsquery('simple', $1),
		       (SELECT d.to_id FROM engine_edges d
		        WHERE d.team_id = n.team_id AND d.edge_type = 'DISPLAYS' AND d.from_id = n.id
		        LIMIT 1),
		       count(*) OVER ()
		FROM engine_nodes n
		WHERE n.team_id = ` + teamExpr + `
		  AND n.label IN ('Document', 'Page')
		  AND ` + searchVector + ` @@ plainto_tsquery('simple', $1)` +
		strings.Join(filters, "") + `
		ORDER BY 5 DESC, n.created_at DESC, n.id
		LIMIT ` + limitRef + ` OFFSET ` + offsetRef

	rows, err := scope.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run search query: %w", err)
	}
	defer rows.Close()

	result := &Result{Results: []models.SearchResult{}}
	for rows.Next() {
		var (
			id           uuid.UUID
			label        string
			title        string
			summary      *string
			score        float64
			titleMatch   bool
			summaryMatch bool
			displayedID  *uuid.UUID
		)
		if err := rows.Scan(&id, &label, &title, &summary, &score, &titleMatch, &summaryMatch, &displayedID, &result.Total); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}

		hit := models.SearchResult{
			Title:          title,
			Summary:        summary,
			RelevanceScore: score,
			MatchedFields:  matchedFields(titleMatch, summaryMatch),
		}
		if label == graph.LabelPage {
			pageID := id
			hit.PageID = &pageID
			hit.Type = models.SearchResultTypePage
			if displayedID != nil {
				hit.DocumentID = *displayedID
			}
		} else {
			hit.DocumentID = id
			hit.Type = models.SearchResultTypeDocument
		}
		result.Results = append(result.Results, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search hits: %w", err)
	}
	return result, nil
}

func matchedFields(title, summary bool) []string {
	var fields []string
	if title {
		fields = append(fields, "title")
	}
	if summary {
		fields = append(fields, "summary")
	}
	return fields
}
