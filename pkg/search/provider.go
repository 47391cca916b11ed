// Package search is the ranked full-text capability behind the search
// aggregator. The aggregator consumes the Provider interface only; the
// Postgres implementation in this package is one provider.
package search

import (
	"context"

	"github.com/google/uuid"

	"github.com/docforge/docforge-engine/pkg/models"
)

// Request is a normalized search request: query non-empty, tags already
// flattened to a list (nil when not supplied), limit clamped by the caller.
type Request struct {
	Query     string
	VersionID *uuid.UUID
	Tags      []string
	Limit     int
	Offset    int
}

// Result is one page of ranked hits plus the full match count. Order is
// relevance-descending.
type Result struct {
	Results []models.SearchResult
	Total   int
}

// Provider executes ranked full-text search over documents and pages.
type Provider interface {
	Search(ctx context.Context, req Request) (*Result, error)
}
