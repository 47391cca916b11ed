package models

import (
	"github.com/google/uuid"
)

// Search result type values
const (
	SearchResultTypeDocument = "document"
	SearchResultTypePage     = "page"
)

// SearchResult is one ranked hit from the search provider. Order within a
// response follows the provider's ranking (relevance-descending).
type SearchResult struct {
	DocumentID     uuid.UUID  `json:"document_id"`
	PageID         *uuid.UUID `json:"page_id,omitempty"`
	Title          string     `json:"title"`
	Summary        *string    `json:"summary"`
	RelevanceScore float64    `json:"relevance_score"`
	MatchedFields  []string   `json:"matched_fields"`
	Type           string     `json:"type"`
}

// SearchResponse is the paged search result envelope. Limit and Offset echo
// the request; Total is the provider's full match count.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}
