package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/search"
)

// SearchService is the aggregator in front of the ranked search provider:
// it normalizes the request and echoes pagination, but performs no ranking
// of its own.
type SearchService interface {
	Search(ctx context.Context, query string, versionID *uuid.UUID, tags []string, limit, offset int) (*models.SearchResponse, error)
}

type searchService struct {
	provider     search.Provider
	defaultLimit int
	maxLimit     int
	logger       *zap.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(provider search.Provider, defaultLimit, maxLimit int, logger *zap.Logger) SearchService {
	return &searchService{
		provider:     provider,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger.Named("search-service"),
	}
}

var _ SearchService = (*searchService)(nil)

func (s *searchService) Search(ctx context.Context, query string, versionID *uuid.UUID, tags []string, limit, offset int) (*models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation("search query must not be empty")
	}

	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	result, err := s.provider.Search(ctx, search.Request{
		Query:     query,
		VersionID: versionID,
		Tags:      tags,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}

	// Provider order is preserved; limit and offset are echoed, not
	// recomputed.
	return &models.SearchResponse{
		Results: result.Results,
		Total:   result.Total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}
