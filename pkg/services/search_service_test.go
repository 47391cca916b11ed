package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/search"
)

func newTestSearchService(t *testing.T) (SearchService, *mockSearchProvider) {
	t.Helper()
	provider := &mockSearchProvider{}
	svc := NewSearchService(provider, 20, 100, zap.NewNop())
	return svc, provider
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc, provider := newTestSearchService(t)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), query, nil, nil, 10, 0)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
	assert.Nil(t, provider.lastRequest)
}

func TestSearch_TrimsQuery(t *testing.T) {
	svc, provider := newTestSearchService(t)

	_, err := svc.Search(context.Background(), "  deployment  ", nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "deployment", provider.lastRequest.Query)
}

func TestSearch_PaginationClamping(t *testing.T) {
	svc, provider := newTestSearchService(t)
	ctx := context.Background()

	tests := []struct {
		name             string
		limit, offset    int
		wantLim, wantOff int
	}{
		{"defaults", 0, 0, 20, 0},
		{"negative limit", -5, 0, 20, 0},
		{"over max", 500, 0, 100, 0},
		{"negative offset", 10, -3, 10, 0},
		{"passthrough", 10, 40, 10, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Search(ctx, "deployment", nil, nil, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLim, provider.lastRequest.Limit)
			assert.Equal(t, tt.wantOff, provider.lastRequest.Offset)
			assert.Equal(t, tt.wantLim, resp.Limit)
			assert.Equal(t, tt.wantOff, resp.Offset)
		})
	}
}

func TestSearch_ForwardsFilters(t *testing.T) {
	svc, provider := newTestSearchService(t)
	ctx := context.Background()

	versionID := uuid.New()
	_, err := svc.Search(ctx, "deployment", &versionID, []string{"infra", "howto"}, 10, 0)
	require.NoError(t, err)

	require.NotNil(t, provider.lastRequest.VersionID)
	assert.Equal(t, versionID, *provider.lastRequest.VersionID)
	assert.Equal(t, []string{"infra", "howto"}, provider.lastRequest.Tags)

	_, err = svc.Search(ctx, "deployment", nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Nil(t, provider.lastRequest.VersionID)
	assert.Nil(t, provider.lastRequest.Tags)
}

func TestSearch_EchoesProviderResult(t *testing.T) {
	svc, provider := newTestSearchService(t)

	first, second := uuid.New(), uuid.New()
	provider.result = &search.Result{
		Results: []models.SearchResult{
			{DocumentID: first, Title: "Deployment guide", RelevanceScore: 0.42, MatchedFields: []string{"title"}, Type: "Document"},
			{DocumentID: second, Title: "Rollbacks", RelevanceScore: 0.17, MatchedFields: []string{"summary"}, Type: "Document"},
		},
		Total: 2,
	}

	resp, err := svc.Search(context.Background(), "deployment", nil, nil, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 5, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
	require.Len(t, resp.Results, 2)

	// Provider order survives aggregation.
	assert.Equal(t, first, resp.Results[0].DocumentID)
	assert.Equal(t, second, resp.Results[1].DocumentID)
}
