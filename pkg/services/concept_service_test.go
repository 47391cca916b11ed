package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/repositories"
)

func newTestConceptService(t *testing.T) ConceptService {
	t.Helper()
	store := newMockGraphStore()
	return NewConceptService(repositories.NewConceptRepository(store), zap.NewNop())
}

func TestConceptCreate_Validation(t *testing.T) {
	svc := newTestConceptService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateConceptInput{Term: "", Lang: "en"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(ctx, CreateConceptInput{Term: "latency", Lang: "english"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	concept, err := svc.Create(ctx, CreateConceptInput{Term: "latency", Description: "request delay", Lang: "en"})
	require.NoError(t, err)
	assert.Equal(t, "latency", concept.Term)
	assert.Equal(t, "en", concept.Lang)
}

func TestConceptUpdate_LangIsImmutable(t *testing.T) {
	svc := newTestConceptService(t)
	ctx := context.Background()

	concept, err := svc.Create(ctx, CreateConceptInput{Term: "latency", Lang: "en"})
	require.NoError(t, err)

	// UpdateConceptInput carries no lang field; term and description
	// change, lang survives.
	term := "p99 latency"
	desc := "tail request delay"
	updated, err := svc.Update(ctx, concept.ID, UpdateConceptInput{Term: &term, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "p99 latency", updated.Term)
	assert.Equal(t, "tail request delay", updated.Description)
	assert.Equal(t, "en", updated.Lang)
}

func TestConceptGet_NotFound(t *testing.T) {
	svc := newTestConceptService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestConceptList_FilterByLang(t *testing.T) {
	svc := newTestConceptService(t)
	ctx := context.Background()

	for _, c := range []CreateConceptInput{
		{Term: "latency", Lang: "en"},
		{Term: "throughput", Lang: "en"},
		{Term: "Latenz", Lang: "de"},
	} {
		_, err := svc.Create(ctx, c)
		require.NoError(t, err)
	}

	concepts, total, err := svc.List(ctx, map[string]any{"lang": "de"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, concepts, 1)
	assert.Equal(t, "Latenz", concepts[0].Term)
}
