package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/repositories"
)

func newTestRelationshipService(t *testing.T) (RelationshipService, *mockGraphStore, repositories.ConceptRepository) {
	t.Helper()
	store := newMockGraphStore()
	concepts := repositories.NewConceptRepository(store)
	svc := NewRelationshipService(store, concepts, 32, zap.NewNop())
	return svc, store, concepts
}

func createConcept(t *testing.T, concepts repositories.ConceptRepository, term, lang string) *models.Concept {
	t.Helper()
	concept := &models.Concept{Term: term, Lang: lang}
	require.NoError(t, concepts.Create(context.Background(), concept))
	return concept
}

func TestLinkSubtypeOf_ThenGetSupertypes(t *testing.T) {
	svc, _, concepts := newTestRelationshipService(t)
	ctx := context.Background()

	child := createConcept(t, concepts, "sedan", "en")
	parent := createConcept(t, concepts, "car", "en")

	require.NoError(t, svc.LinkSubtypeOf(ctx, child.ID, parent.ID))

	supertypes, err := svc.GetSupertypes(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, supertypes, 1)
	assert.Equal(t, parent.ID, supertypes[0].ID)

	subtypes, err := svc.GetSubtypes(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, subtypes, 1)
	assert.Equal(t, child.ID, subtypes[0].ID)
}

func TestUnlinkSubtypeOf_SecondUnlinkFails(t *testing.T) {
	svc, _, concepts := newTestRelationshipService(t)
	ctx := context.Background()

	child := createConcept(t, concepts, "sedan", "en")
	parent := createConcept(t, concepts, "car", "en")
	require.NoError(t, svc.LinkSubtypeOf(ctx, child.ID, parent.ID))

	require.NoError(t, svc.UnlinkSubtypeOf(ctx, child.ID, parent.ID))

	supertypes, err := svc.GetSupertypes(ctx, child.ID)
	require.NoError(t, err)
	assert.Empty(t, supertypes)

	err = svc.UnlinkSubtypeOf(ctx, child.ID, parent.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLink_SelfReference(t *testing.T) {
	svc, _, concepts := newTestRelationshipService(t)
	ctx := context.Background()

	concept := createConcept(t, concepts, "engine", "en")

	for _, link := range []func(context.Context, uuid.UUID, uuid.UUID) error{
		svc.LinkSubtypeOf, svc.LinkPartOf, svc.LinkSynonymOf,
	} {
		err := link(ctx, concept.ID, concept.ID)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestLink_MissingEndpointNamesID(t *testing.T) {
	svc, _, concepts := newTestRelationshipService(t)
	ctx := context.Background()

	existing := createConcept(t, concepts, "car", "en")
	missing := uuid.New()

	err := svc.LinkSubtypeOf(ctx, existing.ID, missing)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	var notFound *apperrors.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, missing.String(), notFound.ID)

	// Existence is checked before identity: two missing identical ids
	// still report NotFound, not self-reference.
	err = svc.LinkPartOf(ctx, missing, missing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLinkSynonymOf_LanguageMismatch(t *testing.T) {
	svc, _, concepts := newTestRelationshipService(t)
	ctx := context.Background()

	a := createConcept(t, concepts, "car", "en")
	b := createConcept(t, concepts, "auto", "de")

	err := svc.LinkSynonymOf(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLinkSynonymOf_Symmetric(t *testing.T) {
	svc, _, concepts := newTestRelationshipService(t)
	ctx := context.Background()

	a := createConcept(t, concepts, "car", "en")
	b := createConcept(t, concepts, "automobile", "en")

	require.NoError(t, svc.LinkSynonymOf(ctx, a.ID, b.ID))

	fromA, err := svc.GetSynonyms(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, fromA, 1)
	assert.Equal(t, b.ID, fromA[0].ID)

	fromB, err := svc.GetSynonyms(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, fromB, 1)
	assert.Equal(t, a.ID, fromB[0].ID)

	require.NoError(t, svc.UnlinkSynonymOf(ctx, b.ID, a.ID))

	fromA, err = svc.GetSynonyms(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, fromA)
}

func TestLinkSubtypeOf_RejectsDirectCycle(t *testing.T) {
	svc, _, concepts := newTestRelationshipService(t)
	ctx := context.Background()

	a := createConcept(t, concepts, "vehicle", "en")
	b := createConcept(t, concepts, "car", "en")

	require.NoError(t, svc.LinkSubtypeOf(ctx, b.ID, a.ID))

	err := svc.LinkSubtypeOf(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLinkPartOf_RejectsTransitiveCycle(t *testing.T) {
	svc, _, concepts := newTestRelationshipService(t)
	ctx := context.Background()

	a := createConcept(t, concepts, "engine", "en")
	b := createConcept(t, concepts, "car", "en")
	c := createConcept(t, concepts, "fleet", "en")

	require.NoError(t, svc.LinkPartOf(ctx, a.ID, b.ID))
	require.NoError(t, svc.LinkPartOf(ctx, b.ID, c.ID))

	// c -> a would close a three-node cycle through the chain.
	err := svc.LinkPartOf(ctx, c.ID, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// An unrelated whole is still fine.
	d := createConcept(t, concepts, "garage", "en")
	assert.NoError(t, svc.LinkPartOf(ctx, c.ID, d.ID))
}

func TestLink_IndependentRelationKinds(t *testing.T) {
	svc, _, concepts := newTestRelationshipService(t)
	ctx := context.Background()

	a := createConcept(t, concepts, "engine", "en")
	b := createConcept(t, concepts, "car", "en")

	// A cycle across different relation kinds is not a cycle: the kinds
	// are independent graphs.
	require.NoError(t, svc.LinkSubtypeOf(ctx, a.ID, b.ID))
	assert.NoError(t, svc.LinkPartOf(ctx, b.ID, a.ID))
}

func TestGetSupertypes_MissingConcept(t *testing.T) {
	svc, _, _ := newTestRelationshipService(t)

	_, err := svc.GetSupertypes(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRelationship_DepthCapRejects(t *testing.T) {
	store := newMockGraphStore()
	concepts := repositories.NewConceptRepository(store)
	svc := NewRelationshipService(store, concepts, 2, zap.NewNop())
	ctx := context.Background()

	a := createConcept(t, concepts, "a", "en")
	b := createConcept(t, concepts, "b", "en")
	c := createConcept(t, concepts, "c", "en")
	d := createConcept(t, concepts, "d", "en")

	require.NoError(t, svc.LinkSubtypeOf(ctx, b.ID, a.ID))
	require.NoError(t, svc.LinkSubtypeOf(ctx, c.ID, b.ID))

	// The reachability walk from d's ancestors would exceed the cap, so
	// the link is rejected rather than left unchecked.
	err := svc.LinkSubtypeOf(ctx, d.ID, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
