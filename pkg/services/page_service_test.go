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
	"github.com/docforge/docforge-engine/pkg/repositories"
)

type pageServiceFixture struct {
	svc       PageService
	pages     repositories.PageRepository
	versions  repositories.VersionRepository
	documents repositories.DocumentRepository
	version   *models.Version
}

func newPageServiceFixture(t *testing.T) *pageServiceFixture {
	t.Helper()
	store := newMockGraphStore()
	pages := repositories.NewPageRepository(store)
	versions := repositories.NewVersionRepository(store)
	documents := repositories.NewDocumentRepository(store)
	svc := NewPageService(pages, versions, documents, zap.NewNop())

	f := &pageServiceFixture{svc: svc, pages: pages, versions: versions, documents: documents}
	f.version = createVersion(t, versions, "v1.0.0")
	return f
}

func TestPageCreate_SlugValidation(t *testing.T) {
	f := newPageServiceFixture(t)
	ctx := context.Background()

	for _, bad := range []string{"", "Getting Started", "intro_page", "-intro", "intro-", "UPPER"} {
		_, err := f.svc.Create(ctx, CreatePageInput{Slug: bad, Title: "t", VersionID: f.version.ID})
		assert.ErrorIs(t, err, apperrors.ErrValidation, "slug %q", bad)
	}

	page, err := f.svc.Create(ctx, CreatePageInput{Slug: "getting-started-2", Title: "Getting started", VersionID: f.version.ID})
	require.NoError(t, err)
	assert.Equal(t, "getting-started-2", page.Slug)
}

func TestPageCreate_MissingVersion(t *testing.T) {
	f := newPageServiceFixture(t)

	_, err := f.svc.Create(context.Background(), CreatePageInput{Slug: "intro", Title: "Intro", VersionID: uuid.New()})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPageCreate_ParentInOtherVersion(t *testing.T) {
	f := newPageServiceFixture(t)
	ctx := context.Background()

	other := createVersion(t, f.versions, "v2.0.0")
	parent, err := f.svc.Create(ctx, CreatePageInput{Slug: "parent", Title: "Parent", VersionID: other.ID})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, CreatePageInput{
		Slug:      "child",
		Title:     "Child",
		VersionID: f.version.ID,
		ParentID:  &parent.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPageCreate_WithEdges(t *testing.T) {
	f := newPageServiceFixture(t)
	ctx := context.Background()

	doc := createDocument(t, f.documents, "Install guide")
	parent, err := f.svc.Create(ctx, CreatePageInput{Slug: "guides", Title: "Guides", VersionID: f.version.ID})
	require.NoError(t, err)

	page, err := f.svc.Create(ctx, CreatePageInput{
		Slug:       "install",
		Title:      "Install",
		Order:      2,
		Visible:    true,
		VersionID:  f.version.ID,
		ParentID:   &parent.ID,
		DocumentID: &doc.ID,
	})
	require.NoError(t, err)

	loaded, err := f.svc.Get(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, f.version.ID, loaded.VersionID)
	require.NotNil(t, loaded.ParentID)
	assert.Equal(t, parent.ID, *loaded.ParentID)
	require.NotNil(t, loaded.DocumentID)
	assert.Equal(t, doc.ID, *loaded.DocumentID)
}

func TestPageUpdate_Reparent(t *testing.T) {
	f := newPageServiceFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, CreatePageInput{Slug: "a", Title: "A", VersionID: f.version.ID})
	require.NoError(t, err)
	b, err := f.svc.Create(ctx, CreatePageInput{Slug: "b", Title: "B", VersionID: f.version.ID})
	require.NoError(t, err)
	page, err := f.svc.Create(ctx, CreatePageInput{Slug: "c", Title: "C", VersionID: f.version.ID, ParentID: &a.ID})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, page.ID, UpdatePageInput{ParentID: &b.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, b.ID, *updated.ParentID)
}

func TestPageUpdate_SelfParent(t *testing.T) {
	f := newPageServiceFixture(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, CreatePageInput{Slug: "a", Title: "A", VersionID: f.version.ID})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, page.ID, UpdatePageInput{ParentID: &page.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPageDetach(t *testing.T) {
	f := newPageServiceFixture(t)
	ctx := context.Background()

	doc := createDocument(t, f.documents, "Install guide")
	parent, err := f.svc.Create(ctx, CreatePageInput{Slug: "guides", Title: "Guides", VersionID: f.version.ID})
	require.NoError(t, err)
	page, err := f.svc.Create(ctx, CreatePageInput{
		Slug:       "install",
		Title:      "Install",
		VersionID:  f.version.ID,
		ParentID:   &parent.ID,
		DocumentID: &doc.ID,
	})
	require.NoError(t, err)

	detached, err := f.svc.DetachParent(ctx, page.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.ParentID)

	detached, err = f.svc.DetachDocument(ctx, page.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.DocumentID)

	// Detaching an already-detached page is a no-op.
	detached, err = f.svc.DetachParent(ctx, page.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.ParentID)
}

func TestPageDelete(t *testing.T) {
	f := newPageServiceFixture(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, CreatePageInput{Slug: "a", Title: "A", VersionID: f.version.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, page.ID))

	_, err = f.svc.Get(ctx, page.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = f.svc.Delete(ctx, page.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
