package services

import (
	"context"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/repositories"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CreatePageInput is the payload for creating a page. VersionID is
// required; the IN_VERSION edge is set once here and never moved.
type CreatePageInput struct {
	Slug       string
	Title      string
	Order      int
	Visible    bool
	VersionID  uuid.UUID
	ParentID   *uuid.UUID
	DocumentID *uuid.UUID
}

// UpdatePageInput carries page changes. Nil fields are untouched. A set
// ParentID or DocumentID moves the respective edge; detaching goes through
// DetachParent/DetachDocument. The version cannot be changed.
type UpdatePageInput struct {
	Slug       *string
	Title      *string
	Order      *int
	Visible    *bool
	ParentID   *uuid.UUID
	DocumentID *uuid.UUID
}

// PageService manages navigation pages and their structural edges.
type PageService interface {
	Create(ctx context.Context, input CreatePageInput) (*models.Page, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Page, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePageInput) (*models.Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByVersion(ctx context.Context, versionID uuid.UUID) ([]*models.Page, error)

	DetachParent(ctx context.Context, id uuid.UUID) (*models.Page, error)
	DetachDocument(ctx context.Context, id uuid.UUID) (*models.Page, error)
}

type pageService struct {
	pages     repositories.PageRepository
	versions  repositories.VersionRepository
	documents repositories.DocumentRepository
	logger    *zap.Logger
}

// NewPageService creates a new PageService.
func NewPageService(pages repositories.PageRepository, versions repositories.VersionRepository, documents repositories.DocumentRepository, logger *zap.Logger) PageService {
	return &pageService{
		pages:     pages,
		versions:  versions,
		documents: documents,
		logger:    logger.Named("page-service"),
	}
}

var _ PageService = (*pageService)(nil)

func (s *pageService) Create(ctx context.Context, input CreatePageInput) (*models.Page, error) {
	if !slugPattern.MatchString(input.Slug) {
		return nil, apperrors.Validation("slug must be lowercase alphanumeric with hyphens, got %q", input.Slug)
	}
	if input.Title == "" {
		return nil, apperrors.Validation("page title must not be empty")
	}

	version, err := s.versions.GetByID(ctx, input.VersionID)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apperrors.NotFoundEntity("version", input.VersionID.String())
	}

	if input.ParentID != nil {
		if err := s.checkParent(ctx, *input.ParentID, input.VersionID); err != nil {
			return nil, err
		}
	}
	if input.DocumentID != nil {
		if err := s.checkDocument(ctx, *input.DocumentID); err != nil {
			return nil, err
		}
	}

	page := &models.Page{
		Slug:       input.Slug,
		Title:      input.Title,
		Order:      input.Order,
		Visible:    input.Visible,
		VersionID:  input.VersionID,
		ParentID:   input.ParentID,
		DocumentID: input.DocumentID,
	}
	if err := s.pages.Create(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *pageService) Get(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, apperrors.NotFoundEntity("page", id.String())
	}
	return page, nil
}

func (s *pageService) Update(ctx context.Context, id uuid.UUID, input UpdatePageInput) (*models.Page, error) {
	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, apperrors.NotFoundEntity("page", id.String())
	}

	if input.Slug != nil {
		if !slugPattern.MatchString(*input.Slug) {
			return nil, apperrors.Validation("slug must be lowercase alphanumeric with hyphens, got %q", *input.Slug)
		}
		page.Slug = *input.Slug
	}
	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.Validation("page title must not be empty")
		}
		page.Title = *input.Title
	}
	if input.Order != nil {
		page.Order = *input.Order
	}
	if input.Visible != nil {
		page.Visible = *input.Visible
	}

	if err := s.pages.Update(ctx, page); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if err := s.reparent(ctx, page, input.ParentID); err != nil {
			return nil, err
		}
	}
	if input.DocumentID != nil {
		if err := s.relink(ctx, page, input.DocumentID); err != nil {
			return nil, err
		}
	}
	return page, nil
}

func (s *pageService) DetachParent(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, apperrors.NotFoundEntity("page", id.String())
	}
	if err := s.reparent(ctx, page, nil); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *pageService) DetachDocument(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, apperrors.NotFoundEntity("page", id.String())
	}
	if err := s.relink(ctx, page, nil); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *pageService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.pages.Delete(ctx, id)
}

func (s *pageService) ListByVersion(ctx context.Context, versionID uuid.UUID) ([]*models.Page, error) {
	version, err := s.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apperrors.NotFoundEntity("version", versionID.String())
	}
	return s.pages.ListByVersion(ctx, versionID)
}

// checkParent requires the parent page to exist in the same version.
// Cross-version parentage would break the per-version tree.
func (s *pageService) checkParent(ctx context.Context, parentID, versionID uuid.UUID) error {
	parent, err := s.pages.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return apperrors.NotFoundEntity("page", parentID.String())
	}
	if parent.VersionID != versionID {
		return apperrors.Validation("parent page belongs to a different version")
	}
	return nil
}

func (s *pageService) checkDocument(ctx context.Context, documentID uuid.UUID) error {
	document, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if document == nil {
		return apperrors.NotFoundEntity("document", documentID.String())
	}
	return nil
}

func (s *pageService) reparent(ctx context.Context, page *models.Page, parentID *uuid.UUID) error {
	if page.ParentID != nil && (parentID == nil || *parentID != *page.ParentID) {
		if err := s.pages.ClearParent(ctx, page.ID, *page.ParentID); err != nil {
			return err
		}
		page.ParentID = nil
	}
	if parentID == nil || (page.ParentID != nil && *page.ParentID == *parentID) {
		return nil
	}
	if *parentID == page.ID {
		return apperrors.Validation("self-reference: a page cannot be its own parent")
	}
	if err := s.checkParent(ctx, *parentID, page.VersionID); err != nil {
		return err
	}
	if err := s.pages.SetParent(ctx, page.ID, *parentID); err != nil {
		return err
	}
	page.ParentID = parentID
	return nil
}

func (s *pageService) relink(ctx context.Context, page *models.Page, documentID *uuid.UUID) error {
	if page.DocumentID != nil && (documentID == nil || *documentID != *page.DocumentID) {
		if err := s.pages.ClearDocument(ctx, page.ID, *page.DocumentID); err != nil {
			return err
		}
		page.DocumentID = nil
	}
	if documentID == nil || (page.DocumentID != nil && *page.DocumentID == *documentID) {
		return nil
	}
	if err := s.checkDocument(ctx, *documentID); err != nil {
		return err
	}
	if err := s.pages.SetDocument(ctx, page.ID, *documentID); err != nil {
		return err
	}
	page.DocumentID = documentID
	return nil
}
