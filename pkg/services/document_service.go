package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/objectstore"
	"github.com/docforge/docforge-engine/pkg/repositories"
	"github.com/docforge/docforge-engine/pkg/retry"
)

var langPattern = regexp.MustCompile(`^[a-z]{2}$`)

// CreateDocumentInput is the payload for creating a document. Every new
// document starts in draft.
type CreateDocumentInput struct {
	Type        string
	Title       string
	Lang        string
	Summary     string
	Body        []byte
	ContentType string
}

// UpdateDocumentInput carries metadata changes. Nil fields are left
// untouched; status and the body pointer are never changed here.
type UpdateDocumentInput struct {
	Title   *string
	Lang    *string
	Summary *string
}

// DocumentService owns the document write path: the two-store create saga,
// metadata updates, lifecycle transitions and working copies.
type DocumentService interface {
	Create(ctx context.Context, input CreateDocumentInput) (*models.Document, error)
	// Get returns the document with its body, or (nil, nil, nil) when it
	// does not exist.
	Get(ctx context.Context, id uuid.UUID) (*models.Document, *objectstore.Object, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateDocumentInput) (*models.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter map[string]any, limit, offset int) ([]*models.Document, int, error)

	// ApplyTransition moves the document through the status machine,
	// persisting with a revision compare-and-swap.
	ApplyTransition(ctx context.Context, id uuid.UUID, requested string) (*models.Document, error)

	// CreateWorkingCopy duplicates a published document into a new draft
	// linked back to the original by a WORKING_COPY_OF edge.
	CreateWorkingCopy(ctx context.Context, id uuid.UUID) (*models.Document, error)
}

type documentService struct {
	documents repositories.DocumentRepository
	bodies    objectstore.Store
	store     graph.Store
	logger    *zap.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documents repositories.DocumentRepository, bodies objectstore.Store, store graph.Store, logger *zap.Logger) DocumentService {
	return &documentService{
		documents: documents,
		bodies:    bodies,
		store:     store,
		logger:    logger.Named("document-service"),
	}
}

var _ DocumentService = (*documentService)(nil)

func (s *documentService) Create(ctx context.Context, input CreateDocumentInput) (*models.Document, error) {
	if !models.ValidDocumentType(input.Type) {
		return nil, apperrors.Validation("unknown document type: %s", input.Type)
	}
	if input.Title == "" {
		return nil, apperrors.Validation("document title must not be empty")
	}
	if !langPattern.MatchString(input.Lang) {
		return nil, apperrors.Validation("lang must be a 2-letter code, got %q", input.Lang)
	}

	doc := &models.Document{
		Type:       input.Type,
		Status:     models.DocumentStatusDraft,
		Title:      input.Title,
		Lang:       input.Lang,
		Summary:    input.Summary,
		ContentKey: newContentKey(),
	}

	return s.createWithBody(ctx, doc, input.Body, input.ContentType)
}

// createWithBody runs the two-store write: body first, metadata second,
// with a compensating body delete when the metadata write fails. The two
// stores share no transaction; the compensation is best effort and its own
// failure is logged for out-of-band reconciliation, never returned.
func (s *documentService) createWithBody(ctx context.Context, doc *models.Document, body []byte, contentType string) (*models.Document, error) {
	if err := s.bodies.Put(ctx, doc.ContentKey, body, contentType); err != nil {
		return nil, fmt.Errorf("failed to store document body: %w", err)
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		s.compensateBody(ctx, doc.ContentKey)
		return nil, err
	}
	return doc, nil
}

func (s *documentService) compensateBody(ctx context.Context, contentKey string) {
	compensateErr := retry.Do(ctx, retry.DefaultConfig(), func() error {
		return s.bodies.Delete(ctx, contentKey)
	})
	if compensateErr != nil {
		s.logger.Error("orphaned document body after failed create",
			zap.String("content_key", contentKey),
			zap.Error(compensateErr))
	}
}

func (s *documentService) Get(ctx context.Context, id uuid.UUID) (*models.Document, *objectstore.Object, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, nil // Document not found
	}

	body, err := s.bodies.Get(ctx, doc.ContentKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load document body: %w", err)
	}
	return doc, body, nil
}

func (s *documentService) Update(ctx context.Context, id uuid.UUID, input UpdateDocumentInput) (*models.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFoundEntity("document", id.String())
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.Validation("document title must not be empty")
		}
		doc.Title = *input.Title
	}
	if input.Lang != nil {
		if !langPattern.MatchString(*input.Lang) {
			return nil, apperrors.Validation("lang must be a 2-letter code, got %q", *input.Lang)
		}
		doc.Lang = *input.Lang
	}
	if input.Summary != nil {
		doc.Summary = *input.Summary
	}

	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NotFoundEntity("document", id.String())
	}

	// Node delete cascades the document's edges.
	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.bodies.Delete(ctx, doc.ContentKey); err != nil {
		s.logger.Error("orphaned document body after delete",
			zap.String("document_id", id.String()),
			zap.String("content_key", doc.ContentKey),
			zap.Error(err))
	}
	return nil
}

func (s *documentService) List(ctx context.Context, filter map[string]any, limit, offset int) ([]*models.Document, int, error) {
	return s.documents.List(ctx, filter, limit, offset)
}

func (s *documentService) ApplyTransition(ctx context.Context, id uuid.UUID, requested string) (*models.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFoundEntity("document", id.String())
	}

	if err := CheckTransition(doc.Status, requested); err != nil {
		return nil, err
	}

	doc.Status = requested
	// The repository update is a CAS on the revision read above; a
	// concurrent transition surfaces as ErrConflict and the caller re-reads.
	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) CreateWorkingCopy(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	original, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, apperrors.NotFoundEntity("document", id.String())
	}
	if original.Status != models.DocumentStatusPublish {
		return nil, apperrors.Validation("working copies can only be made from published documents, status is %s", original.Status)
	}

	body, err := s.bodies.Get(ctx, original.ContentKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load document body: %w", err)
	}

	copyDoc := &models.Document{
		Type:       original.Type,
		Status:     models.DocumentStatusDraft,
		Title:      original.Title,
		Lang:       original.Lang,
		Summary:    original.Summary,
		ContentKey: newContentKey(),
	}

	copyDoc, err = s.createWithBody(ctx, copyDoc, body.Data, body.ContentType)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateEdge(ctx, graph.EdgeWorkingCopyOf, copyDoc.ID, original.ID, nil); err != nil {
		return nil, fmt.Errorf("failed to link working copy: %w", err)
	}
	return copyDoc, nil
}

func newContentKey() string {
	return "documents/" + uuid.NewString()
}
