package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
)

// DocumentRepository provides data access for document metadata nodes.
// Body content is not handled here; the document service owns the object
// store interaction.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	// Update replaces all mutable fields. The write compares-and-swaps on
	// doc.Revision; apperrors.ErrConflict on mismatch.
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter map[string]any, limit, offset int) ([]*models.Document, int, error)
}

type documentRepository struct {
	store graph.Store
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(store graph.Store) DocumentRepository {
	return &documentRepository{store: store}
}

var _ DocumentRepository = (*documentRepository)(nil)

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	node, err := r.store.CreateNode(ctx, graph.LabelDocument, documentProps(doc))
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	doc.ID = node.ID
	doc.Revision = node.Revision
	doc.CreatedAt = node.CreatedAt
	doc.UpdatedAt = node.UpdatedAt
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	node, err := r.store.GetNode(ctx, graph.LabelDocument, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if node == nil {
		return nil, nil // Document not found
	}
	return DocumentFromNode(node), nil
}

func (r *documentRepository) Update(ctx context.Context, doc *models.Document) error {
	node, err := r.store.UpdateNode(ctx, graph.LabelDocument, doc.ID, documentProps(doc), doc.Revision)
	if err != nil {
		return err
	}

	doc.Revision = node.Revision
	doc.UpdatedAt = node.UpdatedAt
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteNode(ctx, graph.LabelDocument, id)
}

func (r *documentRepository) List(ctx context.Context, filter map[string]any, limit, offset int) ([]*models.Document, int, error) {
	result, err := r.store.ListNodes(ctx, graph.LabelDocument, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*models.Document, 0, len(result.Items))
	for _, node := range result.Items {
		docs = append(docs, DocumentFromNode(node))
	}
	return docs, result.Total, nil
}

func documentProps(doc *models.Document) map[string]any {
	return map[string]any{
		"type":        doc.Type,
		"status":      doc.Status,
		"title":       doc.Title,
		"lang":        doc.Lang,
		"content_key": doc.ContentKey,
		"summary":     doc.Summary,
	}
}

// DocumentFromNode maps a graph node onto a Document. Exported because
// impact analysis materializes traversal results itself.
func DocumentFromNode(node *graph.Node) *models.Document {
	return &models.Document{
		ID:         node.ID,
		Type:       propString(node.Props, "type"),
		Status:     propString(node.Props, "status"),
		Title:      propString(node.Props, "title"),
		Lang:       propString(node.Props, "lang"),
		ContentKey: propString(node.Props, "content_key"),
		Summary:    propString(node.Props, "summary"),
		Revision:   node.Revision,
		CreatedAt:  node.CreatedAt,
		UpdatedAt:  node.UpdatedAt,
	}
}
