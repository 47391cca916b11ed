package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
)

// PageRepository provides data access for navigation page nodes. A page node
// carries three kinds of structural edges: IN_VERSION to its owning version
// (set at creation, never changed), CHILD_OF to an optional parent page, and
// DISPLAYS to an optional document.
type PageRepository interface {
	Create(ctx context.Context, page *models.Page) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Page, error)
	Update(ctx context.Context, page *models.Page) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByVersion(ctx context.Context, versionID uuid.UUID) ([]*models.Page, error)

	SetParent(ctx context.Context, pageID, parentID uuid.UUID) error
	ClearParent(ctx context.Context, pageID, parentID uuid.UUID) error
	SetDocument(ctx context.Context, pageID, documentID uuid.UUID) error
	ClearDocument(ctx context.Context, pageID, documentID uuid.UUID) error
}

type pageRepository struct {
	store graph.Store
}

// NewPageRepository creates a new PageRepository.
func NewPageRepository(store graph.Store) PageRepository {
	return &pageRepository{store: store}
}

var _ PageRepository = (*pageRepository)(nil)

func (r *pageRepository) Create(ctx context.Context, page *models.Page) error {
	node, err := r.store.CreateNode(ctx, graph.LabelPage, pageProps(page))
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	page.ID = node.ID
	page.Revision = node.Revision
	page.CreatedAt = node.CreatedAt
	page.UpdatedAt = node.UpdatedAt

	if err := r.store.CreateEdge(ctx, graph.EdgeInVersion, page.ID, page.VersionID, nil); err != nil {
		return fmt.Errorf("failed to link page to version: %w", err)
	}
	if page.ParentID != nil {
		if err := r.store.CreateEdge(ctx, graph.EdgeChildOf, page.ID, *page.ParentID, nil); err != nil {
			return fmt.Errorf("failed to link page to parent: %w", err)
		}
	}
	if page.DocumentID != nil {
		if err := r.store.CreateEdge(ctx, graph.EdgeDisplays, page.ID, *page.DocumentID, nil); err != nil {
			return fmt.Errorf("failed to link page to document: %w", err)
		}
	}
	return nil
}

func (r *pageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	node, err := r.store.GetNode(ctx, graph.LabelPage, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	if node == nil {
		return nil, nil // Page not found
	}

	page := pageFromNode(node)
	if err := r.loadEdges(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *pageRepository) Update(ctx context.Context, page *models.Page) error {
	node, err := r.store.UpdateNode(ctx, graph.LabelPage, page.ID, pageProps(page), page.Revision)
	if err != nil {
		return err
	}

	page.Revision = node.Revision
	page.UpdatedAt = node.UpdatedAt
	return nil
}

func (r *pageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteNode(ctx, graph.LabelPage, id)
}

func (r *pageRepository) ListByVersion(ctx context.Context, versionID uuid.UUID) ([]*models.Page, error) {
	nodes, err := r.store.Traverse(ctx, graph.EdgeInVersion, versionID, graph.DirectionIn)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages for version: %w", err)
	}

	pages := make([]*models.Page, 0, len(nodes))
	for _, node := range nodes {
		page := pageFromNode(node)
		page.VersionID = versionID
		parentID, err := r.store.Neighbors(ctx, graph.EdgeChildOf, page.ID, graph.DirectionOut)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve page parent: %w", err)
		}
		page.ParentID = firstID(parentID)
		documentID, err := r.store.Neighbors(ctx, graph.EdgeDisplays, page.ID, graph.DirectionOut)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve page document: %w", err)
		}
		page.DocumentID = firstID(documentID)
		pages = append(pages, page)
	}
	return pages, nil
}

func (r *pageRepository) SetParent(ctx context.Context, pageID, parentID uuid.UUID) error {
	return r.store.CreateEdge(ctx, graph.EdgeChildOf, pageID, parentID, nil)
}

func (r *pageRepository) ClearParent(ctx context.Context, pageID, parentID uuid.UUID) error {
	return r.store.DeleteEdge(ctx, graph.EdgeChildOf, pageID, parentID)
}

func (r *pageRepository) SetDocument(ctx context.Context, pageID, documentID uuid.UUID) error {
	return r.store.CreateEdge(ctx, graph.EdgeDisplays, pageID, documentID, nil)
}

func (r *pageRepository) ClearDocument(ctx context.Context, pageID, documentID uuid.UUID) error {
	return r.store.DeleteEdge(ctx, graph.EdgeDisplays, pageID, documentID)
}

func (r *pageRepository) loadEdges(ctx context.Context, page *models.Page) error {
	versionIDs, err := r.store.Neighbors(ctx, graph.EdgeInVersion, page.ID, graph.DirectionOut)
	if err != nil {
		return fmt.Errorf("failed to resolve page version: %w", err)
	}
	if id := firstID(versionIDs); id != nil {
		page.VersionID = *id
	}

	parentIDs, err := r.store.Neighbors(ctx, graph.EdgeChildOf, page.ID, graph.DirectionOut)
	if err != nil {
		return fmt.Errorf("failed to resolve page parent: %w", err)
	}
	page.ParentID = firstID(parentIDs)

	documentIDs, err := r.store.Neighbors(ctx, graph.EdgeDisplays, page.ID, graph.DirectionOut)
	if err != nil {
		return fmt.Errorf("failed to resolve page document: %w", err)
	}
	page.DocumentID = firstID(documentIDs)
	return nil
}

func pageProps(page *models.Page) map[string]any {
	return map[string]any{
		"slug":    page.Slug,
		"title":   page.Title,
		"order":   page.Order,
		"visible": page.Visible,
	}
}

func pageFromNode(node *graph.Node) *models.Page {
	return &models.Page{
		ID:        node.ID,
		Slug:      propString(node.Props, "slug"),
		Title:     propString(node.Props, "title"),
		Order:     propInt(node.Props, "order"),
		Visible:   propBool(node.Props, "visible"),
		Revision:  node.Revision,
		CreatedAt: node.CreatedAt,
		UpdatedAt: node.UpdatedAt,
	}
}
