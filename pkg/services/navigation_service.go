package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/repositories"
)

// NavigationService assembles the ordered page tree for one version.
type NavigationService interface {
	// BuildNavigation returns the page forest for the version, or (nil, nil)
	// when the version does not exist.
	BuildNavigation(ctx context.Context, versionID uuid.UUID) (*models.NavigationTree, error)
}

type navigationService struct {
	pages    repositories.PageRepository
	versions repositories.VersionRepository
	maxDepth int
	logger   *zap.Logger
}

// NewNavigationService creates a new NavigationService. maxDepth caps the
// tree depth during assembly.
func NewNavigationService(pages repositories.PageRepository, versions repositories.VersionRepository, maxDepth int, logger *zap.Logger) NavigationService {
	return &navigationService{
		pages:    pages,
		versions: versions,
		maxDepth: maxDepth,
		logger:   logger.Named("navigation-service"),
	}
}

var _ NavigationService = (*navigationService)(nil)

func (s *navigationService) BuildNavigation(ctx context.Context, versionID uuid.UUID) (*models.NavigationTree, error) {
	version, err := s.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, nil // Unknown version is a not-found signal, not an error
	}

	pages, err := s.pages.ListByVersion(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pages for navigation: %w", err)
	}

	// Partition by parent. A parent id pointing outside the version (or at
	// a deleted page) makes the page a root rather than dropping it.
	known := make(map[uuid.UUID]bool, len(pages))
	for _, page := range pages {
		known[page.ID] = true
	}
	children := make(map[uuid.UUID][]*models.Page)
	var roots []*models.Page
	for _, page := range pages {
		if page.ParentID != nil && known[*page.ParentID] {
			children[*page.ParentID] = append(children[*page.ParentID], page)
		} else {
			roots = append(roots, page)
		}
	}

	visited := make(map[uuid.UUID]bool, len(pages))
	nodes, err := s.attach(roots, children, visited, 0)
	if err != nil {
		return nil, err
	}

	// A page not reached from any root sits on a detached CHILD_OF cycle.
	if len(visited) != len(pages) {
		for _, page := range pages {
			if !visited[page.ID] {
				s.logger.Warn("cyclic page hierarchy", zap.String("page_id", page.ID.String()))
				return nil, apperrors.Validation("cyclic page hierarchy at page %s", page.ID)
			}
		}
	}
	return &models.NavigationTree{Pages: nodes}, nil
}

// attach builds one sibling group, sorted ascending by order, descending
// into each page's children. A page seen twice means CHILD_OF edges form a
// cycle; that is rejected instead of recursing forever.
func (s *navigationService) attach(group []*models.Page, children map[uuid.UUID][]*models.Page, visited map[uuid.UUID]bool, depth int) ([]*models.NavigationNode, error) {
	if depth > s.maxDepth {
		return nil, apperrors.Validation("page hierarchy deeper than %d levels", s.maxDepth)
	}

	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Order < group[j].Order
	})

	nodes := make([]*models.NavigationNode, 0, len(group))
	for _, page := range group {
		if visited[page.ID] {
			s.logger.Warn("cyclic page hierarchy", zap.String("page_id", page.ID.String()))
			return nil, apperrors.Validation("cyclic page hierarchy at page %s", page.ID)
		}
		visited[page.ID] = true

		node := &models.NavigationNode{
			ID:         page.ID,
			Slug:       page.Slug,
			Title:      page.Title,
			Order:      page.Order,
			Visible:    page.Visible,
			DocumentID: page.DocumentID,
			Children:   []*models.NavigationNode{},
		}
		sub, err := s.attach(children[page.ID], children, visited, depth+1)
		if err != nil {
			return nil, err
		}
		if len(sub) > 0 {
			node.Children = sub
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
