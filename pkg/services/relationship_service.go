package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/repositories"
)

// RelationshipService maintains the three concept relations: SUBTYPE_OF
// (child to parent), PART_OF (part to whole), and SYNONYM_OF (symmetric
// within one language). SUBTYPE_OF and PART_OF are kept acyclic.
type RelationshipService interface {
	LinkSubtypeOf(ctx context.Context, childID, parentID uuid.UUID) error
	UnlinkSubtypeOf(ctx context.Context, childID, parentID uuid.UUID) error
	GetSupertypes(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error)
	GetSubtypes(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error)

	LinkPartOf(ctx context.Context, partID, wholeID uuid.UUID) error
	UnlinkPartOf(ctx context.Context, partID, wholeID uuid.UUID) error
	GetWholeOf(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error)
	GetParts(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error)

	LinkSynonymOf(ctx context.Context, aID, bID uuid.UUID) error
	UnlinkSynonymOf(ctx context.Context, aID, bID uuid.UUID) error
	GetSynonyms(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error)
}

type relationshipService struct {
	store    graph.Store
	concepts repositories.ConceptRepository
	maxDepth int
	logger   *zap.Logger
}

// NewRelationshipService creates a new RelationshipService. maxDepth bounds
// the cycle-detection traversal for the hierarchical relations.
func NewRelationshipService(store graph.Store, concepts repositories.ConceptRepository, maxDepth int, logger *zap.Logger) RelationshipService {
	return &relationshipService{
		store:    store,
		concepts: concepts,
		maxDepth: maxDepth,
		logger:   logger.Named("relationship-service"),
	}
}

var _ RelationshipService = (*relationshipService)(nil)

func (s *relationshipService) LinkSubtypeOf(ctx context.Context, childID, parentID uuid.UUID) error {
	return s.linkHierarchical(ctx, graph.EdgeSubtypeOf, childID, parentID)
}

func (s *relationshipService) UnlinkSubtypeOf(ctx context.Context, childID, parentID uuid.UUID) error {
	return s.store.DeleteEdge(ctx, graph.EdgeSubtypeOf, childID, parentID)
}

func (s *relationshipService) GetSupertypes(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error) {
	return s.related(ctx, graph.EdgeSubtypeOf, conceptID, graph.DirectionOut)
}

func (s *relationshipService) GetSubtypes(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error) {
	return s.related(ctx, graph.EdgeSubtypeOf, conceptID, graph.DirectionIn)
}

func (s *relationshipService) LinkPartOf(ctx context.Context, partID, wholeID uuid.UUID) error {
	return s.linkHierarchical(ctx, graph.EdgePartOf, partID, wholeID)
}

func (s *relationshipService) UnlinkPartOf(ctx context.Context, partID, wholeID uuid.UUID) error {
	return s.store.DeleteEdge(ctx, graph.EdgePartOf, partID, wholeID)
}

func (s *relationshipService) GetWholeOf(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error) {
	return s.related(ctx, graph.EdgePartOf, conceptID, graph.DirectionOut)
}

func (s *relationshipService) GetParts(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error) {
	return s.related(ctx, graph.EdgePartOf, conceptID, graph.DirectionIn)
}

func (s *relationshipService) LinkSynonymOf(ctx context.Context, aID, bID uuid.UUID) error {
	a, b, err := s.endpoints(ctx, aID, bID)
	if err != nil {
		return err
	}
	if a.Lang != b.Lang {
		return apperrors.Validation("language mismatch: %s vs %s", a.Lang, b.Lang)
	}

	// Symmetric relation, stored as a directed pair.
	if err := s.store.CreateEdge(ctx, graph.EdgeSynonymOf, aID, bID, nil); err != nil {
		return fmt.Errorf("failed to link synonyms: %w", err)
	}
	if err := s.store.CreateEdge(ctx, graph.EdgeSynonymOf, bID, aID, nil); err != nil {
		return fmt.Errorf("failed to link synonyms: %w", err)
	}
	return nil
}

func (s *relationshipService) UnlinkSynonymOf(ctx context.Context, aID, bID uuid.UUID) error {
	if err := s.store.DeleteEdge(ctx, graph.EdgeSynonymOf, aID, bID); err != nil {
		return err
	}
	// The reverse half may be gone already if a previous unlink was
	// interrupted between the two deletes.
	if err := s.store.DeleteEdge(ctx, graph.EdgeSynonymOf, bID, aID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

func (s *relationshipService) GetSynonyms(ctx context.Context, conceptID uuid.UUID) ([]*models.Concept, error) {
	return s.related(ctx, graph.EdgeSynonymOf, conceptID, graph.DirectionOut)
}

// linkHierarchical runs the shared precondition chain for SUBTYPE_OF and
// PART_OF: endpoints exist, endpoints differ, and the new edge does not
// close a cycle.
func (s *relationshipService) linkHierarchical(ctx context.Context, edgeType string, fromID, toID uuid.UUID) error {
	if _, _, err := s.endpoints(ctx, fromID, toID); err != nil {
		return err
	}

	cyclic, err := s.wouldCycle(ctx, edgeType, fromID, toID)
	if err != nil {
		return err
	}
	if cyclic {
		return apperrors.Validation("relationship cycle: %s already reachable from %s", fromID, toID)
	}

	if err := s.store.CreateEdge(ctx, edgeType, fromID, toID, nil); err != nil {
		return fmt.Errorf("failed to link concepts: %w", err)
	}
	return nil
}

// endpoints loads both concepts, checking existence before identity so a
// missing id is always reported as NotFound.
func (s *relationshipService) endpoints(ctx context.Context, aID, bID uuid.UUID) (*models.Concept, *models.Concept, error) {
	a, err := s.concepts.GetByID(ctx, aID)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		return nil, nil, apperrors.NotFoundEntity("concept", aID.String())
	}

	b, err := s.concepts.GetByID(ctx, bID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, apperrors.NotFoundEntity("concept", bID.String())
	}

	if aID == bID {
		return nil, nil, apperrors.Validation("self-reference: a concept cannot relate to itself")
	}
	return a, b, nil
}

// wouldCycle reports whether fromID is already reachable from toID along
// edges of edgeType, which would make the proposed edge close a cycle. The
// BFS is capped at maxDepth hops; hitting the cap rejects the link rather
// than risking an unbounded walk.
func (s *relationshipService) wouldCycle(ctx context.Context, edgeType string, fromID, toID uuid.UUID) (bool, error) {
	visited := map[uuid.UUID]bool{toID: true}
	frontier := []uuid.UUID{toID}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= s.maxDepth {
			s.logger.Warn("cycle check hit depth cap",
				zap.String("edge_type", edgeType),
				zap.Int("max_depth", s.maxDepth))
			return true, nil
		}

		var next []uuid.UUID
		for _, id := range frontier {
			neighbors, err := s.store.Neighbors(ctx, edgeType, id, graph.DirectionOut)
			if err != nil {
				return false, fmt.Errorf("failed to check for relationship cycle: %w", err)
			}
			for _, n := range neighbors {
				if n == fromID {
					return true, nil
				}
				if !visited[n] {
					visited[n] = true
					next = append(next, n)
				}
			}
		}
		frontier = next
	}
	return false, nil
}

// related resolves the concept, then materializes its one-hop neighborhood
// along edgeType in store order.
func (s *relationshipService) related(ctx context.Context, edgeType string, conceptID uuid.UUID, dir graph.Direction) ([]*models.Concept, error) {
	concept, err := s.concepts.GetByID(ctx, conceptID)
	if err != nil {
		return nil, err
	}
	if concept == nil {
		return nil, apperrors.NotFoundEntity("concept", conceptID.String())
	}

	nodes, err := s.store.Traverse(ctx, edgeType, conceptID, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to traverse relationships: %w", err)
	}

	related := make([]*models.Concept, 0, len(nodes))
	for _, node := range nodes {
		related = append(related, repositories.ConceptFromNode(node))
	}
	return related, nil
}
