package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/repositories"
)

// CreateConceptInput is the payload for creating a glossary concept.
type CreateConceptInput struct {
	Term        string
	Description string
	Lang        string
}

// UpdateConceptInput carries concept changes. Nil fields are untouched.
// Lang cannot change once synonyms may depend on it, so it is create-only.
type UpdateConceptInput struct {
	Term        *string
	Description *string
}

// ConceptService manages glossary concept CRUD. Relations between concepts
// belong to the RelationshipService.
type ConceptService interface {
	Create(ctx context.Context, input CreateConceptInput) (*models.Concept, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Concept, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateConceptInput) (*models.Concept, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter map[string]any, limit, offset int) ([]*models.Concept, int, error)
}

type conceptService struct {
	concepts repositories.ConceptRepository
	logger   *zap.Logger
}

// NewConceptService creates a new ConceptService.
func NewConceptService(concepts repositories.ConceptRepository, logger *zap.Logger) ConceptService {
	return &conceptService{
		concepts: concepts,
		logger:   logger.Named("concept-service"),
	}
}

var _ ConceptService = (*conceptService)(nil)

func (s *conceptService) Create(ctx context.Context, input CreateConceptInput) (*models.Concept, error) {
	if input.Term == "" {
		return nil, apperrors.Validation("concept term must not be empty")
	}
	if !langPattern.MatchString(input.Lang) {
		return nil, apperrors.Validation("lang must be a 2-letter code, got %q", input.Lang)
	}

	concept := &models.Concept{
		Term:        input.Term,
		Description: input.Description,
		Lang:        input.Lang,
	}
	if err := s.concepts.Create(ctx, concept); err != nil {
		return nil, err
	}
	return concept, nil
}

func (s *conceptService) Get(ctx context.Context, id uuid.UUID) (*models.Concept, error) {
	concept, err := s.concepts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if concept == nil {
		return nil, apperrors.NotFoundEntity("concept", id.String())
	}
	return concept, nil
}

func (s *conceptService) Update(ctx context.Context, id uuid.UUID, input UpdateConceptInput) (*models.Concept, error) {
	concept, err := s.concepts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if concept == nil {
		return nil, apperrors.NotFoundEntity("concept", id.String())
	}

	if input.Term != nil {
		if *input.Term == "" {
			return nil, apperrors.Validation("concept term must not be empty")
		}
		concept.Term = *input.Term
	}
	if input.Description != nil {
		concept.Description = *input.Description
	}

	if err := s.concepts.Update(ctx, concept); err != nil {
		return nil, err
	}
	return concept, nil
}

func (s *conceptService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.concepts.Delete(ctx, id)
}

func (s *conceptService) List(ctx context.Context, filter map[string]any, limit, offset int) ([]*models.Concept, int, error) {
	return s.concepts.List(ctx, filter, limit, offset)
}
