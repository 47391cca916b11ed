package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/repositories"
)

// CreateTagInput is the payload for creating a tag.
type CreateTagInput struct {
	Name        string
	Color       string
	Description string
}

// UpdateTagInput carries tag changes. Nil fields are untouched.
type UpdateTagInput struct {
	Name        *string
	Color       *string
	Description *string
}

// TagService manages tags and their attachment to documents, concepts and
// pages. Tag names are unique per team; duplicates surface as ErrConflict.
type TagService interface {
	Create(ctx context.Context, input CreateTagInput) (*models.Tag, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTagInput) (*models.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Tag, int, error)

	Attach(ctx context.Context, entityID, tagID uuid.UUID) error
	Detach(ctx context.Context, entityID, tagID uuid.UUID) error
	ListForEntity(ctx context.Context, entityID uuid.UUID) ([]*models.Tag, error)
}

type tagService struct {
	tags   repositories.TagRepository
	store  graph.Store
	logger *zap.Logger
}

// NewTagService creates a new TagService.
func NewTagService(tags repositories.TagRepository, store graph.Store, logger *zap.Logger) TagService {
	return &tagService{
		tags:   tags,
		store:  store,
		logger: logger.Named("tag-service"),
	}
}

var _ TagService = (*tagService)(nil)

// taggableLabels are the node labels a tag may be attached to.
var taggableLabels = []string{graph.LabelDocument, graph.LabelConcept, graph.LabelPage}

func (s *tagService) Create(ctx context.Context, input CreateTagInput) (*models.Tag, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.Validation("tag name must not be empty")
	}

	tag := &models.Tag{
		Name:        name,
		Color:       input.Color,
		Description: input.Description,
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperrors.NotFoundEntity("tag", id.String())
	}
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, id uuid.UUID, input UpdateTagInput) (*models.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperrors.NotFoundEntity("tag", id.String())
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.Validation("tag name must not be empty")
		}
		tag.Name = name
	}
	if input.Color != nil {
		tag.Color = *input.Color
	}
	if input.Description != nil {
		tag.Description = *input.Description
	}

	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tags.Delete(ctx, id)
}

func (s *tagService) List(ctx context.Context, limit, offset int) ([]*models.Tag, int, error) {
	return s.tags.List(ctx, limit, offset)
}

func (s *tagService) Attach(ctx context.Context, entityID, tagID uuid.UUID) error {
	tag, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return err
	}
	if tag == nil {
		return apperrors.NotFoundEntity("tag", tagID.String())
	}

	if err := s.checkTaggable(ctx, entityID); err != nil {
		return err
	}
	return s.tags.Attach(ctx, entityID, tagID)
}

func (s *tagService) Detach(ctx context.Context, entityID, tagID uuid.UUID) error {
	return s.tags.Detach(ctx, entityID, tagID)
}

func (s *tagService) ListForEntity(ctx context.Context, entityID uuid.UUID) ([]*models.Tag, error) {
	if err := s.checkTaggable(ctx, entityID); err != nil {
		return nil, err
	}
	return s.tags.ListForEntity(ctx, entityID)
}

// checkTaggable resolves the entity across the taggable labels.
func (s *tagService) checkTaggable(ctx context.Context, entityID uuid.UUID) error {
	for _, label := range taggableLabels {
		node, err := s.store.GetNode(ctx, label, entityID)
		if err != nil {
			return err
		}
		if node != nil {
			return nil
		}
	}
	return apperrors.NotFoundEntity("entity", entityID.String())
}
