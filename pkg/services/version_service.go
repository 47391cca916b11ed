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

var versionPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)

// CreateVersionInput is the payload for creating a documentation version.
type CreateVersionInput struct {
	Version     string
	Name        string
	Description string
	IsPublic    bool
}

// UpdateVersionInput carries version metadata changes. Nil fields are left
// untouched. IsMain is managed through SetMain only.
type UpdateVersionInput struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

// VersionService manages documentation versions. At most one version per
// team is the main one; SetMain clears the previous flag before setting
// the new one.
type VersionService interface {
	Create(ctx context.Context, input CreateVersionInput) (*models.Version, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Version, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVersionInput) (*models.Version, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Version, int, error)
	SetMain(ctx context.Context, id uuid.UUID) (*models.Version, error)
}

type versionService struct {
	versions repositories.VersionRepository
	logger   *zap.Logger
}

// NewVersionService creates a new VersionService.
func NewVersionService(versions repositories.VersionRepository, logger *zap.Logger) VersionService {
	return &versionService{
		versions: versions,
		logger:   logger.Named("version-service"),
	}
}

var _ VersionService = (*versionService)(nil)

func (s *versionService) Create(ctx context.Context, input CreateVersionInput) (*models.Version, error) {
	if !versionPattern.MatchString(input.Version) {
		return nil, apperrors.Validation("version must look like v<major>.<minor>.<patch>, got %q", input.Version)
	}
	if input.Name == "" {
		return nil, apperrors.Validation("version name must not be empty")
	}

	version := &models.Version{
		Version:     input.Version,
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    input.IsPublic,
	}
	if err := s.versions.Create(ctx, version); err != nil {
		return nil, err
	}
	return version, nil
}

func (s *versionService) Get(ctx context.Context, id uuid.UUID) (*models.Version, error) {
	version, err := s.versions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apperrors.NotFoundEntity("version", id.String())
	}
	return version, nil
}

func (s *versionService) Update(ctx context.Context, id uuid.UUID, input UpdateVersionInput) (*models.Version, error) {
	version, err := s.versions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apperrors.NotFoundEntity("version", id.String())
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.Validation("version name must not be empty")
		}
		version.Name = *input.Name
	}
	if input.Description != nil {
		version.Description = *input.Description
	}
	if input.IsPublic != nil {
		version.IsPublic = *input.IsPublic
	}

	if err := s.versions.Update(ctx, version); err != nil {
		return nil, err
	}
	return version, nil
}

func (s *versionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.versions.Delete(ctx, id)
}

func (s *versionService) List(ctx context.Context, limit, offset int) ([]*models.Version, int, error) {
	return s.versions.List(ctx, limit, offset)
}

func (s *versionService) SetMain(ctx context.Context, id uuid.UUID) (*models.Version, error) {
	version, err := s.versions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apperrors.NotFoundEntity("version", id.String())
	}
	if version.IsMain {
		return version, nil
	}

	// Check-and-clear: demote the current main before promoting. The two
	// writes are not transactional; the clear-first order means a crash in
	// between leaves no main rather than two.
	current, err := s.versions.GetMain(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil {
		current.IsMain = false
		if err := s.versions.Update(ctx, current); err != nil {
			return nil, err
		}
	}

	version.IsMain = true
	if err := s.versions.Update(ctx, version); err != nil {
		return nil, err
	}
	return version, nil
}
