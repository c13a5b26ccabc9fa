// Package service provides business logic services for the folio server.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/adityarama/folio/internal/domain"
	"github.com/adityarama/folio/internal/repository"
	"github.com/adityarama/folio/internal/session"
	"github.com/adityarama/folio/internal/storage"
)

// ProjectService handles the project workflow: listing, detail, and the
// authenticated create/edit/delete operations with media upload.
//
// List and Detail are open to anyone. Create requires an identity
// because the new row must be attributed to someone. Edit and Delete
// additionally require that the identity owns the project.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	uploader    storage.Uploader
	logger      zerolog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, uploader storage.Uploader, logger zerolog.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		uploader:    uploader,
		logger:      logger.With().Str("service", "project").Logger(),
	}
}

// List returns all projects, newest first, with owner names joined.
func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list projects")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return projects, nil
}

// Detail retrieves a single project by ID.
func (s *ProjectService) Detail(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		s.logger.Error().Err(err).Int64("project_id", id).Msg("failed to get project")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return project, nil
}

// Upload describes an attached file. A nil *Upload means no file was
// supplied.
type Upload struct {
	Reader   io.Reader
	Filename string
}

// CreateInput contains the data needed to create a project.
type CreateInput struct {
	// Identity is the current session identity. Nil means anonymous.
	Identity *session.Identity

	Name         string
	Description  string
	StartDate    time.Time
	EndDate      *time.Time
	Technologies []string
	File         *Upload
}

// Create creates a project owned by the current identity. Anonymous
// callers fail with ErrUnauthorized before any upload or store work.
// A supplied file is uploaded and its returned reference recorded; with
// no file the placeholder image is used. Upload failures fail the whole
// operation.
func (s *ProjectService) Create(ctx context.Context, input CreateInput) (*domain.Project, error) {
	if input.Identity == nil {
		return nil, domain.ErrUnauthorized
	}
	if input.Name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	image := domain.PlaceholderImage
	if input.File != nil {
		url, err := s.uploader.Upload(ctx, input.File.Reader, input.File.Filename)
		if err != nil {
			s.logger.Error().Err(err).Str("op", "create").Msg("upload failed")
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		image = url
	}

	project := domain.NewProject(input.Identity.UserID, input.Name)
	project.Description = input.Description
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.Technologies = input.Technologies
	project.Image = image

	if err := s.projectRepo.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create project")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("project_id", project.ID).
		Int64("user_id", project.UserID).
		Msg("project created")

	return project, nil
}

// GetOwned retrieves a project for editing, enforcing ownership.
func (s *ProjectService) GetOwned(ctx context.Context, id int64, identity *session.Identity) (*domain.Project, error) {
	if identity == nil {
		return nil, domain.ErrUnauthorized
	}

	project, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.IsOwnedBy(identity.UserID) {
		return nil, domain.ErrForbidden
	}
	return project, nil
}

// UpdateInput contains the data needed to edit a project.
type UpdateInput struct {
	ID       int64
	Identity *session.Identity

	Name         string
	Description  string
	StartDate    time.Time
	EndDate      *time.Time
	Technologies []string

	// File replaces the image when supplied.
	File *Upload

	// ExistingImage is the caller-supplied current reference, kept when
	// no new file arrives. Empty keeps the stored image.
	ExistingImage string
}

// Update edits a project. Only the owner may edit; the image is replaced
// only when a new file is supplied.
func (s *ProjectService) Update(ctx context.Context, input UpdateInput) (*domain.Project, error) {
	project, err := s.GetOwned(ctx, input.ID, input.Identity)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	image := project.Image
	if input.File != nil {
		url, err := s.uploader.Upload(ctx, input.File.Reader, input.File.Filename)
		if err != nil {
			s.logger.Error().Err(err).Str("op", "update").Int64("project_id", input.ID).Msg("upload failed")
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		image = url
	} else if input.ExistingImage != "" {
		image = input.ExistingImage
	}

	project.Name = input.Name
	project.Description = input.Description
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.Technologies = input.Technologies
	project.Image = image

	if err := s.projectRepo.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		s.logger.Error().Err(err).Int64("project_id", input.ID).Msg("failed to update project")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("project_id", project.ID).
		Int64("user_id", project.UserID).
		Msg("project updated")

	return project, nil
}

// Delete removes a project. Only the owner may delete. Deleting a
// missing ID reports ErrProjectNotFound, consistently with Detail.
func (s *ProjectService) Delete(ctx context.Context, id int64, identity *session.Identity) error {
	if _, err := s.GetOwned(ctx, id, identity); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrProjectNotFound
		}
		s.logger.Error().Err(err).Int64("project_id", id).Msg("failed to delete project")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("project_id", id).Msg("project deleted")
	return nil
}
