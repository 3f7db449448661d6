package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepo   repository.ProjectRepository
	reviewRepo    repository.ReviewRepository
	notifications *NotificationService
}

func NewProjectService(projectRepo repository.ProjectRepository, reviewRepo repository.ReviewRepository, notifications *NotificationService) *ProjectService {
	return &ProjectService{
		projectRepo:   projectRepo,
		reviewRepo:    reviewRepo,
		notifications: notifications,
	}
}

type CreateProjectInput struct {
	Name        string
	Description string
	GithubLink  string
	LiveLink    string
	CircleID    *uuid.UUID
}

func (s *ProjectService) Create(ctx context.Context, creatorID uuid.UUID, input CreateProjectInput) (*domain.Project, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: project name must be provided", domain.ErrValidation)
	}

	project := &domain.Project{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		GithubLink:  input.GithubLink,
		LiveLink:    input.LiveLink,
		CircleID:    input.CircleID,
		CreatedByID: creatorID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project", domain.ErrNotFound)
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projectRepo.List(ctx)
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	GithubLink  *string
	LiveLink    *string
}

func (s *ProjectService) Update(ctx context.Context, callerID, id uuid.UUID, input UpdateProjectInput) (*domain.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.CreatedByID != callerID {
		return nil, fmt.Errorf("%w: you do not have permission to modify this project", domain.ErrForbidden)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: project name must not be empty", domain.ErrValidation)
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.GithubLink != nil {
		project.GithubLink = *input.GithubLink
	}
	if input.LiveLink != nil {
		project.LiveLink = *input.LiveLink
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if project.CreatedByID != callerID {
		return fmt.Errorf("%w: you do not have permission to delete this project", domain.ErrForbidden)
	}
	return s.projectRepo.Delete(ctx, id)
}

// CreateReview stores the review and notifies the project owner, unless
// they reviewed their own project.
func (s *ProjectService) CreateReview(ctx context.Context, reviewerID, projectID uuid.UUID, content string) (*domain.ProjectReview, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content must be provided", domain.ErrValidation)
	}

	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	review := &domain.ProjectReview{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    reviewerID,
		Review:    content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if project.CreatedByID != reviewerID {
		content := fmt.Sprintf("Your project %q received a new review.", project.Name)
		url := fmt.Sprintf("/project/%s", projectID)
		if _, err := s.notifications.Create(ctx, project.CreatedByID, content, url); err != nil {
			// The review itself succeeded; a failed notification is not
			// surfaced to the reviewer.
			return review, nil
		}
	}

	return review, nil
}

func (s *ProjectService) ListReviews(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectReview, error) {
	if _, err := s.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByProject(ctx, projectID)
}

func (s *ProjectService) UpdateReview(ctx context.Context, callerID, reviewID uuid.UUID, content string) (*domain.ProjectReview, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content must be provided", domain.ErrValidation)
	}

	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != callerID {
		return nil, fmt.Errorf("%w: you do not have permission to modify this review", domain.ErrForbidden)
	}

	review.Review = content
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ProjectService) DeleteReview(ctx context.Context, callerID, reviewID uuid.UUID) error {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != callerID {
		return fmt.Errorf("%w: you do not have permission to delete this review", domain.ErrForbidden)
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

func (s *ProjectService) getReview(ctx context.Context, id uuid.UUID) (*domain.ProjectReview, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review", domain.ErrNotFound)
		}
		return nil, err
	}
	return review, nil
}
