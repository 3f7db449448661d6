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

type CircleService struct {
	circleRepo repository.CircleRepository
}

func NewCircleService(circleRepo repository.CircleRepository) *CircleService {
	return &CircleService{circleRepo: circleRepo}
}

type CreateCircleInput struct {
	Name        string
	Description string
}

func (s *CircleService) Create(ctx context.Context, creatorID uuid.UUID, input CreateCircleInput) (*domain.Circle, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: circle name must be provided", domain.ErrValidation)
	}

	circle := &domain.Circle{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		LeadID:      &creatorID,
	}
	if err := s.circleRepo.Create(ctx, circle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: circle name", domain.ErrNameTaken)
		}
		return nil, err
	}

	member := &domain.CircleMember{CircleID: circle.ID, UserID: creatorID}
	if err := s.circleRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	circle.Members = []domain.CircleMember{*member}

	return circle, nil
}

func (s *CircleService) Get(ctx context.Context, id uuid.UUID) (*domain.Circle, error) {
	circle, err := s.circleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: circle", domain.ErrNotFound)
		}
		return nil, err
	}
	return circle, nil
}

func (s *CircleService) List(ctx context.Context) ([]*domain.Circle, error) {
	return s.circleRepo.List(ctx)
}

type UpdateCircleInput struct {
	Description *string
	Rating      *float64
}

// Update is restricted to the circle lead or colead.
func (s *CircleService) Update(ctx context.Context, callerID, id uuid.UUID, input UpdateCircleInput) (*domain.Circle, error) {
	circle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isCircleLead(circle, callerID) {
		return nil, fmt.Errorf("%w: only the circle lead can modify the circle", domain.ErrForbidden)
	}

	if input.Description != nil {
		circle.Description = *input.Description
	}
	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > domain.MaxRating {
			return nil, fmt.Errorf("%w: rating must be between 0 and %d", domain.ErrValidation, domain.MaxRating)
		}
		circle.Rating = *input.Rating
	}

	if err := s.circleRepo.Update(ctx, circle); err != nil {
		return nil, err
	}
	return circle, nil
}

func (s *CircleService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	circle, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isCircleLead(circle, callerID) {
		return fmt.Errorf("%w: only the circle lead can delete the circle", domain.ErrForbidden)
	}
	return s.circleRepo.Delete(ctx, id)
}

func (s *CircleService) Join(ctx context.Context, circleID, userID uuid.UUID) error {
	if _, err := s.Get(ctx, circleID); err != nil {
		return err
	}
	err := s.circleRepo.AddMember(ctx, &domain.CircleMember{CircleID: circleID, UserID: userID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Already a member; joining twice is a no-op.
		return nil
	}
	return err
}

func (s *CircleService) Leave(ctx context.Context, circleID, userID uuid.UUID) error {
	return s.circleRepo.RemoveMember(ctx, circleID, userID)
}

func isCircleLead(circle *domain.Circle, userID uuid.UUID) bool {
	if circle.LeadID != nil && *circle.LeadID == userID {
		return true
	}
	return circle.ColeadID != nil && *circle.ColeadID == userID
}
