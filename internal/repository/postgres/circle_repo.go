package postgres

import (
	"context"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type circleRepository struct {
	db *gorm.DB
}

func NewCircleRepository(db *gorm.DB) *circleRepository {
	return &circleRepository{db: db}
}

func (r *circleRepository) Create(ctx context.Context, circle *domain.Circle) error {
	return r.db.WithContext(ctx).Create(circle).Error
}

func (r *circleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Circle, error) {
	var circle domain.Circle
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Projects").
		First(&circle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &circle, nil
}

func (r *circleRepository) List(ctx context.Context) ([]*domain.Circle, error) {
	var circles []*domain.Circle
	err := r.db.WithContext(ctx).Preload("Members").Order("created_at").Find(&circles).Error
	return circles, err
}

func (r *circleRepository) Update(ctx context.Context, circle *domain.Circle) error {
	return r.db.WithContext(ctx).Save(circle).Error
}

func (r *circleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Circle{}, "id = ?", id).Error
}

func (r *circleRepository) AddMember(ctx context.Context, member *domain.CircleMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *circleRepository) RemoveMember(ctx context.Context, circleID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.CircleMember{}, "circle_id = ? AND user_id = ?", circleID, userID).Error
}
