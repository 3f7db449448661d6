package postgres

import (
	"context"
	"time"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sessionRepository stores federated login sessions. The table name is
// configurable to stay compatible with existing deployments.
type sessionRepository struct {
	db    *gorm.DB
	table string
}

func NewSessionRepository(db *gorm.DB, table string) *sessionRepository {
	if table == "" {
		table = "sessions"
	}
	return &sessionRepository{db: db, table: table}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.FederatedSession) error {
	return r.db.WithContext(ctx).Table(r.table).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FederatedSession, error) {
	var session domain.FederatedSession
	err := r.db.WithContext(ctx).Table(r.table).First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Table(r.table).
		Delete(&domain.FederatedSession{}, "user_id = ?", userID).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).Table(r.table).
		Delete(&domain.FederatedSession{}, "expires_at < ?", time.Now()).Error
}
