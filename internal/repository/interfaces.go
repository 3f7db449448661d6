package repository

import (
	"context"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByProviderID(ctx context.Context, provider, providerID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}

type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	Seed(ctx context.Context) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.FederatedSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FederatedSession, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type CircleRepository interface {
	Create(ctx context.Context, circle *domain.Circle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
	List(ctx context.Context) ([]*domain.Circle, error)
	Update(ctx context.Context, circle *domain.Circle) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, member *domain.CircleMember) error
	RemoveMember(ctx context.Context, circleID, userID uuid.UUID) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.ProjectReview) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectReview, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectReview, error)
	Update(ctx context.Context, review *domain.ProjectReview) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User         UserRepository
	Role         RoleRepository
	Session      SessionRepository
	Notification NotificationRepository
	Circle       CircleRepository
	Project      ProjectRepository
	Review       ReviewRepository
}
