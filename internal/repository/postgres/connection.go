package postgres

import (
	"context"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema. The federated session table
// name comes from configuration, so it is migrated separately from the
// convention-named models.
func Migrate(db *gorm.DB, sessionTable string) error {
	err := db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Notification{},
		&domain.Circle{},
		&domain.CircleMember{},
		&domain.Project{},
		&domain.ProjectReview{},
	)
	if err != nil {
		return err
	}
	return db.Table(sessionTable).AutoMigrate(&domain.FederatedSession{})
}

func NewRepositories(db *gorm.DB, sessionTable string) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		Role:         NewRoleRepository(db),
		Session:      NewSessionRepository(db, sessionTable),
		Notification: NewNotificationRepository(db),
		Circle:       NewCircleRepository(db),
		Project:      NewProjectRepository(db),
		Review:       NewReviewRepository(db),
	}
}

// SeedRoles makes sure the reference roles exist. Safe to run on every
// boot.
func SeedRoles(ctx context.Context, repos *repository.Repositories) error {
	return repos.Role.Seed(ctx)
}
