package service_test

import (
	"context"
	"testing"

	"github.com/benarowo/circleconnect/internal/domain"
	repoPostgres "github.com/benarowo/circleconnect/internal/repository/postgres"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/benarowo/circleconnect/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProjectService(t *testing.T) (*service.ProjectService, *service.NotificationService, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB, testutil.TestConfig().SessionTableName)

	notifications := service.NewNotificationService(repos.Notification, nil, zap.NewNop())
	projects := service.NewProjectService(repos.Project, repos.Review, notifications)
	return projects, notifications, testDB
}

func TestProjectService_Create(t *testing.T) {
	svc, _, testDB := newProjectService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("creates project", func(t *testing.T) {
		project, err := svc.Create(ctx, owner.ID, service.CreateProjectInput{
			Name:        "Circle Site",
			Description: "Our landing page",
			GithubLink:  "https://github.com/example/circle-site",
		})
		require.NoError(t, err)
		assert.Equal(t, owner.ID, project.CreatedByID)

		got, err := svc.Get(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Circle Site", got.Name)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, service.CreateProjectInput{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestProjectService_Update(t *testing.T) {
	svc, _, testDB := newProjectService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	project, err := svc.Create(ctx, owner.ID, service.CreateProjectInput{Name: "Original"})
	require.NoError(t, err)

	t.Run("owner can update", func(t *testing.T) {
		name := "Renamed"
		got, err := svc.Update(ctx, owner.ID, project.ID, service.UpdateProjectInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		name := "Hijacked"
		_, err := svc.Update(ctx, stranger.ID, project.ID, service.UpdateProjectInput{Name: &name})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		name := ""
		_, err := svc.Update(ctx, owner.ID, project.ID, service.UpdateProjectInput{Name: &name})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown project", func(t *testing.T) {
		name := "Whatever"
		_, err := svc.Update(ctx, owner.ID, uuid.New(), service.UpdateProjectInput{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProjectService_Delete(t *testing.T) {
	svc, _, testDB := newProjectService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	project, err := svc.Create(ctx, owner.ID, service.CreateProjectInput{Name: "Doomed"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, stranger.ID, project.ID), domain.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, owner.ID, project.ID))

	_, err = svc.Get(ctx, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_CreateReview(t *testing.T) {
	svc, notifications, testDB := newProjectService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	reviewer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	project, err := svc.Create(ctx, owner.ID, service.CreateProjectInput{Name: "Reviewable"})
	require.NoError(t, err)

	t.Run("review notifies the project owner", func(t *testing.T) {
		review, err := svc.CreateReview(ctx, reviewer.ID, project.ID, "Great work!")
		require.NoError(t, err)
		assert.Equal(t, reviewer.ID, review.UserID)

		list, err := notifications.List(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list.Unread, 1)
		assert.Contains(t, list.Unread[0].Content, project.Name)
	})

	t.Run("self review does not notify", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, owner.ID, project.ID, "Looks fine to me.")
		require.NoError(t, err)

		list, err := notifications.List(ctx, owner.ID)
		require.NoError(t, err)
		assert.Len(t, list.Unread, 1)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, reviewer.ID, project.ID, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, reviewer.ID, uuid.New(), "Nice!")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProjectService_ReviewOwnership(t *testing.T) {
	svc, _, testDB := newProjectService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	reviewer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	project, err := svc.Create(ctx, owner.ID, service.CreateProjectInput{Name: "Reviewable"})
	require.NoError(t, err)

	review, err := svc.CreateReview(ctx, reviewer.ID, project.ID, "First impression")
	require.NoError(t, err)

	t.Run("author can edit", func(t *testing.T) {
		got, err := svc.UpdateReview(ctx, reviewer.ID, review.ID, "Revised impression")
		require.NoError(t, err)
		assert.Equal(t, "Revised impression", got.Review)
	})

	t.Run("project owner cannot edit someone else's review", func(t *testing.T) {
		_, err := svc.UpdateReview(ctx, owner.ID, review.ID, "Edited by owner")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("only the author can delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteReview(ctx, owner.ID, review.ID), domain.ErrForbidden)
		require.NoError(t, svc.DeleteReview(ctx, reviewer.ID, review.ID))

		reviews, err := svc.ListReviews(ctx, project.ID)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})
}
