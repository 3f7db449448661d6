package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/realtime"
	repoPostgres "github.com/benarowo/circleconnect/internal/repository/postgres"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/benarowo/circleconnect/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNotificationService(t *testing.T) (*service.NotificationService, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB, testutil.TestConfig().SessionTableName)

	hub := realtime.NewHub(zap.NewNop())
	go hub.Run()
	t.Cleanup(hub.Stop)

	return service.NewNotificationService(repos.Notification, hub, zap.NewNop()), testDB
}

func TestNotificationService_Create(t *testing.T) {
	svc, testDB := newNotificationService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	n, err := svc.Create(ctx, user.ID, "Alice reviewed your project", "/project/42")
	require.NoError(t, err)
	assert.Equal(t, user.ID, n.RecipientID)
	assert.False(t, n.IsRead)
	assert.Nil(t, n.ReadAt)

	var stored domain.Notification
	require.NoError(t, testDB.DB.First(&stored, "id = ?", n.ID).Error)
	assert.Equal(t, "Alice reviewed your project", stored.Content)
	assert.Equal(t, "/project/42", stored.URL)
}

func TestNotificationService_Create_NoSubscribers(t *testing.T) {
	svc, testDB := newNotificationService(t)

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// No websocket connection for the recipient; create must still succeed.
	_, err := svc.Create(context.Background(), user.ID, "hello", "")
	require.NoError(t, err)
}

func TestNotificationService_List(t *testing.T) {
	svc, testDB := newNotificationService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	base := time.Now().Add(-time.Hour)
	oldUnread := testutil.NewNotificationBuilder(user.ID).
		WithContent("old unread").
		WithCreatedAt(base).
		Build(t, testDB.DB)
	newUnread := testutil.NewNotificationBuilder(user.ID).
		WithContent("new unread").
		WithCreatedAt(base.Add(10 * time.Minute)).
		Build(t, testDB.DB)
	read := testutil.NewNotificationBuilder(user.ID).
		WithContent("already read").
		WithCreatedAt(base.Add(5 * time.Minute)).
		Read().
		Build(t, testDB.DB)
	testutil.NewNotificationBuilder(other.ID).
		WithContent("someone else's").
		Build(t, testDB.DB)

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)

	require.Len(t, list.Unread, 2)
	assert.Equal(t, newUnread.ID, list.Unread[0].ID)
	assert.Equal(t, oldUnread.ID, list.Unread[1].ID)

	require.Len(t, list.Read, 1)
	assert.Equal(t, read.ID, list.Read[0].ID)
}

func TestNotificationService_List_Empty(t *testing.T) {
	svc, testDB := newNotificationService(t)

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	list, err := svc.List(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, list.Unread)
	assert.NotNil(t, list.Read)
	assert.Empty(t, list.Unread)
	assert.Empty(t, list.Read)
}

func TestNotificationService_MarkRead(t *testing.T) {
	svc, testDB := newNotificationService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	n := testutil.NewNotificationBuilder(user.ID).Build(t, testDB.DB)

	t.Run("marks read", func(t *testing.T) {
		got, err := svc.MarkRead(ctx, user.ID, n.ID, true)
		require.NoError(t, err)
		assert.True(t, got.IsRead)
		require.NotNil(t, got.ReadAt)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := svc.MarkRead(ctx, user.ID, n.ID, true)
		require.NoError(t, err)
		again, err := svc.MarkRead(ctx, user.ID, n.ID, true)
		require.NoError(t, err)
		assert.Equal(t, first.ReadAt.Unix(), again.ReadAt.Unix())
	})

	t.Run("marks unread again", func(t *testing.T) {
		got, err := svc.MarkRead(ctx, user.ID, n.ID, false)
		require.NoError(t, err)
		assert.False(t, got.IsRead)
		assert.Nil(t, got.ReadAt)
	})

	t.Run("forbidden for other users", func(t *testing.T) {
		_, err := svc.MarkRead(ctx, stranger.ID, n.ID, true)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown notification", func(t *testing.T) {
		_, err := svc.MarkRead(ctx, user.ID, uuid.New(), true)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	svc, testDB := newNotificationService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	for i := 0; i < 3; i++ {
		testutil.NewNotificationBuilder(user.ID).Build(t, testDB.DB)
	}
	testutil.NewNotificationBuilder(other.ID).Build(t, testDB.DB)

	require.NoError(t, svc.MarkAllRead(ctx, user.ID))

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Unread)
	require.Len(t, list.Read, 3)
	for _, n := range list.Read {
		assert.NotNil(t, n.ReadAt)
	}

	// Other users' notifications are untouched.
	otherList, err := svc.List(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, otherList.Unread, 1)

	// Running it again is a no-op.
	require.NoError(t, svc.MarkAllRead(ctx, user.ID))
}
