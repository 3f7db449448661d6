package handlers_test

import (
	"net/http"
	"testing"

	"github.com/benarowo/circleconnect/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationPayload struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
	IsRead  bool      `json:"isRead"`
}

type notificationListPayload struct {
	Unread []notificationPayload `json:"unread"`
	Read   []notificationPayload `json:"read"`
}

func doRequest(t *testing.T, method, url string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNotificationHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, cookie := registerUser(t, ts, "recipient@example.com")
	other, _ := registerUser(t, ts, "other@example.com")

	testutil.NewNotificationBuilder(user.ID).WithContent("unread one").Build(t, ts.DB.DB)
	testutil.NewNotificationBuilder(user.ID).WithContent("read one").Read().Build(t, ts.DB.DB)
	testutil.NewNotificationBuilder(other.ID).WithContent("not yours").Build(t, ts.DB.DB)

	resp := doRequest(t, http.MethodGet, ts.URL("/notification/"), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list notificationListPayload
	testutil.DecodeEnvelope(t, resp, &list)

	require.Len(t, list.Unread, 1)
	assert.Equal(t, "unread one", list.Unread[0].Content)
	require.Len(t, list.Read, 1)
	assert.Equal(t, "read one", list.Read[0].Content)
}

func TestNotificationHandler_List_Unauthenticated(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL("/notification/"), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNotificationHandler_MarkAsRead(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, cookie := registerUser(t, ts, "reader@example.com")
	n := testutil.NewNotificationBuilder(user.ID).Build(t, ts.DB.DB)

	resp := doRequest(t, http.MethodPatch, ts.URL("/notification/"+n.ID.String()+"/markAsRead"), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated notificationPayload
	testutil.DecodeEnvelope(t, resp, &updated)
	assert.True(t, updated.IsRead)

	// And back to unread.
	resp = doRequest(t, http.MethodPatch, ts.URL("/notification/"+n.ID.String()+"/markAsUnread"), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	testutil.DecodeEnvelope(t, resp, &updated)
	assert.False(t, updated.IsRead)
}

func TestNotificationHandler_MarkAsRead_OtherUsers(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := registerUser(t, ts, "owner@example.com")
	_, strangerCookie := registerUser(t, ts, "stranger@example.com")

	n := testutil.NewNotificationBuilder(owner.ID).Build(t, ts.DB.DB)

	resp := doRequest(t, http.MethodPatch, ts.URL("/notification/"+n.ID.String()+"/markAsRead"), strangerCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestNotificationHandler_MarkAsRead_Errors(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, cookie := registerUser(t, ts, "errors@example.com")

	t.Run("unknown id", func(t *testing.T) {
		resp := doRequest(t, http.MethodPatch, ts.URL("/notification/"+uuid.NewString()+"/markAsRead"), cookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		resp := doRequest(t, http.MethodPatch, ts.URL("/notification/not-a-uuid/markAsRead"), cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestNotificationHandler_MarkAll(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, cookie := registerUser(t, ts, "markall@example.com")
	for i := 0; i < 3; i++ {
		testutil.NewNotificationBuilder(user.ID).Build(t, ts.DB.DB)
	}

	resp := doRequest(t, http.MethodPatch, ts.URL("/notification/markAll"), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, ts.URL("/notification/"), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list notificationListPayload
	testutil.DecodeEnvelope(t, resp, &list)
	assert.Empty(t, list.Unread)
	assert.Len(t, list.Read, 3)
}
