package realtime_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benarowo/circleconnect/internal/realtime"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newHubServer stands up a hub behind a bare websocket endpoint that
// authenticates via a userId query parameter.
func newHubServer(t *testing.T) (*realtime.Hub, *httptest.Server) {
	t.Helper()

	hub := realtime.NewHub(zap.NewNop())
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.URL.Query().Get("userId"))
		if err != nil {
			http.Error(w, "bad user id", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := realtime.NewClient(hub, conn, userID)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return hub, server
}

func dial(t *testing.T, server *httptest.Server, userID uuid.UUID) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?userId=" + userID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func joinRoom(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "JOIN_ROOM"}))

	msg := readMessage(t, conn)
	require.Equal(t, realtime.MessageTypeRoomJoined, msg.Type)
}

func readMessage(t *testing.T, conn *websocket.Conn) realtime.Message {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg realtime.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_JoinRoom(t *testing.T) {
	hub, server := newHubServer(t)
	userID := uuid.New()

	conn := dial(t, server, userID)
	joinRoom(t, conn)

	assert.Eventually(t, func() bool {
		return hub.ConnectionCount(userID) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PushDeliversToJoinedConnection(t *testing.T) {
	hub, server := newHubServer(t)
	userID := uuid.New()

	conn := dial(t, server, userID)
	joinRoom(t, conn)

	event, err := realtime.NewMessage(realtime.MessageTypeNotification, map[string]string{
		"content": "You have a new review",
	})
	require.NoError(t, err)
	hub.Push(userID, event)

	msg := readMessage(t, conn)
	assert.Equal(t, realtime.MessageTypeNotification, msg.Type)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "You have a new review", payload["content"])
}

func TestHub_PushBeforeJoinIsDropped(t *testing.T) {
	hub, server := newHubServer(t)
	userID := uuid.New()

	conn := dial(t, server, userID)

	// The connection is registered but has not joined its room, so the
	// event has nowhere to go.
	event, err := realtime.NewMessage(realtime.MessageTypeNotification, nil)
	require.NoError(t, err)
	hub.Push(userID, event)

	joinRoom(t, conn)

	// The first frame after joining is the join ack, not the stale event.
	laterEvent, err := realtime.NewMessage(realtime.MessageTypeNotification, map[string]string{"content": "later"})
	require.NoError(t, err)
	hub.Push(userID, laterEvent)

	msg := readMessage(t, conn)
	assert.Equal(t, realtime.MessageTypeNotification, msg.Type)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "later", payload["content"])
}

func TestHub_PushToEmptyRoom(t *testing.T) {
	hub, _ := newHubServer(t)

	event, err := realtime.NewMessage(realtime.MessageTypeNotification, nil)
	require.NoError(t, err)

	// Nobody is listening; Push must not block or panic.
	hub.Push(uuid.New(), event)
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub, server := newHubServer(t)
	userID := uuid.New()

	first := dial(t, server, userID)
	second := dial(t, server, userID)
	joinRoom(t, first)
	joinRoom(t, second)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount(userID) == 2
	}, 2*time.Second, 10*time.Millisecond)

	event, err := realtime.NewMessage(realtime.MessageTypeNotification, map[string]string{"content": "fan out"})
	require.NoError(t, err)
	hub.Push(userID, event)

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		assert.Equal(t, realtime.MessageTypeNotification, msg.Type)
	}
}

func TestHub_RoomsAreIsolated(t *testing.T) {
	hub, server := newHubServer(t)
	alice := uuid.New()
	bob := uuid.New()

	aliceConn := dial(t, server, alice)
	bobConn := dial(t, server, bob)
	joinRoom(t, aliceConn)
	joinRoom(t, bobConn)

	event, err := realtime.NewMessage(realtime.MessageTypeNotification, map[string]string{"content": "for alice"})
	require.NoError(t, err)
	hub.Push(alice, event)

	msg := readMessage(t, aliceConn)
	assert.Equal(t, realtime.MessageTypeNotification, msg.Type)

	// Bob's connection stays silent.
	bobConn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var stray realtime.Message
	err = bobConn.ReadJSON(&stray)
	require.Error(t, err)
}

func TestHub_UnknownMessageType(t *testing.T) {
	_, server := newHubServer(t)

	conn := dial(t, server, uuid.New())
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "SOMETHING_ELSE"}))

	msg := readMessage(t, conn)
	assert.Equal(t, realtime.MessageTypeError, msg.Type)
}

func TestHub_DisconnectLeavesRoom(t *testing.T) {
	hub, server := newHubServer(t)
	userID := uuid.New()

	conn := dial(t, server, userID)
	joinRoom(t, conn)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount(userID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool {
		return hub.ConnectionCount(userID) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
