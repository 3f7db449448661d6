package handlers

import (
	"net/http"

	"github.com/benarowo/circleconnect/internal/api/middleware"
	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/realtime"
	"github.com/benarowo/circleconnect/internal/service"
	ws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub         *realtime.Hub
	authService *service.AuthService
	logger      *zap.Logger
}

func NewWebSocketHandler(hub *realtime.Hub, authService *service.AuthService, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, authService: authService, logger: logger}
}

// Handle authenticates the connection, upgrades it and starts the
// pumps. The client still has to send a JOIN_ROOM message before it
// receives pushes; room membership is rebuilt that way on every
// reconnect.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = middleware.ExtractToken(r)
	}
	if token == "" {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	user, err := h.authService.ResolveIdentity(r.Context(), token)
	if err != nil {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := realtime.NewClient(h.hub, conn, user.ID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
