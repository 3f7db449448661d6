package handlers

import (
	"fmt"
	"net/http"

	"github.com/benarowo/circleconnect/internal/api/middleware"
	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notifications *service.NotificationService
	logger        *zap.Logger
}

func NewNotificationHandler(notifications *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	list, err := h.notifications.List(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, true)
}

func (h *NotificationHandler) MarkAsUnread(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, false)
}

func (h *NotificationHandler) mark(w http.ResponseWriter, r *http.Request, read bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, fmt.Errorf("%w: invalid notification id", domain.ErrValidation))
		return
	}

	n, err := h.notifications.MarkRead(r.Context(), userID, id, read)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, n)
}

func (h *NotificationHandler) MarkAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	if err := h.notifications.MarkAllRead(r.Context(), userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Marked all notifications as read.", nil)
}
