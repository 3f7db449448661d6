package handlers

import (
	"net/http"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/repository"
	"go.uber.org/zap"
)

type UserHandler struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserHandler(userRepo repository.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, logger: logger}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	scrubbed := make([]*domain.User, 0, len(users))
	for _, u := range users {
		scrubbed = append(scrubbed, u.Scrubbed())
	}
	respondData(w, http.StatusOK, scrubbed)
}
