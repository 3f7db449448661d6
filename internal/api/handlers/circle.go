package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/benarowo/circleconnect/internal/api/middleware"
	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CircleHandler struct {
	circles *service.CircleService
	logger  *zap.Logger
}

func NewCircleHandler(circles *service.CircleService, logger *zap.Logger) *CircleHandler {
	return &CircleHandler{circles: circles, logger: logger}
}

type createCircleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CircleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	var req createCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	circle, err := h.circles.Create(r.Context(), userID, service.CreateCircleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, circle)
}

func (h *CircleHandler) List(w http.ResponseWriter, r *http.Request) {
	circles, err := h.circles.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, circles)
}

func (h *CircleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	circle, err := h.circles.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, circle)
}

type updateCircleRequest struct {
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
}

func (h *CircleHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req updateCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	circle, err := h.circles.Update(r.Context(), userID, id, service.UpdateCircleInput{
		Description: req.Description,
		Rating:      req.Rating,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, circle)
}

func (h *CircleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.circles.Delete(r.Context(), userID, id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Circle deleted.", nil)
}

func (h *CircleHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.circles.Join(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Joined circle.", nil)
}

func (h *CircleHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.circles.Leave(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Left circle.", nil)
}

func parseIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", domain.ErrValidation)
	}
	return id, nil
}
