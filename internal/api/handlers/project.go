package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/benarowo/circleconnect/internal/api/middleware"
	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projects *service.ProjectService
	logger   *zap.Logger
}

func NewProjectHandler(projects *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

type createProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	GithubLink  string     `json:"github_link"`
	LiveLink    string     `json:"live_link"`
	CircleID    *uuid.UUID `json:"circleId"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	project, err := h.projects.Create(r.Context(), userID, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		GithubLink:  req.GithubLink,
		LiveLink:    req.LiveLink,
		CircleID:    req.CircleID,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, project)
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	GithubLink  *string `json:"github_link"`
	LiveLink    *string `json:"live_link"`
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	project, err := h.projects.Update(r.Context(), userID, id, service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		GithubLink:  req.GithubLink,
		LiveLink:    req.LiveLink,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.projects.Delete(r.Context(), userID, id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Project deleted.", nil)
}

type reviewRequest struct {
	Content string `json:"content"`
}

func (h *ProjectHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	projectID, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	review, err := h.projects.CreateReview(r.Context(), userID, projectID, req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, review)
}

func (h *ProjectHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	reviews, err := h.projects.ListReviews(r.Context(), projectID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, reviews)
}

func (h *ProjectHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	reviewID, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	review, err := h.projects.UpdateReview(r.Context(), userID, reviewID, req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, review)
}

func (h *ProjectHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	reviewID, err := parseIDParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.projects.DeleteReview(r.Context(), userID, reviewID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Review deleted.", nil)
}
