package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/benarowo/circleconnect/internal/api/middleware"
	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	tokenTTL    time.Duration
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, tokenTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL, logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// identityPayload mirrors the public contract: the user object with an
// explicit password: null, plus the token on registration.
type identityPayload struct {
	*domain.User
	Password *string `json:"password"`
	Token    string  `json:"token,omitempty"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	respondMessage(w, http.StatusOK, "Successfully logged in.", identityPayload{User: result.User})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	respondMessage(w, http.StatusCreated, "Successfully registered user.", identityPayload{
		User:  result.User,
		Token: result.Token,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}
	respondData(w, http.StatusOK, identityPayload{User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.GetUser(r.Context()); ok {
		if err := h.authService.Logout(r.Context(), user.ID); err != nil {
			respondError(w, h.logger, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	respondMessage(w, http.StatusOK, "Successfully logged out.", nil)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})
}
