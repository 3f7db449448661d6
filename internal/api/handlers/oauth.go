package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/benarowo/circleconnect/internal/api/middleware"
	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const stateCookieName = "oauthState"

// OAuthHandler drives the redirect-based federated login flow. The
// begin leg sets a state cookie and bounces to the provider; the
// callback leg validates state, runs the federated strategy and leaves
// the browser on the frontend with the session cookie set.
type OAuthHandler struct {
	authService *service.AuthService
	frontendURL string
	tokenTTL    time.Duration
	logger      *zap.Logger
}

func NewOAuthHandler(authService *service.AuthService, frontendURL string, tokenTTL time.Duration, logger *zap.Logger) *OAuthHandler {
	return &OAuthHandler{
		authService: authService,
		frontendURL: frontendURL,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

func (h *OAuthHandler) Begin(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")
	provider, ok := h.authService.Provider(providerName)
	if !ok {
		respondError(w, h.logger, fmt.Errorf("%w: unknown provider %q", domain.ErrValidation, providerName))
		return
	}

	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int((10 * time.Minute).Seconds()),
	})

	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respondError(w, h.logger, fmt.Errorf("%w: oauth state mismatch", domain.ErrValidation))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, h.logger, fmt.Errorf("%w: missing authorization code", domain.ErrValidation))
		return
	}

	result, err := h.authService.FederatedLogin(r.Context(), providerName, code)
	if err != nil {
		h.logger.Warn("federated login failed",
			zap.String("provider", providerName), zap.Error(err))
		respondError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})

	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}
