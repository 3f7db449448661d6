package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// SessionCookieName is where the login handlers park the token.
const SessionCookieName = "jwtToken"

// Auth gates protected routes: it extracts the session token, verifies
// it and resolves the full identity (role included) before the handler
// runs. Nothing is cached between requests.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				reject(w)
				return
			}

			user, err := authService.ResolveIdentity(r.Context(), token)
			if err != nil {
				reject(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken prefers the session cookie and falls back to a Bearer
// header so non-browser clients can authenticate too.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(identityKey).(*domain.User)
	return user, ok
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}

func reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": "Unauthenticated.",
	})
}
