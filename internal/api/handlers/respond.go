package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/benarowo/circleconnect/internal/domain"
	"go.uber.org/zap"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// respondError is the single translation boundary from typed errors to
// HTTP statuses. Unrecognized errors become an opaque 500.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error."

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMissingCredential),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrNameTaken):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = "Unauthenticated."
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrTooManyAttempts):
		status = http.StatusTooManyRequests
		message = err.Error()
	case errors.Is(err, domain.ErrAuthProvider):
		status = http.StatusBadGateway
		message = "Identity provider error, try again later."
	default:
		if logger != nil {
			logger.Error("unhandled error", zap.Error(err))
		}
	}

	writeJSON(w, status, Response{Success: false, Message: message})
}
