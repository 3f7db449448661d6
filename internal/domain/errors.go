package domain

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredential  = errors.New("account has no password; use a federated provider to sign in")
	ErrAuthProvider       = errors.New("identity provider error")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Resource errors
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrEmailTaken = errors.New("a user with this email already exists")
	ErrNameTaken  = errors.New("name already in use")
	ErrValidation = errors.New("invalid input")
)
