package domain

import (
	"time"

	"github.com/google/uuid"
)

// FederatedSession is the server-side session row written by the
// federated login flow. The backing table name is configurable, so the
// model is mapped explicitly by the repository rather than by gorm
// naming conventions.
type FederatedSession struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Provider  string    `json:"provider" gorm:"not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}
