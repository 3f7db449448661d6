package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash   *string   `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ProfilePicture string    `json:"profile_picture"`
	Provider       string    `json:"provider,omitempty" gorm:"index:idx_users_provider_identity,unique,where:provider <> ''"`
	ProviderID     string    `json:"-" gorm:"index:idx_users_provider_identity,unique,where:provider <> ''"`
	RoleID         uuid.UUID `json:"roleId" gorm:"type:uuid;not null"`
	Role           *Role     `json:"role,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Scrubbed returns a copy with the password hash removed, safe to hand
// to response writers.
func (u User) Scrubbed() *User {
	u.PasswordHash = nil
	return &u
}

// HasPassword reports whether the account can authenticate with a
// password. Federated-only accounts carry no hash at all.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

type Role struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string         `json:"name" gorm:"uniqueIndex;not null"`
	Permissions datatypes.JSON `json:"permissions"`
	IsAdmin     bool           `json:"isAdmin" gorm:"default:false"`
	CreatedAt   time.Time      `json:"createdAt"`
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// MinPasswordLength applies to password registration only; federated
// accounts never carry a password.
const MinPasswordLength = 8
