package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxRating bounds circle ratings, matching the public API contract.
const MaxRating = 5

type Circle struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string         `json:"name" gorm:"uniqueIndex;not null"`
	Description string         `json:"description"`
	Rating      float64        `json:"rating" gorm:"default:0"`
	LeadID      *uuid.UUID     `json:"leadId" gorm:"type:uuid"`
	ColeadID    *uuid.UUID     `json:"coleadId" gorm:"type:uuid"`
	Members     []CircleMember `json:"members,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Projects    []Project      `json:"projects,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type CircleMember struct {
	CircleID uuid.UUID `json:"circleId" gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	JoinedAt time.Time `json:"joinedAt"`
}

type Project struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	GithubLink  string         `json:"github_link"`
	LiveLink    string         `json:"live_link"`
	Pictures    datatypes.JSON `json:"pictures,omitempty"`
	CircleID    *uuid.UUID     `json:"circleId" gorm:"type:uuid;index"`
	CreatedByID uuid.UUID      `json:"createdById" gorm:"type:uuid;not null"`
	Reviews     []ProjectReview `json:"reviews,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type ProjectReview struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID uuid.UUID `json:"projectId" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	User      *User     `json:"user,omitempty"`
	Review    string    `json:"review" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}
