package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is an in-app notification addressed to a single user.
// Rows are never deleted in normal flow; only the read flag changes.
type Notification struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Seq         int64          `json:"-" gorm:"autoIncrement;uniqueIndex"`
	RecipientID uuid.UUID      `json:"recipientId" gorm:"type:uuid;not null;index"`
	Content     string         `json:"content" gorm:"not null"`
	URL         string         `json:"url"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	IsRead      bool           `json:"isRead" gorm:"default:false;index"`
	ReadAt      *time.Time     `json:"readAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"index"`
}
