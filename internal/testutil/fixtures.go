package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email      string
	password   string
	noPassword bool
	provider   string
	providerID string
	firstName  string
	lastName   string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:     fmt.Sprintf("testuser_%s@example.com", uuid.New().String()[:8]),
		password:  "testpassword123",
		firstName: "Test",
		lastName:  "User",
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithoutPassword makes a federated-only account with no hash at all.
func (b *UserBuilder) WithoutPassword(provider, providerID string) *UserBuilder {
	b.noPassword = true
	b.provider = provider
	b.providerID = providerID
	return b
}

func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	var role domain.Role
	if err := db.First(&role, "name = ?", domain.RoleMember).Error; err != nil {
		t.Fatalf("failed to load member role: %v", err)
	}

	user := &domain.User{
		ID:         uuid.New(),
		Email:      b.email,
		FirstName:  b.firstName,
		LastName:   b.lastName,
		Provider:   b.provider,
		ProviderID: b.providerID,
		RoleID:     role.ID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if !b.noPassword {
		hashed, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		hash := string(hashed)
		user.PasswordHash = &hash
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	user.Role = &role

	return user, b.password
}

// NotificationBuilder creates test notifications
type NotificationBuilder struct {
	recipientID uuid.UUID
	content     string
	url         string
	read        bool
	createdAt   time.Time
}

func NewNotificationBuilder(recipientID uuid.UUID) *NotificationBuilder {
	return &NotificationBuilder{
		recipientID: recipientID,
		content:     "Test notification",
		createdAt:   time.Now(),
	}
}

func (b *NotificationBuilder) WithContent(content string) *NotificationBuilder {
	b.content = content
	return b
}

func (b *NotificationBuilder) WithURL(url string) *NotificationBuilder {
	b.url = url
	return b
}

func (b *NotificationBuilder) Read() *NotificationBuilder {
	b.read = true
	return b
}

func (b *NotificationBuilder) WithCreatedAt(at time.Time) *NotificationBuilder {
	b.createdAt = at
	return b
}

func (b *NotificationBuilder) Build(t *testing.T, db *gorm.DB) *domain.Notification {
	t.Helper()

	n := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: b.recipientID,
		Content:     b.content,
		URL:         b.url,
		IsRead:      b.read,
		CreatedAt:   b.createdAt,
	}
	if b.read {
		now := time.Now()
		n.ReadAt = &now
	}

	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}
	return n
}
