package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/realtime"
	"github.com/benarowo/circleconnect/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NotificationService struct {
	repo   repository.NotificationRepository
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, hub *realtime.Hub, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, hub: hub, logger: logger}
}

// Create persists the notification, then attempts immediate realtime
// delivery. Delivery is best-effort; an offline recipient sees the
// notification on the next list poll. Recipient ids are trusted
// internal input and are not referentially checked.
func (s *NotificationService) Create(ctx context.Context, recipientID uuid.UUID, content, url string) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Content:     content,
		URL:         url,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.hub != nil {
		event, err := realtime.NewMessage(realtime.MessageTypeNotification, n)
		if err != nil {
			s.logger.Error("encode notification event", zap.Error(err))
		} else {
			s.hub.Push(recipientID, event)
		}
	}

	return n, nil
}

// NotificationList partitions a user's notifications into disjoint
// unread and read sets, each newest first.
type NotificationList struct {
	Unread []*domain.Notification `json:"unread"`
	Read   []*domain.Notification `json:"read"`
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) (*NotificationList, error) {
	notifications, err := s.repo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := &NotificationList{
		Unread: make([]*domain.Notification, 0),
		Read:   make([]*domain.Notification, 0),
	}
	for _, n := range notifications {
		if n.IsRead {
			list.Read = append(list.Read, n)
		} else {
			list.Unread = append(list.Unread, n)
		}
	}
	return list, nil
}

// MarkRead sets the read flag. Only the recipient may mutate a
// notification; anyone else gets ErrForbidden. Idempotent.
func (s *NotificationService) MarkRead(ctx context.Context, callerID, id uuid.UUID, read bool) (*domain.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: notification", domain.ErrNotFound)
		}
		return nil, err
	}

	if n.RecipientID != callerID {
		return nil, fmt.Errorf("%w: notification belongs to another user", domain.ErrForbidden)
	}

	if n.IsRead == read {
		return n, nil
	}

	n.IsRead = read
	if read {
		now := time.Now()
		n.ReadAt = &now
	} else {
		n.ReadAt = nil
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead flips every unread notification for the user. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
