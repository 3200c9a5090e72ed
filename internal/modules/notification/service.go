package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"communew/internal/domain"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a notification row for the bell UI. Also the realtime
// bridge's NotificationStore.
func (s *Service) Create(ctx context.Context, userID string, typ domain.NotificationType, title, body, link string) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Body:      body,
		Link:      link,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// List returns the user's notifications newest first, plus the unread count
// for the badge.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}
	return list, unread, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// CreateTest backs the "send me a test notification" action in settings.
func (s *Service) CreateTest(ctx context.Context, userID string) (*domain.Notification, error) {
	return s.Create(ctx, userID, domain.NotifTest,
		"Test notification",
		"If you can read this, notifications are working.",
		"/settings/notifications",
	)
}
