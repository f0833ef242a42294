package services

import (
	"context"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/google/uuid"
)

type NotificationService struct {
	repos *repositories.Repositories
}

func NewNotificationService(repos *repositories.Repositories) *NotificationService {
	return &NotificationService{repos: repos}
}

// List returns the caller's notifications, newest first
func (s *NotificationService) List(ctx context.Context) ([]models.NotificationView, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repos.Notifications.GetByRecipientID(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]models.NotificationView, len(rows))
	for i := range rows {
		views[i] = models.NewNotificationView(&rows[i])
	}
	return views, nil
}

// Get returns one notification addressed to the caller
func (s *NotificationService) Get(ctx context.Context, id uuid.UUID) (*models.NotificationView, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.repos.Notifications.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "notification")
	}
	if n.UserID != userID {
		return nil, ForbiddenError("this notification is not yours")
	}
	view := models.NewNotificationView(n)
	return &view, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	userID, err := caller(ctx)
	if err != nil {
		return 0, err
	}
	return s.repos.Notifications.GetUnreadCount(ctx, userID)
}

// MarkRead marks the given notifications of the caller as read. Ids of other
// users' notifications are ignored. It returns how many changed.
func (s *NotificationService) MarkRead(ctx context.Context, ids []uuid.UUID) (int64, error) {
	userID, err := caller(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, ValidationError("no notification ids given")
	}
	return s.repos.Notifications.MarkAsRead(ctx, userID, ids)
}
