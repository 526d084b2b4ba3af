package service

import (
	"context"

	"parkhub/internal/domain"
	"parkhub/internal/models"

	"github.com/rs/zerolog"
)

// Notifications serves the per-user inbox.
type Notifications struct {
	store domain.Store
	log   zerolog.Logger
}

func NewNotifications(store domain.Store, logger *zerolog.Logger) *Notifications {
	return &Notifications{
		store: store,
		log:   logger.With().Str("component", "notification_service").Logger(),
	}
}

func (s *Notifications) Inbox(ctx context.Context, userID int64, limit int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = models.DefaultPageSize
	}
	if limit > models.MaxPageSize {
		limit = models.MaxPageSize
	}
	return s.store.ListNotificationsByUser(ctx, userID, limit)
}

// MarkRead flags a notification as read. Ownership is enforced by the
// store; a foreign id reads as NotFound.
func (s *Notifications) MarkRead(ctx context.Context, userID, id int64) error {
	return s.store.MarkNotificationRead(ctx, id, userID)
}
