package database

import (
	"context"
	"fmt"
	"time"

	"parkhub/internal/models"
)

func (db *DB) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `INSERT INTO notifications (user_id, message, category, is_read, created_at)
              VALUES (?, ?, ?, 0, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query, n.UserID, n.Message, n.Category, now)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	n.ID = id
	n.CreatedAt = now
	return nil
}

func (db *DB) ListNotificationsByUser(ctx context.Context, userID int64, limit int) ([]*models.Notification, error) {
	if limit <= 0 || limit > models.MaxPageSize {
		limit = models.DefaultPageSize
	}
	query := `SELECT id, user_id, message, category, is_read, created_at
              FROM notifications WHERE user_id = ?
              ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Category, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flips is_read for a notification owned by userID.
func (db *DB) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	query := `UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`
	result, err := db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
