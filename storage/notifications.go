package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/0zturkSamet/task-manager/domain"
)

// NotificationParams carries the fields of a new notification.
type NotificationParams struct {
	UserID  string
	TaskID  string
	Type    domain.NotificationType
	Title   string
	Message string
}

// CreateNotification stores a notification for a user.
func (s *Store) CreateNotification(ctx context.Context, params NotificationParams) (domain.Notification, error) {
	n := domain.Notification{
		ID:        uuid.NewString(),
		UserID:    params.UserID,
		TaskID:    params.TaskID,
		Type:      params.Type,
		Title:     params.Title,
		Message:   params.Message,
		CreatedAt: s.timestamp(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO notifications (id, user_id, task_id, type, title, message, is_read, created_at) VALUES (?, ?, ?, ?, ?, ?, 0, ?)",
		n.ID, n.UserID, nullString(n.TaskID), n.Type, n.Title, n.Message, n.CreatedAt)
	if err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

// NotificationsForUser lists a user's notifications, newest first.
func (s *Store) NotificationsForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.queryNotifications(ctx,
		"SELECT id, user_id, COALESCE(task_id, ''), type, title, message, is_read, created_at FROM notifications WHERE user_id = ? ORDER BY created_at DESC", userID)
}

// UnreadNotifications lists a user's unread notifications, newest first.
func (s *Store) UnreadNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.queryNotifications(ctx,
		"SELECT id, user_id, COALESCE(task_id, ''), type, title, message, is_read, created_at FROM notifications WHERE user_id = ? AND is_read = 0 ORDER BY created_at DESC", userID)
}

// UnreadNotificationCount returns how many unread notifications the user has.
func (s *Store) UnreadNotificationCount(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0", userID).Scan(&n)
	return n, err
}

// MarkNotificationRead marks one of the user's notifications read. Marking
// an already-read notification is a no-op, not an error.
func (s *Store) MarkNotificationRead(ctx context.Context, id, userID string) error {
	if ok, err := s.exists(ctx, "SELECT 1 FROM notifications WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?", id, userID)
	return err
}

// MarkAllNotificationsRead marks every unread notification of the user read.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0", userID)
	return err
}

func (s *Store) queryNotifications(ctx context.Context, query string, args ...any) ([]domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.TaskID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
