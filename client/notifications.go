package client

import (
	"context"
	"net/http"

	"github.com/0zturkSamet/task-manager/domain"
)

// Notifications lists the signed-in user's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &notifications)
	return notifications, err
}

// UnreadNotifications lists only the unread notifications.
func (c *Client) UnreadNotifications(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications/unread", nil, &notifications)
	return notifications, err
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/api/notifications/count", nil, &resp)
	return resp.Count, err
}

// MarkNotificationRead marks one notification as read. Re-marking is a
// no-op.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/"+id+"/read", nil, nil)
}

// MarkAllNotificationsRead marks every unread notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil)
}
