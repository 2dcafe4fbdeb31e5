package domain

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	NotificationTaskAssigned   NotificationType = "TASK_ASSIGNED"
	NotificationTaskReassigned NotificationType = "TASK_REASSIGNED"
)

// Notification is an in-app message for a user. TaskID, when set, lets the
// client navigate to the task that caused it. IsRead only ever transitions
// from false to true.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	TaskID    string           `json:"taskId,omitempty"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	CreatedAt string           `json:"createdAt,omitempty"`
}
