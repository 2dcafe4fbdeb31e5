package api

import (
	"context"

	"github.com/0zturkSamet/task-manager/domain"
	"github.com/0zturkSamet/task-manager/storage"
)

// Storage abstracts persistence for handlers.
type Storage interface {
	CreateUser(ctx context.Context, email, passwordHash, firstName, lastName string) (domain.User, error)
	UserByEmail(ctx context.Context, email string) (domain.User, string, error)
	UserByID(ctx context.Context, id string) (domain.User, error)
	AllUsers(ctx context.Context) ([]domain.User, error)
	SearchUsers(ctx context.Context, query string) ([]domain.User, error)
	UpdateUser(ctx context.Context, id string, upd storage.UserUpdate) (domain.User, error)
	ChangePassword(ctx context.Context, id, passwordHash string) error
	PasswordHash(ctx context.Context, id string) (string, error)
	DeactivateUser(ctx context.Context, id string) error

	CreateProject(ctx context.Context, ownerID, name, description, color string) (domain.Project, error)
	ProjectByID(ctx context.Context, id string) (domain.Project, error)
	ProjectsForUser(ctx context.Context, userID string) ([]domain.Project, error)
	AllProjects(ctx context.Context) ([]domain.Project, error)
	UpdateProject(ctx context.Context, id string, upd storage.ProjectUpdate) (domain.Project, error)
	DeactivateProject(ctx context.Context, id string) error
	Members(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
	AddMember(ctx context.Context, projectID, userID string, role domain.ProjectRole) (domain.ProjectMember, error)
	UpdateMemberRole(ctx context.Context, projectID, userID string, role domain.ProjectRole) error
	RemoveMember(ctx context.Context, projectID, userID string) error
	RoleOf(ctx context.Context, projectID, userID string) (domain.ProjectRole, error)
	ProjectCounts(ctx context.Context, userID string) (owned, member int64, err error)

	CreateTask(ctx context.Context, creatorID string, params storage.TaskParams) (domain.Task, error)
	TaskByID(ctx context.Context, id string) (domain.Task, error)
	TasksForProject(ctx context.Context, projectID string) ([]domain.Task, error)
	TasksForUser(ctx context.Context, userID string) ([]domain.Task, error)
	TasksAssignedTo(ctx context.Context, userID string) ([]domain.Task, error)
	AllTasks(ctx context.Context) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id string, upd storage.TaskUpdate) (domain.Task, error)
	DeactivateTask(ctx context.Context, id string) error

	AddComment(ctx context.Context, taskID, userID, text string) (domain.Comment, error)
	CommentByID(ctx context.Context, id, viewerID string) (domain.Comment, error)
	CommentsForTask(ctx context.Context, taskID, viewerID string) ([]domain.Comment, error)
	UpdateComment(ctx context.Context, id, viewerID, text string) (domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	React(ctx context.Context, commentID, userID string, reaction domain.ReactionType) (domain.Comment, error)

	CreateNotification(ctx context.Context, params storage.NotificationParams) (domain.Notification, error)
	NotificationsForUser(ctx context.Context, userID string) ([]domain.Notification, error)
	UnreadNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	UnreadNotificationCount(ctx context.Context, userID string) (int64, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}

// Authenticator is implemented by types able to extract user IDs from headers
// and mint tokens for authenticated sessions.
type Authenticator interface {
	UserIDFromAuthHeader(string) (string, error)
	UserIDFromBearer(token []byte) (string, error)
	MintToken(userID string) (string, error)
	TokenTTLSeconds() int64
}
