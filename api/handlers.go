package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/0zturkSamet/task-manager/domain"
	"github.com/0zturkSamet/task-manager/storage"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, auth Authenticator, log *log.Logger) {
	e.POST("/api/auth/register", registerUser(store, auth))
	e.POST("/api/auth/login", login(store, auth))
	e.POST("/api/auth/logout", logout(auth))

	e.GET("/api/users/profile", getProfile(store, auth))
	e.PUT("/api/users/profile", updateProfile(store, auth))
	e.PUT("/api/users/password", changePassword(store, auth))
	e.DELETE("/api/users/account", deleteAccount(store, auth))
	e.GET("/api/users/statistics", userStatistics(store, auth))
	e.GET("/api/users/search", searchUsers(store, auth))
	e.GET("/api/users/all", listUsers(store, auth))

	e.GET("/api/projects", listProjects(store, auth))
	e.POST("/api/projects", createProject(store, auth))
	e.GET("/api/projects/:id", getProject(store, auth))
	e.PUT("/api/projects/:id", updateProject(store, auth))
	e.DELETE("/api/projects/:id", deleteProject(store, auth))
	e.GET("/api/projects/:id/members", listMembers(store, auth))
	e.POST("/api/projects/:id/members", addMember(store, auth))
	e.PUT("/api/projects/:id/members/:memberId/role", updateMemberRole(store, auth))
	e.DELETE("/api/projects/:id/members/:memberId", removeMember(store, auth))
	e.GET("/api/projects/:id/tasks", getProjectTasks(store, auth))
	e.GET("/api/projects/:id/tasks/statistics", projectStatistics(store, auth))

	e.GET("/api/tasks", getTasks(store, auth, log))
	e.POST("/api/tasks", createTask(store, auth))
	e.GET("/api/tasks/:id", getTask(store, auth))
	e.PUT("/api/tasks/:id", updateTask(store, auth))
	e.DELETE("/api/tasks/:id", deleteTask(store, auth))
	e.POST("/api/tasks/filter", filterTasks(store, auth))

	e.GET("/api/tasks/:id/comments", listComments(store, auth))
	e.POST("/api/tasks/:id/comments", addComment(store, auth))
	e.PUT("/api/comments/:id", updateComment(store, auth))
	e.DELETE("/api/comments/:id", deleteComment(store, auth))
	e.POST("/api/comments/:id/like", react(store, auth, domain.ReactionLike))
	e.POST("/api/comments/:id/dislike", react(store, auth, domain.ReactionDislike))

	e.GET("/api/notifications", listNotifications(store, auth))
	e.GET("/api/notifications/unread", listUnreadNotifications(store, auth))
	e.GET("/api/notifications/count", unreadNotificationCount(store, auth))
	e.PUT("/api/notifications/:id/read", markNotificationRead(store, auth))
	e.PUT("/api/notifications/read-all", markAllNotificationsRead(store, auth))

	e.GET("/healthz", healthz(store))

	initNotifier(store, log)
}

func healthz(_ Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

// authenticate resolves the requesting user from the Authorization header.
// On failure the 401 response has already been written and ok is false.
func authenticate(c echo.Context, store Storage, auth Authenticator) (domain.User, bool, error) {
	token, err := bearerTokenFromHeader(c.Request().Header)
	if err != nil {
		return domain.User{}, false, writeError(c, http.StatusUnauthorized, err.Error())
	}
	userID, err := auth.UserIDFromBearer(token)
	if err != nil {
		return domain.User{}, false, writeError(c, http.StatusUnauthorized, err.Error())
	}
	user, err := store.UserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, false, writeError(c, http.StatusUnauthorized, "unknown user")
		}
		return domain.User{}, false, storageError(c, err)
	}
	return user, true, nil
}

// memberRole returns the user's role in the project. System admins who are
// not members get the project admin role so they pass every check short of
// ownership.
func memberRole(c echo.Context, store Storage, user domain.User, projectID string) (domain.ProjectRole, bool, error) {
	role, err := store.RoleOf(c.Request().Context(), projectID, user.ID)
	if err == nil {
		return role, true, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		if user.IsAdmin() {
			return domain.RoleAdmin, true, nil
		}
		return "", false, nil
	}
	return "", false, err
}

// canManageTasks reports whether the role may create, edit or move tasks.
// Plain members are the view tier: they read, comment and react only.
func canManageTasks(role domain.ProjectRole) bool {
	return role == domain.RoleOwner || role == domain.RoleAdmin
}
