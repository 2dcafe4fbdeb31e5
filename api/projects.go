package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/0zturkSamet/task-manager/domain"
	"github.com/0zturkSamet/task-manager/storage"
	"github.com/0zturkSamet/task-manager/validate"
)

func listProjects(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		ctx := c.Request().Context()

		var projects []domain.Project
		if user.IsAdmin() {
			projects, err = store.AllProjects(ctx)
		} else {
			projects, err = store.ProjectsForUser(ctx, user.ID)
		}
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, projects)
	}
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func createProject(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}

		var req projectRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		if errs := validate.ValidateProjectForm(validate.ProjectForm{Name: req.Name, Description: req.Description}); !errs.Valid() {
			return writeError(c, http.StatusBadRequest, firstMessage(errs))
		}

		p, err := store.CreateProject(c.Request().Context(), user.ID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), req.Color)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusCreated, p)
	}
}

func getProject(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		projectID := c.Param("id")

		if _, member, err := memberRole(c, store, user, projectID); err != nil {
			return storageError(c, err)
		} else if !member {
			return forbidden(c)
		}

		p, err := store.ProjectByID(c.Request().Context(), projectID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, p)
	}
}

func updateProject(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		projectID := c.Param("id")

		role, member, err := memberRole(c, store, user, projectID)
		if err != nil {
			return storageError(c, err)
		}
		if !member || !canManageTasks(role) {
			return forbidden(c)
		}

		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Color       *string `json:"color"`
		}
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		if req.Name != nil && len(strings.TrimSpace(*req.Name)) < 3 {
			return writeError(c, http.StatusBadRequest, "Project name must be at least 3 characters")
		}
		if req.Description != nil && len(strings.TrimSpace(*req.Description)) < 10 {
			return writeError(c, http.StatusBadRequest, "Description must be at least 10 characters")
		}

		p, err := store.UpdateProject(c.Request().Context(), projectID, storage.ProjectUpdate{
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
		})
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, p)
	}
}

func deleteProject(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		projectID := c.Param("id")

		// Deleting is owner-only; a system admin may also do it.
		role, member, err := memberRole(c, store, user, projectID)
		if err != nil {
			return storageError(c, err)
		}
		if !user.IsAdmin() && (!member || role != domain.RoleOwner) {
			return forbidden(c)
		}

		if err := store.DeactivateProject(c.Request().Context(), projectID); err != nil {
			return storageError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func listMembers(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		projectID := c.Param("id")

		if _, member, err := memberRole(c, store, user, projectID); err != nil {
			return storageError(c, err)
		} else if !member {
			return forbidden(c)
		}

		members, err := store.Members(c.Request().Context(), projectID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, members)
	}
}

type addMemberRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func addMember(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		projectID := c.Param("id")

		if !isOwnerOrSystemAdmin(c, store, user, projectID) {
			return forbidden(c)
		}

		var req addMemberRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		role := domain.ProjectRole(req.Role)
		if role == "" {
			role = domain.RoleMember
		}
		if !domain.ValidRole(role) || role == domain.RoleOwner {
			return writeError(c, http.StatusBadRequest, "invalid role")
		}

		m, err := store.AddMember(c.Request().Context(), projectID, req.UserID, role)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusCreated, m)
	}
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func updateMemberRole(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		projectID := c.Param("id")
		memberID := c.Param("memberId")

		if !isOwnerOrSystemAdmin(c, store, user, projectID) {
			return forbidden(c)
		}

		var req updateRoleRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		role := domain.ProjectRole(req.Role)
		// Ownership is not transferable through this route.
		if !domain.ValidRole(role) || role == domain.RoleOwner {
			return writeError(c, http.StatusBadRequest, "invalid role")
		}

		current, err := store.RoleOf(c.Request().Context(), projectID, memberID)
		if err != nil {
			return storageError(c, err)
		}
		if current == domain.RoleOwner {
			return writeError(c, http.StatusBadRequest, "cannot change the owner's role")
		}

		if err := store.UpdateMemberRole(c.Request().Context(), projectID, memberID, role); err != nil {
			return storageError(c, err)
		}
		return c.NoContent(http.StatusOK)
	}
}

func removeMember(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		projectID := c.Param("id")
		memberID := c.Param("memberId")

		// Members may leave on their own; removing anyone else is owner-only.
		if memberID != user.ID && !isOwnerOrSystemAdmin(c, store, user, projectID) {
			return forbidden(c)
		}

		role, err := store.RoleOf(c.Request().Context(), projectID, memberID)
		if err != nil {
			return storageError(c, err)
		}
		if role == domain.RoleOwner {
			return writeError(c, http.StatusBadRequest, "cannot remove the project owner")
		}

		if err := store.RemoveMember(c.Request().Context(), projectID, memberID); err != nil {
			return storageError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func projectStatistics(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		projectID := c.Param("id")

		if _, member, err := memberRole(c, store, user, projectID); err != nil {
			return storageError(c, err)
		} else if !member {
			return forbidden(c)
		}

		tasks, err := store.TasksForProject(c.Request().Context(), projectID)
		if err != nil {
			return storageError(c, err)
		}
		stats := domain.ComputeTaskStatistics(tasks, user.ID, time.Now())
		return c.JSON(http.StatusOK, stats)
	}
}

func isOwnerOrSystemAdmin(c echo.Context, store Storage, user domain.User, projectID string) bool {
	if user.IsAdmin() {
		return true
	}
	role, err := store.RoleOf(c.Request().Context(), projectID, user.ID)
	return err == nil && role == domain.RoleOwner
}

func firstMessage(errs validate.Errors) string {
	for _, msg := range errs {
		return msg
	}
	return "invalid input"
}
