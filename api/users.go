package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/0zturkSamet/task-manager/domain"
	"github.com/0zturkSamet/task-manager/storage"
	"github.com/0zturkSamet/task-manager/validate"
)

func getProfile(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		return c.JSON(http.StatusOK, user)
	}
}

type updateProfileRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	ProfileImage *string `json:"profileImage"`
}

func updateProfile(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}

		var req updateProfileRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		if req.FirstName != nil && !validate.ValidName(*req.FirstName) {
			return writeError(c, http.StatusBadRequest, "Name must be at least 2 characters")
		}
		if req.LastName != nil && !validate.ValidName(*req.LastName) {
			return writeError(c, http.StatusBadRequest, "Name must be at least 2 characters")
		}

		updated, err := store.UpdateUser(c.Request().Context(), user.ID, storage.UserUpdate{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			ProfileImage: req.ProfileImage,
		})
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func changePassword(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}

		var req changePasswordRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		if !validate.ValidPassword(req.NewPassword) {
			return writeError(c, http.StatusBadRequest, "Password must be at least 6 characters")
		}

		hash, err := store.PasswordHash(c.Request().Context(), user.ID)
		if err != nil {
			return storageError(c, err)
		}
		if !CheckPassword(hash, req.CurrentPassword) {
			return writeError(c, http.StatusUnauthorized, "invalid credentials")
		}

		newHash, err := HashPassword(req.NewPassword)
		if err != nil {
			return storageError(c, err)
		}
		if err := store.ChangePassword(c.Request().Context(), user.ID, newHash); err != nil {
			return storageError(c, err)
		}
		return c.NoContent(http.StatusOK)
	}
}

func deleteAccount(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		if err := store.DeactivateUser(c.Request().Context(), user.ID); err != nil {
			return storageError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func userStatistics(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		ctx := c.Request().Context()

		tasks, err := store.TasksForUser(ctx, user.ID)
		if err != nil {
			return storageError(c, err)
		}
		owned, member, err := store.ProjectCounts(ctx, user.ID)
		if err != nil {
			return storageError(c, err)
		}
		stats := domain.ComputeUserStatistics(tasks, user.ID, owned, member, time.Now())
		return c.JSON(http.StatusOK, stats)
	}
}

func searchUsers(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		query := c.QueryParam("q")
		if query == "" {
			query = c.QueryParam("query")
		}
		users, err := store.SearchUsers(c.Request().Context(), query)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, users)
	}
}

func listUsers(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		users, err := store.AllUsers(c.Request().Context())
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, users)
	}
}
