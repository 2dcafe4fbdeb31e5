package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type unreadCountResponse struct {
	Count int64 `json:"count"`
}

func listNotifications(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		notifications, err := store.NotificationsForUser(c.Request().Context(), user.ID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, notifications)
	}
}

func listUnreadNotifications(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		notifications, err := store.UnreadNotifications(c.Request().Context(), user.ID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, notifications)
	}
}

func unreadNotificationCount(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		count, err := store.UnreadNotificationCount(c.Request().Context(), user.ID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, unreadCountResponse{Count: count})
	}
}

func markNotificationRead(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		if err := store.MarkNotificationRead(c.Request().Context(), c.Param("id"), user.ID); err != nil {
			return storageError(c, err)
		}
		return c.NoContent(http.StatusOK)
	}
}

func markAllNotificationsRead(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		if err := store.MarkAllNotificationsRead(c.Request().Context(), user.ID); err != nil {
			return storageError(c, err)
		}
		return c.NoContent(http.StatusOK)
	}
}
