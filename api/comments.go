package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/0zturkSamet/task-manager/domain"
)

type commentRequest struct {
	CommentText string `json:"commentText"`
}

func listComments(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		ctx := c.Request().Context()

		task, err := store.TaskByID(ctx, c.Param("id"))
		if err != nil {
			return storageError(c, err)
		}
		if _, member, err := memberRole(c, store, user, task.ProjectID); err != nil {
			return storageError(c, err)
		} else if !member {
			return forbidden(c)
		}

		comments, err := store.CommentsForTask(ctx, task.ID, user.ID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, comments)
	}
}

func addComment(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		ctx := c.Request().Context()

		task, err := store.TaskByID(ctx, c.Param("id"))
		if err != nil {
			return storageError(c, err)
		}
		if _, member, err := memberRole(c, store, user, task.ProjectID); err != nil {
			return storageError(c, err)
		} else if !member {
			return forbidden(c)
		}

		var req commentRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		if strings.TrimSpace(req.CommentText) == "" {
			return writeError(c, http.StatusBadRequest, "comment text is required")
		}

		comment, err := store.AddComment(ctx, task.ID, user.ID, req.CommentText)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusCreated, comment)
	}
}

func updateComment(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		ctx := c.Request().Context()

		comment, err := store.CommentByID(ctx, c.Param("id"), user.ID)
		if err != nil {
			return storageError(c, err)
		}
		// Only the author may edit their comment.
		if comment.UserID != user.ID {
			return forbidden(c)
		}

		var req commentRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		if strings.TrimSpace(req.CommentText) == "" {
			return writeError(c, http.StatusBadRequest, "comment text is required")
		}

		updated, err := store.UpdateComment(ctx, comment.ID, user.ID, req.CommentText)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

func deleteComment(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		ctx := c.Request().Context()

		comment, err := store.CommentByID(ctx, c.Param("id"), user.ID)
		if err != nil {
			return storageError(c, err)
		}
		if comment.UserID != user.ID {
			task, err := store.TaskByID(ctx, comment.TaskID)
			if err != nil {
				return storageError(c, err)
			}
			role, member, err := memberRole(c, store, user, task.ProjectID)
			if err != nil {
				return storageError(c, err)
			}
			if !member || !canManageTasks(role) {
				return forbidden(c)
			}
		}

		if err := store.DeleteComment(ctx, comment.ID); err != nil {
			return storageError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func react(store Storage, auth Authenticator, reaction domain.ReactionType) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		ctx := c.Request().Context()

		comment, err := store.CommentByID(ctx, c.Param("id"), user.ID)
		if err != nil {
			return storageError(c, err)
		}
		task, err := store.TaskByID(ctx, comment.TaskID)
		if err != nil {
			return storageError(c, err)
		}
		if _, member, err := memberRole(c, store, user, task.ProjectID); err != nil {
			return storageError(c, err)
		} else if !member {
			return forbidden(c)
		}

		updated, err := store.React(ctx, comment.ID, user.ID, reaction)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}
