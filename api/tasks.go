package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/0zturkSamet/task-manager/domain"
	"github.com/0zturkSamet/task-manager/storage"
	"github.com/0zturkSamet/task-manager/validate"
)

// getTasks serves the board's backing list and is the hottest read in the
// API, so it carries the request metrics instrumentation.
func getTasks(store Storage, auth Authenticator, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newTaskRequestMetrics(ctx, logger)
		if spanCtx != nil {
			req := c.Request().WithContext(spanCtx)
			c.SetRequest(req)
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		authStart := time.Now()
		userID, authErr := auth.UserIDFromAuthHeader(c.Request().Header.Get("Authorization"))
		metrics.ObserveAuth(time.Since(authStart))
		if authErr != nil {
			metrics.SetErrorStage("auth")
			err = writeError(c, http.StatusUnauthorized, authErr.Error())
			return err
		}

		fetchStart := time.Now()
		tasks, fetchErr := store.TasksForUser(ctx, userID)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = writeError(c, http.StatusInternalServerError, "internal error")
			return err
		}
		metrics.SetTasksReturned(len(tasks))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, tasks)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

type taskRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	ProjectID      string   `json:"projectId"`
	AssignedToID   string   `json:"assignedToId"`
	DueDate        string   `json:"dueDate"`
	EstimatedHours *float64 `json:"estimatedHours"`
	ActualHours    *float64 `json:"actualHours"`
	Position       *int     `json:"position"`
}

func createTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}

		var req taskRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		if errs := validate.ValidateTaskForm(validate.TaskFormFields{
			Title: req.Title, ProjectID: req.ProjectID, Status: req.Status, Priority: req.Priority,
		}); !errs.Valid() {
			return writeError(c, http.StatusBadRequest, firstMessage(errs))
		}
		if !domain.ValidStatus(domain.TaskStatus(req.Status)) || !domain.ValidPriority(domain.TaskPriority(req.Priority)) {
			return writeError(c, http.StatusBadRequest, "invalid status or priority")
		}

		role, member, err := memberRole(c, store, user, req.ProjectID)
		if err != nil {
			return storageError(c, err)
		}
		if !member || !canManageTasks(role) {
			return forbidden(c)
		}

		task, err := store.CreateTask(c.Request().Context(), user.ID, storage.TaskParams{
			Title:          req.Title,
			Description:    req.Description,
			Status:         domain.TaskStatus(req.Status),
			Priority:       domain.TaskPriority(req.Priority),
			ProjectID:      req.ProjectID,
			AssignedToID:   req.AssignedToID,
			DueDate:        req.DueDate,
			EstimatedHours: req.EstimatedHours,
			ActualHours:    req.ActualHours,
			Position:       req.Position,
		})
		if err != nil {
			return storageError(c, err)
		}

		if task.AssignedToID != "" && task.AssignedToID != user.ID {
			dispatchNotification(store, c.Logger(), storage.NotificationParams{
				UserID:  task.AssignedToID,
				TaskID:  task.ID,
				Type:    domain.NotificationTaskAssigned,
				Title:   "New task assigned",
				Message: user.DisplayName() + " assigned you the task \"" + task.Title + "\"",
			})
		}
		return c.JSON(http.StatusCreated, task)
	}
}

func getTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}

		task, err := store.TaskByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			return storageError(c, err)
		}
		if _, member, err := memberRole(c, store, user, task.ProjectID); err != nil {
			return storageError(c, err)
		} else if !member {
			return forbidden(c)
		}
		return c.JSON(http.StatusOK, task)
	}
}

type taskUpdateRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Status         *string  `json:"status"`
	Priority       *string  `json:"priority"`
	AssignedToID   *string  `json:"assignedToId"`
	DueDate        *string  `json:"dueDate"`
	EstimatedHours *float64 `json:"estimatedHours"`
	ActualHours    *float64 `json:"actualHours"`
	Position       *int     `json:"position"`
}

func updateTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}
		ctx := c.Request().Context()

		before, err := store.TaskByID(ctx, c.Param("id"))
		if err != nil {
			return storageError(c, err)
		}
		role, member, err := memberRole(c, store, user, before.ProjectID)
		if err != nil {
			return storageError(c, err)
		}
		if !member || !canManageTasks(role) {
			return forbidden(c)
		}

		var req taskUpdateRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		upd := storage.TaskUpdate{
			Title:          req.Title,
			Description:    req.Description,
			AssignedToID:   req.AssignedToID,
			DueDate:        req.DueDate,
			EstimatedHours: req.EstimatedHours,
			ActualHours:    req.ActualHours,
			Position:       req.Position,
		}
		if req.Status != nil {
			status := domain.TaskStatus(*req.Status)
			if !domain.ValidStatus(status) {
				return writeError(c, http.StatusBadRequest, "invalid status")
			}
			upd.Status = &status
		}
		if req.Priority != nil {
			priority := domain.TaskPriority(*req.Priority)
			if !domain.ValidPriority(priority) {
				return writeError(c, http.StatusBadRequest, "invalid priority")
			}
			upd.Priority = &priority
		}
		if req.Title != nil && len(strings.TrimSpace(*req.Title)) < 3 {
			return writeError(c, http.StatusBadRequest, "Task title must be at least 3 characters")
		}

		task, err := store.UpdateTask(ctx, before.ID, upd)
		if err != nil {
			return storageError(c, err)
		}

		if task.AssignedToID != "" && task.AssignedToID != before.AssignedToID && task.AssignedToID != user.ID {
			kind := domain.NotificationTaskAssigned
			title := "New task assigned"
			if before.AssignedToID != "" {
				kind = domain.NotificationTaskReassigned
				title = "Task reassigned"
			}
			dispatchNotification(store, c.Logger(), storage.NotificationParams{
				UserID:  task.AssignedToID,
				TaskID:  task.ID,
				Type:    kind,
				Title:   title,
				Message: user.DisplayName() + " assigned you the task \"" + task.Title + "\"",
			})
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(store Storage, auth Authenticator) echo.HandlerFunc {
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
		role, member, err := memberRole(c, store, user, task.ProjectID)
		if err != nil {
			return storageError(c, err)
		}
		// Deletion requires task management rights or authorship.
		if !member || (!canManageTasks(role) && task.CreatedByUserID != user.ID) {
			return forbidden(c)
		}

		if err := store.DeactivateTask(ctx, task.ID); err != nil {
			return storageError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func getProjectTasks(store Storage, auth Authenticator) echo.HandlerFunc {
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
		return c.JSON(http.StatusOK, tasks)
	}
}

func filterTasks(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok, err := authenticate(c, store, auth)
		if !ok {
			return err
		}

		var filter domain.TaskFilter
		if err := decodeBody(c, &filter); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}

		tasks, err := store.TasksForUser(c.Request().Context(), user.ID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, domain.ApplyFilter(tasks, filter, time.Now()))
	}
}
