package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/0zturkSamet/task-manager/storage"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Message: msg})
}

// storageError maps storage sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the cause goes to the log only.
func storageError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return writeError(c, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrDuplicate):
		return writeError(c, http.StatusConflict, "already exists")
	default:
		c.Logger().Error(err)
		return writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func forbidden(c echo.Context) error {
	return writeError(c, http.StatusForbidden, "forbidden")
}
