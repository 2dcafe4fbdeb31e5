package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/0zturkSamet/task-manager/domain"
	"github.com/0zturkSamet/task-manager/validate"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"`
	User      domain.User `json:"user"`
}

func registerUser(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req registerRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}
		if !validate.ValidEmail(req.Email) {
			return writeError(c, http.StatusBadRequest, "Please enter a valid email address")
		}
		if !validate.ValidPassword(req.Password) {
			return writeError(c, http.StatusBadRequest, "Password must be at least 6 characters")
		}
		if !validate.ValidName(req.FirstName) || !validate.ValidName(req.LastName) {
			return writeError(c, http.StatusBadRequest, "Name must be at least 2 characters")
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			return storageError(c, err)
		}
		user, err := store.CreateUser(c.Request().Context(), req.Email, hash, req.FirstName, req.LastName)
		if err != nil {
			return storageError(c, err)
		}

		token, err := auth.MintToken(user.ID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusCreated, authResponse{
			Token:     token,
			ExpiresIn: auth.TokenTTLSeconds(),
			User:      user,
		})
	}
}

func login(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := decodeBody(c, &req); err != nil {
			return writeError(c, http.StatusBadRequest, "invalid body")
		}

		user, hash, err := store.UserByEmail(c.Request().Context(), req.Email)
		if err != nil || !CheckPassword(hash, req.Password) {
			// Same response for unknown email and wrong password.
			return writeError(c, http.StatusUnauthorized, "invalid credentials")
		}

		token, err := auth.MintToken(user.ID)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(http.StatusOK, authResponse{
			Token:     token,
			ExpiresIn: auth.TokenTTLSeconds(),
			User:      user,
		})
	}
}

// logout is stateless on the server: tokens are not revocable, the client
// discards its copy. The route exists so clients have a single call that
// always succeeds for a well-formed token.
func logout(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := auth.UserIDFromAuthHeader(c.Request().Header.Get("Authorization")); err != nil {
			return writeError(c, http.StatusUnauthorized, err.Error())
		}
		return c.NoContent(http.StatusOK)
	}
}
