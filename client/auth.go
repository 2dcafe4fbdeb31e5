package client

import (
	"context"
	"net/http"

	"github.com/0zturkSamet/task-manager/domain"
)

// RegisterParams are the fields of a new account.
type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type authResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"`
	User      domain.User `json:"user"`
}

// Register creates an account and signs the session in.
func (c *Client) Register(ctx context.Context, params RegisterParams) (domain.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", params, &resp); err != nil {
		return domain.User{}, err
	}
	if err := c.session.SetCredentials(resp.Token, resp.User); err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

// Login authenticates with email and password and signs the session in.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return domain.User{}, err
	}
	if err := c.session.SetCredentials(resp.Token, resp.User); err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

// Logout tells the server goodbye on a best-effort basis and always clears
// the local session, even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	_ = c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	return c.session.Clear()
}
