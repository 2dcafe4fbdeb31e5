package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/0zturkSamet/task-manager/domain"
)

// ProfileUpdate carries the profile fields to change. Nil fields are left
// untouched.
type ProfileUpdate struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, &user)
	return user, err
}

// UpdateProfile applies a partial profile update and refreshes the stored
// session user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", update, &user); err != nil {
		return domain.User{}, err
	}
	if err := c.session.SetUser(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ChangePassword swaps the account password after verifying the current one.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return c.do(ctx, http.MethodPut, "/api/users/password", body, nil)
}

// DeleteAccount deactivates the account and clears the local session.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/users/account", nil, nil); err != nil {
		return err
	}
	return c.session.Clear()
}

// UserStatistics fetches the signed-in user's cross-project statistics.
func (c *Client) UserStatistics(ctx context.Context) (domain.UserStatistics, error) {
	var stats domain.UserStatistics
	err := c.do(ctx, http.MethodGet, "/api/users/statistics", nil, &stats)
	return stats, err
}

// SearchUsers finds users by name or email fragment.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, http.MethodGet, "/api/users/search?q="+url.QueryEscape(query), nil, &users)
	return users, err
}

// AllUsers lists every active user.
func (c *Client) AllUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, http.MethodGet, "/api/users/all", nil, &users)
	return users, err
}
