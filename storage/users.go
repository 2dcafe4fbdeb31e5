package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/0zturkSamet/task-manager/domain"
)

const userColumns = "id, email, first_name, last_name, COALESCE(profile_image, ''), role, is_active, created_at"

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImage, &u.Role, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// CreateUser registers a new account. The email must be unused.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, firstName, lastName string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if taken, err := s.exists(ctx, "SELECT 1 FROM users WHERE email = ?", email); err != nil {
		return domain.User{}, err
	} else if taken {
		return domain.User{}, ErrDuplicate
	}

	u := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      domain.UserRoleUser,
		IsActive:  true,
		CreatedAt: s.timestamp(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?, 1, ?)",
		u.ID, u.Email, passwordHash, u.FirstName, u.LastName, u.Role, u.CreatedAt)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// UserByEmail returns the active user with the given email together with
// their password hash, for credential checks.
func (s *Store) UserByEmail(ctx context.Context, email string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+", password_hash FROM users WHERE email = ? AND is_active = 1", email)

	var u domain.User
	var hash string
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImage, &u.Role, &u.IsActive, &u.CreatedAt, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, "", ErrNotFound
	}
	if err != nil {
		return domain.User{}, "", err
	}
	return u, hash, nil
}

// UserByID returns the active user with the given identifier.
func (s *Store) UserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? AND is_active = 1", id))
}

// AllUsers lists every active user, ordered by name.
func (s *Store) AllUsers(ctx context.Context) ([]domain.User, error) {
	return s.queryUsers(ctx,
		"SELECT "+userColumns+" FROM users WHERE is_active = 1 ORDER BY first_name, last_name")
}

// SearchUsers lists active users whose name or email contains the query,
// case-insensitively.
func (s *Store) SearchUsers(ctx context.Context, query string) ([]domain.User, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	return s.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE is_active = 1
		   AND (LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?
		        OR LOWER(first_name || ' ' || last_name) LIKE ?)
		 ORDER BY first_name, last_name`,
		like, like, like, like)
}

func (s *Store) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserUpdate carries the profile fields an update may change. Nil fields are
// left untouched.
type UserUpdate struct {
	FirstName    *string
	LastName     *string
	ProfileImage *string
}

// UpdateUser applies the non-nil fields of upd to the user's profile.
func (s *Store) UpdateUser(ctx context.Context, id string, upd UserUpdate) (domain.User, error) {
	set := []string{}
	args := []any{}
	if upd.FirstName != nil {
		set = append(set, "first_name = ?")
		args = append(args, *upd.FirstName)
	}
	if upd.LastName != nil {
		set = append(set, "last_name = ?")
		args = append(args, *upd.LastName)
	}
	if upd.ProfileImage != nil {
		set = append(set, "profile_image = ?")
		args = append(args, *upd.ProfileImage)
	}
	if len(set) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id = ? AND is_active = 1", args...)
		if err != nil {
			return domain.User{}, err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.User{}, ErrNotFound
		}
	}
	return s.UserByID(ctx, id)
}

// ChangePassword replaces the user's password hash.
func (s *Store) ChangePassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE id = ? AND is_active = 1", passwordHash, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// PasswordHash returns the stored hash for an active user.
func (s *Store) PasswordHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT password_hash FROM users WHERE id = ? AND is_active = 1", id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return hash, err
}

// DeactivateUser soft-deletes the account. The row is kept so historical
// task and comment attribution survives.
func (s *Store) DeactivateUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET is_active = 0 WHERE id = ? AND is_active = 1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
