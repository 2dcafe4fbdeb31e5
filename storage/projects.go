package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/0zturkSamet/task-manager/domain"
)

const projectColumns = `p.id, p.name, p.description, p.color, p.owner_id,
	o.first_name || ' ' || o.last_name, p.is_active, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM project_members m WHERE m.project_id = p.id)`

const projectFrom = " FROM projects p JOIN users o ON o.id = p.owner_id "

func scanProject(row interface{ Scan(...any) error }) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.OwnerID,
		&p.OwnerName, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.MemberCount)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, ErrNotFound
	}
	if err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// CreateProject creates a project and enrolls the owner as its OWNER member
// in the same transaction.
func (s *Store) CreateProject(ctx context.Context, ownerID, name, description, color string) (domain.Project, error) {
	if color == "" {
		color = domain.DefaultProjectColor
	}
	now := s.timestamp()
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Project{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO projects (id, name, description, color, owner_id, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 1, ?, ?)",
		id, name, description, color, ownerID, now, now); err != nil {
		return domain.Project{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO project_members (id, project_id, user_id, role, joined_at) VALUES (?, ?, ?, ?, ?)",
		uuid.NewString(), id, ownerID, domain.RoleOwner, now); err != nil {
		return domain.Project{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Project{}, err
	}
	return s.ProjectByID(ctx, id)
}

// ProjectByID returns an active project with its member list resolved.
func (s *Store) ProjectByID(ctx context.Context, id string) (domain.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+projectFrom+"WHERE p.id = ? AND p.is_active = 1", id))
	if err != nil {
		return domain.Project{}, err
	}
	p.Members, err = s.Members(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// ProjectsForUser lists the active projects the user belongs to.
func (s *Store) ProjectsForUser(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.queryProjects(ctx,
		`SELECT `+projectColumns+projectFrom+`
		 JOIN project_members pm ON pm.project_id = p.id
		 WHERE pm.user_id = ? AND p.is_active = 1
		 ORDER BY p.created_at DESC`, userID)
}

// AllProjects lists every active project, for system admins.
func (s *Store) AllProjects(ctx context.Context) ([]domain.Project, error) {
	return s.queryProjects(ctx,
		"SELECT "+projectColumns+projectFrom+"WHERE p.is_active = 1 ORDER BY p.created_at DESC")
}

func (s *Store) queryProjects(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ProjectUpdate carries the fields a project update may change. Nil fields
// are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Color       *string
}

// UpdateProject applies the non-nil fields of upd.
func (s *Store) UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (domain.Project, error) {
	set := []string{"updated_at = ?"}
	args := []any{s.timestamp()}
	if upd.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Color != nil {
		set = append(set, "color = ?")
		args = append(args, *upd.Color)
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		"UPDATE projects SET "+strings.Join(set, ", ")+" WHERE id = ? AND is_active = 1", args...)
	if err != nil {
		return domain.Project{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Project{}, ErrNotFound
	}
	return s.ProjectByID(ctx, id)
}

// DeactivateProject soft-deletes the project and its active tasks.
func (s *Store) DeactivateProject(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "UPDATE projects SET is_active = 0 WHERE id = ? AND is_active = 1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, "UPDATE tasks SET is_active = 0 WHERE project_id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Members lists a project's members with the owner first, then by join time.
func (s *Store) Members(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pm.id, pm.user_id, u.email, u.first_name || ' ' || u.last_name, pm.role, pm.joined_at
		 FROM project_members pm JOIN users u ON u.id = pm.user_id
		 WHERE pm.project_id = ?
		 ORDER BY CASE pm.role WHEN 'OWNER' THEN 0 ELSE 1 END, pm.joined_at`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.ProjectMember{}
	for rows.Next() {
		var m domain.ProjectMember
		if err := rows.Scan(&m.ID, &m.UserID, &m.UserEmail, &m.UserName, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// AddMember enrolls a user in a project. Both the project and the user must
// exist, and the user must not already be a member.
func (s *Store) AddMember(ctx context.Context, projectID, userID string, role domain.ProjectRole) (domain.ProjectMember, error) {
	if ok, err := s.exists(ctx, "SELECT 1 FROM projects WHERE id = ? AND is_active = 1", projectID); err != nil {
		return domain.ProjectMember{}, err
	} else if !ok {
		return domain.ProjectMember{}, ErrNotFound
	}
	if ok, err := s.exists(ctx, "SELECT 1 FROM users WHERE id = ? AND is_active = 1", userID); err != nil {
		return domain.ProjectMember{}, err
	} else if !ok {
		return domain.ProjectMember{}, ErrNotFound
	}
	if ok, err := s.exists(ctx, "SELECT 1 FROM project_members WHERE project_id = ? AND user_id = ?", projectID, userID); err != nil {
		return domain.ProjectMember{}, err
	} else if ok {
		return domain.ProjectMember{}, ErrDuplicate
	}

	u, err := s.UserByID(ctx, userID)
	if err != nil {
		return domain.ProjectMember{}, err
	}
	m := domain.ProjectMember{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserEmail: u.Email,
		UserName:  u.DisplayName(),
		Role:      role,
		JoinedAt:  s.timestamp(),
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO project_members (id, project_id, user_id, role, joined_at) VALUES (?, ?, ?, ?, ?)",
		m.ID, projectID, userID, role, m.JoinedAt)
	if err != nil {
		return domain.ProjectMember{}, err
	}
	return m, nil
}

// UpdateMemberRole changes an existing member's project role.
func (s *Store) UpdateMemberRole(ctx context.Context, projectID, userID string, role domain.ProjectRole) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE project_members SET role = ? WHERE project_id = ? AND user_id = ?", role, projectID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveMember removes a user's membership.
func (s *Store) RemoveMember(ctx context.Context, projectID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM project_members WHERE project_id = ? AND user_id = ?", projectID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// RoleOf returns the user's role in the project, or ErrNotFound when they
// are not a member.
func (s *Store) RoleOf(ctx context.Context, projectID, userID string) (domain.ProjectRole, error) {
	var role domain.ProjectRole
	err := s.db.QueryRowContext(ctx,
		"SELECT role FROM project_members WHERE project_id = ? AND user_id = ?", projectID, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return role, err
}

// ProjectCounts returns how many active projects the user owns and how many
// they belong to without owning.
func (s *Store) ProjectCounts(ctx context.Context, userID string) (owned, member int64, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT
			COUNT(CASE WHEN pm.role = 'OWNER' THEN 1 END),
			COUNT(CASE WHEN pm.role <> 'OWNER' THEN 1 END)
		 FROM project_members pm JOIN projects p ON p.id = pm.project_id
		 WHERE pm.user_id = ? AND p.is_active = 1`, userID).Scan(&owned, &member)
	return owned, member, err
}
