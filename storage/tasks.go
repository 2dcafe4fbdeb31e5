package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/0zturkSamet/task-manager/domain"
)

const taskColumns = `t.id, t.title, t.description, t.status, t.priority,
	t.project_id, p.name,
	t.assigned_to_id, au.first_name || ' ' || au.last_name, au.email,
	t.created_by_id, cu.first_name || ' ' || cu.last_name, cu.email,
	t.estimated_hours, t.actual_hours, t.due_date, t.completed_at,
	t.created_at, t.updated_at, t.position,
	(SELECT COUNT(*) FROM comments c WHERE c.task_id = t.id)`

const taskFrom = `
	FROM tasks t
	JOIN projects p ON p.id = t.project_id
	LEFT JOIN users au ON au.id = t.assigned_to_id
	JOIN users cu ON cu.id = t.created_by_id `

func (s *Store) scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var t domain.Task
	var assignedID, assignedName, assignedEmail sql.NullString
	var estimated, actual sql.NullFloat64
	var dueDate, completedAt sql.NullString

	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.ProjectID, &t.ProjectName,
		&assignedID, &assignedName, &assignedEmail,
		&t.CreatedByUserID, &t.CreatedByUserName, &t.CreatedByUserEmail,
		&estimated, &actual, &dueDate, &completedAt,
		&t.CreatedAt, &t.UpdatedAt, &t.Position, &t.CommentCount)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, ErrNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}

	t.AssignedToID = assignedID.String
	t.AssignedToName = assignedName.String
	t.AssignedToEmail = assignedEmail.String
	if estimated.Valid {
		t.EstimatedHours = &estimated.Float64
	}
	if actual.Valid {
		t.ActualHours = &actual.Float64
	}
	t.DueDate = dueDate.String
	t.CompletedAt = completedAt.String
	t.IsOverdue = t.Overdue(s.now())
	return t, nil
}

// TaskParams carries the fields of a new task. AssignedToID and DueDate are
// optional; a nil Position defaults to zero.
type TaskParams struct {
	Title          string
	Description    string
	Status         domain.TaskStatus
	Priority       domain.TaskPriority
	ProjectID      string
	AssignedToID   string
	DueDate        string
	EstimatedHours *float64
	ActualHours    *float64
	Position       *int
}

// CreateTask inserts a task created by creatorID.
func (s *Store) CreateTask(ctx context.Context, creatorID string, params TaskParams) (domain.Task, error) {
	if ok, err := s.exists(ctx, "SELECT 1 FROM projects WHERE id = ? AND is_active = 1", params.ProjectID); err != nil {
		return domain.Task{}, err
	} else if !ok {
		return domain.Task{}, ErrNotFound
	}
	if params.AssignedToID != "" {
		if ok, err := s.exists(ctx, "SELECT 1 FROM users WHERE id = ? AND is_active = 1", params.AssignedToID); err != nil {
			return domain.Task{}, err
		} else if !ok {
			return domain.Task{}, ErrNotFound
		}
	}

	id := uuid.NewString()
	now := s.timestamp()
	position := 0
	if params.Position != nil {
		position = *params.Position
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, project_id,
			assigned_to_id, created_by_id, due_date, estimated_hours, actual_hours,
			position, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		id, params.Title, params.Description, params.Status, params.Priority, params.ProjectID,
		nullString(params.AssignedToID), creatorID, nullString(params.DueDate),
		params.EstimatedHours, params.ActualHours, position, now, now)
	if err != nil {
		return domain.Task{}, err
	}
	return s.TaskByID(ctx, id)
}

// TaskByID returns an active task with its relations resolved.
func (s *Store) TaskByID(ctx context.Context, id string) (domain.Task, error) {
	return s.scanTask(s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+taskFrom+"WHERE t.id = ? AND t.is_active = 1", id))
}

// TasksForProject lists a project's active tasks ordered by position.
func (s *Store) TasksForProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return s.queryTasks(ctx,
		"SELECT "+taskColumns+taskFrom+"WHERE t.project_id = ? AND t.is_active = 1 ORDER BY t.position, t.created_at", projectID)
}

// TasksForUser lists active tasks across every project the user belongs to.
func (s *Store) TasksForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.queryTasks(ctx,
		`SELECT `+taskColumns+taskFrom+`
		 JOIN project_members pm ON pm.project_id = t.project_id
		 WHERE pm.user_id = ? AND t.is_active = 1 AND p.is_active = 1
		 ORDER BY t.created_at DESC`, userID)
}

// TasksAssignedTo lists active tasks assigned to the user.
func (s *Store) TasksAssignedTo(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.queryTasks(ctx,
		"SELECT "+taskColumns+taskFrom+"WHERE t.assigned_to_id = ? AND t.is_active = 1 ORDER BY t.created_at DESC", userID)
}

// AllTasks lists every active task, for system admins.
func (s *Store) AllTasks(ctx context.Context) ([]domain.Task, error) {
	return s.queryTasks(ctx,
		"SELECT "+taskColumns+taskFrom+"WHERE t.is_active = 1 ORDER BY t.created_at DESC")
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := s.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// TaskUpdate carries the fields an update may change. Nil fields are left
// untouched; AssignedToID and DueDate set to the empty string clear the
// column.
type TaskUpdate struct {
	Title          *string
	Description    *string
	Status         *domain.TaskStatus
	Priority       *domain.TaskPriority
	AssignedToID   *string
	DueDate        *string
	EstimatedHours *float64
	ActualHours    *float64
	Position       *int
}

// UpdateTask applies the non-nil fields of upd. Moving a task to DONE stamps
// completed_at; moving it out of DONE clears it.
func (s *Store) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (domain.Task, error) {
	set := []string{"updated_at = ?"}
	args := []any{s.timestamp()}
	if upd.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *upd.Status)
		if *upd.Status == domain.StatusDone {
			set = append(set, "completed_at = ?")
			args = append(args, s.timestamp())
		} else {
			set = append(set, "completed_at = NULL")
		}
	}
	if upd.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, *upd.Priority)
	}
	if upd.AssignedToID != nil {
		set = append(set, "assigned_to_id = ?")
		args = append(args, nullString(*upd.AssignedToID))
	}
	if upd.DueDate != nil {
		set = append(set, "due_date = ?")
		args = append(args, nullString(*upd.DueDate))
	}
	if upd.EstimatedHours != nil {
		set = append(set, "estimated_hours = ?")
		args = append(args, *upd.EstimatedHours)
	}
	if upd.ActualHours != nil {
		set = append(set, "actual_hours = ?")
		args = append(args, *upd.ActualHours)
	}
	if upd.Position != nil {
		set = append(set, "position = ?")
		args = append(args, *upd.Position)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(set, ", ")+" WHERE id = ? AND is_active = 1", args...)
	if err != nil {
		return domain.Task{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Task{}, ErrNotFound
	}
	return s.TaskByID(ctx, id)
}

// DeactivateTask soft-deletes the task.
func (s *Store) DeactivateTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE tasks SET is_active = 0 WHERE id = ? AND is_active = 1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
