package client

import (
	"context"
	"net/http"

	"github.com/0zturkSamet/task-manager/domain"
)

// TaskParams are the fields of a new task.
type TaskParams struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	ProjectID      string   `json:"projectId"`
	AssignedToID   string   `json:"assignedToId,omitempty"`
	DueDate        string   `json:"dueDate,omitempty"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
	ActualHours    *float64 `json:"actualHours,omitempty"`
	Position       *int     `json:"position,omitempty"`
}

// TaskUpdate carries the task fields to change. Nil fields are left
// untouched; an empty AssignedToID or DueDate clears the field.
type TaskUpdate struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Priority       *string  `json:"priority,omitempty"`
	AssignedToID   *string  `json:"assignedToId,omitempty"`
	DueDate        *string  `json:"dueDate,omitempty"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
	ActualHours    *float64 `json:"actualHours,omitempty"`
	Position       *int     `json:"position,omitempty"`
}

// Tasks lists every task across the signed-in user's projects.
func (c *Client) Tasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks)
	return tasks, err
}

// CreateTask creates a task in a project.
func (c *Client) CreateTask(ctx context.Context, params TaskParams) (domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", params, &task)
	return task, err
}

// Task fetches one task.
func (c *Client) Task(ctx context.Context, id string) (domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, &task)
	return task, err
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, update, &task)
	return task, err
}

// MoveTask applies a board move produced by board.ResolveDrop: one update
// carrying only the new status.
func (c *Client) MoveTask(ctx context.Context, taskID string, status domain.TaskStatus) (domain.Task, error) {
	s := string(status)
	return c.UpdateTask(ctx, taskID, TaskUpdate{Status: &s})
}

// DeleteTask deactivates a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// ProjectTasks lists a project's tasks in board position order.
func (c *Client) ProjectTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/tasks", nil, &tasks)
	return tasks, err
}

// FilterTasks lists the signed-in user's tasks matching the filter.
func (c *Client) FilterTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	var tasks []domain.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks/filter", filter, &tasks)
	return tasks, err
}

// Comments lists a task's comments, oldest first.
func (c *Client) Comments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+taskID+"/comments", nil, &comments)
	return comments, err
}

// AddComment posts a comment on a task.
func (c *Client) AddComment(ctx context.Context, taskID, text string) (domain.Comment, error) {
	body := map[string]string{"commentText": text}
	var comment domain.Comment
	err := c.do(ctx, http.MethodPost, "/api/tasks/"+taskID+"/comments", body, &comment)
	return comment, err
}

// UpdateComment edits a comment's text. Only the author may edit.
func (c *Client) UpdateComment(ctx context.Context, commentID, text string) (domain.Comment, error) {
	body := map[string]string{"commentText": text}
	var comment domain.Comment
	err := c.do(ctx, http.MethodPut, "/api/comments/"+commentID, body, &comment)
	return comment, err
}

// DeleteComment removes a comment and its reactions.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+commentID, nil, nil)
}

// LikeComment records a like and returns the comment with authoritative
// counts. Liking twice is a no-op; a prior dislike is replaced.
func (c *Client) LikeComment(ctx context.Context, commentID string) (domain.Comment, error) {
	var comment domain.Comment
	err := c.do(ctx, http.MethodPost, "/api/comments/"+commentID+"/like", nil, &comment)
	return comment, err
}

// DislikeComment records a dislike, with the same replace semantics as
// LikeComment.
func (c *Client) DislikeComment(ctx context.Context, commentID string) (domain.Comment, error) {
	var comment domain.Comment
	err := c.do(ctx, http.MethodPost, "/api/comments/"+commentID+"/dislike", nil, &comment)
	return comment, err
}
