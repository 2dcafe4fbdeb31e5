package client

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/0zturkSamet/task-manager/domain"
)

// ProjectUpdate carries the project fields to change. Nil fields are left
// untouched.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// Projects lists the projects the signed-in user belongs to.
func (c *Client) Projects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects)
	return projects, err
}

// CreateProject creates a project owned by the signed-in user.
func (c *Client) CreateProject(ctx context.Context, name, description, color string) (domain.Project, error) {
	body := map[string]string{"name": name, "description": description, "color": color}
	var p domain.Project
	err := c.do(ctx, http.MethodPost, "/api/projects", body, &p)
	return p, err
}

// Project fetches one project with its member list.
func (c *Client) Project(ctx context.Context, id string) (domain.Project, error) {
	var p domain.Project
	err := c.do(ctx, http.MethodGet, "/api/projects/"+id, nil, &p)
	return p, err
}

// UpdateProject applies a partial update to a project.
func (c *Client) UpdateProject(ctx context.Context, id string, update ProjectUpdate) (domain.Project, error) {
	var p domain.Project
	err := c.do(ctx, http.MethodPut, "/api/projects/"+id, update, &p)
	return p, err
}

// DeleteProject deactivates a project and all its tasks.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}

// Members lists a project's members, owner first.
func (c *Client) Members(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	var members []domain.ProjectMember
	err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/members", nil, &members)
	return members, err
}

// AddMember enrolls a user in a project with the given role.
func (c *Client) AddMember(ctx context.Context, projectID, userID string, role domain.ProjectRole) (domain.ProjectMember, error) {
	body := map[string]string{"userId": userID, "role": string(role)}
	var m domain.ProjectMember
	err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/members", body, &m)
	return m, err
}

// SetMemberRole changes a member's role within a project.
func (c *Client) SetMemberRole(ctx context.Context, projectID, userID string, role domain.ProjectRole) error {
	body := map[string]string{"role": string(role)}
	return c.do(ctx, http.MethodPut, "/api/projects/"+projectID+"/members/"+userID+"/role", body, nil)
}

// RemoveMember takes a user out of a project.
func (c *Client) RemoveMember(ctx context.Context, projectID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+projectID+"/members/"+userID, nil, nil)
}

// ProjectStatistics fetches the aggregate task statistics of one project.
func (c *Client) ProjectStatistics(ctx context.Context, projectID string) (domain.TaskStatistics, error) {
	var stats domain.TaskStatistics
	err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/tasks/statistics", nil, &stats)
	return stats, err
}

// ProjectDetail is the full picture of one project.
type ProjectDetail struct {
	Project domain.Project
	Tasks   []domain.Task
	Members []domain.ProjectMember
}

// ProjectDetail fetches the project, its tasks, and its members concurrently.
// Either all three arrive or the call fails as a unit.
func (c *Client) ProjectDetail(ctx context.Context, id string) (ProjectDetail, error) {
	var detail ProjectDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.Project(gctx, id)
		detail.Project = p
		return err
	})
	g.Go(func() error {
		tasks, err := c.ProjectTasks(gctx, id)
		detail.Tasks = tasks
		return err
	})
	g.Go(func() error {
		members, err := c.Members(gctx, id)
		detail.Members = members
		return err
	})
	if err := g.Wait(); err != nil {
		return ProjectDetail{}, err
	}
	return detail, nil
}
