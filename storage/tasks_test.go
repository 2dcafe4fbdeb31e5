package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/0zturkSamet/task-manager/domain"
)

func TestCreateTaskResolvesRelations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	assignee := seedUser(t, s, "dev@example.com")
	p := seedProject(t, s, owner.ID)

	est := 2.5
	pos := 3
	task, err := s.CreateTask(ctx, owner.ID, TaskParams{
		Title:          "Implement login",
		Description:    "Email plus password",
		Status:         domain.StatusTodo,
		Priority:       domain.PriorityHigh,
		ProjectID:      p.ID,
		AssignedToID:   assignee.ID,
		DueDate:        "2024-06-01T00:00:00",
		EstimatedHours: &est,
		Position:       &pos,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if task.ProjectName != "Test Project" {
		t.Fatalf("project name not resolved: %q", task.ProjectName)
	}
	if task.AssignedToName != "Test User" || task.AssignedToEmail != "dev@example.com" {
		t.Fatalf("assignee not resolved: %+v", task)
	}
	if task.CreatedByUserID != owner.ID || task.CreatedByUserName == "" {
		t.Fatalf("creator not resolved: %+v", task)
	}
	if task.EstimatedHours == nil || *task.EstimatedHours != 2.5 {
		t.Fatalf("estimated hours lost: %+v", task.EstimatedHours)
	}
	if task.Position != 3 {
		t.Fatalf("position lost: %d", task.Position)
	}
	if task.CommentCount != 0 {
		t.Fatalf("fresh task has comments: %d", task.CommentCount)
	}
}

func TestCreateTaskUnknownProjectOrAssignee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.ID)

	if _, err := s.CreateTask(ctx, owner.ID, TaskParams{
		Title: "x", Status: domain.StatusTodo, Priority: domain.PriorityLow, ProjectID: "ghost",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown project, got %v", err)
	}
	if _, err := s.CreateTask(ctx, owner.ID, TaskParams{
		Title: "x", Status: domain.StatusTodo, Priority: domain.PriorityLow, ProjectID: p.ID, AssignedToID: "ghost",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown assignee, got %v", err)
	}
}

func TestUpdateTaskStatusStampsCompletedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.ID)

	task, err := s.CreateTask(ctx, owner.ID, TaskParams{
		Title: "Ship it", Status: domain.StatusInProgress, Priority: domain.PriorityMedium, ProjectID: p.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := domain.StatusDone
	task, err = s.UpdateTask(ctx, task.ID, TaskUpdate{Status: &done})
	if err != nil {
		t.Fatalf("update to done: %v", err)
	}
	if task.CompletedAt == "" {
		t.Fatal("completed_at not stamped")
	}

	todo := domain.StatusTodo
	task, err = s.UpdateTask(ctx, task.ID, TaskUpdate{Status: &todo})
	if err != nil {
		t.Fatalf("update to todo: %v", err)
	}
	if task.CompletedAt != "" {
		t.Fatalf("completed_at not cleared: %q", task.CompletedAt)
	}
}

func TestUpdateTaskClearsAssignee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.ID)

	task, err := s.CreateTask(ctx, owner.ID, TaskParams{
		Title: "x", Status: domain.StatusTodo, Priority: domain.PriorityLow, ProjectID: p.ID, AssignedToID: owner.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	empty := ""
	task, err = s.UpdateTask(ctx, task.ID, TaskUpdate{AssignedToID: &empty})
	if err != nil {
		t.Fatalf("clear assignee: %v", err)
	}
	if task.AssignedToID != "" || task.AssignedToName != "" {
		t.Fatalf("assignee not cleared: %+v", task)
	}
}

func TestTasksForUserSpansMemberships(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	member := seedUser(t, s, "member@example.com")
	p1 := seedProject(t, s, owner.ID)
	p2 := seedProject(t, s, member.ID)
	if _, err := s.AddMember(ctx, p1.ID, member.ID, domain.RoleMember); err != nil {
		t.Fatalf("add member: %v", err)
	}

	for _, projectID := range []string{p1.ID, p2.ID} {
		if _, err := s.CreateTask(ctx, owner.ID, TaskParams{
			Title: "t", Status: domain.StatusTodo, Priority: domain.PriorityLow, ProjectID: projectID,
		}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	mine, err := s.TasksForUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("tasks for user: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected tasks from both projects, got %d", len(mine))
	}

	theirs, err := s.TasksForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("tasks for owner: %v", err)
	}
	if len(theirs) != 1 {
		t.Fatalf("owner sees foreign tasks: %d", len(theirs))
	}
}

func TestTasksForProjectOrdersByPosition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.ID)

	for _, pos := range []int{2, 0, 1} {
		pos := pos
		if _, err := s.CreateTask(ctx, owner.ID, TaskParams{
			Title: "t", Status: domain.StatusTodo, Priority: domain.PriorityLow, ProjectID: p.ID, Position: &pos,
		}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	tasks, err := s.TasksForProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("tasks for project: %v", err)
	}
	if len(tasks) != 3 || tasks[0].Position != 0 || tasks[2].Position != 2 {
		t.Fatalf("position order wrong: %+v", tasks)
	}
}

func TestDeactivateTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.ID)

	task, err := s.CreateTask(ctx, owner.ID, TaskParams{
		Title: "x", Status: domain.StatusTodo, Priority: domain.PriorityLow, ProjectID: p.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.DeactivateTask(ctx, task.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := s.TaskByID(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
