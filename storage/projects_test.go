package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/0zturkSamet/task-manager/domain"
)

func seedUser(t *testing.T, s *Store, email string) domain.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), email, "hash", "Test", "User")
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func seedProject(t *testing.T, s *Store, ownerID string) domain.Project {
	t.Helper()
	p, err := s.CreateProject(context.Background(), ownerID, "Test Project", "A project used in tests", "")
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func TestCreateProjectEnrollsOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")

	p, err := s.CreateProject(ctx, owner.ID, "Website", "Marketing site rebuild", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if p.Color != domain.DefaultProjectColor {
		t.Fatalf("expected default color, got %s", p.Color)
	}
	if p.MemberCount != 1 || len(p.Members) != 1 {
		t.Fatalf("expected exactly the owner as member: %+v", p)
	}
	if p.Members[0].Role != domain.RoleOwner || p.Members[0].UserID != owner.ID {
		t.Fatalf("owner member wrong: %+v", p.Members[0])
	}
	if p.OwnerName != "Test User" {
		t.Fatalf("owner name not resolved: %q", p.OwnerName)
	}

	list, err := s.ProjectsForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("projects for user: %v", err)
	}
	if len(list) != 1 || list[0].ID != p.ID {
		t.Fatalf("owner cannot see own project: %+v", list)
	}
}

func TestAddMemberAndRoles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	member := seedUser(t, s, "member@example.com")
	p := seedProject(t, s, owner.ID)

	m, err := s.AddMember(ctx, p.ID, member.ID, domain.RoleMember)
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if m.UserEmail != "member@example.com" {
		t.Fatalf("member email not resolved: %+v", m)
	}

	if _, err := s.AddMember(ctx, p.ID, member.ID, domain.RoleMember); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on re-add, got %v", err)
	}
	if _, err := s.AddMember(ctx, p.ID, "ghost", domain.RoleMember); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
	if _, err := s.AddMember(ctx, "no-such-project", member.ID, domain.RoleMember); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown project, got %v", err)
	}

	role, err := s.RoleOf(ctx, p.ID, member.ID)
	if err != nil || role != domain.RoleMember {
		t.Fatalf("role of member: %v %s", err, role)
	}

	if err := s.UpdateMemberRole(ctx, p.ID, member.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	role, _ = s.RoleOf(ctx, p.ID, member.ID)
	if role != domain.RoleAdmin {
		t.Fatalf("role not updated: %s", role)
	}

	// Owner sorts first regardless of join order.
	members, err := s.Members(ctx, p.ID)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 2 || members[0].Role != domain.RoleOwner {
		t.Fatalf("owner not first: %+v", members)
	}

	if err := s.RemoveMember(ctx, p.ID, member.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if _, err := s.RoleOf(ctx, p.ID, member.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}
}

func TestDeactivateProjectCascadesToTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.ID)

	task, err := s.CreateTask(ctx, owner.ID, TaskParams{
		Title: "Doomed", Status: domain.StatusTodo, Priority: domain.PriorityLow, ProjectID: p.ID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := s.DeactivateProject(ctx, p.ID); err != nil {
		t.Fatalf("deactivate project: %v", err)
	}
	if _, err := s.ProjectByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("project still visible: %v", err)
	}
	if _, err := s.TaskByID(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("task survived project deactivation: %v", err)
	}
}

func TestProjectCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")

	p1 := seedProject(t, s, a.ID)
	seedProject(t, s, b.ID)
	if _, err := s.AddMember(ctx, p1.ID, b.ID, domain.RoleMember); err != nil {
		t.Fatalf("add member: %v", err)
	}

	owned, member, err := s.ProjectCounts(ctx, b.ID)
	if err != nil {
		t.Fatalf("project counts: %v", err)
	}
	if owned != 1 || member != 1 {
		t.Fatalf("counts wrong: owned=%d member=%d", owned, member)
	}
}
