package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/0zturkSamet/task-manager/domain"
)

type stubTaskBackend struct {
	tasksForUserFn    func(ctx context.Context, userID string) ([]domain.Task, error)
	tasksForProjectFn func(ctx context.Context, projectID string) ([]domain.Task, error)
	taskByIDFn        func(ctx context.Context, id string) (domain.Task, error)
	createTaskFn      func(ctx context.Context, creatorID string, params TaskParams) (domain.Task, error)
	updateTaskFn      func(ctx context.Context, id string, upd TaskUpdate) (domain.Task, error)
	deactivateTaskFn  func(ctx context.Context, id string) error
	membersFn         func(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
}

func (s *stubTaskBackend) TasksForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	if s.tasksForUserFn == nil {
		return nil, errors.New("unexpected TasksForUser call")
	}
	return s.tasksForUserFn(ctx, userID)
}

func (s *stubTaskBackend) TasksForProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	if s.tasksForProjectFn == nil {
		return nil, errors.New("unexpected TasksForProject call")
	}
	return s.tasksForProjectFn(ctx, projectID)
}

func (s *stubTaskBackend) TaskByID(ctx context.Context, id string) (domain.Task, error) {
	if s.taskByIDFn == nil {
		return domain.Task{}, errors.New("unexpected TaskByID call")
	}
	return s.taskByIDFn(ctx, id)
}

func (s *stubTaskBackend) CreateTask(ctx context.Context, creatorID string, params TaskParams) (domain.Task, error) {
	if s.createTaskFn == nil {
		return domain.Task{}, errors.New("unexpected CreateTask call")
	}
	return s.createTaskFn(ctx, creatorID, params)
}

func (s *stubTaskBackend) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (domain.Task, error) {
	if s.updateTaskFn == nil {
		return domain.Task{}, errors.New("unexpected UpdateTask call")
	}
	return s.updateTaskFn(ctx, id, upd)
}

func (s *stubTaskBackend) DeactivateTask(ctx context.Context, id string) error {
	if s.deactivateTaskFn == nil {
		return errors.New("unexpected DeactivateTask call")
	}
	return s.deactivateTaskFn(ctx, id)
}

func (s *stubTaskBackend) Members(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	if s.membersFn == nil {
		return nil, nil
	}
	return s.membersFn(ctx, projectID)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCacheTasksForUserMissThenHit(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()
	expected := []domain.Task{{ID: "t1", Title: "Write code"}}

	var calls int
	cache := NewCache(&stubTaskBackend{
		tasksForUserFn: func(ctx context.Context, uid string) ([]domain.Task, error) {
			calls++
			if uid != "user-1" {
				t.Fatalf("unexpected user id: %s", uid)
			}
			return append([]domain.Task(nil), expected...), nil
		},
	}, client, time.Minute)

	tasks, err := cache.TasksForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("tasks for user: %v", err)
	}
	if !reflect.DeepEqual(tasks, expected) {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}
	if calls != 1 {
		t.Fatalf("expected 1 backend call, got %d", calls)
	}
	if ttl := mr.TTL(userTasksKey("user-1")); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected TTL: %v", ttl)
	}

	cached, err := cache.TasksForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if !reflect.DeepEqual(cached, expected) {
		t.Fatalf("unexpected cached tasks: %#v", cached)
	}
	if calls != 1 {
		t.Fatalf("cached fetch hit backend, calls=%d", calls)
	}
}

func TestCacheUpdateTaskEvictsProjectAndMembers(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()

	updated := domain.Task{ID: "t1", ProjectID: "p1", Status: domain.StatusDone}
	cache := NewCache(&stubTaskBackend{
		updateTaskFn: func(ctx context.Context, id string, upd TaskUpdate) (domain.Task, error) {
			return updated, nil
		},
		membersFn: func(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
			return []domain.ProjectMember{{UserID: "u1"}, {UserID: "u2"}}, nil
		},
	}, client, time.Minute)

	mr.Set(projectTasksKey("p1"), "[]")
	mr.Set(userTasksKey("u1"), "[]")
	mr.Set(userTasksKey("u2"), "[]")
	mr.Set(userTasksKey("outsider"), "[]")

	if _, err := cache.UpdateTask(ctx, "t1", TaskUpdate{}); err != nil {
		t.Fatalf("update task: %v", err)
	}

	for _, key := range []string{projectTasksKey("p1"), userTasksKey("u1"), userTasksKey("u2")} {
		if mr.Exists(key) {
			t.Fatalf("key %s not evicted", key)
		}
	}
	if !mr.Exists(userTasksKey("outsider")) {
		t.Fatal("unrelated key evicted")
	}
}

func TestCacheCorruptEntryFallsThrough(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()

	expected := []domain.Task{{ID: "t1"}}
	var calls int
	cache := NewCache(&stubTaskBackend{
		tasksForProjectFn: func(ctx context.Context, projectID string) ([]domain.Task, error) {
			calls++
			return append([]domain.Task(nil), expected...), nil
		},
	}, client, time.Minute)

	mr.Set(projectTasksKey("p1"), "{not json")

	tasks, err := cache.TasksForProject(ctx, "p1")
	if err != nil {
		t.Fatalf("tasks for project: %v", err)
	}
	if !reflect.DeepEqual(tasks, expected) || calls != 1 {
		t.Fatalf("corrupt entry not bypassed: %#v calls=%d", tasks, calls)
	}
}

func TestCacheNilClientPassesThrough(t *testing.T) {
	ctx := context.Background()
	var calls int
	cache := NewCache(&stubTaskBackend{
		tasksForUserFn: func(ctx context.Context, userID string) ([]domain.Task, error) {
			calls++
			return nil, nil
		},
	}, nil, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := cache.TasksForUser(ctx, "u"); err != nil {
			t.Fatalf("pass-through fetch: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected every call to hit backend, got %d", calls)
	}
}

func TestCacheDeactivateTaskEvicts(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()

	cache := NewCache(&stubTaskBackend{
		taskByIDFn: func(ctx context.Context, id string) (domain.Task, error) {
			return domain.Task{ID: id, ProjectID: "p1"}, nil
		},
		deactivateTaskFn: func(ctx context.Context, id string) error { return nil },
	}, client, time.Minute)

	mr.Set(projectTasksKey("p1"), "[]")

	if err := cache.DeactivateTask(ctx, "t1"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if mr.Exists(projectTasksKey("p1")) {
		t.Fatal("project key not evicted")
	}
}
