package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/0zturkSamet/task-manager/domain"
)

type taskBackend interface {
	TasksForUser(ctx context.Context, userID string) ([]domain.Task, error)
	TasksForProject(ctx context.Context, projectID string) ([]domain.Task, error)
	TaskByID(ctx context.Context, id string) (domain.Task, error)
	CreateTask(ctx context.Context, creatorID string, params TaskParams) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (domain.Task, error)
	DeactivateTask(ctx context.Context, id string) error
	Members(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
}

// Cache wraps a Store with Redis-backed caching for the task list reads.
// Task mutations evict the affected project's entries and every member's
// per-user entry. All other Store methods pass through untouched.
type Cache struct {
	*Store
	base  taskBackend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching Store wrapper using the provided Redis client
// and TTL. A nil client or zero TTL disables caching without changing
// behavior.
func NewCache(base taskBackend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}

	c := &Cache{
		base:  base,
		redis: client,
		ttl:   ttl,
	}
	if s, ok := base.(*Store); ok {
		c.Store = s
	}
	return c
}

func (c *Cache) TasksForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	key := userTasksKey(userID)
	if tasks, ok := c.load(ctx, key); ok {
		return tasks, nil
	}

	tasks, err := c.base.TasksForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, tasks)
	return tasks, nil
}

func (c *Cache) TasksForProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	key := projectTasksKey(projectID)
	if tasks, ok := c.load(ctx, key); ok {
		return tasks, nil
	}

	tasks, err := c.base.TasksForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, tasks)
	return tasks, nil
}

func (c *Cache) CreateTask(ctx context.Context, creatorID string, params TaskParams) (domain.Task, error) {
	t, err := c.base.CreateTask(ctx, creatorID, params)
	if err != nil {
		return domain.Task{}, err
	}
	c.evictProject(ctx, t.ProjectID)
	return t, nil
}

func (c *Cache) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (domain.Task, error) {
	t, err := c.base.UpdateTask(ctx, id, upd)
	if err != nil {
		return domain.Task{}, err
	}
	c.evictProject(ctx, t.ProjectID)
	return t, nil
}

func (c *Cache) DeactivateTask(ctx context.Context, id string) error {
	t, err := c.base.TaskByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.base.DeactivateTask(ctx, id); err != nil {
		return err
	}
	c.evictProject(ctx, t.ProjectID)
	return nil
}

func (c *Cache) load(ctx context.Context, key string) ([]domain.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing store without failing.
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	return tasks, true
}

func (c *Cache) store(ctx context.Context, key string, tasks []domain.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) evictProject(ctx context.Context, projectID string) {
	if c.redis == nil {
		return
	}
	keys := []string{projectTasksKey(projectID)}
	if members, err := c.base.Members(ctx, projectID); err == nil {
		for _, m := range members {
			keys = append(keys, userTasksKey(m.UserID))
		}
	}
	_, _ = c.redis.Del(ctx, keys...).Result()
}

func userTasksKey(userID string) string {
	return "tasks:user:" + userID
}

func projectTasksKey(projectID string) string {
	return "tasks:project:" + projectID
}
