package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

// newTestStore opens an in-memory database with a deterministic clock that
// advances one second per call, so created_at ordering is stable.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	base := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	var tick int
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s
}

func TestCreateUserAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "Ada@Example.com", "hash", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email not lowercased: %s", u.Email)
	}
	if u.Role != "USER" || !u.IsActive {
		t.Fatalf("unexpected defaults: %+v", u)
	}

	got, hash, err := s.UserByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("user by email: %v", err)
	}
	if got.ID != u.ID || hash != "hash" {
		t.Fatalf("unexpected lookup result: %+v hash=%q", got, hash)
	}

	if _, err := s.CreateUser(ctx, "ada@example.com", "other", "A", "L"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.UserByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeactivateUserHidesFromLookups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "gone@example.com", "h", "Gone", "Soon")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := s.DeactivateUser(ctx, u.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := s.UserByID(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after deactivation, got %v", err)
	}
	if err := s.DeactivateUser(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second deactivation, got %v", err)
	}
}

func TestSearchUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "ada@example.com", "h", "Ada", "Lovelace"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateUser(ctx, "grace@example.com", "h", "Grace", "Hopper"); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.SearchUsers(ctx, "love")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].FirstName != "Ada" {
		t.Fatalf("unexpected search result: %+v", got)
	}

	got, err = s.SearchUsers(ctx, "ada love")
	if err != nil {
		t.Fatalf("search full name: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("full-name search missed: %+v", got)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "u@example.com", "h", "Old", "Name")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first := "New"
	got, err := s.UpdateUser(ctx, u.ID, UserUpdate{FirstName: &first})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.FirstName != "New" || got.LastName != "Name" {
		t.Fatalf("partial update wrong: %+v", got)
	}
}
