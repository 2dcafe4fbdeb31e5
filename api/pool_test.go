package api

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/0zturkSamet/task-manager/domain"
	"github.com/0zturkSamet/task-manager/storage"
)

type notifierStore struct {
	Storage
	created chan storage.NotificationParams
}

func (s *notifierStore) CreateNotification(ctx context.Context, params storage.NotificationParams) (domain.Notification, error) {
	s.created <- params
	return domain.Notification{ID: "n1", UserID: params.UserID}, nil
}

func TestNotifierDispatchesAsync(t *testing.T) {
	shutdownNotifier()
	t.Cleanup(shutdownNotifier)

	store := &notifierStore{created: make(chan storage.NotificationParams, 8)}
	logger, _ := test.NewNullLogger()
	initNotifier(store, logger)

	dispatchNotification(store, nil, storage.NotificationParams{
		UserID: "u1", Type: domain.NotificationTaskAssigned, Title: "t", Message: "m",
	})

	select {
	case got := <-store.created:
		if got.UserID != "u1" {
			t.Fatalf("unexpected notification: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification never dispatched")
	}
}

func TestDispatchFallsBackInlineWithoutPool(t *testing.T) {
	shutdownNotifier()
	t.Cleanup(shutdownNotifier)

	store := &notifierStore{created: make(chan storage.NotificationParams, 1)}

	// No initNotifier: the pool is down, the write happens inline.
	dispatchNotification(store, nil, storage.NotificationParams{
		UserID: "u2", Type: domain.NotificationTaskAssigned, Title: "t", Message: "m",
	})

	select {
	case got := <-store.created:
		if got.UserID != "u2" {
			t.Fatalf("unexpected notification: %+v", got)
		}
	default:
		t.Fatal("inline dispatch did not happen")
	}
}
