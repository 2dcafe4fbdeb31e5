package api

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/0zturkSamet/task-manager/storage"
)

type notifyJob struct {
	params storage.NotificationParams
}

var (
	once            sync.Once
	jobs            chan notifyJob
	workerCount     int
	jobBuf          int
	dispatchTimeout time.Duration
	handoffTimeout  time.Duration
	bg              = context.Background()
	globalStore     Storage
	globalLog       *log.Logger
	workerWG        sync.WaitGroup
)

// shutdownNotifier stops worker goroutines and clears shared state. It is
// intended for tests.
func shutdownNotifier() {
	if jobs != nil {
		close(jobs)
		jobs = nil
	}

	workerWG.Wait()

	globalStore = nil
	globalLog = nil
	workerCount = 0
	jobBuf = 0
	dispatchTimeout = 0
	handoffTimeout = 0
	once = sync.Once{}
	workerWG = sync.WaitGroup{}
}

func initNotifier(store Storage, log *log.Logger) {
	once.Do(func() {
		globalStore = store
		if log == nil {
			panic("Logger is not initialized")
		}
		globalLog = log

		workerCount = envInt("NOTIFY_WORKERS", 8)
		jobBuf = envInt("NOTIFY_BUFFER", 1024)
		dispatchTimeout = envDur("NOTIFY_TIMEOUT", 30*time.Second)
		handoffTimeout = envDur("NOTIFY_HANDOFF_TIMEOUT", 15*time.Millisecond)

		jobs = make(chan notifyJob, jobBuf)
		for i := 0; i < workerCount; i++ {
			workerWG.Add(1)
			go worker(i, jobs)
		}
		globalLog.Infof("notifier started, workers: %d, buffer: %d, timeout: %v, handoff: %v", workerCount, jobBuf, dispatchTimeout, handoffTimeout)
	})
}

func worker(id int, jobCh <-chan notifyJob) {
	defer workerWG.Done()
	for j := range jobCh {
		ctx, cancel := context.WithTimeout(bg, dispatchTimeout)
		_, err := globalStore.CreateNotification(ctx, j.params)
		cancel()

		if err != nil {
			globalLog.Errorf("notification dispatch failed, err: %v, user: %s, worker: %d", err, j.params.UserID, id)
		}
	}
}

// dispatchNotification hands the notification to the worker pool, falling
// back to an inline write when the buffer is saturated. The caller's request
// never fails because a notification could not be stored.
func dispatchNotification(store Storage, logger errorLogger, params storage.NotificationParams) {
	job := notifyJob{params: params}
	if tryDispatchJob(job) {
		return
	}

	if globalLog != nil {
		globalLog.Warn("notify buffer saturated; dispatching inline")
	}

	ctx, cancel := context.WithTimeout(bg, inlineDispatchTimeout())
	defer cancel()
	if _, err := store.CreateNotification(ctx, params); err != nil && logger != nil {
		logger.Errorf("inline notification dispatch failed: %v", err)
	}
}

type errorLogger interface {
	Errorf(format string, args ...any)
}

func inlineDispatchTimeout() time.Duration {
	if dispatchTimeout > 0 {
		return dispatchTimeout
	}
	return 30 * time.Second
}

func tryDispatchJob(job notifyJob) bool {
	if jobs == nil {
		return false
	}

	if ok, closed := trySendNonBlocking(jobs, job); closed {
		return false
	} else if ok {
		return true
	}

	if handoffTimeout <= 0 {
		return false
	}

	timer := time.NewTimer(handoffTimeout)
	defer timer.Stop()

	ok, closed := sendWithTimer(jobs, job, timer.C)
	if closed {
		return false
	}
	return ok
}

func trySendNonBlocking(ch chan notifyJob, job notifyJob) (ok bool, closed bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			closed = true
		}
	}()

	select {
	case ch <- job:
		return true, false
	default:
		return false, false
	}
}

func sendWithTimer(ch chan notifyJob, job notifyJob, timer <-chan time.Time) (ok bool, closed bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			closed = true
		}
	}()

	select {
	case ch <- job:
		return true, false
	case <-timer:
		return false, false
	}
}

func envInt(name string, def int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDur(name string, def time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
