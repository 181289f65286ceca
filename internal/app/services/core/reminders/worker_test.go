package reminders

import (
	"context"
	"medplus-service/internal/app/config"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeLocker struct {
	mu        sync.Mutex
	denyLock  bool
	refreshes int
	unlocked  bool
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if f.denyLock {
		return false, "", nil
	}
	return true, "lock-value", nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlocked = true
	return nil
}

func (f *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	return nil
}

func (f *fakeLocker) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

type slowReminderUsecase struct {
	mu    sync.Mutex
	delay time.Duration
	runs  int
}

func (s *slowReminderUsecase) ProcessDueReminders(ctx context.Context) (int, error) {
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
	time.Sleep(s.delay)
	return 0, nil
}

func (s *slowReminderUsecase) runCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func newWorkerConfig(lockTTL time.Duration) *config.InternalConfig {
	return &config.InternalConfig{
		Reminder: config.Reminder{
			TickInterval: time.Hour,
			Window:       time.Hour,
			LockTTL:      lockTTL,
		},
	}
}

func TestWorkerRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Refreshes The Lock During A Slow Scan", func(t *testing.T) {
		locker := &fakeLocker{}
		usecase := &slowReminderUsecase{delay: 120 * time.Millisecond}
		worker := NewWorker(zap.NewNop(), newWorkerConfig(20*time.Millisecond), locker, usecase)

		worker.runOnce(ctx, time.Now())

		assert.GreaterOrEqual(t, locker.refreshCount(), 1, "a scan longer than the TTL must extend the lock")
		assert.True(t, locker.unlocked, "the lock is released when the run ends")
	})

	t.Run("Skips The Run When The Lock Is Held", func(t *testing.T) {
		locker := &fakeLocker{denyLock: true}
		usecase := &slowReminderUsecase{}
		worker := NewWorker(zap.NewNop(), newWorkerConfig(time.Minute), locker, usecase)

		worker.runOnce(ctx, time.Now())

		assert.Zero(t, usecase.runCount(), "no scan without the lock")
		assert.False(t, locker.unlocked)
	})
}
