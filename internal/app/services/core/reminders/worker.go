package reminders

import (
	"context"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

// Worker drives the reminder scan on a fixed tick. A per-run Redis lock
// keeps multiple instances (or a slow previous run) from scanning the same
// window concurrently.
type Worker struct {
	log             *zap.Logger
	cfg             *config.InternalConfig
	locker          contracts.LockerService
	reminderUsecase contracts.ReminderUsecase
	stop            chan struct{}
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, reminderUsecase contracts.ReminderUsecase) *Worker {
	return &Worker{
		log:             log,
		cfg:             cfg,
		locker:          lockerSvc,
		reminderUsecase: reminderUsecase,
		stop:            make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(w.cfg.Reminder.TickInterval)
	stopped := make(chan struct{})

	w.log.Info("reminder worker started",
		zap.Duration("tick_interval", w.cfg.Reminder.TickInterval),
		zap.Duration("window", w.cfg.Reminder.Window),
	)

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *Worker) runOnce(ctx context.Context, now time.Time) {
	w.log.Info("reminder.worker.runOnce tick", zap.Time("now", now))

	acquired, lockVal, err := w.locker.TryLock(ctx, constvars.RedisKeyReminderWorkerLock, w.cfg.Reminder.LockTTL)
	if err != nil {
		w.log.Info("reminder worker lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Warn("reminder worker lock not acquired; another instance is running")
		return
	}

	defer func() {
		if err := w.locker.Unlock(ctx, constvars.RedisKeyReminderWorkerLock, lockVal); err != nil {
			w.log.Error("reminder worker unlock failed", zap.Error(err))
		}
	}()

	// A scan slower than the lock TTL would otherwise lose the lock to the
	// next instance mid-run.
	refreshCtx, stopRefresh := context.WithCancel(ctx)
	defer stopRefresh()
	go w.keepLockAlive(refreshCtx, lockVal)

	sent, err := w.reminderUsecase.ProcessDueReminders(ctx)
	if err != nil {
		w.log.Error("reminder worker run failed", zap.Error(err))
		return
	}

	w.log.Info("reminder worker run finished", zap.Int("reminders_sent", sent))
}

func (w *Worker) keepLockAlive(ctx context.Context, lockVal string) {
	ticker := time.NewTicker(w.cfg.Reminder.LockTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.locker.Refresh(ctx, constvars.RedisKeyReminderWorkerLock, lockVal, w.cfg.Reminder.LockTTL); err != nil {
				w.log.Error("reminder worker lock refresh failed", zap.Error(err))
			}
		}
	}
}
