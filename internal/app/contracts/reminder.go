package contracts

import "context"

type ReminderUsecase interface {
	// ProcessDueReminders scans for confirmed appointments starting within
	// the reminder window and pushes a reminder for each at most once. It
	// returns the number of reminders sent.
	ProcessDueReminders(ctx context.Context) (int, error)
}
