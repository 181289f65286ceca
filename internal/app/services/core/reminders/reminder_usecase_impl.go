package reminders

import (
	"context"
	"fmt"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/constvars"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	reminderUsecaseInstance contracts.ReminderUsecase
	onceReminderUsecase     sync.Once
)

type reminderUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	UserRepository        contracts.UserRepository
	PushNotifier          contracts.PushNotifier
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewReminderUsecase(
	appointmentRepository contracts.AppointmentRepository,
	userRepository contracts.UserRepository,
	pushNotifier contracts.PushNotifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ReminderUsecase {
	onceReminderUsecase.Do(func() {
		reminderUsecaseInstance = &reminderUsecase{
			AppointmentRepository: appointmentRepository,
			UserRepository:        userRepository,
			PushNotifier:          pushNotifier,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return reminderUsecaseInstance
}

// ProcessDueReminders pushes a reminder for every candidate and flips the
// flag only after the push succeeded, so a failed send is picked up again by
// the next scan. The worker's distributed lock keeps scans from overlapping;
// the conditional flip backstops a lost race anyway.
func (uc *reminderUsecase) ProcessDueReminders(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	windowEnd := now.Add(uc.InternalConfig.Reminder.Window)

	candidates, err := uc.AppointmentRepository.FindReminderCandidates(ctx, now, windowEnd)
	if err != nil {
		return 0, err
	}

	uc.Log.Info("reminderUsecase.ProcessDueReminders scan finished",
		zap.Int(constvars.LoggingReminderCandidatesKey, len(candidates)),
		zap.Time(constvars.LoggingReminderWindowStartKey, now),
		zap.Time(constvars.LoggingReminderWindowEndKey, windowEnd),
	)

	sent := 0
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if uc.processCandidate(ctx, &candidates[i]) {
			sent++
		}
	}
	return sent, nil
}

func (uc *reminderUsecase) processCandidate(ctx context.Context, appointment *models.Appointment) bool {
	user, err := uc.UserRepository.FindByID(ctx, appointment.PatientID)
	if err != nil {
		uc.Log.Error("reminderUsecase.processCandidate failed to load patient",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
			zap.Error(err),
		)
		return false
	}
	if user == nil || user.PushToken == "" {
		uc.Log.Debug("reminderUsecase.processCandidate patient has no push target",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
			zap.String(constvars.LoggingPatientIDKey, appointment.PatientID.Hex()),
		)
		return false
	}

	body := fmt.Sprintf(constvars.PushReminderBodyFormat, appointment.StartTime.Format(time.Kitchen))
	data := map[string]string{
		"appointment_id": appointment.ID.Hex(),
	}
	// The flag stays false on a failed send, so the next scan re-attempts.
	if err := uc.PushNotifier.Send(ctx, user.PushToken, constvars.PushReminderTitle, body, data); err != nil {
		uc.Log.Error("reminderUsecase.processCandidate push send failed",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
			zap.String(constvars.LoggingPushTargetKey, user.PushToken),
			zap.Error(err),
		)
		return false
	}

	marked, err := uc.AppointmentRepository.MarkReminderSent(ctx, appointment.ID)
	if err != nil {
		uc.Log.Error("reminderUsecase.processCandidate failed to set reminder flag",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
			zap.Error(err),
		)
		return false
	}
	if !marked {
		uc.Log.Warn("reminderUsecase.processCandidate reminder flag already set elsewhere",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
		)
		return false
	}

	uc.Log.Info("reminderUsecase.processCandidate reminder sent",
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
		zap.String(constvars.LoggingPatientIDKey, appointment.PatientID.Hex()),
	)
	return true
}
