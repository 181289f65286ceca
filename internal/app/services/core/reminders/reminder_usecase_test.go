package reminders

import (
	"context"
	"errors"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/models"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memoryAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[primitive.ObjectID]*models.Appointment
}

func newMemoryAppointmentRepository() *memoryAppointmentRepository {
	return &memoryAppointmentRepository{appointments: make(map[primitive.ObjectID]*models.Appointment)}
}

func (m *memoryAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if appointment.ID.IsZero() {
		appointment.ID = primitive.NewObjectID()
	}
	copied := *appointment
	m.appointments[appointment.ID] = &copied
	return appointment, nil
}

func (m *memoryAppointmentRepository) FindByID(ctx context.Context, appointmentID primitive.ObjectID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appointment, ok := m.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (m *memoryAppointmentRepository) FindByPatient(ctx context.Context, patientID primitive.ObjectID, page, pageSize int) ([]models.Appointment, int, error) {
	return nil, 0, nil
}

func (m *memoryAppointmentRepository) UpdateStatus(ctx context.Context, appointmentID primitive.ObjectID, from []models.AppointmentStatus, to models.AppointmentStatus) (bool, error) {
	return false, nil
}

func (m *memoryAppointmentRepository) FindReminderCandidates(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.Appointment
	for _, appointment := range m.appointments {
		if appointment.Status == models.AppointmentStatusConfirmed &&
			!appointment.ReminderSent &&
			!appointment.StartTime.Before(windowStart) &&
			appointment.StartTime.Before(windowEnd) {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (m *memoryAppointmentRepository) MarkReminderSent(ctx context.Context, appointmentID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appointment, ok := m.appointments[appointmentID]
	if !ok || appointment.ReminderSent {
		return false, nil
	}
	appointment.ReminderSent = true
	return true, nil
}

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (m *memoryUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	copied := *user
	m.users[user.ID] = &copied
	return user, nil
}

func (m *memoryUserRepository) FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (m *memoryUserRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	return user, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string
	fails bool
}

func (n *recordingNotifier) Send(ctx context.Context, pushToken, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fails {
		return errors.New("push gateway down")
	}
	n.sent = append(n.sent, data["appointment_id"])
	return nil
}

func newTestReminderUsecase(appointmentRepo *memoryAppointmentRepository, userRepo *memoryUserRepository, notifier *recordingNotifier) *reminderUsecase {
	return &reminderUsecase{
		AppointmentRepository: appointmentRepo,
		UserRepository:        userRepo,
		PushNotifier:          notifier,
		InternalConfig: &config.InternalConfig{
			Reminder: config.Reminder{
				TickInterval: 15 * time.Minute,
				Window:       time.Hour,
				LockTTL:      5 * time.Minute,
			},
		},
		Log: zap.NewNop(),
	}
}

func seedConfirmedAppointment(repo *memoryAppointmentRepository, patientID primitive.ObjectID, startsIn time.Duration) *models.Appointment {
	appointment := &models.Appointment{
		ID:         primitive.NewObjectID(),
		SlotID:     primitive.NewObjectID(),
		PatientID:  patientID,
		ProviderID: primitive.NewObjectID(),
		StartTime:  time.Now().UTC().Add(startsIn),
		Status:     models.AppointmentStatusConfirmed,
	}
	repo.appointments[appointment.ID] = appointment
	return appointment
}

func seedUserWithToken(repo *memoryUserRepository, token string) *models.User {
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     "patient@example.com",
		Fullname:  "Test Patient",
		UserType:  "patient",
		Verified:  true,
		PushToken: token,
	}
	repo.users[user.ID] = user
	return user
}

func TestProcessDueReminders(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends For Appointments Inside The Window", func(t *testing.T) {
		appointmentRepo := newMemoryAppointmentRepository()
		userRepo := newMemoryUserRepository()
		notifier := &recordingNotifier{}
		uc := newTestReminderUsecase(appointmentRepo, userRepo, notifier)

		user := seedUserWithToken(userRepo, "ExponentPushToken[abc]")
		due := seedConfirmedAppointment(appointmentRepo, user.ID, 30*time.Minute)
		seedConfirmedAppointment(appointmentRepo, user.ID, 3*time.Hour)

		sent, err := uc.ProcessDueReminders(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, sent)
		assert.Equal(t, []string{due.ID.Hex()}, notifier.sent)
		assert.True(t, appointmentRepo.appointments[due.ID].ReminderSent)
	})

	t.Run("Repeated Scans Do Not Resend", func(t *testing.T) {
		appointmentRepo := newMemoryAppointmentRepository()
		userRepo := newMemoryUserRepository()
		notifier := &recordingNotifier{}
		uc := newTestReminderUsecase(appointmentRepo, userRepo, notifier)

		user := seedUserWithToken(userRepo, "ExponentPushToken[abc]")
		for i := 0; i < 5; i++ {
			seedConfirmedAppointment(appointmentRepo, user.ID, 30*time.Minute)
		}

		const scans = 4
		totalSent := 0
		for i := 0; i < scans; i++ {
			sent, err := uc.ProcessDueReminders(ctx)
			require.NoError(t, err)
			totalSent += sent
		}

		assert.Equal(t, 5, totalSent, "once the flag is set a later scan must skip the appointment")
		assert.Len(t, notifier.sent, 5)
	})

	t.Run("Skips Patients Without Push Token", func(t *testing.T) {
		appointmentRepo := newMemoryAppointmentRepository()
		userRepo := newMemoryUserRepository()
		notifier := &recordingNotifier{}
		uc := newTestReminderUsecase(appointmentRepo, userRepo, notifier)

		user := seedUserWithToken(userRepo, "")
		appointment := seedConfirmedAppointment(appointmentRepo, user.ID, 30*time.Minute)

		sent, err := uc.ProcessDueReminders(ctx)
		require.NoError(t, err)

		assert.Zero(t, sent)
		assert.False(t, appointmentRepo.appointments[appointment.ID].ReminderSent, "flag stays unset so a later token still gets the reminder")
	})

	t.Run("Push Failure Is Retried By The Next Scan", func(t *testing.T) {
		appointmentRepo := newMemoryAppointmentRepository()
		userRepo := newMemoryUserRepository()
		notifier := &recordingNotifier{fails: true}
		uc := newTestReminderUsecase(appointmentRepo, userRepo, notifier)

		user := seedUserWithToken(userRepo, "ExponentPushToken[abc]")
		appointment := seedConfirmedAppointment(appointmentRepo, user.ID, 30*time.Minute)

		sent, err := uc.ProcessDueReminders(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)
		assert.False(t, appointmentRepo.appointments[appointment.ID].ReminderSent, "a failed send must leave the flag unset")

		notifier.fails = false
		sent, err = uc.ProcessDueReminders(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent, "the next scan picks the appointment up again")
		assert.True(t, appointmentRepo.appointments[appointment.ID].ReminderSent)
	})

	t.Run("Candidate Window Includes Start And Excludes End", func(t *testing.T) {
		appointmentRepo := newMemoryAppointmentRepository()

		windowStart := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
		windowEnd := windowStart.Add(time.Hour)

		atStart := &models.Appointment{
			ID:        primitive.NewObjectID(),
			PatientID: primitive.NewObjectID(),
			StartTime: windowStart,
			Status:    models.AppointmentStatusConfirmed,
		}
		atEnd := &models.Appointment{
			ID:        primitive.NewObjectID(),
			PatientID: primitive.NewObjectID(),
			StartTime: windowEnd,
			Status:    models.AppointmentStatusConfirmed,
		}
		appointmentRepo.appointments[atStart.ID] = atStart
		appointmentRepo.appointments[atEnd.ID] = atEnd

		candidates, err := appointmentRepo.FindReminderCandidates(ctx, windowStart, windowEnd)
		require.NoError(t, err)
		require.Len(t, candidates, 1, "only the appointment starting exactly at the window start is due")
		assert.Equal(t, atStart.ID, candidates[0].ID)
	})
}
