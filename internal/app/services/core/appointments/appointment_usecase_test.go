package appointments

import (
	"context"
	"errors"
	"fmt"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeSlotRepository struct {
	mu    sync.Mutex
	slots map[primitive.ObjectID]*models.Slot
}

func newFakeSlotRepository() *fakeSlotRepository {
	return &fakeSlotRepository{slots: make(map[primitive.ObjectID]*models.Slot)}
}

func (f *fakeSlotRepository) InsertSlots(ctx context.Context, slots []models.Slot) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range slots {
		slots[i].ID = primitive.NewObjectID()
		stored := slots[i]
		f.slots[stored.ID] = &stored
	}
	return slots, nil
}

func (f *fakeSlotRepository) InsertSlotsIgnoreDuplicates(ctx context.Context, slots []models.Slot) (int, error) {
	inserted, err := f.InsertSlots(ctx, slots)
	return len(inserted), err
}

func (f *fakeSlotRepository) FindByID(ctx context.Context, slotID primitive.ObjectID) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[slotID]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepository) FindByProviderAndRange(ctx context.Context, providerID primitive.ObjectID, from, to time.Time, status models.SlotStatus) ([]models.Slot, error) {
	return nil, nil
}

func (f *fakeSlotRepository) UpdateStatus(ctx context.Context, slotID primitive.ObjectID, from, to models.SlotStatus, appointmentID *primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[slotID]
	if !ok || slot.Status != from {
		return false, nil
	}
	slot.Status = to
	slot.AppointmentID = appointmentID
	return true, nil
}

func (f *fakeSlotRepository) DeleteFree(ctx context.Context, slotID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[slotID]
	if !ok || slot.Status != models.SlotStatusFree {
		return false, nil
	}
	delete(f.slots, slotID)
	return true, nil
}

type fakeAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[primitive.ObjectID]*models.Appointment
	failCreate   bool
}

func newFakeAppointmentRepository() *fakeAppointmentRepository {
	return &fakeAppointmentRepository{appointments: make(map[primitive.ObjectID]*models.Appointment)}
}

func (f *fakeAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return nil, exceptions.ErrMongoDBInsertDocument(errors.New("insert failed"))
	}
	if appointment.ID.IsZero() {
		appointment.ID = primitive.NewObjectID()
	}
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return appointment, nil
}

func (f *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID primitive.ObjectID) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepository) FindByPatient(ctx context.Context, patientID primitive.ObjectID, page, pageSize int) ([]models.Appointment, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Appointment
	for _, appointment := range f.appointments {
		if appointment.PatientID == patientID {
			result = append(result, *appointment)
		}
	}
	return result, len(result), nil
}

func (f *fakeAppointmentRepository) UpdateStatus(ctx context.Context, appointmentID primitive.ObjectID, from []models.AppointmentStatus, to models.AppointmentStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return false, nil
	}
	for _, status := range from {
		if appointment.Status == status {
			appointment.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepository) FindReminderCandidates(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Appointment
	for _, appointment := range f.appointments {
		if appointment.Status == models.AppointmentStatusConfirmed &&
			!appointment.ReminderSent &&
			appointment.StartTime.After(windowStart) &&
			!appointment.StartTime.After(windowEnd) {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepository) MarkReminderSent(ctx context.Context, appointmentID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.appointments[appointmentID]
	if !ok || appointment.ReminderSent {
		return false, nil
	}
	appointment.ReminderSent = true
	return true, nil
}

type fakeRedisRepository struct {
	mu       sync.Mutex
	counters map[string]int64
	values   map[string]string
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{counters: make(map[string]int64), values: make(map[string]string)}
}

func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeRedisRepository) Increment(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return f.Increment(ctx, key)
}

func (f *fakeRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return true, nil
}

func newTestAppointmentUsecase(slotRepo *fakeSlotRepository, appointmentRepo *fakeAppointmentRepository, redisRepo *fakeRedisRepository) *appointmentUsecase {
	return &appointmentUsecase{
		SlotRepository:        slotRepo,
		AppointmentRepository: appointmentRepo,
		RedisRepository:       redisRepo,
		Log:                   zap.NewNop(),
	}
}

func seedFreeSlot(slotRepo *fakeSlotRepository, providerID primitive.ObjectID) *models.Slot {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	slot := &models.Slot{
		ID:         primitive.NewObjectID(),
		ProviderID: providerID,
		Date:       start.Format(constvars.DATE_ONLY_LAYOUT),
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Status:     models.SlotStatusFree,
	}
	slotRepo.slots[slot.ID] = slot
	return slot
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	return customErr.StatusCode
}

func TestBookSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("Books A Free Slot", func(t *testing.T) {
		slotRepo := newFakeSlotRepository()
		appointmentRepo := newFakeAppointmentRepository()
		redisRepo := newFakeRedisRepository()
		uc := newTestAppointmentUsecase(slotRepo, appointmentRepo, redisRepo)

		providerID := primitive.NewObjectID()
		slot := seedFreeSlot(slotRepo, providerID)
		patientID := primitive.NewObjectID()

		result, err := uc.BookSlot(ctx, patientID.Hex(), &requests.BookSlot{SlotID: slot.ID.Hex(), Notes: "first visit"})
		require.NoError(t, err)

		assert.Equal(t, slot.ID.Hex(), result.SlotID)
		assert.Equal(t, string(models.AppointmentStatusPending), result.Status)
		assert.Equal(t, models.SlotStatusBooked, slotRepo.slots[slot.ID].Status)
		require.NotNil(t, slotRepo.slots[slot.ID].AppointmentID)
		assert.Equal(t, result.AppointmentID, slotRepo.slots[slot.ID].AppointmentID.Hex())

		versionKey := fmt.Sprintf(constvars.RedisKeyAvailabilityVerFormat, providerID.Hex())
		assert.Equal(t, int64(1), redisRepo.counters[versionKey], "availability version should be bumped")
	})

	t.Run("Rejects Unknown Slot", func(t *testing.T) {
		uc := newTestAppointmentUsecase(newFakeSlotRepository(), newFakeAppointmentRepository(), newFakeRedisRepository())

		_, err := uc.BookSlot(ctx, primitive.NewObjectID().Hex(), &requests.BookSlot{SlotID: primitive.NewObjectID().Hex()})
		assert.Equal(t, 404, statusCodeOf(t, err))
	})

	t.Run("Rejects Already Booked Slot", func(t *testing.T) {
		slotRepo := newFakeSlotRepository()
		uc := newTestAppointmentUsecase(slotRepo, newFakeAppointmentRepository(), newFakeRedisRepository())

		slot := seedFreeSlot(slotRepo, primitive.NewObjectID())
		slot.Status = models.SlotStatusBooked

		_, err := uc.BookSlot(ctx, primitive.NewObjectID().Hex(), &requests.BookSlot{SlotID: slot.ID.Hex()})
		assert.Equal(t, 409, statusCodeOf(t, err))
	})

	t.Run("Concurrent Bookings Win At Most Once", func(t *testing.T) {
		slotRepo := newFakeSlotRepository()
		appointmentRepo := newFakeAppointmentRepository()
		uc := newTestAppointmentUsecase(slotRepo, appointmentRepo, newFakeRedisRepository())

		slot := seedFreeSlot(slotRepo, primitive.NewObjectID())

		const bookers = 16
		var wg sync.WaitGroup
		errs := make([]error, bookers)
		for i := 0; i < bookers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = uc.BookSlot(ctx, primitive.NewObjectID().Hex(), &requests.BookSlot{SlotID: slot.ID.Hex()})
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
				continue
			}
			assert.Equal(t, 409, statusCodeOf(t, err))
		}
		assert.Equal(t, 1, successes, "exactly one booking should win the slot")
		assert.Len(t, appointmentRepo.appointments, 1)
	})

	t.Run("Releases Slot When Insert Fails", func(t *testing.T) {
		slotRepo := newFakeSlotRepository()
		appointmentRepo := newFakeAppointmentRepository()
		appointmentRepo.failCreate = true
		uc := newTestAppointmentUsecase(slotRepo, appointmentRepo, newFakeRedisRepository())

		slot := seedFreeSlot(slotRepo, primitive.NewObjectID())

		_, err := uc.BookSlot(ctx, primitive.NewObjectID().Hex(), &requests.BookSlot{SlotID: slot.ID.Hex()})
		require.Error(t, err)

		assert.Equal(t, models.SlotStatusFree, slotRepo.slots[slot.ID].Status, "compensating swap should free the slot")
		assert.Nil(t, slotRepo.slots[slot.ID].AppointmentID)
	})
}

func TestAppointmentTransitions(t *testing.T) {
	ctx := context.Background()

	book := func(t *testing.T, uc *appointmentUsecase, slotRepo *fakeSlotRepository) (string, *models.Slot) {
		t.Helper()
		slot := seedFreeSlot(slotRepo, primitive.NewObjectID())
		result, err := uc.BookSlot(ctx, primitive.NewObjectID().Hex(), &requests.BookSlot{SlotID: slot.ID.Hex()})
		require.NoError(t, err)
		return result.AppointmentID, slot
	}

	t.Run("Confirm Then Complete", func(t *testing.T) {
		slotRepo := newFakeSlotRepository()
		uc := newTestAppointmentUsecase(slotRepo, newFakeAppointmentRepository(), newFakeRedisRepository())
		appointmentID, _ := book(t, uc, slotRepo)

		confirmed, err := uc.ConfirmAppointment(ctx, appointmentID)
		require.NoError(t, err)
		assert.Equal(t, string(models.AppointmentStatusConfirmed), confirmed.Status)

		completed, err := uc.CompleteAppointment(ctx, appointmentID)
		require.NoError(t, err)
		assert.Equal(t, string(models.AppointmentStatusCompleted), completed.Status)
	})

	t.Run("Complete Without Confirm Fails", func(t *testing.T) {
		slotRepo := newFakeSlotRepository()
		uc := newTestAppointmentUsecase(slotRepo, newFakeAppointmentRepository(), newFakeRedisRepository())
		appointmentID, _ := book(t, uc, slotRepo)

		_, err := uc.CompleteAppointment(ctx, appointmentID)
		assert.Equal(t, 422, statusCodeOf(t, err))
	})

	t.Run("Unknown Appointment Is Not Found", func(t *testing.T) {
		uc := newTestAppointmentUsecase(newFakeSlotRepository(), newFakeAppointmentRepository(), newFakeRedisRepository())

		_, err := uc.ConfirmAppointment(ctx, primitive.NewObjectID().Hex())
		assert.Equal(t, 404, statusCodeOf(t, err))
	})

	t.Run("Cancel Frees The Slot", func(t *testing.T) {
		slotRepo := newFakeSlotRepository()
		uc := newTestAppointmentUsecase(slotRepo, newFakeAppointmentRepository(), newFakeRedisRepository())
		appointmentID, slot := book(t, uc, slotRepo)

		cancelled, err := uc.CancelAppointment(ctx, appointmentID)
		require.NoError(t, err)
		assert.Equal(t, string(models.AppointmentStatusCancelled), cancelled.Status)
		assert.Equal(t, models.SlotStatusFree, slotRepo.slots[slot.ID].Status)

		_, err = uc.CancelAppointment(ctx, appointmentID)
		assert.Equal(t, 422, statusCodeOf(t, err), "cancelled is terminal")
	})
}
