package schedules

import (
	"context"
	"fmt"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/dto/requests"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// stubSlotRepository enforces the (providerId, date, startTime) unique key
// the real collection carries, so duplicate-skipping behaves like Mongo.
type stubSlotRepository struct {
	mu        sync.Mutex
	slots     map[primitive.ObjectID]*models.Slot
	uniqueKey map[string]bool
	rangeHits int
}

func newStubSlotRepository() *stubSlotRepository {
	return &stubSlotRepository{
		slots:     make(map[primitive.ObjectID]*models.Slot),
		uniqueKey: make(map[string]bool),
	}
}

func slotKey(slot *models.Slot) string {
	return fmt.Sprintf("%s|%s|%s", slot.ProviderID.Hex(), slot.Date, slot.StartTime.Format("15:04"))
}

func (s *stubSlotRepository) InsertSlots(ctx context.Context, slots []models.Slot) ([]models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range slots {
		slots[i].ID = primitive.NewObjectID()
		stored := slots[i]
		s.slots[stored.ID] = &stored
		s.uniqueKey[slotKey(&stored)] = true
	}
	return slots, nil
}

func (s *stubSlotRepository) InsertSlotsIgnoreDuplicates(ctx context.Context, slots []models.Slot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inserted := 0
	for i := range slots {
		key := slotKey(&slots[i])
		if s.uniqueKey[key] {
			continue
		}
		slots[i].ID = primitive.NewObjectID()
		stored := slots[i]
		s.slots[stored.ID] = &stored
		s.uniqueKey[key] = true
		inserted++
	}
	return inserted, nil
}

func (s *stubSlotRepository) FindByID(ctx context.Context, slotID primitive.ObjectID) (*models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (s *stubSlotRepository) FindByProviderAndRange(ctx context.Context, providerID primitive.ObjectID, from, to time.Time, status models.SlotStatus) ([]models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rangeHits++
	var result []models.Slot
	for _, slot := range s.slots {
		if slot.ProviderID == providerID && slot.Status == status &&
			!slot.StartTime.Before(from) && slot.StartTime.Before(to) {
			result = append(result, *slot)
		}
	}
	return result, nil
}

func (s *stubSlotRepository) UpdateStatus(ctx context.Context, slotID primitive.ObjectID, from, to models.SlotStatus, appointmentID *primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok || slot.Status != from {
		return false, nil
	}
	slot.Status = to
	slot.AppointmentID = appointmentID
	return true, nil
}

func (s *stubSlotRepository) DeleteFree(ctx context.Context, slotID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok || slot.Status != models.SlotStatusFree {
		return false, nil
	}
	delete(s.uniqueKey, slotKey(slot))
	delete(s.slots, slotID)
	return true, nil
}

type stubPlanRepository struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]*models.RecurrencePlan
}

func newStubPlanRepository() *stubPlanRepository {
	return &stubPlanRepository{plans: make(map[primitive.ObjectID]*models.RecurrencePlan)}
}

func (s *stubPlanRepository) Create(ctx context.Context, plan *models.RecurrencePlan) (*models.RecurrencePlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	copied := *plan
	s.plans[plan.ID] = &copied
	return plan, nil
}

func (s *stubPlanRepository) FindByID(ctx context.Context, planID primitive.ObjectID) (*models.RecurrencePlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[planID]
	if !ok {
		return nil, nil
	}
	copied := *plan
	return &copied, nil
}

func (s *stubPlanRepository) FindByProvider(ctx context.Context, providerID primitive.ObjectID) ([]models.RecurrencePlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.RecurrencePlan
	for _, plan := range s.plans {
		if plan.ProviderID == providerID {
			result = append(result, *plan)
		}
	}
	return result, nil
}

func (s *stubPlanRepository) UpdateGeneratedUntil(ctx context.Context, planID primitive.ObjectID, generatedUntil string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plan, ok := s.plans[planID]; ok {
		plan.GeneratedUntil = generatedUntil
	}
	return nil
}

func (s *stubPlanRepository) Delete(ctx context.Context, planID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plans, planID)
	return nil
}

// stubRedisRepository mirrors the real repository's behavior of storing
// values JSON-encoded.
type stubRedisRepository struct {
	mu       sync.Mutex
	values   map[string]string
	counters map[string]int64
}

func newStubRedisRepository() *stubRedisRepository {
	return &stubRedisRepository{values: make(map[string]string), counters: make(map[string]int64)}
}

func (s *stubRedisRepository) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *stubRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = string(encoded)
	return nil
}

func (s *stubRedisRepository) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *stubRedisRepository) Increment(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	s.values[key] = strconv.FormatInt(s.counters[key], 10)
	return s.counters[key], nil
}

func (s *stubRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return s.Increment(ctx, key)
}

func (s *stubRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return true, nil
}

func newTestScheduleUsecase(slotRepo *stubSlotRepository, planRepo *stubPlanRepository, redisRepo *stubRedisRepository) *scheduleUsecase {
	return &scheduleUsecase{
		SlotRepository:           slotRepo,
		RecurrencePlanRepository: planRepo,
		RedisRepository:          redisRepo,
		InternalConfig: &config.InternalConfig{
			App: config.App{AvailabilityCacheTTL: time.Minute},
		},
		Log: zap.NewNop(),
	}
}

func seedPlan(planRepo *stubPlanRepository, providerID primitive.ObjectID) *models.RecurrencePlan {
	plan := &models.RecurrencePlan{
		ID:          primitive.NewObjectID(),
		ProviderID:  providerID,
		Frequency:   models.RecurrenceFrequencyWeekly,
		Weekday:     time.Now().UTC().Weekday(),
		StartTime:   "09:00",
		EndTime:     "12:00",
		SlotMinutes: 30,
	}
	planRepo.plans[plan.ID] = plan
	return plan
}

func TestExpandRecurrence(t *testing.T) {
	ctx := context.Background()

	t.Run("Repeat Expansion Inserts Nothing New", func(t *testing.T) {
		slotRepo := newStubSlotRepository()
		planRepo := newStubPlanRepository()
		uc := newTestScheduleUsecase(slotRepo, planRepo, newStubRedisRepository())

		providerID := primitive.NewObjectID()
		plan := seedPlan(planRepo, providerID)

		first, err := uc.ExpandRecurrence(ctx, providerID.Hex(), plan.ID.Hex(), &requests.ExpandRecurrence{HorizonDays: 14})
		require.NoError(t, err)
		assert.Positive(t, first.InsertedSlots)
		assert.Equal(t, first.GeneratedSlots, first.InsertedSlots)

		second, err := uc.ExpandRecurrence(ctx, providerID.Hex(), plan.ID.Hex(), &requests.ExpandRecurrence{HorizonDays: 14})
		require.NoError(t, err)
		assert.Zero(t, second.InsertedSlots, "window already covered, nothing new to insert")
		assert.Equal(t, first.GeneratedUntil, second.GeneratedUntil)
	})

	t.Run("Larger Horizon Extends The Window", func(t *testing.T) {
		slotRepo := newStubSlotRepository()
		planRepo := newStubPlanRepository()
		uc := newTestScheduleUsecase(slotRepo, planRepo, newStubRedisRepository())

		providerID := primitive.NewObjectID()
		plan := seedPlan(planRepo, providerID)

		first, err := uc.ExpandRecurrence(ctx, providerID.Hex(), plan.ID.Hex(), &requests.ExpandRecurrence{HorizonDays: 7})
		require.NoError(t, err)

		extended, err := uc.ExpandRecurrence(ctx, providerID.Hex(), plan.ID.Hex(), &requests.ExpandRecurrence{HorizonDays: 21})
		require.NoError(t, err)

		assert.Positive(t, extended.InsertedSlots, "the extra two weeks should produce slots")
		assert.NotEqual(t, first.GeneratedUntil, extended.GeneratedUntil)
		assert.Equal(t, first.InsertedSlots+extended.InsertedSlots, len(slotRepo.slots))
	})

	t.Run("Duplicate Index Collisions Are Skipped", func(t *testing.T) {
		slotRepo := newStubSlotRepository()
		planRepo := newStubPlanRepository()
		uc := newTestScheduleUsecase(slotRepo, planRepo, newStubRedisRepository())

		providerID := primitive.NewObjectID()
		plan := seedPlan(planRepo, providerID)
		// A manually created slot occupying one of the plan's positions.
		day := time.Now().UTC().Truncate(24 * time.Hour)
		manual := models.Slot{
			ProviderID: providerID,
			Date:       day.AddDate(0, 0, 7).Format("2006-01-02"),
			StartTime:  time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC).AddDate(0, 0, 7),
			EndTime:    time.Date(day.Year(), day.Month(), day.Day(), 9, 30, 0, 0, time.UTC).AddDate(0, 0, 7),
			Status:     models.SlotStatusFree,
		}
		_, err := slotRepo.InsertSlots(ctx, []models.Slot{manual})
		require.NoError(t, err)

		result, err := uc.ExpandRecurrence(ctx, providerID.Hex(), plan.ID.Hex(), &requests.ExpandRecurrence{HorizonDays: 14})
		require.NoError(t, err)

		assert.Equal(t, result.GeneratedSlots-1, result.InsertedSlots, "the occupied position is skipped, the rest land")
	})

	t.Run("Foreign Plan Is Not Found", func(t *testing.T) {
		planRepo := newStubPlanRepository()
		uc := newTestScheduleUsecase(newStubSlotRepository(), planRepo, newStubRedisRepository())

		plan := seedPlan(planRepo, primitive.NewObjectID())

		_, err := uc.ExpandRecurrence(ctx, primitive.NewObjectID().Hex(), plan.ID.Hex(), &requests.ExpandRecurrence{HorizonDays: 7})
		assert.Error(t, err)
	})
}

func TestGetAvailabilityCache(t *testing.T) {
	ctx := context.Background()

	providerID := primitive.NewObjectID()
	day := time.Now().UTC().AddDate(0, 0, 1)
	dateStr := day.Format("2006-01-02")

	seed := func(slotRepo *stubSlotRepository) {
		start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.UTC)
		slotRepo.InsertSlots(ctx, []models.Slot{{
			ProviderID: providerID,
			Date:       dateStr,
			StartTime:  start,
			EndTime:    start.Add(30 * time.Minute),
			Status:     models.SlotStatusFree,
		}})
	}

	request := &requests.GetAvailability{ProviderID: providerID.Hex(), From: dateStr, To: dateStr}

	t.Run("Second Read Is Served From Cache", func(t *testing.T) {
		slotRepo := newStubSlotRepository()
		uc := newTestScheduleUsecase(slotRepo, newStubPlanRepository(), newStubRedisRepository())
		seed(slotRepo)

		first, err := uc.GetAvailability(ctx, request)
		require.NoError(t, err)
		require.Len(t, first.Slots, 1)
		assert.Equal(t, 1, slotRepo.rangeHits)

		second, err := uc.GetAvailability(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, first.Slots, second.Slots)
		assert.Equal(t, 1, slotRepo.rangeHits, "second read should not touch the repository")
	})

	t.Run("Mutation Shifts The Cache Key", func(t *testing.T) {
		slotRepo := newStubSlotRepository()
		uc := newTestScheduleUsecase(slotRepo, newStubPlanRepository(), newStubRedisRepository())
		seed(slotRepo)

		_, err := uc.GetAvailability(ctx, request)
		require.NoError(t, err)

		_, err = uc.CreateSlots(ctx, providerID.Hex(), &requests.CreateSlots{
			Date:  dateStr,
			Slots: []requests.SlotInput{{StartTime: "14:00", EndTime: "14:30"}},
		})
		require.NoError(t, err)

		refreshed, err := uc.GetAvailability(ctx, request)
		require.NoError(t, err)
		assert.Len(t, refreshed.Slots, 2, "the new slot must be visible right after the mutation")
		assert.Equal(t, 2, slotRepo.rangeHits)
	})

	t.Run("Inverted Range Fails", func(t *testing.T) {
		uc := newTestScheduleUsecase(newStubSlotRepository(), newStubPlanRepository(), newStubRedisRepository())

		_, err := uc.GetAvailability(ctx, &requests.GetAvailability{
			ProviderID: providerID.Hex(),
			From:       "2025-03-10",
			To:         "2025-03-03",
		})
		assert.Error(t, err)
	})
}

func TestDeleteSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes Own Free Slot", func(t *testing.T) {
		slotRepo := newStubSlotRepository()
		uc := newTestScheduleUsecase(slotRepo, newStubPlanRepository(), newStubRedisRepository())

		providerID := primitive.NewObjectID()
		inserted, err := slotRepo.InsertSlots(ctx, []models.Slot{{
			ProviderID: providerID,
			Date:       "2025-03-10",
			StartTime:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
			Status:     models.SlotStatusFree,
		}})
		require.NoError(t, err)

		require.NoError(t, uc.DeleteSlot(ctx, providerID.Hex(), inserted[0].ID.Hex()))
		assert.Empty(t, slotRepo.slots)
	})

	t.Run("Rejects Foreign Slot", func(t *testing.T) {
		slotRepo := newStubSlotRepository()
		uc := newTestScheduleUsecase(slotRepo, newStubPlanRepository(), newStubRedisRepository())

		inserted, err := slotRepo.InsertSlots(ctx, []models.Slot{{
			ProviderID: primitive.NewObjectID(),
			Date:       "2025-03-10",
			StartTime:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
			Status:     models.SlotStatusFree,
		}})
		require.NoError(t, err)

		err = uc.DeleteSlot(ctx, primitive.NewObjectID().Hex(), inserted[0].ID.Hex())
		assert.Error(t, err, "another provider's slot must look like it does not exist")
	})

	t.Run("Rejects Booked Slot", func(t *testing.T) {
		slotRepo := newStubSlotRepository()
		uc := newTestScheduleUsecase(slotRepo, newStubPlanRepository(), newStubRedisRepository())

		providerID := primitive.NewObjectID()
		inserted, err := slotRepo.InsertSlots(ctx, []models.Slot{{
			ProviderID: providerID,
			Date:       "2025-03-10",
			StartTime:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
			Status:     models.SlotStatusBooked,
		}})
		require.NoError(t, err)

		err = uc.DeleteSlot(ctx, providerID.Hex(), inserted[0].ID.Hex())
		assert.Error(t, err)
	})
}
