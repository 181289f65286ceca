package schedules

import (
	"context"
	"fmt"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"
	"medplus-service/internal/pkg/exceptions"
	"medplus-service/internal/pkg/utils"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

type scheduleUsecase struct {
	SlotRepository           contracts.SlotRepository
	RecurrencePlanRepository contracts.RecurrencePlanRepository
	RedisRepository          contracts.RedisRepository
	InternalConfig           *config.InternalConfig
	Log                      *zap.Logger
}

func NewScheduleUsecase(
	slotRepository contracts.SlotRepository,
	recurrencePlanRepository contracts.RecurrencePlanRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		scheduleUsecaseInstance = &scheduleUsecase{
			SlotRepository:           slotRepository,
			RecurrencePlanRepository: recurrencePlanRepository,
			RedisRepository:          redisRepository,
			InternalConfig:           internalConfig,
			Log:                      logger,
		}
	})
	return scheduleUsecaseInstance
}

// GetAvailability serves free slots through a versioned read-through cache.
// Every mutation of a provider's slots bumps the version counter, which
// shifts the cache key and strands the stale entry until its TTL.
func (uc *scheduleUsecase) GetAvailability(ctx context.Context, request *requests.GetAvailability) (*responses.Availability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	providerOID, err := primitive.ObjectIDFromHex(request.ProviderID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	from, err := utils.ParseDateOnly(request.From)
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseDateOnly(request.To)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, exceptions.ErrSlotInvalidTimeRange(nil)
	}

	version := uc.availabilityVersion(ctx, request.ProviderID)
	cacheKey := fmt.Sprintf(constvars.RedisKeyAvailabilityFormat, request.ProviderID, version, request.From, request.To)

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		result := new(responses.Availability)
		if unmarshalErr := json.Unmarshal([]byte(cached), result); unmarshalErr == nil {
			uc.Log.Debug("scheduleUsecase.GetAvailability cache hit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProviderIDKey, request.ProviderID),
				zap.Bool(constvars.LoggingAvailabilityCacheHitKey, true),
			)
			return result, nil
		}
	}

	slots, err := uc.SlotRepository.FindByProviderAndRange(ctx, providerOID, from, to.AddDate(0, 0, 1), models.SlotStatusFree)
	if err != nil {
		return nil, err
	}

	result := &responses.Availability{
		ProviderID: request.ProviderID,
		Slots:      buildSlotResponses(slots),
	}

	if err := uc.RedisRepository.Set(ctx, cacheKey, result, uc.InternalConfig.App.AvailabilityCacheTTL); err != nil {
		uc.Log.Error("scheduleUsecase.GetAvailability failed to cache result",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	return result, nil
}

func (uc *scheduleUsecase) CreateSlots(ctx context.Context, providerID string, request *requests.CreateSlots) ([]responses.Slot, error) {
	providerOID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	date, err := utils.ParseDateOnly(request.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	slots := make([]models.Slot, 0, len(request.Slots))
	for _, input := range request.Slots {
		start, err := utils.CombineDateAndClock(date, input.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := utils.CombineDateAndClock(date, input.EndTime)
		if err != nil {
			return nil, err
		}
		if !end.After(start) {
			return nil, exceptions.ErrSlotInvalidTimeRange(nil)
		}
		slots = append(slots, models.Slot{
			ProviderID: providerOID,
			Date:       request.Date,
			StartTime:  start,
			EndTime:    end,
			Status:     models.SlotStatusFree,
			TimeModel:  models.TimeModel{CreatedAt: now, UpdatedAt: now},
		})
	}

	// The repository only guards against stored slots, so the batch has to
	// be checked against itself first.
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Overlaps(&slots[j]) {
				return nil, exceptions.ErrSlotOverlap(nil)
			}
		}
	}

	inserted, err := uc.SlotRepository.InsertSlots(ctx, slots)
	if err != nil {
		return nil, err
	}

	uc.invalidateAvailability(ctx, providerID)
	return buildSlotResponses(inserted), nil
}

func (uc *scheduleUsecase) DeleteSlot(ctx context.Context, providerID, slotID string) error {
	providerOID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	slotOID, err := primitive.ObjectIDFromHex(slotID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	slot, err := uc.SlotRepository.FindByID(ctx, slotOID)
	if err != nil {
		return err
	}
	if slot == nil || slot.ProviderID != providerOID {
		return exceptions.ErrSlotNotFound(nil)
	}

	deleted, err := uc.SlotRepository.DeleteFree(ctx, slotOID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrSlotStillBooked(nil)
	}

	uc.invalidateAvailability(ctx, providerID)
	return nil
}

func (uc *scheduleUsecase) CreateRecurrencePlan(ctx context.Context, providerID string, request *requests.CreateRecurrencePlan) (*responses.RecurrencePlan, error) {
	providerOID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	start, err := time.Parse(constvars.CLOCK_LAYOUT, request.StartTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	end, err := time.Parse(constvars.CLOCK_LAYOUT, request.EndTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	if !end.After(start) {
		return nil, exceptions.ErrSlotInvalidTimeRange(nil)
	}

	now := time.Now().UTC()
	plan := &models.RecurrencePlan{
		ProviderID:  providerOID,
		Frequency:   models.RecurrenceFrequency(request.Frequency),
		Weekday:     time.Weekday(request.Weekday),
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
		SlotMinutes: request.SlotMinutes,
		TimeModel:   models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}

	created, err := uc.RecurrencePlanRepository.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	return buildRecurrencePlanResponse(created), nil
}

func (uc *scheduleUsecase) ListRecurrencePlans(ctx context.Context, providerID string) ([]responses.RecurrencePlan, error) {
	providerOID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	plans, err := uc.RecurrencePlanRepository.FindByProvider(ctx, providerOID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.RecurrencePlan, 0, len(plans))
	for i := range plans {
		result = append(result, *buildRecurrencePlanResponse(&plans[i]))
	}
	return result, nil
}

func (uc *scheduleUsecase) DeleteRecurrencePlan(ctx context.Context, providerID, planID string) error {
	plan, err := uc.findOwnedPlan(ctx, providerID, planID)
	if err != nil {
		return err
	}
	return uc.RecurrencePlanRepository.Delete(ctx, plan.ID)
}

// ExpandRecurrence materializes plan slots for the window between the last
// generated date and today+horizon. Re-running with the same horizon is a
// no-op: the window is empty and the unique slot index backstops any
// overlap the date arithmetic might miss.
func (uc *scheduleUsecase) ExpandRecurrence(ctx context.Context, providerID, planID string, request *requests.ExpandRecurrence) (*responses.ExpandRecurrence, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	plan, err := uc.findOwnedPlan(ctx, providerID, planID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	horizonEnd := today.AddDate(0, 0, request.HorizonDays)

	from := today
	if plan.GeneratedUntil != "" {
		generatedUntil, parseErr := utils.ParseDateOnly(plan.GeneratedUntil)
		if parseErr == nil && generatedUntil.After(today.AddDate(0, 0, -1)) {
			from = generatedUntil.AddDate(0, 0, 1)
		}
	}

	generatedUntil := plan.GeneratedUntil
	generated := 0
	inserted := 0

	if !from.After(horizonEnd) {
		slots, err := BuildPlanSlots(plan, from, horizonEnd)
		if err != nil {
			return nil, err
		}
		generated = len(slots)

		if generated > 0 {
			inserted, err = uc.SlotRepository.InsertSlotsIgnoreDuplicates(ctx, slots)
			if err != nil {
				return nil, err
			}
		}

		generatedUntil = horizonEnd.Format(constvars.DATE_ONLY_LAYOUT)
		if err := uc.RecurrencePlanRepository.UpdateGeneratedUntil(ctx, plan.ID, generatedUntil); err != nil {
			return nil, err
		}
		uc.invalidateAvailability(ctx, providerID)
	}

	uc.Log.Info("scheduleUsecase.ExpandRecurrence finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPlanIDKey, plan.ID.Hex()),
		zap.Int(constvars.LoggingGeneratedSlotsCountKey, generated),
		zap.Int(constvars.LoggingInsertedSlotsCountKey, inserted),
	)

	return &responses.ExpandRecurrence{
		PlanID:         plan.ID.Hex(),
		GeneratedSlots: generated,
		InsertedSlots:  inserted,
		GeneratedUntil: generatedUntil,
	}, nil
}

func (uc *scheduleUsecase) findOwnedPlan(ctx context.Context, providerID, planID string) (*models.RecurrencePlan, error) {
	providerOID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	planOID, err := primitive.ObjectIDFromHex(planID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	plan, err := uc.RecurrencePlanRepository.FindByID(ctx, planOID)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.ProviderID != providerOID {
		return nil, exceptions.ErrRecurrencePlanNotFound(nil)
	}
	return plan, nil
}

func (uc *scheduleUsecase) availabilityVersion(ctx context.Context, providerID string) int64 {
	key := fmt.Sprintf(constvars.RedisKeyAvailabilityVerFormat, providerID)
	value, err := uc.RedisRepository.Get(ctx, key)
	if err != nil || value == "" {
		return 0
	}
	version, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return version
}

func (uc *scheduleUsecase) invalidateAvailability(ctx context.Context, providerID string) {
	key := fmt.Sprintf(constvars.RedisKeyAvailabilityVerFormat, providerID)
	if _, err := uc.RedisRepository.Increment(ctx, key); err != nil {
		uc.Log.Error("scheduleUsecase.invalidateAvailability failed",
			zap.String(constvars.LoggingProviderIDKey, providerID),
			zap.Error(err),
		)
	}
}

func buildSlotResponses(slots []models.Slot) []responses.Slot {
	result := make([]responses.Slot, 0, len(slots))
	for i := range slots {
		result = append(result, responses.Slot{
			SlotID:     slots[i].ID.Hex(),
			ProviderID: slots[i].ProviderID.Hex(),
			Date:       slots[i].Date,
			StartTime:  slots[i].StartTime,
			EndTime:    slots[i].EndTime,
			Status:     string(slots[i].Status),
		})
	}
	return result
}

func buildRecurrencePlanResponse(plan *models.RecurrencePlan) *responses.RecurrencePlan {
	return &responses.RecurrencePlan{
		PlanID:         plan.ID.Hex(),
		ProviderID:     plan.ProviderID.Hex(),
		Frequency:      string(plan.Frequency),
		Weekday:        int(plan.Weekday),
		StartTime:      plan.StartTime,
		EndTime:        plan.EndTime,
		SlotMinutes:    plan.SlotMinutes,
		GeneratedUntil: plan.GeneratedUntil,
	}
}
