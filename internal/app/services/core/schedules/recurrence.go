package schedules

import (
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/utils"
	"time"
)

// BuildPlanSlots materializes a recurrence plan into concrete free slots for
// every matching day in [from, until]. Daily plans match every day, weekly
// plans only their weekday. Both bounds are date-granular and inclusive. A
// trailing window shorter than SlotMinutes is dropped.
func BuildPlanSlots(plan *models.RecurrencePlan, from, until time.Time) ([]models.Slot, error) {
	var slots []models.Slot
	now := time.Now().UTC()

	for day := from; !day.After(until); day = day.AddDate(0, 0, 1) {
		if plan.Frequency != models.RecurrenceFrequencyDaily && day.Weekday() != plan.Weekday {
			continue
		}

		windowStart, err := utils.CombineDateAndClock(day, plan.StartTime)
		if err != nil {
			return nil, err
		}
		windowEnd, err := utils.CombineDateAndClock(day, plan.EndTime)
		if err != nil {
			return nil, err
		}

		step := time.Duration(plan.SlotMinutes) * time.Minute
		for start := windowStart; !start.Add(step).After(windowEnd); start = start.Add(step) {
			slots = append(slots, models.Slot{
				ProviderID: plan.ProviderID,
				Date:       day.Format(constvars.DATE_ONLY_LAYOUT),
				StartTime:  start,
				EndTime:    start.Add(step),
				Status:     models.SlotStatusFree,
				TimeModel:  models.TimeModel{CreatedAt: now, UpdatedAt: now},
			})
		}
	}

	return slots, nil
}
