package schedules

import (
	"medplus-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func date(value string) time.Time {
	day, _ := time.Parse("2006-01-02", value)
	return day
}

func TestBuildPlanSlots(t *testing.T) {
	providerID := primitive.NewObjectID()
	plan := &models.RecurrencePlan{
		ID:          primitive.NewObjectID(),
		ProviderID:  providerID,
		Frequency:   models.RecurrenceFrequencyWeekly,
		Weekday:     time.Monday,
		StartTime:   "09:00",
		EndTime:     "11:00",
		SlotMinutes: 30,
	}

	t.Run("Generates Slots For Matching Weekdays Only", func(t *testing.T) {
		// 2025-03-03 and 2025-03-10 are the Mondays in this window.
		slots, err := BuildPlanSlots(plan, date("2025-03-03"), date("2025-03-14"))
		require.NoError(t, err)

		assert.Len(t, slots, 8, "two Mondays with four 30-minute slots each")
		for _, slot := range slots {
			assert.Equal(t, time.Monday, slot.StartTime.Weekday())
			assert.Equal(t, providerID, slot.ProviderID)
			assert.Equal(t, models.SlotStatusFree, slot.Status)
			assert.Equal(t, 30*time.Minute, slot.EndTime.Sub(slot.StartTime))
		}
	})

	t.Run("First Slot Starts At Plan Start Time", func(t *testing.T) {
		slots, err := BuildPlanSlots(plan, date("2025-03-03"), date("2025-03-03"))
		require.NoError(t, err)
		require.Len(t, slots, 4)

		assert.Equal(t, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
		assert.Equal(t, time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC), slots[3].EndTime)
		assert.Equal(t, "2025-03-03", slots[0].Date)
	})

	t.Run("Daily Plan Generates A Slot Every Day", func(t *testing.T) {
		dailyPlan := &models.RecurrencePlan{
			ProviderID:  providerID,
			Frequency:   models.RecurrenceFrequencyDaily,
			StartTime:   "09:00",
			EndTime:     "09:30",
			SlotMinutes: 30,
		}

		slots, err := BuildPlanSlots(dailyPlan, date("2024-06-01"), date("2024-06-03"))
		require.NoError(t, err)

		require.Len(t, slots, 3, "one 09:00-09:30 slot per day across the three days")
		for i, slot := range slots {
			assert.Equal(t, date("2024-06-01").AddDate(0, 0, i).Format("2006-01-02"), slot.Date)
			assert.Equal(t, 9, slot.StartTime.Hour())
		}
	})

	t.Run("Drops Trailing Short Window", func(t *testing.T) {
		oddPlan := &models.RecurrencePlan{
			ProviderID:  providerID,
			Weekday:     time.Monday,
			StartTime:   "09:00",
			EndTime:     "10:15",
			SlotMinutes: 30,
		}

		slots, err := BuildPlanSlots(oddPlan, date("2025-03-03"), date("2025-03-03"))
		require.NoError(t, err)

		assert.Len(t, slots, 2, "the 10:00-10:15 remainder is too short for a slot")
	})

	t.Run("Empty Window Yields No Slots", func(t *testing.T) {
		// No Monday between Tuesday and Sunday of the same week.
		slots, err := BuildPlanSlots(plan, date("2025-03-04"), date("2025-03-09"))
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Inverted Window Yields No Slots", func(t *testing.T) {
		slots, err := BuildPlanSlots(plan, date("2025-03-10"), date("2025-03-03"))
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Consecutive Windows Do Not Overlap", func(t *testing.T) {
		first, err := BuildPlanSlots(plan, date("2025-03-03"), date("2025-03-09"))
		require.NoError(t, err)
		second, err := BuildPlanSlots(plan, date("2025-03-10"), date("2025-03-16"))
		require.NoError(t, err)

		seen := make(map[string]bool)
		for _, slot := range append(first, second...) {
			key := slot.Date + slot.StartTime.Format("15:04")
			assert.False(t, seen[key], "slot %s generated twice", key)
			seen[key] = true
		}
	})

	t.Run("Invalid Clock Fails", func(t *testing.T) {
		badPlan := &models.RecurrencePlan{
			ProviderID:  providerID,
			Weekday:     time.Monday,
			StartTime:   "9am",
			EndTime:     "11:00",
			SlotMinutes: 30,
		}

		_, err := BuildPlanSlots(badPlan, date("2025-03-03"), date("2025-03-03"))
		assert.Error(t, err)
	})
}
