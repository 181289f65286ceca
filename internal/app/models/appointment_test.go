package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func buildSlot(date string, startHour, startMin, endHour, endMin int) Slot {
	day, _ := time.Parse("2006-01-02", date)
	return Slot{
		ID:         primitive.NewObjectID(),
		ProviderID: primitive.NewObjectID(),
		Date:       date,
		StartTime:  time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, time.UTC),
		EndTime:    time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, time.UTC),
		Status:     SlotStatusFree,
	}
}

func TestAppointmentStatusCanTransitionTo(t *testing.T) {
	t.Run("Pending Transitions", func(t *testing.T) {
		assert.True(t, AppointmentStatusPending.CanTransitionTo(AppointmentStatusConfirmed))
		assert.True(t, AppointmentStatusPending.CanTransitionTo(AppointmentStatusCancelled))
		assert.False(t, AppointmentStatusPending.CanTransitionTo(AppointmentStatusCompleted), "pending cannot complete without confirmation")
	})

	t.Run("Confirmed Transitions", func(t *testing.T) {
		assert.True(t, AppointmentStatusConfirmed.CanTransitionTo(AppointmentStatusCancelled))
		assert.True(t, AppointmentStatusConfirmed.CanTransitionTo(AppointmentStatusCompleted))
		assert.False(t, AppointmentStatusConfirmed.CanTransitionTo(AppointmentStatusPending), "confirmed cannot go back to pending")
	})

	t.Run("Terminal States", func(t *testing.T) {
		for _, target := range []AppointmentStatus{AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusCompleted} {
			assert.False(t, AppointmentStatusCancelled.CanTransitionTo(target), "cancelled is terminal")
			assert.False(t, AppointmentStatusCompleted.CanTransitionTo(target), "completed is terminal")
		}
	})
}

func TestTransitionSources(t *testing.T) {
	t.Run("Mirrors The State Machine", func(t *testing.T) {
		assert.Equal(t, []AppointmentStatus{AppointmentStatusPending}, TransitionSources(AppointmentStatusConfirmed))
		assert.Equal(t, []AppointmentStatus{AppointmentStatusPending, AppointmentStatusConfirmed}, TransitionSources(AppointmentStatusCancelled))
		assert.Equal(t, []AppointmentStatus{AppointmentStatusConfirmed}, TransitionSources(AppointmentStatusCompleted))
	})

	t.Run("Nothing Transitions Into Pending", func(t *testing.T) {
		assert.Empty(t, TransitionSources(AppointmentStatusPending))
	})
}

func TestSlotOverlaps(t *testing.T) {
	base := buildSlot("2025-03-10", 9, 0, 9, 30)

	t.Run("Identical Ranges Overlap", func(t *testing.T) {
		other := buildSlot("2025-03-10", 9, 0, 9, 30)
		other.ProviderID = base.ProviderID
		assert.True(t, base.Overlaps(&other))
	})

	t.Run("Adjacent Ranges Do Not Overlap", func(t *testing.T) {
		other := buildSlot("2025-03-10", 9, 30, 10, 0)
		other.ProviderID = base.ProviderID
		assert.False(t, base.Overlaps(&other))
	})

	t.Run("Partial Overlap", func(t *testing.T) {
		other := buildSlot("2025-03-10", 9, 15, 9, 45)
		other.ProviderID = base.ProviderID
		assert.True(t, base.Overlaps(&other))
	})

	t.Run("Different Providers Never Overlap", func(t *testing.T) {
		other := buildSlot("2025-03-10", 9, 0, 9, 30)
		assert.False(t, base.Overlaps(&other), "overlap is scoped to a single provider")
	})
}
