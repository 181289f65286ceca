package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// appointmentTransitions holds the legal state machine. Cancelled and
// completed are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCancelled, AppointmentStatusCompleted},
}

func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionSources lists the statuses allowed to move into target, so
// callers filtering by current status share the same state machine.
func TransitionSources(target AppointmentStatus) []AppointmentStatus {
	ordered := []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled,
		AppointmentStatusCompleted,
	}

	var sources []AppointmentStatus
	for _, status := range ordered {
		if status.CanTransitionTo(target) {
			sources = append(sources, status)
		}
	}
	return sources
}

// Appointment denormalizes ProviderID and StartTime from its slot so the
// reminder scan never joins back to the slots collection.
type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	SlotID       primitive.ObjectID `bson:"slotId"`
	PatientID    primitive.ObjectID `bson:"patientId"`
	ProviderID   primitive.ObjectID `bson:"providerId"`
	StartTime    time.Time          `bson:"startTime"`
	Status       AppointmentStatus  `bson:"status"`
	Notes        string             `bson:"notes,omitempty"`
	ReminderSent bool               `bson:"reminderSent"`
	TimeModel    `bson:",inline"`
}
