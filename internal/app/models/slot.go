package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SlotStatus string

const (
	SlotStatusFree   SlotStatus = "free"
	SlotStatusBooked SlotStatus = "booked"
)

// Slot is a bookable time range owned by a provider. Date duplicates the
// day of StartTime so the (providerId, date, startTime) unique index and
// the availability cache key can work on a plain string.
type Slot struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	ProviderID    primitive.ObjectID  `bson:"providerId"`
	Date          string              `bson:"date"`
	StartTime     time.Time           `bson:"startTime"`
	EndTime       time.Time           `bson:"endTime"`
	Status        SlotStatus          `bson:"status"`
	AppointmentID *primitive.ObjectID `bson:"appointmentId,omitempty"`
	TimeModel     `bson:",inline"`
}

func (s *Slot) Overlaps(other *Slot) bool {
	if s.ProviderID != other.ProviderID {
		return false
	}
	return s.StartTime.Before(other.EndTime) && other.StartTime.Before(s.EndTime)
}
