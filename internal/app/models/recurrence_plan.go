package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RecurrenceFrequency string

const (
	RecurrenceFrequencyDaily  RecurrenceFrequency = "daily"
	RecurrenceFrequencyWeekly RecurrenceFrequency = "weekly"
)

// RecurrencePlan describes a repeating availability window that
// expandRecurrence materializes into concrete slots. Daily plans repeat
// every day; weekly plans repeat on Weekday. GeneratedUntil marks the last
// date slots were generated for, so repeated expansions only add days past
// it.
type RecurrencePlan struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	ProviderID     primitive.ObjectID  `bson:"providerId"`
	Frequency      RecurrenceFrequency `bson:"frequency"`
	// Weekday only applies to weekly plans.
	Weekday        time.Weekday `bson:"weekday"`
	StartTime      string       `bson:"startTime"`
	EndTime        string       `bson:"endTime"`
	SlotMinutes    int          `bson:"slotMinutes"`
	GeneratedUntil string       `bson:"generatedUntil,omitempty"`
	TimeModel      `bson:",inline"`
}
