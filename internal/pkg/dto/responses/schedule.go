package responses

import "time"

type Slot struct {
	SlotID     string    `json:"slot_id"`
	ProviderID string    `json:"provider_id"`
	Date       string    `json:"date"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
}

type Availability struct {
	ProviderID string `json:"provider_id"`
	Slots      []Slot `json:"slots"`
}

type RecurrencePlan struct {
	PlanID         string `json:"plan_id"`
	ProviderID     string `json:"provider_id"`
	Frequency      string `json:"frequency"`
	Weekday        int    `json:"weekday"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	SlotMinutes    int    `json:"slot_minutes"`
	GeneratedUntil string `json:"generated_until,omitempty"`
}

type ExpandRecurrence struct {
	PlanID         string `json:"plan_id"`
	GeneratedSlots int    `json:"generated_slots"`
	InsertedSlots  int    `json:"inserted_slots"`
	GeneratedUntil string `json:"generated_until"`
}
