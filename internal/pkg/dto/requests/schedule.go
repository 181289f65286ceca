package requests

type SlotInput struct {
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

type CreateSlots struct {
	Date  string      `json:"date" validate:"required,datetime=2006-01-02"`
	Slots []SlotInput `json:"slots" validate:"required,min=1,dive"`
}

type GetAvailability struct {
	ProviderID string `json:"-"`
	From       string `json:"from" validate:"required,datetime=2006-01-02"`
	To         string `json:"to" validate:"required,datetime=2006-01-02"`
}

type CreateRecurrencePlan struct {
	Frequency   string `json:"frequency" validate:"required,oneof=daily weekly"`
	Weekday     int    `json:"weekday" validate:"gte=0,lte=6"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	SlotMinutes int    `json:"slot_minutes" validate:"required,gte=10,lte=240"`
}

type ExpandRecurrence struct {
	HorizonDays int `json:"horizon_days" validate:"required,gte=1,lte=90"`
}
