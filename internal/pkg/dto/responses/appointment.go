package responses

import "time"

type Appointment struct {
	AppointmentID string    `json:"appointment_id"`
	SlotID        string    `json:"slot_id"`
	PatientID     string    `json:"patient_id"`
	ProviderID    string    `json:"provider_id"`
	StartTime     time.Time `json:"start_time"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
}
