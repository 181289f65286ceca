package responses

type Insurance struct {
	InsuranceID string `json:"insurance_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}
