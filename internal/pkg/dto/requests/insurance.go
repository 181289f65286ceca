package requests

type CreateInsurance struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type BulkInsertInsurance struct {
	Providers []CreateInsurance `json:"providers" validate:"required,min=1,dive"`
}

type UpdateInsurance struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Active      *bool  `json:"active"`
}
