package requests

type UpdateProfile struct {
	Fullname            string `json:"fullname" validate:"omitempty,min=3,max=100"`
	InsuranceProviderID string `json:"insurance_provider_id" validate:"omitempty,len=24"`
	InsuranceNumber     string `json:"insurance_number" validate:"omitempty,max=50"`
}

type RegisterDevice struct {
	PushToken string `json:"push_token" validate:"required,min=10"`
}

type PresignProfileImage struct {
	Filename string `json:"filename" validate:"required,max=255"`
}
