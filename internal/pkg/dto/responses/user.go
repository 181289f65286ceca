package responses

type Profile struct {
	UserID              string `json:"user_id"`
	Email               string `json:"email"`
	Fullname            string `json:"fullname"`
	UserType            string `json:"user_type"`
	Verified            bool   `json:"verified"`
	PushToken           string `json:"push_token,omitempty"`
	InsuranceProviderID string `json:"insurance_provider_id,omitempty"`
	InsuranceNumber     string `json:"insurance_number,omitempty"`
	ProfileImageURL     string `json:"profile_image_url,omitempty"`
}

type PresignedUpload struct {
	UploadURL  string `json:"upload_url"`
	ObjectName string `json:"object_name"`
	ExpiresIn  int    `json:"expires_in_seconds"`
}
