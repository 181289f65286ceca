package responses

type Login struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
}

type Register struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
