package requests

type RegisterUser struct {
	Email          string `json:"email" validate:"required,email"`
	Fullname       string `json:"fullname" validate:"required,min=3,max=100"`
	UserType       string `json:"user_type" validate:"required,user_type"`
	Password       string `json:"password" validate:"password"`
	RetypePassword string `json:"retype_password" validate:"required,eqfield=Password"`
}

type VerifyEmail struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type LoginUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type ForgotPassword struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPassword struct {
	Email                   string `json:"email" validate:"required,email"`
	Code                    string `json:"code" validate:"required,len=6,numeric"`
	NewPassword             string `json:"new_password" validate:"password"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required,eqfield=NewPassword"`
}
