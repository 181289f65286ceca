package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// User-related messages
	UserCreatedSuccess        = "user created successfully, verification code sent to email"
	UserUpdatedSuccess        = "user updated successfully"
	ProfileGetSuccess         = "get profile successfully"
	DeviceRegisteredSuccess   = "push device registered successfully"
	ProfileImagePresignSuccess = "profile image upload url created successfully"
	EmailVerifiedSuccess      = "email verified successfully"
	PasswordResetCodeSent     = "password reset code sent to your email"
	PasswordResetSuccess      = "password reset successfully"
	LoginSuccess              = "successfully login"
	LogoutSuccess             = "successfully logout"

	// Scheduling messages
	AvailabilityGetSuccess       = "get availability successfully"
	SlotsCreatedSuccess          = "slots created successfully"
	SlotDeletedSuccess           = "slot deleted successfully"
	RecurrencePlanCreatedSuccess = "recurrence plan created successfully"
	RecurrencePlanGetSuccess     = "get recurrence plans successfully"
	RecurrencePlanDeletedSuccess = "recurrence plan deleted successfully"
	RecurrenceExpandedSuccess    = "recurring slots generated successfully"
	AppointmentCreatedSuccess    = "appointment booked successfully"
	AppointmentGetSuccess        = "get appointments successfully"
	AppointmentConfirmedSuccess  = "appointment confirmed successfully"
	AppointmentCancelledSuccess  = "appointment cancelled successfully"
	AppointmentCompletedSuccess  = "appointment completed successfully"

	// Insurance messages
	InsuranceCreatedSuccess = "insurance provider created successfully"
	InsuranceGetSuccess     = "get insurance providers successfully"
	InsuranceUpdatedSuccess = "insurance provider updated successfully"
	InsuranceDeletedSuccess = "insurance provider deleted successfully"
)
