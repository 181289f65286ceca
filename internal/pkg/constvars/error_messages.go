package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":  "is required",
	"email":     "must be a valid email",
	"alphanum":  "must contain only alphanumeric characters",
	"min":       "must be at least %s characters long",
	"max":       "maximum at %s characters long",
	"eqfield":   "must match %s",
	"password":  "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"numeric":   "must be a number",
	"len":       "must be %s characters long",
	"oneof":     "must be one of [%s]",
	"gt":        "must be greater than %s",
	"gte":       "must be greater than or equal to %s",
	"lt":        "must be less than %s",
	"lte":       "must be less than or equal to %s",
	"datetime":  "must match the layout %s",
	"user_type": "must be either 'professional' or 'patient'",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"eqfield":  true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientSomethingWrongWithApplication = "something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "cannot process your request, please check your input"
	ErrClientServerLongRespond             = "server took too long to respond, please try again"
	ErrClientNotAuthorized                 = "you are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "you are not logged in or your session has expired"
	ErrClientInvalidUsernameOrPassword     = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientEmailNotVerified              = "email is not verified yet, please check your inbox"
	ErrClientVerificationCodeInvalid       = "invalid verification code"
	ErrClientVerificationCodeExpired       = "verification code has expired"
	ErrClientUserNotFound                  = "user not found"
	ErrClientTooManyRequests               = "too many requests, please try again later"

	ErrClientSlotNotFound           = "slot not found"
	ErrClientSlotUnavailable        = "slot no longer available"
	ErrClientSlotOverlap            = "slot overlaps an existing slot"
	ErrClientSlotBooked             = "slot is booked, cancel the appointment first"
	ErrClientSlotInvalidTimeRange   = "slot end time must be after start time"
	ErrClientAppointmentNotFound    = "appointment not found"
	ErrClientAppointmentBadState    = "appointment cannot change to the requested state"
	ErrClientRecurrencePlanNotFound = "recurrence plan not found"
	ErrClientInsuranceNotFound      = "insurance provider not found"
)

// Error messages for developers
const (
	ErrDevValidationFailed           = "request validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON payload"
	ErrDevCannotMarshalJSON          = "cannot marshal value to JSON"
	ErrDevCannotParseDate            = "cannot parse date value"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevFailedToHashPassword       = "failed to hash password"
	ErrDevInvalidCredentials         = "credentials do not match any user"
	ErrDevEmailAlreadyExists         = "user with this email already exists"
	ErrDevEmailNotVerified           = "user email not verified"
	ErrDevVerificationCodeInvalid    = "verification code does not match"
	ErrDevVerificationCodeExpired    = "verification code is past its expiry"
	ErrDevUserNotExists              = "user does not exist"
	ErrDevAuthTokenMissing           = "authorization token missing"
	ErrDevAuthGenerateToken          = "failed to generate session token"
	ErrDevAuthTokenInvalidOrExpired  = "session token invalid or expired"
	ErrDevURLParamIDValidationFailed = "url param %s failed validation"
	ErrDevRateLimitExceeded          = "rate limit exceeded for resource"

	ErrDevSlotNotExists             = "slot does not exist"
	ErrDevSlotStaleState            = "slot status changed since it was read"
	ErrDevSlotOverlapDetected       = "slot time range overlaps an existing slot"
	ErrDevSlotStillBooked           = "slot still referenced by a live appointment"
	ErrDevSlotInvalidTimeRange      = "slot end time is not after start time"
	ErrDevAppointmentNotExists      = "appointment does not exist"
	ErrDevAppointmentBadTransition  = "appointment state transition is not allowed"
	ErrDevRecurrencePlanNotExists   = "recurrence plan does not exist"
	ErrDevInsuranceNotExists        = "insurance provider does not exist"
	ErrDevPushTargetMissing         = "user has no registered push target"
	ErrDevPushSendFailed            = "push provider rejected the notification"
	ErrDevReminderFlagAlreadySet    = "reminder flag already set by another run"
	ErrDevReminderWorkerLockMissing = "reminder worker lock could not be acquired"

	ErrDevDBFailedToFindDocument     = "database failed to find document"
	ErrDevDBFailedToInsertDocument   = "database failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "database failed to update document"
	ErrDevDBFailedToDeleteDocument   = "database failed to delete document"
	ErrDevDBFailedToIterateDocuments = "database failed to iterate documents"
	ErrDevDBStringNotObjectID        = "string is not a valid object id"
	ErrDevDBTransactionFailed        = "database transaction failed"

	ErrDevRedisGetData        = "redis failed to get data"
	ErrDevRedisSetData        = "redis failed to set data"
	ErrDevRedisDeleteData     = "redis failed to delete data"
	ErrDevRedisIncrementValue = "redis failed to increment value"
	ErrDevRedisGetNoData      = "redis has no data for key %s"
	ErrDevRedisUnlock         = "redis failed to release lock"

	ErrDevRabbitMQPublish = "rabbitmq failed to publish message to queue %s"
	ErrDevRabbitMQConsume = "rabbitmq failed to consume from queue %s"

	ErrDevSMTPSendEmail = "smtp server %s failed to send email"

	ErrDevMinioFailedToCreateObject  = "minio failed to create object in bucket %s"
	ErrDevMinioFailedToPresignObject = "minio failed to presign object in bucket %s"

	ErrDevCreateHTTPRequest = "failed to create outbound http request"
	ErrDevSendHTTPRequest   = "failed to send outbound http request"
)
