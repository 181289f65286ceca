package constvars

type ContextKey string

const (
	ResourceUsers        = "users"
	ResourceAuth         = "auth"
	ResourceInsurances   = "insurances"
	ResourceSlots        = "slots"
	ResourceSchedules    = "schedules"
	ResourceAppointments = "appointments"
)

const (
	UserTypePatient      = "patient"
	UserTypeProfessional = "professional"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	EMAIL_VERIFICATION_CODE_LENGTH = 6
	DATE_ONLY_LAYOUT               = "2006-01-02"
	CLOCK_LAYOUT                   = "15:04"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "MDPLS_SVC_"
)

const (
	RedisKeySessionFormat          = "session:%s"
	RedisKeyAvailabilityVerFormat  = "availability:ver:%s"
	RedisKeyAvailabilityFormat     = "availability:%s:%d:%s:%s"
	RedisKeyReminderWorkerLock     = "reminder:worker:lock"
	RedisKeyVerificationCodeFormat = "verification:%s"
)
