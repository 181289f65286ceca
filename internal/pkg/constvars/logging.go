package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingSessionDataKey = "session_data"
	LoggingDataKey        = "data"
	LoggingRequestKey     = "request"
	LoggingResponseKey    = "response"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingUserIDKey        = "user_id"
	LoggingPatientIDKey     = "patient_id"
	LoggingProviderIDKey    = "provider_id"
	LoggingSlotIDKey        = "slot_id"
	LoggingSlotStartKey     = "slot_start"
	LoggingSlotEndKey       = "slot_end"
	LoggingSlotsCountKey    = "slots_count"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingPlanIDKey        = "plan_id"
	LoggingInsuranceIDKey   = "insurance_id"
	LoggingResponseCountKey = "response_count"

	LoggingRedisKey                = "redis_key"
	LoggingLockValueKey            = "lock_value"
	LoggingLockExpirationTimeKey   = "lock_expiration_time"
	LoggingLockStoredValueKey      = "lock_stored_value"
	LoggingLockExpectedValueKey    = "lock_expected_value"
	LoggingReminderCandidatesKey   = "reminder_candidates"
	LoggingReminderWindowStartKey  = "reminder_window_start"
	LoggingReminderWindowEndKey    = "reminder_window_end"
	LoggingPushTargetKey           = "push_target"
	LoggingMailQueueKey            = "mail_queue"
	LoggingVerificationExpiryKey   = "verification_expiry"
	LoggingGeneratedSlotsCountKey  = "generated_slots_count"
	LoggingInsertedSlotsCountKey   = "inserted_slots_count"
	LoggingAvailabilityVersionKey  = "availability_version"
	LoggingAvailabilityCacheHitKey = "availability_cache_hit"
)
