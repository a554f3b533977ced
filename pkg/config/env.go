package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStoreBackend = "STORE_BACKEND"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvBookingTTL = "BOOKING_TTL"

	EnvOrgName      = "ORG_NAME"
	EnvContactEmail = "CONTACT_EMAIL"

	EnvResendAPIKey  = "RESEND_API_KEY"
	EnvEmailFrom     = "EMAIL_FROM"
	EnvConfirmFrom   = "CONFIRM_FROM"
	EnvOperatorEmail = "OPERATOR_EMAIL"
	EnvReplyTo       = "REPLY_TO"
	EnvPublicBaseURL = "PUBLIC_BASE_URL"
	EnvNotifyTimeout = "NOTIFY_TIMEOUT"

	EnvStoreReadTimeout  = "STORE_READ_TIMEOUT"
	EnvStoreWriteTimeout = "STORE_WRITE_TIMEOUT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
