package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultStoreBackend = StoreBackendRedis

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "bookingdesk"
	DefaultMongoConnTimeout  = 10 * time.Second

	// Retention window: records become unreachable this long after the
	// most recent write.
	DefaultBookingTTL = 30 * 24 * time.Hour

	DefaultOrgName      = "Catalyst Strategy Solutions"
	DefaultContactEmail = "DEasterling@cssolutions.services"

	DefaultEmailFrom     = "Catalyst Strategy Solutions <bookings@send.cssolutions.services>"
	DefaultConfirmFrom   = "Catalyst Strategy Solutions <bookings@cssolutions.services>"
	DefaultOperatorEmail = "DEasterling@cssolutions.services"

	DefaultNotifyTimeout = 10 * time.Second

	DefaultStoreReadTimeout  = 5 * time.Second
	DefaultStoreWriteTimeout = 5 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
