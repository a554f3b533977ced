package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"time"

	"bookingdesk/pkg/client"
	"bookingdesk/pkg/logger"
)

const (
	StoreBackendRedis = "redis"
	StoreBackendMongo = "mongo"
)

type Config struct {
	Port string

	StoreBackend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	BookingTTL time.Duration

	OrgName      string
	ContactEmail string

	ResendAPIKey  string
	EmailFrom     string
	ConfirmFrom   string
	OperatorEmail string
	ReplyTo       string
	PublicBaseURL string
	NotifyTimeout time.Duration

	StoreReadTimeout  time.Duration
	StoreWriteTimeout time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		StoreBackend: getEnvStr(EnvStoreBackend, DefaultStoreBackend),

		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		BookingTTL: getEnvDuration(EnvBookingTTL, DefaultBookingTTL),

		OrgName:      getEnvStr(EnvOrgName, DefaultOrgName),
		ContactEmail: getEnvStr(EnvContactEmail, DefaultContactEmail),

		ResendAPIKey:  getEnvStr(EnvResendAPIKey, ""),
		EmailFrom:     getEnvStr(EnvEmailFrom, DefaultEmailFrom),
		ConfirmFrom:   getEnvStr(EnvConfirmFrom, DefaultConfirmFrom),
		OperatorEmail: getEnvStr(EnvOperatorEmail, DefaultOperatorEmail),
		ReplyTo:       getEnvStr(EnvReplyTo, DefaultOperatorEmail),
		PublicBaseURL: getEnvStr(EnvPublicBaseURL, ""),
		NotifyTimeout: getEnvDuration(EnvNotifyTimeout, DefaultNotifyTimeout),

		StoreReadTimeout:  getEnvDuration(EnvStoreReadTimeout, DefaultStoreReadTimeout),
		StoreWriteTimeout: getEnvDuration(EnvStoreWriteTimeout, DefaultStoreWriteTimeout),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.StoreBackend != StoreBackendRedis && cfg.StoreBackend != StoreBackendMongo {
		errs = append(errs, fmt.Sprintf("StoreBackend must be %q or %q, got: %s", StoreBackendRedis, StoreBackendMongo, cfg.StoreBackend))
	}

	if cfg.StoreBackend == StoreBackendRedis && cfg.RedisAddr == "" {
		errs = append(errs, "RedisAddr cannot be empty")
	}

	if cfg.StoreBackend == StoreBackendMongo {
		if cfg.MongoURI == "" {
			errs = append(errs, "MongoURI cannot be empty")
		} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
		}
		if cfg.MongoDatabaseName == "" {
			errs = append(errs, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errs = append(errs, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	}

	if cfg.BookingTTL <= 0 {
		errs = append(errs, fmt.Sprintf("BookingTTL must be positive, got: %s", cfg.BookingTTL))
	}

	if cfg.OrgName == "" {
		errs = append(errs, "OrgName cannot be empty")
	}
	if cfg.EmailFrom == "" {
		errs = append(errs, "EmailFrom cannot be empty")
	}
	if cfg.ConfirmFrom == "" {
		errs = append(errs, "ConfirmFrom cannot be empty")
	}
	if cfg.OperatorEmail == "" {
		errs = append(errs, "OperatorEmail cannot be empty")
	}
	if cfg.PublicBaseURL != "" {
		if u, err := url.Parse(cfg.PublicBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("PublicBaseURL must be an absolute URL, got: %s", cfg.PublicBaseURL))
		}
	}
	if cfg.NotifyTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("NotifyTimeout must be positive, got: %s", cfg.NotifyTimeout))
	}

	if cfg.StoreReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("StoreReadTimeout must be positive, got: %s", cfg.StoreReadTimeout))
	}
	if cfg.StoreWriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("StoreWriteTimeout must be positive, got: %s", cfg.StoreWriteTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errs = append(errs, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errs) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, e := range errs {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"redis_addr", cfg.RedisAddr,
		"redis_db", cfg.RedisDB,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"booking_ttl", cfg.BookingTTL,
		"org_name", cfg.OrgName,
		"contact_email", cfg.ContactEmail,
		"resend_api_key_set", cfg.ResendAPIKey != "",
		"email_from", cfg.EmailFrom,
		"confirm_from", cfg.ConfirmFrom,
		"operator_email", cfg.OperatorEmail,
		"reply_to", cfg.ReplyTo,
		"public_base_url", cfg.PublicBaseURL,
		"notify_timeout", cfg.NotifyTimeout,
		"store_read_timeout", cfg.StoreReadTimeout,
		"store_write_timeout", cfg.StoreWriteTimeout,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
