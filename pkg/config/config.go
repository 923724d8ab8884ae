package config

import (
	"fmt"
	"os"
	"realty/pkg/client"
	"realty/pkg/logger"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	mongoURIRegex      = regexp.MustCompile(`^mongodb(\+srv)?://`)
	credentialRegex    = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	minJWTSecretLength = 32
)

type Config struct {
	ServiceName string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port     string
	LogLevel string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	TimeZone string

	AppointmentDailyCap  int
	AppointmentAgentCap  int
	AppointmentFirstHour int
	AppointmentLastHour  int
	AppointmentLockTTL   time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	MinioPublicURL string

	KafkaEnabled              bool
	AppointmentEventsTopic    string
	AppointmentEventsDLQTopic string
	NotificationsGroupID      string

	OtelEnabled     bool
	OtelEndpoint    string
	OtelSampleRatio float64

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	// A missing .env file is fine: the environment is authoritative.
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: serviceName,

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		RedisAddr:         getEnvStr(EnvRedisAddr, ""),
		RedisPassword:     getEnvStr(EnvRedisPassword, ""),
		RedisDB:           getEnvNum(EnvRedisDB, DefaultRedisDB),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),
		JWTIssuer: getEnvStr(EnvJWTIssuer, DefaultJWTIssuer),
		TokenTTL:  getEnvDuration(EnvTokenTTL, DefaultTokenTTL),

		TimeZone: getEnvStr(EnvTimeZone, DefaultTimeZone),

		AppointmentDailyCap:  getEnvNum(EnvAppointmentDailyCap, DefaultAppointmentDailyCap),
		AppointmentAgentCap:  getEnvNum(EnvAppointmentAgentCap, DefaultAppointmentAgentCap),
		AppointmentFirstHour: getEnvNum(EnvAppointmentFirstHour, DefaultAppointmentFirstHour),
		AppointmentLastHour:  getEnvNum(EnvAppointmentLastHour, DefaultAppointmentLastHour),
		AppointmentLockTTL:   getEnvDuration(EnvAppointmentLockTTL, DefaultAppointmentLockTTL),

		MinioEndpoint:  getEnvStr(EnvMinioEndpoint, DefaultMinioEndpoint),
		MinioAccessKey: getEnvStr(EnvMinioAccessKey, ""),
		MinioSecretKey: getEnvStr(EnvMinioSecretKey, ""),
		MinioUseSSL:    getEnvBool(EnvMinioUseSSL, false),
		MinioBucket:    getEnvStr(EnvMinioBucket, DefaultMinioBucket),
		MinioPublicURL: getEnvStr(EnvMinioPublicURL, ""),

		KafkaEnabled:              getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		AppointmentEventsTopic:    getEnvStr(EnvAppointmentEventsTopic, DefaultAppointmentEventsTopic),
		AppointmentEventsDLQTopic: getEnvStr(EnvAppointmentEventsDLQ, DefaultAppointmentEventsDLQ),
		NotificationsGroupID:      getEnvStr(EnvNotificationsGroupID, DefaultNotificationsGroupID),

		OtelEnabled:     getEnvBool(EnvOtelEnabled, DefaultOtelEnabled),
		OtelEndpoint:    getEnvStr(EnvOtelEndpoint, DefaultOtelEndpoint),
		OtelSampleRatio: getEnvFloat(EnvOtelSampleRatio, DefaultOtelSampleRatio),

		Client: client.NewClient(),
	}
	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetMinio() {
	cfg.Client.SetMinio(cfg.Log, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
}

// SetRedis connects the shared Redis client when REDIS_ADDR is configured.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MongoConnTimeout)
}

func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !mongoURIRegex.MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"TokenTTL", cfg.TokenTTL},
		{"AppointmentLockTTL", cfg.AppointmentLockTTL},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(cfg.JWTSecret) < minJWTSecretLength {
		errors = append(errors, fmt.Sprintf("JWTSecret must be at least %d characters", minJWTSecretLength))
	}

	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("TimeZone must be a valid IANA zone, got: %s", cfg.TimeZone))
	}

	if cfg.AppointmentDailyCap <= 0 {
		errors = append(errors, fmt.Sprintf("AppointmentDailyCap must be positive, got: %d", cfg.AppointmentDailyCap))
	}
	if cfg.AppointmentAgentCap <= 0 {
		errors = append(errors, fmt.Sprintf("AppointmentAgentCap must be positive, got: %d", cfg.AppointmentAgentCap))
	}
	if cfg.AppointmentFirstHour < 0 || cfg.AppointmentLastHour > 23 || cfg.AppointmentFirstHour > cfg.AppointmentLastHour {
		errors = append(errors, fmt.Sprintf("Appointment hours must satisfy 0 <= first (%d) <= last (%d) <= 23", cfg.AppointmentFirstHour, cfg.AppointmentLastHour))
	}

	if cfg.MinioBucket == "" {
		errors = append(errors, "MinioBucket cannot be empty")
	}

	if cfg.KafkaEnabled && cfg.AppointmentEventsTopic == "" {
		errors = append(errors, "AppointmentEventsTopic cannot be empty when Kafka is enabled")
	}

	if cfg.OtelSampleRatio < 0 || cfg.OtelSampleRatio > 1 {
		errors = append(errors, fmt.Sprintf("OtelSampleRatio must be between 0 and 1, got: %f", cfg.OtelSampleRatio))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"redis_enabled", cfg.RedisAddr != "",
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"jwt_issuer", cfg.JWTIssuer,
		"token_ttl", cfg.TokenTTL,
		"time_zone", cfg.TimeZone,
		"appointment_daily_cap", cfg.AppointmentDailyCap,
		"appointment_agent_cap", cfg.AppointmentAgentCap,
		"appointment_first_hour", cfg.AppointmentFirstHour,
		"appointment_last_hour", cfg.AppointmentLastHour,
		"appointment_lock_ttl", cfg.AppointmentLockTTL,
		"minio_endpoint", cfg.MinioEndpoint,
		"minio_bucket", cfg.MinioBucket,
		"kafka_enabled", cfg.KafkaEnabled,
		"appointment_events_topic", cfg.AppointmentEventsTopic,
		"otel_enabled", cfg.OtelEnabled,
	)
}

func redactMongoURI(uri string) string {
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

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
	cfg.Client.GracefulShutdown(cfg.Log)
}

func NormalizePaginationLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > DefaultPaginationLimit {
		return DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
