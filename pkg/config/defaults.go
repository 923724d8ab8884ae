package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "realty"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute
	DefaultRedisDB           = 0

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB, property images go through the same stack

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultJWTIssuer = "realty-accounts"
	DefaultTokenTTL  = 24 * time.Hour

	DefaultTimeZone = "Asia/Kolkata"

	DefaultAppointmentDailyCap  = 7
	DefaultAppointmentAgentCap  = 3
	DefaultAppointmentFirstHour = 9
	DefaultAppointmentLastHour  = 17
	DefaultAppointmentLockTTL   = 10 * time.Second

	DefaultMinioEndpoint = "localhost:9000"
	DefaultMinioBucket   = "property-images"

	DefaultKafkaEnabled           = false
	DefaultAppointmentEventsTopic = "appointments.events"
	DefaultAppointmentEventsDLQ   = "appointments.events.dlq"
	DefaultNotificationsGroupID   = "notifications"

	DefaultOtelEnabled     = false
	DefaultOtelEndpoint    = "localhost:4317"
	DefaultOtelSampleRatio = 1.0

	DefaultPaginationLimit     = 100
	DefaultAppointmentPageSize = 5
	DefaultPropertyPageSize    = 12
)
