package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvRedisAddr         = "REDIS_ADDR"
	EnvRedisPassword     = "REDIS_PASSWORD"
	EnvRedisDB           = "REDIS_DB"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvJWTSecret = "JWT_SECRET"
	EnvJWTIssuer = "JWT_ISSUER"
	EnvTokenTTL  = "TOKEN_TTL"

	EnvTimeZone = "TIME_ZONE"

	EnvAppointmentDailyCap  = "APPOINTMENT_DAILY_CAP"
	EnvAppointmentAgentCap  = "APPOINTMENT_AGENT_CAP"
	EnvAppointmentFirstHour = "APPOINTMENT_FIRST_HOUR"
	EnvAppointmentLastHour  = "APPOINTMENT_LAST_HOUR"
	EnvAppointmentLockTTL   = "APPOINTMENT_LOCK_TTL"

	EnvMinioEndpoint  = "MINIO_ENDPOINT"
	EnvMinioAccessKey = "MINIO_ACCESS_KEY"
	EnvMinioSecretKey = "MINIO_SECRET_KEY"
	EnvMinioUseSSL    = "MINIO_USE_SSL"
	EnvMinioBucket    = "MINIO_BUCKET"
	EnvMinioPublicURL = "MINIO_PUBLIC_URL"

	EnvKafkaEnabled           = "KAFKA_ENABLED"
	EnvAppointmentEventsTopic = "APPOINTMENT_EVENTS_TOPIC"
	EnvAppointmentEventsDLQ   = "APPOINTMENT_EVENTS_DLQ_TOPIC"
	EnvNotificationsGroupID   = "NOTIFICATIONS_GROUP_ID"

	EnvOtelEnabled     = "OTEL_ENABLED"
	EnvOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOtelSampleRatio = "OTEL_SAMPLING_RATIO"
)
