package app

import (
	"context"

	"realty/internal/availability"
	"realty/pkg/auth"
	"realty/pkg/config"
	"realty/pkg/events"
	"realty/pkg/kafka"
	kafkaconfig "realty/pkg/kafka/config"
	"realty/pkg/kafka/middleware"
	"realty/pkg/tracing"
)

// EnableTracing installs the OpenTelemetry provider and flushes it on shutdown.
func (a *Application) EnableTracing(ctx context.Context) {
	shutdown, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     a.cfg.OtelEnabled,
		ServiceName: a.cfg.ServiceName,
		Endpoint:    a.cfg.OtelEndpoint,
		SampleRatio: a.cfg.OtelSampleRatio,
	})
	if err != nil {
		a.cfg.Log.Fatal("Failed to set up tracing", "error", err)
	}
	a.OnShutdown(ShutdownHook(shutdown))
}

func NewTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
}

func NewAvailabilityEngine(cfg *config.Config) *availability.Engine {
	return availability.NewEngine(availability.Policy{
		DailyCap:  cfg.AppointmentDailyCap,
		AgentCap:  cfg.AppointmentAgentCap,
		FirstHour: cfg.AppointmentFirstHour,
		LastHour:  cfg.AppointmentLastHour,
	})
}

// NewEventPublisher returns a Kafka-backed publisher when Kafka is enabled and
// a logging stand-in otherwise. The publisher is closed on shutdown.
func (a *Application) NewEventPublisher() events.Publisher {
	if !a.cfg.KafkaEnabled {
		a.cfg.Log.Info("Kafka disabled, appointment events will only be logged")
		return events.NewLogPublisher(a.cfg.Log)
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		a.cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(a.cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, a.cfg.AppointmentEventsTopic, a.cfg.AppointmentEventsDLQTopic, a.cfg.Log)
	if err != nil {
		a.cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(middleware.LoggingProducerMiddleware(a.cfg.Log))

	publisher := events.NewKafkaPublisher(producer, a.cfg.ServiceName)
	a.OnShutdown(func(context.Context) error { return publisher.Close() })
	return publisher
}
