package main

import (
	"context"
	"errors"

	"realty/internal/health"
	"realty/internal/notifications/handler"
	"realty/internal/notifications/repository"
	"realty/internal/notifications/service"
	"realty/pkg/app"
	"realty/pkg/config"
	"realty/pkg/kafka"
	kafkaconfig "realty/pkg/kafka/config"
	"realty/pkg/kafka/middleware"
)

const ServiceName = "notifications"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Notifications service")
	serverApp := app.NewApplication(cfg)
	serverApp.EnableTracing(context.Background())

	notificationService := service.NewNotificationService(repository.NewMongoNotificationRepository(cfg), cfg)
	startConsumer(cfg, serverApp, notificationService)

	checkers := []health.Checker{health.Mongo(cfg.Client.Mongo)}
	if cfg.Client.Redis != nil {
		checkers = append(checkers, health.Redis(cfg.Client.Redis))
	}

	serverApp.SetApp(app.NewTokenManager(cfg), checkers, handler.NewNotificationHandler(notificationService, cfg.Log))
	serverApp.Run()
}

// startConsumer runs the appointment event consumer until shutdown. With
// Kafka disabled the service only serves the inbox.
func startConsumer(cfg *config.Config, serverApp *app.Application, svc service.NotificationService) {
	if !cfg.KafkaEnabled {
		cfg.Log.Warn("Kafka disabled, no appointment events will be consumed")
		return
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	consumer, err := kafka.NewConsumer(kafkaCfg,
		cfg.AppointmentEventsTopic,
		cfg.NotificationsGroupID,
		cfg.AppointmentEventsDLQTopic,
		svc.HandleMessage,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(middleware.LoggingConsumerMiddleware(cfg.Log))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Kafka consumer stopped", "error", err)
		}
	}()

	serverApp.OnShutdown(func(context.Context) error {
		cancel()
		return consumer.Close()
	})
	cfg.Log.Info("Kafka consumer started", "topic", cfg.AppointmentEventsTopic, "group_id", cfg.NotificationsGroupID)
}
