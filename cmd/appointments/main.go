package main

import (
	"context"

	appointmentshandler "realty/internal/appointments/handler"
	appointmentsrepo "realty/internal/appointments/repository"
	appointmentsservice "realty/internal/appointments/service"
	"realty/internal/appointments/validator"
	dashboardhandler "realty/internal/dashboard/handler"
	dashboardservice "realty/internal/dashboard/service"
	"realty/internal/health"
	promotionsrepo "realty/internal/promotions/repository"
	propertiesrepo "realty/internal/properties/repository"
	usersrepo "realty/internal/users/repository"
	"realty/pkg/app"
	"realty/pkg/config"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Appointments service")
	serverApp := app.NewApplication(cfg)
	serverApp.EnableTracing(context.Background())

	engine := app.NewAvailabilityEngine(cfg)
	appointmentRepo := appointmentsrepo.NewMongoAppointmentRepository(cfg)
	propertyRepo := propertiesrepo.NewMongoPropertyRepository(cfg)

	appointmentService := appointmentsservice.NewAppointmentService(
		appointmentRepo,
		appointmentsrepo.NewAppointmentLockRepository(cfg),
		propertyRepo,
		engine,
		validator.NewAppointmentValidator(cfg.Log, engine),
		serverApp.NewEventPublisher(),
		cfg,
	)
	dashboardService := dashboardservice.NewDashboardService(
		appointmentService,
		appointmentRepo,
		usersrepo.NewMongoUserRepository(cfg),
		propertyRepo,
		promotionsrepo.NewMongoPromotionRepository(cfg),
		cfg,
	)
	cfg.Log.Info("Appointment service initialized",
		"database", cfg.MongoDatabaseName,
		"daily_cap", engine.Policy().DailyCap,
		"agent_cap", engine.Policy().AgentCap,
	)

	checkers := []health.Checker{health.Mongo(cfg.Client.Mongo)}
	if cfg.Client.Redis != nil {
		checkers = append(checkers, health.Redis(cfg.Client.Redis))
	}

	serverApp.SetApp(app.NewTokenManager(cfg), checkers,
		appointmentshandler.NewAppointmentHandler(appointmentService, cfg.Log),
		dashboardhandler.NewDashboardHandler(dashboardService, cfg.Log),
	)
	serverApp.Run()
}
