package main

import (
	"context"

	"realty/internal/health"
	"realty/internal/users/handler"
	"realty/internal/users/repository"
	"realty/internal/users/service"
	"realty/internal/users/validator"
	"realty/pkg/app"
	"realty/pkg/config"
)

const ServiceName = "accounts"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Accounts service")
	serverApp := app.NewApplication(cfg)
	serverApp.EnableTracing(context.Background())

	tokens := app.NewTokenManager(cfg)
	userService := service.NewUserService(
		repository.NewMongoUserRepository(cfg),
		tokens,
		validator.NewUserValidator(cfg.Log),
		cfg,
	)
	cfg.Log.Info("User service initialized", "database", cfg.MongoDatabaseName, "token_ttl", cfg.TokenTTL)

	checkers := []health.Checker{health.Mongo(cfg.Client.Mongo)}
	if cfg.Client.Redis != nil {
		checkers = append(checkers, health.Redis(cfg.Client.Redis))
	}

	serverApp.SetApp(tokens, checkers, handler.NewUserHandler(userService, cfg.Log))
	serverApp.Run()
}
