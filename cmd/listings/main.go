package main

import (
	"context"

	"realty/internal/health"
	promotionshandler "realty/internal/promotions/handler"
	promotionsrepo "realty/internal/promotions/repository"
	promotionsservice "realty/internal/promotions/service"
	promotionsvalidator "realty/internal/promotions/validator"
	propertieshandler "realty/internal/properties/handler"
	propertiesrepo "realty/internal/properties/repository"
	propertiesservice "realty/internal/properties/service"
	propertiesvalidator "realty/internal/properties/validator"
	usersrepo "realty/internal/users/repository"
	"realty/pkg/app"
	"realty/pkg/config"
	"realty/pkg/storage"
)

const ServiceName = "listings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	cfg.SetMinio()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	if err := storage.EnsureBucket(ctx, cfg.Client.Minio, cfg.MinioBucket); err != nil {
		cfg.Log.Fatal("Failed to prepare image bucket", "bucket", cfg.MinioBucket, "error", err)
	}
	cancel()

	cfg.Log.Info("Starting Listings service")
	serverApp := app.NewApplication(cfg)
	serverApp.EnableTracing(context.Background())

	propertyService := propertiesservice.NewPropertyService(
		propertiesrepo.NewMongoPropertyRepository(cfg),
		usersrepo.NewMongoUserRepository(cfg),
		storage.NewMinioImageStore(cfg.Client.Minio, cfg.MinioBucket, cfg.MinioPublicURL),
		propertiesvalidator.NewPropertyValidator(cfg.Log),
		cfg,
	)
	promotionService := promotionsservice.NewPromotionService(
		promotionsrepo.NewMongoPromotionRepository(cfg),
		promotionsvalidator.NewPromotionValidator(cfg.Log),
		cfg,
	)
	cfg.Log.Info("Listing services initialized", "database", cfg.MongoDatabaseName, "bucket", cfg.MinioBucket)

	checkers := []health.Checker{
		health.Mongo(cfg.Client.Mongo),
		health.Minio(cfg.Client.Minio, cfg.MinioBucket),
	}
	if cfg.Client.Redis != nil {
		checkers = append(checkers, health.Redis(cfg.Client.Redis))
	}

	serverApp.SetApp(app.NewTokenManager(cfg), checkers,
		propertieshandler.NewPropertyHandler(propertyService, cfg.Log),
		promotionshandler.NewPromotionHandler(promotionService, cfg.Log),
	)
	serverApp.Run()
}
