package app

import (
	"go.uber.org/fx"

	"fpm-inspections-core/internal/app/bootstrap"
	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/database"
	"fpm-inspections-core/internal/infrastructure/database/mongodb"
	"fpm-inspections-core/internal/infrastructure/database/postgres"
	"fpm-inspections-core/internal/infrastructure/database/redis"
	"fpm-inspections-core/internal/infrastructure/logger"
	core_services "fpm-inspections-core/internal/modules/core-services"
	"fpm-inspections-core/internal/modules/inspections"
	"fpm-inspections-core/internal/shared/middleware"
)

// NewReadinessChecks dépendances pingées par /ready
func NewReadinessChecks(pg *postgres.Client, rdb *redis.Client, mongo *mongodb.Client) ReadinessChecks {
	return ReadinessChecks{
		"postgres": pg,
		"redis":    rdb,
		"mongodb":  mongo,
	}
}

// ConfigModule configuration et convertisseurs par client
var ConfigModule = fx.Options(
	// Configuration (doit être fournie en premier)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewRedisKeyTTLs),
	fx.Provide(config.NewMongoConfig),
	fx.Provide(config.NewLoggerConfig),
)

var AppModule = fx.Options(
	ConfigModule,

	// Infrastructure
	logger.Module,
	database.Module,

	// Core services (sans endpoints)
	core_services.Module,

	// Bootstrap : tables requises, jeu de démonstration
	bootstrap.Module,

	// Middlewares partagés (après infrastructure, avant modules métier)
	middleware.Module,

	// Router
	fx.Provide(NewRouter),
	fx.Provide(NewReadinessChecks),
	fx.Invoke(RegisterHealthRoutes),

	// Modules métier
	inspections.Module,

	// Application
	fx.Provide(NewApplication),
	fx.Invoke((*Application).Start),
)
