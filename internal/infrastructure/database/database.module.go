package database

import (
	"go.uber.org/fx"

	"fpm-inspections-core/internal/infrastructure/database/mongodb"
	"fpm-inspections-core/internal/infrastructure/database/postgres"
	"fpm-inspections-core/internal/infrastructure/database/redis"
	"fpm-inspections-core/internal/infrastructure/database/seeds"
)

var Module = fx.Options(
	postgres.Module,
	redis.Module,
	mongodb.Module,
	seeds.Module,
)
