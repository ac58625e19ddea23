package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/app"
	"fpm-inspections-core/internal/infrastructure/database/postgres"
	"fpm-inspections-core/internal/infrastructure/database/seeds"
	"fpm-inspections-core/internal/infrastructure/logger"
	core_services "fpm-inspections-core/internal/modules/core-services"
	"fpm-inspections-core/internal/modules/inspections/exports"
)

var rootCmd = &cobra.Command{
	Use:          "inspections",
	Short:        "Rapports d'inspection FPM en ligne de commande",
	Long:         "Génère les exports consolidés et l'état synthétique directement depuis PostgreSQL, sans passer par l'API.",
	SilenceUsage: true,
}

// cliModule PostgreSQL seul : ni Redis ni MongoDB ne sont requis hors API
var cliModule = fx.Options(
	app.ConfigModule,
	logger.Module,
	postgres.Module,
	seeds.Module,
	core_services.Module,
	exports.ServiceModule,
	fx.NopLogger,
)

// withApp démarre le graphe fx, renseigne targets, exécute fn puis arrête
func withApp(fn func(ctx context.Context, log *zap.Logger) error, targets ...interface{}) error {
	var log *zap.Logger
	fxApp := fx.New(cliModule, fx.Populate(append(targets, &log)...))
	if err := fxApp.Err(); err != nil {
		return fmt.Errorf("initialisation: %w", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return fmt.Errorf("démarrage: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = fxApp.Stop(stopCtx)
	}()

	return fn(context.Background(), log)
}
