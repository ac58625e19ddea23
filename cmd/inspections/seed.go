package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/infrastructure/database/seeds"
)

var seedCmd = &cobra.Command{
	Use:   "seed-demo",
	Short: "Crée le schéma et charge le jeu de démonstration (base de développement)",
	RunE:  runSeedDemo,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeedDemo(_ *cobra.Command, _ []string) error {
	var svc seeds.SeedingService
	return withApp(func(ctx context.Context, log *zap.Logger) error {
		if err := svc.ApplySchema(ctx); err != nil {
			return err
		}
		if err := svc.SeedDemo(ctx); err != nil {
			return err
		}

		status, err := svc.CheckSeedDataExists(ctx)
		if err != nil {
			return err
		}
		log.Info("jeu de démonstration prêt",
			zap.Bool("donnees_demo", status.DemoDataExist),
			zap.Strings("tables_manquantes", status.MissingTables))
		return nil
	}, &svc)
}
