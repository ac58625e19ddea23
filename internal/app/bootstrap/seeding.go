package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/database/seeds"
)

// SeedingManager vérifie le schéma lu par les rapports et charge le jeu de
// démonstration quand la configuration le demande
type SeedingManager struct {
	seedService seeds.SeedingService
	seedDemo    bool
	logger      *zap.Logger
}

// NewSeedingManager crée une nouvelle instance du gestionnaire de seeding
func NewSeedingManager(seedService seeds.SeedingService, cfg *config.Config, logger *zap.Logger) *SeedingManager {
	return &SeedingManager{
		seedService: seedService,
		seedDemo:    cfg.Reports.SeedDemo,
		logger:      logger.Named("seeding"),
	}
}

// EnsureSchema échoue sur la première table manquante, sauf en mode
// démonstration où le schéma embarqué est appliqué
func (sm *SeedingManager) EnsureSchema(ctx context.Context) error {
	status, err := sm.seedService.CheckSeedDataExists(ctx)
	if err != nil {
		return fmt.Errorf("erreur vérification schéma: %w", err)
	}

	if status.SchemaReady() {
		sm.logger.Info("schéma vérifié", zap.Int("tables", len(seeds.RequiredTables)))
		return nil
	}

	sm.logger.Warn("tables manquantes", zap.Strings("tables", status.MissingTables))
	if !sm.seedDemo {
		return seeds.ErrTableNotExists(status.MissingTables[0])
	}

	if err := sm.seedService.ApplySchema(ctx); err != nil {
		return fmt.Errorf("application schéma démonstration: %w", err)
	}
	return sm.seedService.ValidateRequiredTables(ctx)
}

// ApplyDemo charge le jeu de démonstration si activé
func (sm *SeedingManager) ApplyDemo(ctx context.Context) error {
	if !sm.seedDemo {
		sm.logger.Debug("jeu de démonstration désactivé")
		return nil
	}

	if err := sm.seedService.SeedDemo(ctx); err != nil {
		return fmt.Errorf("seeding démonstration: %w", err)
	}
	return nil
}

// DemoEnabled indique si la phase de démonstration s'exécute
func (sm *SeedingManager) DemoEnabled() bool {
	return sm.seedDemo
}
