package seeds

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/database/postgres"
)

//go:embed sql/schema.sql
var schemaSQL string

//go:embed sql/demo.sql
var demoSQL string

// seedingService implémente SeedingService
type seedingService struct {
	pgClient    *postgres.Client
	txManager   *postgres.TransactionManager
	environment string
	logger      *zap.Logger
}

// NewSeedingService crée un nouveau service de seeding
func NewSeedingService(pgClient *postgres.Client, txManager *postgres.TransactionManager, cfg *config.Config, logger *zap.Logger) SeedingService {
	return &seedingService{
		pgClient:    pgClient,
		txManager:   txManager,
		environment: cfg.Environment,
		logger:      logger.Named("seeds"),
	}
}

// CheckSeedDataExists liste les tables absentes et la présence du jeu de démonstration
func (s *seedingService) CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error) {
	status := &SeedDataStatus{}

	for _, table := range RequiredTables {
		exists, err := s.checkTableExists(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("erreur vérification table %s: %w", table, err)
		}
		if !exists {
			status.MissingTables = append(status.MissingTables, table)
		}
	}

	if status.SchemaReady() {
		demo, err := s.checkDemoDataExists(ctx)
		if err != nil {
			return nil, fmt.Errorf("erreur vérification jeu de démonstration: %w", err)
		}
		status.DemoDataExist = demo
	}

	return status, nil
}

// ValidateRequiredTables valide que toutes les tables requises existent
func (s *seedingService) ValidateRequiredTables(ctx context.Context) error {
	for _, table := range RequiredTables {
		exists, err := s.checkTableExists(ctx, table)
		if err != nil {
			return fmt.Errorf("erreur vérification table %s: %w", table, err)
		}
		if !exists {
			return ErrTableNotExists(table)
		}
	}
	return nil
}

// ApplySchema crée les tables manquantes (CREATE IF NOT EXISTS)
func (s *seedingService) ApplySchema(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}

	err := s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		return tx.Exec(ctx, schemaSQL)
	})
	if err != nil {
		return ErrDatabaseOperation("création du schéma", err)
	}

	s.logger.Info("schéma appliqué", zap.Int("tables", len(RequiredTables)))
	return nil
}

// SeedDemo charge le jeu de démonstration, sans effet s'il est déjà présent
func (s *seedingService) SeedDemo(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}

	exists, err := s.checkDemoDataExists(ctx)
	if err != nil {
		return ErrDatabaseOperation("vérification jeu de démonstration", err)
	}
	if exists {
		s.logger.Info("jeu de démonstration déjà présent - ignoré")
		return nil
	}

	err = s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		return tx.Exec(ctx, demoSQL)
	})
	if err != nil {
		return ErrDatabaseOperation("insertion jeu de démonstration", err)
	}

	s.logger.Info("jeu de démonstration chargé")
	return nil
}

func (s *seedingService) guard() error {
	if s.environment != "development" {
		return ErrDemoForbidden(s.environment)
	}
	return nil
}

func (s *seedingService) checkTableExists(ctx context.Context, tableName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema()
			  AND table_name = $1
		)
	`

	var exists bool
	err := s.pgClient.QueryRow(ctx, query, tableName).Scan(&exists)
	return exists, err
}

func (s *seedingService) checkDemoDataExists(ctx context.Context) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM acte_trans WHERE num_pec = 'C-1')`

	var exists bool
	err := s.pgClient.QueryRow(ctx, query).Scan(&exists)
	return exists, err
}
