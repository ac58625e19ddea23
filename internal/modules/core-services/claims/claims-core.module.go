package claims

import (
	"go.uber.org/fx"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/database/postgres"
	"fpm-inspections-core/internal/modules/core-services/claims/services"
)

// Module regroupe les services métier de consolidation des PEC (SANS endpoints)
// Core Service : logique réutilisable par l'API et la CLI
var Module = fx.Options(
	fx.Provide(services.NewConsolidationEngine),
	fx.Provide(services.NewClaimDetailResolver),
	fx.Provide(services.NewEtatSynthetiqueService),
	fx.Provide(services.NewReferenceStore),
	fx.Provide(NewReadRunner),
	fx.Provide(AsReader),
)

// NewReadRunner mode de lecture selon CONSOLIDATION_PARALLEL_READS
func NewReadRunner(client *postgres.Client, tm *postgres.TransactionManager, cfg *config.Config) *services.ReadRunner {
	return services.NewReadRunner(client, tm, cfg.Reports.ParallelReads)
}

// AsReader expose le ReadRunner sous l'interface consommée par les modules
func AsReader(r *services.ReadRunner) services.Reader {
	return r
}
