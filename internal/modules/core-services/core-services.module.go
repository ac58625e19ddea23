package core_services

import (
	"go.uber.org/fx"

	"fpm-inspections-core/internal/modules/core-services/claims"
)

// Module regroupe les services métier centralisés (Core Services)
// Réutilisés par les endpoints d'inspection et par la CLI, sans endpoints propres
var Module = fx.Options(
	claims.Module,
)
