package inspections

import (
	"go.uber.org/fx"

	"fpm-inspections-core/internal/modules/inspections/analyses"
	claimdetail "fpm-inspections-core/internal/modules/inspections/claim-detail"
	"fpm-inspections-core/internal/modules/inspections/consolidation"
	"fpm-inspections-core/internal/modules/inspections/dashboard"
	etatsynthetique "fpm-inspections-core/internal/modules/inspections/etat-synthetique"
	"fpm-inspections-core/internal/modules/inspections/exports"
	"fpm-inspections-core/internal/modules/inspections/tasks"
)

// Module endpoints /api/v1/inspections
var Module = fx.Options(
	consolidation.Module,
	tasks.Module,
	claimdetail.Module,
	etatsynthetique.Module,
	exports.Module,
	analyses.Module,
	dashboard.Module,
)
