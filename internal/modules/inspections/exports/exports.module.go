package exports

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"fpm-inspections-core/internal/modules/inspections/exports/controllers"
	"fpm-inspections-core/internal/modules/inspections/exports/services"
)

// ServiceModule service d'export seul, utilisé aussi par la CLI
var ServiceModule = fx.Options(
	fx.Provide(services.NewExportService),
)

var Module = fx.Options(
	ServiceModule,
	fx.Provide(controllers.NewExportsController),
	fx.Invoke(RegisterExportsRoutes),
)

func RegisterExportsRoutes(r *gin.Engine, ctrl *controllers.ExportsController) {
	exports := r.Group("/api/v1/inspections/exports")
	{
		exports.POST("/consolidation", ctrl.Consolidation)
		exports.POST("/etat-synthetique", ctrl.EtatSynthetique)
	}
}
