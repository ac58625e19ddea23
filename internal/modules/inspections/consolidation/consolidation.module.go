package consolidation

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"fpm-inspections-core/internal/modules/inspections/consolidation/controllers"
	"fpm-inspections-core/internal/modules/inspections/consolidation/services"
)

var Module = fx.Options(
	fx.Provide(services.NewConsolidationReportService),
	fx.Provide(controllers.NewConsolidationController),
	fx.Invoke(RegisterConsolidationRoutes),
)

func RegisterConsolidationRoutes(r *gin.Engine, ctrl *controllers.ConsolidationController) {
	api := r.Group("/api/v1/inspections")
	{
		api.POST("/consolidation", ctrl.Consolidate)
	}
}
