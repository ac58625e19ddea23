package analyses

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"fpm-inspections-core/internal/modules/inspections/analyses/controllers"
	"fpm-inspections-core/internal/modules/inspections/analyses/services"
)

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(services.NewMongoAnalysisRepository, fx.As(new(services.AnalysisRepository))),
	),
	fx.Provide(services.NewAnalysisService),
	fx.Provide(controllers.NewAnalysesController),
	fx.Invoke(RegisterAnalysesRoutes),
)

func RegisterAnalysesRoutes(r *gin.Engine, ctrl *controllers.AnalysesController) {
	analyses := r.Group("/api/v1/inspections/analyses")
	{
		analyses.POST("", ctrl.Create)
		analyses.GET("/recent", ctrl.Recent)
		analyses.GET("/:id", ctrl.Get)
	}
}
