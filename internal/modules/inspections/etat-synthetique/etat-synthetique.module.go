package etatsynthetique

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"fpm-inspections-core/internal/modules/inspections/etat-synthetique/controllers"
	"fpm-inspections-core/internal/modules/inspections/etat-synthetique/services"
)

var Module = fx.Options(
	fx.Provide(services.NewEtatSynthetiqueReportService),
	fx.Provide(controllers.NewEtatSynthetiqueController),
	fx.Invoke(RegisterEtatSynthetiqueRoutes),
)

func RegisterEtatSynthetiqueRoutes(r *gin.Engine, ctrl *controllers.EtatSynthetiqueController) {
	api := r.Group("/api/v1/inspections")
	{
		api.POST("/etat-synthetique", ctrl.Generate)
	}
}
