package dashboard

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	analysesServices "fpm-inspections-core/internal/modules/inspections/analyses/services"
	"fpm-inspections-core/internal/modules/inspections/dashboard/controllers"
	"fpm-inspections-core/internal/modules/inspections/dashboard/services"
)

var Module = fx.Options(
	fx.Provide(NewDashboardService),
	fx.Provide(controllers.NewDashboardController),
	fx.Invoke(RegisterDashboardRoutes),
)

// NewDashboardService branche le store de référence et le service d'historique
func NewDashboardService(reference *claimsServices.ReferenceStore, history *analysesServices.AnalysisService, logger *zap.Logger) *services.DashboardService {
	return services.NewDashboardService(reference, history, logger)
}

func RegisterDashboardRoutes(r *gin.Engine, ctrl *controllers.DashboardController) {
	api := r.Group("/api/v1/inspections")
	{
		api.GET("/dashboard", ctrl.Summary)
		api.GET("/structures", ctrl.Structures)
	}
}
