package claimdetail

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"fpm-inspections-core/internal/modules/inspections/claim-detail/controllers"
	"fpm-inspections-core/internal/modules/inspections/claim-detail/services"
)

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(services.NewRedisDetailCache, fx.As(new(services.DetailCache))),
	),
	fx.Provide(services.NewClaimDetailService),
	fx.Provide(controllers.NewClaimDetailController),
	fx.Invoke(RegisterClaimDetailRoutes),
)

func RegisterClaimDetailRoutes(r *gin.Engine, ctrl *controllers.ClaimDetailController) {
	api := r.Group("/api/v1/inspections")
	{
		api.GET("/claims/:num_pec/detail", ctrl.GetDetail)
	}
}
