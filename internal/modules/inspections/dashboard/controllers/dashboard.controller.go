package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fpm-inspections-core/internal/modules/inspections/dashboard/services"
	"fpm-inspections-core/internal/shared/utils"
)

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

// Summary GET /api/v1/inspections/dashboard
func (c *DashboardController) Summary(ctx *gin.Context) {
	summary, err := c.service.Summary(ctx.Request.Context())
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}
	utils.RespondSuccess(ctx, http.StatusOK, summary)
}

// Structures GET /api/v1/inspections/structures
func (c *DashboardController) Structures(ctx *gin.Context) {
	structures, err := c.service.Structures(ctx.Request.Context())
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}
	utils.RespondSuccess(ctx, http.StatusOK, structures)
}
