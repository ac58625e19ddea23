package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fpm-inspections-core/internal/modules/inspections/claim-detail/services"
	"fpm-inspections-core/internal/shared/utils"
)

type ClaimDetailController struct {
	service *services.ClaimDetailService
}

func NewClaimDetailController(service *services.ClaimDetailService) *ClaimDetailController {
	return &ClaimDetailController{service: service}
}

// GetDetail GET /api/v1/inspections/claims/:num_pec/detail
func (c *ClaimDetailController) GetDetail(ctx *gin.Context) {
	detail, err := c.service.Get(ctx.Request.Context(), ctx.Param("num_pec"))
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	utils.RespondSuccess(ctx, http.StatusOK, detail)
}
