package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	"fpm-inspections-core/internal/modules/inspections/consolidation/services"
	"fpm-inspections-core/internal/shared/utils"
)

type ConsolidationController struct {
	service   *services.ConsolidationReportService
	validator *validator.Validate
}

func NewConsolidationController(service *services.ConsolidationReportService) *ConsolidationController {
	return &ConsolidationController{
		service:   service,
		validator: utils.NewValidator(),
	}
}

// Consolidate POST /api/v1/inspections/consolidation
func (c *ConsolidationController) Consolidate(ctx *gin.Context) {
	var req claimsDto.FilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	if err := c.validator.Struct(req); err != nil {
		utils.RespondValidation(ctx, utils.ValidationChamps(err))
		return
	}

	result, err := c.service.Run(ctx.Request.Context(), req, nil)
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	utils.RespondSuccess(ctx, http.StatusOK, result)
}
