package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"fpm-inspections-core/internal/modules/inspections/etat-synthetique/dto"
	"fpm-inspections-core/internal/modules/inspections/etat-synthetique/services"
	"fpm-inspections-core/internal/shared/utils"
)

type EtatSynthetiqueController struct {
	service   *services.EtatSynthetiqueReportService
	validator *validator.Validate
}

func NewEtatSynthetiqueController(service *services.EtatSynthetiqueReportService) *EtatSynthetiqueController {
	return &EtatSynthetiqueController{
		service:   service,
		validator: utils.NewValidator(),
	}
}

// Generate POST /api/v1/inspections/etat-synthetique
func (c *EtatSynthetiqueController) Generate(ctx *gin.Context) {
	var req dto.EtatSynthetiqueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	if err := c.validator.Struct(req); err != nil {
		utils.RespondValidation(ctx, utils.ValidationChamps(err))
		return
	}

	result, err := c.service.Run(ctx.Request.Context(), req)
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	utils.RespondSuccess(ctx, http.StatusOK, result)
}
