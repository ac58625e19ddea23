package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"fpm-inspections-core/internal/modules/inspections/analyses/dto"
	"fpm-inspections-core/internal/modules/inspections/analyses/services"
	"fpm-inspections-core/internal/shared/utils"
)

type AnalysesController struct {
	service   *services.AnalysisService
	validator *validator.Validate
}

func NewAnalysesController(service *services.AnalysisService) *AnalysesController {
	return &AnalysesController{
		service:   service,
		validator: utils.NewValidator(),
	}
}

// Create POST /api/v1/inspections/analyses
func (c *AnalysesController) Create(ctx *gin.Context) {
	var req dto.CreateAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondValidation(ctx, utils.ValidationChamps(err))
		return
	}

	analysis, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}
	utils.RespondSuccess(ctx, http.StatusCreated, analysis)
}

// Recent GET /api/v1/inspections/analyses/recent?limit=
func (c *AnalysesController) Recent(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondValidation(ctx, map[string]string{"limit": "Doit être un entier"})
			return
		}
		limit = n
	}

	analyses, err := c.service.Recent(ctx.Request.Context(), limit)
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}
	utils.RespondSuccess(ctx, http.StatusOK, analyses)
}

// Get GET /api/v1/inspections/analyses/:id
func (c *AnalysesController) Get(ctx *gin.Context) {
	analysis, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}
	utils.RespondSuccess(ctx, http.StatusOK, analysis)
}
