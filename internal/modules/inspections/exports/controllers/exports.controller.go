package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	etatDto "fpm-inspections-core/internal/modules/inspections/etat-synthetique/dto"
	"fpm-inspections-core/internal/modules/inspections/exports/services"
	"fpm-inspections-core/internal/shared/utils"
)

type ExportsController struct {
	service   *services.ExportService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewExportsController(service *services.ExportService, logger *zap.Logger) *ExportsController {
	return &ExportsController{
		service:   service,
		validator: utils.NewValidator(),
		logger:    logger.Named("exports_http"),
	}
}

// Consolidation POST /api/v1/inspections/exports/consolidation?format=csv|json|parquet
func (c *ExportsController) Consolidation(ctx *gin.Context) {
	renderer, err := services.RendererFor(ctx.Query("format"))
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	var req claimsDto.FilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondValidation(ctx, utils.ValidationChamps(err))
		return
	}

	ds, err := c.service.Consolidation(ctx.Request.Context(), req, nil)
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}
	c.send(ctx, renderer, ds, req.DateDebut, req.DateFin)
}

// EtatSynthetique POST /api/v1/inspections/exports/etat-synthetique?format=...
func (c *ExportsController) EtatSynthetique(ctx *gin.Context) {
	renderer, err := services.RendererFor(ctx.Query("format"))
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	var req etatDto.EtatSynthetiqueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondValidation(ctx, utils.ValidationChamps(err))
		return
	}

	ds, err := c.service.EtatSynthetique(ctx.Request.Context(), req, nil)
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}
	c.send(ctx, renderer, ds, req.DateDebut, req.DateFin)
}

// send rend en mémoire d'abord : une erreur de rendu reste une réponse JSON
func (c *ExportsController) send(ctx *gin.Context, renderer services.Renderer, ds *services.Dataset, from, to string) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, ds); err != nil {
		c.logger.Error("rendu export échoué", zap.String("export", ds.Name), zap.Error(err))
		utils.RespondError(ctx, http.StatusInternalServerError, "Erreur lors de la génération de l'export", utils.CodeInternal, nil)
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.%s", ds.Name, from, to, renderer.Extension())
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, renderer.ContentType(), buf.Bytes())
}
