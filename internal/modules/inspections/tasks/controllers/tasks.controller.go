package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	"fpm-inspections-core/internal/modules/inspections/tasks/services"
	"fpm-inspections-core/internal/shared/utils"
)

const sseEvent = "progress"

type TasksController struct {
	service   *services.TaskService
	validator *validator.Validate
}

func NewTasksController(service *services.TaskService) *TasksController {
	return &TasksController{
		service:   service,
		validator: utils.NewValidator(),
	}
}

// Create POST /api/v1/inspections/consolidation/tasks
func (c *TasksController) Create(ctx *gin.Context) {
	var req claimsDto.FilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	if err := c.validator.Struct(req); err != nil {
		utils.RespondValidation(ctx, utils.ValidationChamps(err))
		return
	}

	result, err := c.service.Start(ctx.Request.Context(), req)
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	utils.RespondSuccess(ctx, http.StatusAccepted, result)
}

// Get GET /api/v1/inspections/tasks/:task_id
func (c *TasksController) Get(ctx *gin.Context) {
	result, err := c.service.Status(ctx.Request.Context(), ctx.Param("task_id"))
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	utils.RespondSuccess(ctx, http.StatusOK, result)
}

// Events GET /api/v1/inspections/tasks/:task_id/events (Server-Sent Events)
func (c *TasksController) Events(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	last, sub, err := c.service.Subscribe(reqCtx, ctx.Param("task_id"))
	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}
	defer sub.Close()

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("X-Accel-Buffering", "no")

	ctx.SSEvent(sseEvent, last)
	ctx.Writer.Flush()
	if last.Terminal() {
		return
	}

	ctx.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events:
			if !ok {
				return false
			}
			ctx.SSEvent(sseEvent, ev)
			return !ev.Terminal()
		case <-reqCtx.Done():
			return false
		}
	})
}
