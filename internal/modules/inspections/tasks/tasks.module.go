package tasks

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"fpm-inspections-core/internal/modules/inspections/tasks/controllers"
	"fpm-inspections-core/internal/modules/inspections/tasks/services"
)

var Module = fx.Options(
	fx.Provide(services.NewTaskService),
	fx.Provide(controllers.NewTasksController),
	fx.Invoke(RegisterTasksRoutes),
	fx.Invoke(RegisterTasksLifecycle),
)

func RegisterTasksRoutes(r *gin.Engine, ctrl *controllers.TasksController) {
	api := r.Group("/api/v1/inspections")
	{
		api.POST("/consolidation/tasks", ctrl.Create)
		api.GET("/tasks/:task_id", ctrl.Get)
		api.GET("/tasks/:task_id/events", ctrl.Events)
	}
}

func RegisterTasksLifecycle(lc fx.Lifecycle, service *services.TaskService) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return service.Shutdown(ctx)
		},
	})
}
