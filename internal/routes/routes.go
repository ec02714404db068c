package routes

import (
	"github.com/gin-gonic/gin"

	"taskmanager/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {

	// ---- public surface
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	// TASKS
	api := r.Group("/api/v1")
	tasks := api.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.PATCH("/:id/complete", taskHandler.Complete)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.GET("/status/:status", taskHandler.ListByStatus)
		tasks.GET("/analytics/statistics", taskHandler.Statistics)
	}

	return r
}
