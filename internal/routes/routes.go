package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devflow/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	developerHandler *handlers.DeveloperHandler,
	taskHandler *handlers.TaskHandler,
	analyticsHandler *handlers.AnalyticsHandler,
) *gin.Engine {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "DevFlow API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")

	// DEVELOPERS
	developers := api.Group("/developers")
	{
		developers.GET("", developerHandler.GetAll)
		developers.POST("", developerHandler.Create)
		developers.GET("/:id/stats", developerHandler.Stats)
		developers.GET("/:id/tasks", developerHandler.Tasks)
		developers.GET("/:id", developerHandler.GetByID)
		developers.PUT("/:id", developerHandler.Update)
		developers.DELETE("/:id", developerHandler.Delete)
	}

	// TASKS
	tasks := api.Group("/tasks")
	{
		tasks.GET("", taskHandler.GetAll)
		tasks.POST("", taskHandler.Create)
		tasks.GET("/:id/history", taskHandler.History)
		tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
		tasks.PATCH("/:id/assign", taskHandler.Assign)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	// ANALYTICS (read-only)
	analytics := api.Group("/analytics")
	{
		analytics.GET("/team", analyticsHandler.TeamMetrics)
		analytics.GET("/velocity", analyticsHandler.Velocity)
		analytics.GET("/bottlenecks", analyticsHandler.Bottlenecks)
		analytics.GET("/leaderboard", analyticsHandler.Leaderboard)
		analytics.GET("/distribution", analyticsHandler.Distribution)
		analytics.GET("/report", analyticsHandler.SprintReport)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})

	return r
}
