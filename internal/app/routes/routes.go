package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emirhan/coursedeck/internal/app/controllers"
	"github.com/emirhan/coursedeck/internal/app/models/dto"
	"github.com/emirhan/coursedeck/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	catalogController *controllers.CatalogController,
	syncController *controllers.SyncController,
	scheduleController *controllers.ScheduleController,
	adminKey string,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public catalog routes ---
	seasons := v1.Group("/seasons")
	{
		seasons.GET("", catalogController.GetSeasons)
		seasons.GET("/:id/courses", catalogController.GetSeasonCourses)
	}

	departments := v1.Group("/departments")
	{
		departments.GET("", catalogController.GetDepartments)
	}

	v1.GET("/courses", catalogController.GetCourses)

	cache := v1.Group("/cache")
	{
		cache.GET("/status", catalogController.GetCacheStatus)
		cache.GET("/stats", catalogController.GetCacheStats)
	}

	// --- Saved schedule routes ---
	schedules := v1.Group("/schedules")
	{
		schedules.POST("", scheduleController.CreateSchedule)
		schedules.GET("", scheduleController.ListSchedules)
		schedules.GET("/:id", scheduleController.GetSchedule)
		schedules.PUT("/:id/favorite", scheduleController.SetFavorite)
		schedules.DELETE("/:id", scheduleController.DeleteSchedule)
	}

	// --- Administrative sync routes ---
	// Status is readable without the key; triggers and deletions need it.
	syncGroup := v1.Group("/sync")
	{
		syncGroup.GET("/status", syncController.GetStatus)

		syncProtected := syncGroup.Group("")
		syncProtected.Use(middleware.AdminKeyRequired(adminKey))
		{
			syncProtected.POST("/full", syncController.TriggerFullSync)
			syncProtected.POST("/seasons", syncController.TriggerSeasonsSync)
			syncProtected.POST("/departments", syncController.TriggerDepartmentsSync)
			syncProtected.POST("/courses", syncController.TriggerCoursesSync)
			syncProtected.DELETE("/seasons/:id", syncController.DeleteSeason)
			syncProtected.DELETE("/departments/:id", syncController.DeleteDepartment)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
