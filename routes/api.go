package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/location-resolver/app/controllers"
)

// SetupAPIRoutes installs the versioned API routes.
func SetupAPIRoutes(router *gin.Engine, locationController *controllers.LocationController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		locations := v1.Group("/locations")
		{
			locations.POST("/resolve", locationController.ResolveLocation)
			locations.POST("/resolve/batch", locationController.BatchResolve)
			locations.POST("/diagnose", locationController.DiagnoseLocation)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/cache/stats", adminController.CacheStats)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
		}

		v1.GET("/health", locationController.HealthCheck)
	}
}
