// Package routes wires the HTTP surface of the location resolver.
//
// Layout:
// - api.go: versioned API routes (/v1/*)
// - routes.go: setup entry points and middleware
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/location-resolver/app/controllers"
)

// SetupAllRoutes installs middleware and every route group.
func SetupAllRoutes(router *gin.Engine, locationController *controllers.LocationController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupHealthRoutes(router, locationController)
	SetupAPIRoutes(router, locationController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// SetupHealthRoutes installs root-level liveness routes.
func SetupHealthRoutes(router *gin.Engine, locationController *controllers.LocationController) {
	router.GET("/health", locationController.HealthCheck)
	router.GET("/ready", locationController.HealthCheck)
	router.GET("/live", locationController.HealthCheck)
}

func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}
