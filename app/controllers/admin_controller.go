package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/location-resolver/app/responses"
	"github.com/location-resolver/app/services"
)

// AdminController exposes cache administration endpoints.
type AdminController struct {
	cacheService services.ICacheService
	logger       *zap.Logger
}

// NewAdminController builds an AdminController.
func NewAdminController(cacheService services.ICacheService, logger *zap.Logger) *AdminController {
	return &AdminController{cacheService: cacheService, logger: logger}
}

// CacheStats reports hit/miss counters.
func (ac *AdminController) CacheStats(c *gin.Context) {
	stats, err := ac.cacheService.GetStats(c.Request.Context())
	if err != nil {
		ac.logger.Error("cache stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error: "CACHE_STATS_ERROR", Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// InvalidateCache drops all cached resolutions. Run after reloading the
// canonical dataset so stale matches cannot be served.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	version := c.Query("dataset_version")

	var err error
	if version != "" {
		err = ac.cacheService.InvalidateByDatasetVersion(c.Request.Context(), version)
	} else {
		err = ac.cacheService.Clear(c.Request.Context())
	}
	if err != nil {
		ac.logger.Error("cache invalidation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error: "CACHE_INVALIDATE_ERROR", Message: err.Error(),
		})
		return
	}

	ac.logger.Info("cache invalidated", zap.String("dataset_version", version))
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
