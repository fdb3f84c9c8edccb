package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/location-resolver/app/models"
	"github.com/location-resolver/app/requests"
	"github.com/location-resolver/app/responses"
	"github.com/location-resolver/app/services"
)

// LocationController handles the public resolution endpoints. Caching is
// the service's concern; the controller only shapes requests and
// responses.
type LocationController struct {
	resolutionService *services.ResolutionService
	logger            *zap.Logger
}

// NewLocationController builds a LocationController.
func NewLocationController(resolutionService *services.ResolutionService, logger *zap.Logger) *LocationController {
	return &LocationController{
		resolutionService: resolutionService,
		logger:            logger,
	}
}

// ResolveLocation resolves one free-text place description.
func (lc *LocationController) ResolveLocation(c *gin.Context) {
	var req requests.ResolveLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	start := time.Now()
	ctx := c.Request.Context()

	result, cacheHit, err := lc.resolutionService.ResolveLocation(ctx, req.Text, req.Options.SkipCache)
	if err != nil {
		status := http.StatusInternalServerError
		code := "RESOLUTION_ERROR"
		if errors.Is(err, services.ErrEmptyText) {
			status = http.StatusBadRequest
			code = "EMPTY_TEXT"
		}
		c.JSON(status, responses.ErrorResponse{Error: code, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.ResolveLocationResponse{
		Matched:          result != nil && result.Matched(),
		Result:           result,
		CacheHit:         cacheHit,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// BatchResolve resolves a list of inputs, preserving order. Unresolvable
// entries come back null rather than failing the batch.
func (lc *LocationController) BatchResolve(c *gin.Context) {
	var req requests.BatchResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	start := time.Now()
	ctx := c.Request.Context()

	results := make([]*models.ResolutionResult, len(req.Texts))
	for i, text := range req.Texts {
		result, _, err := lc.resolutionService.ResolveLocation(ctx, text, req.Options.SkipCache)
		if err != nil {
			continue
		}
		results[i] = result
	}

	c.JSON(http.StatusOK, responses.BatchResolveResponse{
		Results:          results,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// DiagnoseLocation returns the pipeline breakdown for one input.
func (lc *LocationController) DiagnoseLocation(c *gin.Context) {
	var req requests.DiagnoseLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	report, err := lc.resolutionService.Diagnose(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, responses.ErrorResponse{
				Error: "EMPTY_TEXT", Message: err.Error(),
			})
			return
		}
		lc.logger.Error("diagnostics failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error: "DIAGNOSTICS_ERROR", Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// HealthCheck is the liveness endpoint.
func (lc *LocationController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status:        "ok",
		UptimeSeconds: int64(lc.resolutionService.Uptime().Seconds()),
	})
}
