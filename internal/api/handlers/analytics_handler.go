// internal/api/handlers/analytics_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/udyamhq/udyam-backend/internal/api/middleware"
	"github.com/udyamhq/udyam-backend/internal/domain"
	"github.com/udyamhq/udyam-backend/internal/service"
)

const (
	defaultForecastMonths = 1
	maxForecastMonths     = 12
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analyticsSvc}
}

// GetForecast handles GET /analytics/forecast?months=N.
func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	months := defaultForecastMonths
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxForecastMonths {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be an integer between 1 and 12"})
			return
		}
		months = parsed
	}

	forecast, err := h.analytics.Forecast(c.Request.Context(), middleware.TenantID(c), months)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

// GetAnomalies handles GET /analytics/anomalies.
func (h *AnalyticsHandler) GetAnomalies(c *gin.Context) {
	report, err := h.analytics.Anomalies(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetHealthScore handles GET /analytics/health-score.
func (h *AnalyticsHandler) GetHealthScore(c *gin.Context) {
	score, err := h.analytics.HealthScore(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// GetSales handles GET /analytics/sales?period=daily|weekly|monthly.
func (h *AnalyticsHandler) GetSales(c *gin.Context) {
	bucket := domain.Bucket(c.DefaultQuery("period", string(domain.BucketMonth)))

	result, err := h.analytics.Sales(c.Request.Context(), middleware.TenantID(c), bucket)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProduction handles GET /analytics/production.
func (h *AnalyticsHandler) GetProduction(c *gin.Context) {
	result, err := h.analytics.Production(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
