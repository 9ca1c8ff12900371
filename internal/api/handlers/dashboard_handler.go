// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udyamhq/udyam-backend/internal/api/middleware"
	"github.com/udyamhq/udyam-backend/internal/service"
)

type DashboardHandler struct {
	analytics *service.AnalyticsService
}

func NewDashboardHandler(analyticsSvc *service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analytics: analyticsSvc}
}

// GetOverview handles GET /dashboard/overview.
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := h.analytics.Overview(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
