// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/udyamhq/udyam-backend/internal/api/handlers"
	"github.com/udyamhq/udyam-backend/internal/api/middleware"
	"github.com/udyamhq/udyam-backend/internal/service"
)

type Services struct {
	Analytics *service.AnalyticsService
	Finance   *service.FinanceService
	Reports   *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.TenantHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.Tenant())

	if services != nil {
		if services.Analytics != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("/forecast", analyticsHandler.GetForecast)
				analyticsGroup.GET("/anomalies", analyticsHandler.GetAnomalies)
				analyticsGroup.GET("/health-score", analyticsHandler.GetHealthScore)
				analyticsGroup.GET("/sales", analyticsHandler.GetSales)
				analyticsGroup.GET("/production", analyticsHandler.GetProduction)
			}

			dashboardHandler := handlers.NewDashboardHandler(services.Analytics)
			apiGroup.GET("/dashboard/overview", dashboardHandler.GetOverview)
		}

		if services.Finance != nil {
			financeHandler := handlers.NewFinanceHandler(services.Finance, services.Reports)
			financeGroup := apiGroup.Group("/finance")
			{
				financeGroup.GET("/profit-loss", financeHandler.GetProfitLoss)
				financeGroup.GET("/balance-sheet", financeHandler.GetBalanceSheet)
				financeGroup.GET("/cash-flow", financeHandler.GetCashFlow)
				financeGroup.POST("/reports", financeHandler.GenerateReport)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
