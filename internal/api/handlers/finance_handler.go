// internal/api/handlers/finance_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udyamhq/udyam-backend/internal/api/middleware"
	"github.com/udyamhq/udyam-backend/internal/domain"
	"github.com/udyamhq/udyam-backend/internal/service"
)

type FinanceHandler struct {
	finance *service.FinanceService
	reports *service.ReportService
}

func NewFinanceHandler(financeSvc *service.FinanceService, reportSvc *service.ReportService) *FinanceHandler {
	return &FinanceHandler{finance: financeSvc, reports: reportSvc}
}

// GetProfitLoss handles
// GET /finance/profit-loss?start_date&end_date&format=summary|detailed.
func (h *FinanceHandler) GetProfitLoss(c *gin.Context) {
	now := time.Now()
	start, ok := parseDate(c, "start_date", now.AddDate(0, 0, -30))
	if !ok {
		return
	}
	end, ok := parseDate(c, "end_date", now)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "summary")
	if format != "summary" && format != "detailed" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be summary or detailed"})
		return
	}

	statement, err := h.finance.ProfitLoss(c.Request.Context(), middleware.TenantID(c), start, end, format == "detailed")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statement)
}

// GetBalanceSheet handles GET /finance/balance-sheet?as_of_date.
func (h *FinanceHandler) GetBalanceSheet(c *gin.Context) {
	asOf, ok := parseDate(c, "as_of_date", time.Now())
	if !ok {
		return
	}

	sheet, err := h.finance.BalanceSheet(c.Request.Context(), middleware.TenantID(c), asOf)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sheet)
}

// GetCashFlow handles GET /finance/cash-flow?start_date&end_date.
func (h *FinanceHandler) GetCashFlow(c *gin.Context) {
	now := time.Now()
	start, ok := parseDate(c, "start_date", now.AddDate(0, 0, -30))
	if !ok {
		return
	}
	end, ok := parseDate(c, "end_date", now)
	if !ok {
		return
	}

	statement, err := h.finance.CashFlow(c.Request.Context(), middleware.TenantID(c), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statement)
}

type generateReportRequest struct {
	ReportType string `json:"report_type" binding:"required"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// GenerateReport handles POST /finance/reports. The generated report is
// archived to object storage and returned with its download key.
func (h *FinanceHandler) GenerateReport(c *gin.Context) {
	var req generateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_type is required"})
		return
	}

	reportType := domain.ReportType(req.ReportType)
	if !reportType.Valid() {
		respondError(c, &domain.UnknownReportTypeError{Got: reportType})
		return
	}

	now := time.Now()
	start := now.AddDate(0, -1, 0)
	end := now
	if req.StartDate != "" {
		parsed, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be formatted as YYYY-MM-DD"})
			return
		}
		start = parsed
	}
	if req.EndDate != "" {
		parsed, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be formatted as YYYY-MM-DD"})
			return
		}
		end = parsed
	}

	report, err := h.reports.Generate(c.Request.Context(), middleware.TenantID(c), reportType, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}
